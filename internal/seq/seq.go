// Package seq implements the nucleotide sequence operations covered by the
// workshop: composition statistics, complements, transcription and
// translation with the standard codon table.
package seq

import (
	"errors"
	"strings"
)

// ErrEmptySequence is returned by statistics that would otherwise divide
// by zero on an empty sequence.
var ErrEmptySequence = errors.New("empty sequence")

var complement [256]byte

func init() {
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'U': 'A',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K', 'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D', 'N': 'N', '-': '-',
	}
	for from, to := range pairs {
		complement[from] = to
	}
}

// GC returns the GC content of seq as a percentage of its length.
// S (strong) counts as G/C; other letters count toward the length only.
func GC(seq string) (float64, error) {
	if len(seq) == 0 {
		return 0, ErrEmptySequence
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		switch upper(seq[i]) {
		case 'G', 'C', 'S':
			gc++
		}
	}
	return 100 * float64(gc) / float64(len(seq)), nil
}

// Counts tallies nucleotides in seq. Letters outside A/C/G/T/U are
// accumulated under 'N'.
func Counts(seq string) map[byte]int {
	counts := make(map[byte]int)
	for i := 0; i < len(seq); i++ {
		switch b := upper(seq[i]); b {
		case 'A', 'C', 'G', 'T', 'U':
			counts[b]++
		default:
			counts['N']++
		}
	}
	return counts
}

// Complement returns the IUPAC complement of seq (same orientation).
func Complement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := complement[upper(seq[i])]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[upper(seq[n-1-i])]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// Transcribe converts a DNA coding strand to the mRNA it encodes (T -> U).
func Transcribe(seq string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'T':
			return 'U'
		case 't':
			return 'u'
		}
		return r
	}, seq)
}

// BackTranscribe converts RNA back to its DNA coding strand (U -> T).
func BackTranscribe(seq string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'U':
			return 'T'
		case 'u':
			return 't'
		}
		return r
	}, seq)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

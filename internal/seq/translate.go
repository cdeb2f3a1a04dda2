package seq

// Standard genetic code, indexed by DNA codon.
var standardCode = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// Translate translates a DNA or RNA sequence with the standard codon
// table, stopping at the first stop codon. The trailing partial codon, if
// any, is ignored. Codons containing unknown letters translate to 'X'.
func Translate(seq string) (string, error) {
	return translate(seq, true)
}

// TranslateFull translates the whole sequence without stopping at stop
// codons; stops are rendered as '*'.
func TranslateFull(seq string) (string, error) {
	return translate(seq, false)
}

func translate(seq string, toStop bool) (string, error) {
	if len(seq) == 0 {
		return "", ErrEmptySequence
	}
	norm := make([]byte, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		b := upper(seq[i])
		if b == 'U' {
			b = 'T'
		}
		norm = append(norm, b)
	}
	out := make([]byte, 0, len(norm)/3)
	for i := 0; i+3 <= len(norm); i += 3 {
		aa, ok := standardCode[string(norm[i:i+3])]
		if !ok {
			aa = 'X'
		}
		if aa == '*' && toStop {
			break
		}
		out = append(out, aa)
	}
	return string(out), nil
}

package seq

import "github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"

// RecordStat is the per-record row of a stats report.
type RecordStat struct {
	ID     string  `json:"id"`
	Length int     `json:"length"`
	GC     float64 `json:"gc"`
}

// Aggregate summarizes a whole record set.
type Aggregate struct {
	Records   int     `json:"records"`
	TotalLen  int     `json:"total_length"`
	MinLen    int     `json:"min_length"`
	MaxLen    int     `json:"max_length"`
	MeanLen   float64 `json:"mean_length"`
	MeanGC    float64 `json:"mean_gc"`
	EmptySeqs int     `json:"empty_sequences"`
}

// Stats computes per-record length and GC for every record in set, plus an
// aggregate. Records with empty sequences are counted but excluded from
// the GC mean.
func Stats(set *fasta.Set) ([]RecordStat, Aggregate) {
	stats := make([]RecordStat, 0, set.Len())
	var agg Aggregate
	gcSum := 0.0
	gcN := 0
	for i, rec := range set.Records {
		st := RecordStat{ID: rec.ID, Length: rec.Len()}
		if gc, err := GC(rec.Sequence); err == nil {
			st.GC = gc
			gcSum += gc
			gcN++
		} else {
			agg.EmptySeqs++
		}
		stats = append(stats, st)

		agg.TotalLen += st.Length
		if i == 0 || st.Length < agg.MinLen {
			agg.MinLen = st.Length
		}
		if st.Length > agg.MaxLen {
			agg.MaxLen = st.Length
		}
	}
	agg.Records = set.Len()
	if agg.Records > 0 {
		agg.MeanLen = float64(agg.TotalLen) / float64(agg.Records)
	}
	if gcN > 0 {
		agg.MeanGC = gcSum / float64(gcN)
	}
	return stats, agg
}

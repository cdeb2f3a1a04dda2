// Package plot renders the workshop's plotting lessons as terminal
// charts: labeled horizontal bars and binned histograms, styled with
// lipgloss.
package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/seq"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
)

const barRune = "█"

// Bar renders one horizontal bar per label. Values scale to width
// characters; negative values are clamped to zero.
func Bar(labels []string, values []float64, width int) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}
	if width <= 0 {
		width = 40
	}
	maxVal := 0.0
	maxLabel := 0
	for i, v := range values {
		if v > maxVal {
			maxVal = v
		}
		if len(labels[i]) > maxLabel {
			maxLabel = len(labels[i])
		}
	}
	var b strings.Builder
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		n := 0
		if maxVal > 0 {
			n = int(math.Round(v / maxVal * float64(width)))
		}
		label := fmt.Sprintf("%-*s", maxLabel, labels[i])
		b.WriteString(labelStyle.Render(label))
		b.WriteString(axisStyle.Render(" │ "))
		b.WriteString(barStyle.Render(strings.Repeat(barRune, n)))
		b.WriteString(fmt.Sprintf(" %.1f\n", values[i]))
	}
	return b.String()
}

// Histogram bins values into bins equal-width buckets and renders them as
// a bar chart. The label of each bucket is its half-open range.
func Histogram(values []float64, bins, width int) string {
	if len(values) == 0 {
		return labelStyle.Render("no values to plot") + "\n"
	}
	if bins <= 0 {
		bins = 10
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		// single-point distribution collapses to one bucket
		return Bar([]string{fmt.Sprintf("%.1f", lo)}, []float64{float64(len(values))}, width)
	}
	step := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	labels := make([]string, bins)
	for _, v := range values {
		i := int((v - lo) / step)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	for i := range labels {
		labels[i] = fmt.Sprintf("[%6.1f, %6.1f)", lo+float64(i)*step, lo+float64(i+1)*step)
	}
	return Bar(labels, counts, width)
}

// GCPlot renders per-record GC content for every record in set. Records
// with empty sequences are skipped.
func GCPlot(set *fasta.Set, width int) string {
	var labels []string
	var values []float64
	for _, rec := range set.Records {
		gc, err := seq.GC(rec.Sequence)
		if err != nil {
			continue
		}
		labels = append(labels, rec.ID)
		values = append(values, gc)
	}
	if len(labels) == 0 {
		return labelStyle.Render("no sequences to plot") + "\n"
	}
	return Bar(labels, values, width)
}

// Package report renders campaign statistics for humans and machines.
//
// The text report prints the total population, per-category counts, and a
// capped sample of citizens per category. Counts go through an x/text
// message printer so large populations render with locale-aware digit
// grouping. The Summary struct doubles as the machine-readable payload
// for JSON output.
package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/vaxsim/internal/stats"
)

// DefaultSampleSize caps the per-category example listing.
const DefaultSampleSize = 5

// CitizenLine is one sampled citizen in a category listing.
type CitizenLine struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CategorySummary is the reported view of one category.
type CategorySummary struct {
	Label  string        `json:"label"`
	Count  int           `json:"count"`
	Sample []CitizenLine `json:"sample,omitempty"`
}

// Summary is the full report payload for one run.
type Summary struct {
	Total      int               `json:"total"`
	Categories []CategorySummary `json:"categories"`
}

// Summarize reduces partitioned categories to a report summary, sampling
// at most sampleSize citizens per category. A sampleSize < 0 falls back
// to DefaultSampleSize; 0 omits samples entirely.
func Summarize(categories []stats.Category, sampleSize int) Summary {
	if sampleSize < 0 {
		sampleSize = DefaultSampleSize
	}

	s := Summary{Categories: make([]CategorySummary, 0, len(categories))}
	for _, cat := range categories {
		cs := CategorySummary{Label: cat.Label, Count: len(cat.Citizens)}
		for i, c := range cat.Citizens {
			if i >= sampleSize {
				break
			}
			cs.Sample = append(cs.Sample, CitizenLine{
				ID:     c.ID,
				Name:   c.Name,
				Status: c.Status(),
			})
		}
		s.Total += cs.Count
		s.Categories = append(s.Categories, cs)
	}
	return s
}

// WriteText renders the summary as the human-readable console report.
func WriteText(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Population: %d\n", s.Total)
	fmt.Fprintln(w)
	for _, cat := range s.Categories {
		p.Fprintf(w, "%s: %d\n", cat.Label, cat.Count)
	}

	for _, cat := range s.Categories {
		p.Fprintf(w, "\n== %s (%d) ==\n", cat.Label, cat.Count)
		if cat.Count == 0 {
			fmt.Fprintln(w, "  no citizens in this category")
			continue
		}
		for _, line := range cat.Sample {
			fmt.Fprintf(w, "  %d, %s, %s\n", line.ID, line.Name, line.Status)
		}
		if rest := cat.Count - len(cat.Sample); rest > 0 {
			p.Fprintf(w, "  ... and %d more\n", rest)
		}
	}
}

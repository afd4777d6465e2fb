// Package stats provides statistics collection and reporting for an
// anonymization session: per-column cell counts, weak-uniqueness
// warnings, and vault mapping totals, rendered as a box-drawing report.
package stats

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ColumnStats holds statistics for a single processed column.
type ColumnStats struct {
	Column            string
	DataType          string
	CellsProcessed    int64
	CellsSkipped      int64
	CollisionWarnings int64
	Duration          time.Duration
}

// Stats holds overall anonymization statistics for one session.
type Stats struct {
	Columns         []ColumnStats
	TotalCells      int64
	TotalSkipped    int64
	TotalCollisions int64
	TotalDuration   time.Duration
	VaultMappings   int
}

// Collector collects statistics during processing.
type Collector struct {
	mu      sync.Mutex
	columns []ColumnStats
}

// NewCollector creates a new statistics collector.
func NewCollector() *Collector {
	return &Collector{columns: make([]ColumnStats, 0)}
}

// RecordColumn records statistics for a processed column.
func (c *Collector) RecordColumn(stats ColumnStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.columns = append(c.columns, stats)
}

// Finalize calculates totals and returns final statistics.
// vaultMappings is the total mapping count reported by the vault, 0
// when the session ran without one (e.g. HMAC mode).
func (c *Collector) Finalize(totalDuration time.Duration, vaultMappings int) *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := &Stats{
		Columns:       c.columns,
		TotalDuration: totalDuration,
		VaultMappings: vaultMappings,
	}

	for _, col := range c.columns {
		stats.TotalCells += col.CellsProcessed
		stats.TotalSkipped += col.CellsSkipped
		stats.TotalCollisions += col.CollisionWarnings
	}

	return stats
}

// Reporter formats and displays statistics.
type Reporter struct{}

// NewReporter creates a new statistics reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report generates a formatted report of the statistics.
func (r *Reporter) Report(stats *Stats, w io.Writer) {
	colWidth := 20
	for _, col := range stats.Columns {
		if len(col.Column) > colWidth {
			colWidth = len(col.Column)
		}
	}
	if len("TOTAL") > colWidth {
		colWidth = len("TOTAL")
	}

	const numWidth = 10

	innerWidth := 1 + colWidth + 3 + numWidth + 3 + numWidth + 3 + numWidth + 1

	topBorder := "╔" + strings.Repeat("═", innerWidth) + "╗"
	midBorder := "╠" + strings.Repeat("═", innerWidth) + "╣"
	botBorder := "╚" + strings.Repeat("═", innerWidth) + "╝"
	rowSep := "╟" + strings.Repeat("─", colWidth+2) + "┼" +
		strings.Repeat("─", numWidth+2) + "┼" +
		strings.Repeat("─", numWidth+2) + "┼" +
		strings.Repeat("─", numWidth+2) + "╢"

	title := "Anonymization Summary"
	padding := innerWidth - len(title)
	leftPad := padding / 2
	rightPad := padding - leftPad
	titleLine := "║" + strings.Repeat(" ", leftPad) + title +
		strings.Repeat(" ", rightPad) + "║"

	fmt.Fprintln(w)
	fmt.Fprintln(w, topBorder)
	fmt.Fprintln(w, titleLine)
	fmt.Fprintln(w, midBorder)

	fmt.Fprintf(w, "║ %-*s │ %*s │ %*s │ %*s ║\n",
		colWidth, "Column", numWidth, "Cells", numWidth, "Skipped", numWidth, "Weak Uniq")
	fmt.Fprintln(w, rowSep)

	for _, col := range stats.Columns {
		fmt.Fprintf(w, "║ %-*s │ %*d │ %*d │ %*d ║\n",
			colWidth, col.Column,
			numWidth, col.CellsProcessed,
			numWidth, col.CellsSkipped,
			numWidth, col.CollisionWarnings)
	}

	fmt.Fprintln(w, rowSep)
	fmt.Fprintf(w, "║ %-*s │ %*d │ %*d │ %*d ║\n",
		colWidth, "TOTAL",
		numWidth, stats.TotalCells,
		numWidth, stats.TotalSkipped,
		numWidth, stats.TotalCollisions)

	fmt.Fprintln(w, botBorder)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Columns processed: %d\n", len(stats.Columns))
	fmt.Fprintf(w, "Vault mappings recorded: %d\n", stats.VaultMappings)
	fmt.Fprintf(w, "Total duration: %s\n", formatDuration(stats.TotalDuration))
}

// String returns a string representation of the statistics.
func (r *Reporter) String(stats *Stats) string {
	var sb strings.Builder
	r.Report(stats, &sb)
	return sb.String()
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

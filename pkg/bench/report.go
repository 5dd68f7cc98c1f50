package bench

import (
	"fmt"
	"io"
	"strings"
)

const tableWidth = 108

// WriteTable renders results as the fixed-width console comparison
// table. Spawn and join columns apply only to the spawn-per-call
// strategies and show a dash elsewhere.
func WriteTable(w io.Writer, results []Result) {
	fmt.Fprintf(w, "%-20s%-14s%-22s%-20s%-12s%-12s%-8s\n",
		"Method", "Memory Order", "Sum", "Time (ms)", "Spawn (ms)", "Join (ms)", "Speedup")
	fmt.Fprintln(w, strings.Repeat("-", tableWidth))

	for _, r := range results {
		order := r.MemoryOrder
		if order == "" {
			order = "N/A"
		}
		elapsed := fmt.Sprintf("%.3f", r.Millis)
		if r.StdDevMillis > 0 {
			elapsed = fmt.Sprintf("%.3f ±%.3f", r.Millis, r.StdDevMillis)
		}
		spawn, join := "-", "-"
		if r.SpawnMillis != 0 || r.JoinMillis != 0 {
			spawn = fmt.Sprintf("%.3f", r.SpawnMillis)
			join = fmt.Sprintf("%.3f", r.JoinMillis)
		}
		fmt.Fprintf(w, "%-20s%-14s%-22d%-20s%-12s%-12s%-8s\n",
			r.Method, order, r.Sum, elapsed, spawn, join,
			fmt.Sprintf("%.2fx", r.Speedup))
	}
}

// Package palette assigns display colors to trips by rank.
package palette

// colors is a fixed 20-entry qualitative palette. Adjacent entries
// contrast well, which matters because adjacent ranks are adjacent in
// time and often overlap on the map.
var colors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#aec7e8", "#ffbb78", "#98df8a", "#ff9896", "#c5b0d5",
	"#c49c94", "#f7b6d2", "#c7c7c7", "#dbdb8d", "#9edae5",
}

// Color returns the hex color for a trip's 0-based rank. Ranks beyond
// the palette wrap around; the assignment is deterministic.
func Color(rank int) string {
	if rank < 0 {
		rank = 0
	}
	return colors[rank%len(colors)]
}

// Size returns the number of distinct colors before wrapping.
func Size() int {
	return len(colors)
}

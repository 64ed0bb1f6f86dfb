package termcore

import "golang.org/x/exp/slices"

// tabStops is the set of horizontal tab stop columns, kept sorted.
type tabStops struct {
	cols []int
	// width is the extent that has been initialised with default stops
	width int
}

const defaultTabInterval = 8

func newTabStops(width int) *tabStops {
	ts := &tabStops{width: width}
	for col := defaultTabInterval; col < width; col += defaultTabInterval {
		ts.cols = append(ts.cols, col)
	}
	return ts
}

// set adds a stop at col (HTS).
func (ts *tabStops) set(col int) {
	i, found := slices.BinarySearch(ts.cols, col)
	if found {
		return
	}
	ts.cols = slices.Insert(ts.cols, i, col)
}

// clear removes the stop at col (TBC 0).
func (ts *tabStops) clear(col int) {
	i, found := slices.BinarySearch(ts.cols, col)
	if found {
		ts.cols = slices.Delete(ts.cols, i, i+1)
	}
}

// clearAll removes every stop (TBC 3).
func (ts *tabStops) clearAll() {
	ts.cols = ts.cols[:0]
}

// reset restores default stops every 8 columns (DECST8C).
func (ts *tabStops) reset() {
	ts.cols = ts.cols[:0]
	for col := defaultTabInterval; col < ts.width; col += defaultTabInterval {
		ts.cols = append(ts.cols, col)
	}
}

// next returns the first stop after col, or limit-1.
func (ts *tabStops) next(col, limit int) int {
	for _, c := range ts.cols {
		if c > col && c < limit {
			return c
		}
	}
	if limit > 0 {
		return limit - 1
	}
	return col
}

// prev returns the last stop before col, or 0.
func (ts *tabStops) prev(col int) int {
	for i := len(ts.cols) - 1; i >= 0; i-- {
		if ts.cols[i] < col {
			return ts.cols[i]
		}
	}
	return 0
}

// resize keeps existing stops and extends defaults into newly added
// columns: columns beyond the old width get a stop every 8 as if never
// configured.
func (ts *tabStops) resize(width int) {
	if width <= ts.width {
		for len(ts.cols) > 0 && ts.cols[len(ts.cols)-1] >= width {
			ts.cols = ts.cols[:len(ts.cols)-1]
		}
		ts.width = width
		return
	}
	start := (ts.width + defaultTabInterval - 1) / defaultTabInterval * defaultTabInterval
	if start < defaultTabInterval {
		start = defaultTabInterval
	}
	for col := start; col < width; col += defaultTabInterval {
		ts.set(col)
	}
	ts.width = width
}

package termcore

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Character is a single extended-grapheme-cluster. It also contains the
// width of the EGC
type Character struct {
	Grapheme string
	Width    int
}

// WidthMethod selects how grapheme display width is measured. Hosts pick
// the method matching the renderer's font pipeline.
type WidthMethod int

const (
	// WidthWcwidth sums legacy wcwidth values, skipping variation
	// selectors
	WidthWcwidth WidthMethod = iota
	// WidthNoZWJ measures per Unicode but ignores zero-width joiners
	WidthNoZWJ
	// WidthUnicode measures per the Unicode standard
	WidthUnicode
)

// Measure returns the display width of a grapheme under the method.
func (m WidthMethod) Measure(s string) int {
	switch m {
	case WidthNoZWJ:
		s = strings.ReplaceAll(s, "\u200D", "")
		return uniseg.StringWidth(s)
	case WidthUnicode:
		return uniseg.StringWidth(s)
	default:
		total := 0
		for _, r := range s {
			if r >= 0xFE00 && r <= 0xFE0F {
				// Variation Selectors 1 - 16
				continue
			}
			if r >= 0xE0100 && r <= 0xE01EF {
				// Variation Selectors 17-256
				continue
			}
			total += runewidth.RuneWidth(r)
		}
		return total
	}
}

// Characters converts a string into a slice of Characters suitable to
// assign to terminal cells
func Characters(s string, method WidthMethod) []Character {
	egcs := make([]Character, 0, len(s))
	state := -1
	cluster := ""
	for s != "" {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		egcs = append(egcs, Character{cluster, method.Measure(cluster)})
	}
	return egcs
}

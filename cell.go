package termcore

// Cell is the smallest unit of the grid. A wide character occupies two
// cells: the first carries the cluster with Width 2, the next is a spacer
// with Width 0 referring back to it. The pair is written and erased
// atomically.
type Cell struct {
	Character
	Style Style
	// Link is the interned hyperlink id, or 0
	Link HyperlinkID
	// spacer marks the right half of a wide cell
	spacer bool
}

// rune returns the displayable content, substituting a space for an
// empty cell
func (c *Cell) rune() string {
	if c.Grapheme == "" {
		return " "
	}
	return c.Grapheme
}

// Erasing removes characters from the screen without affecting other
// characters on the screen. Erased characters are lost. Erasing resets
// the attributes, but applies the background color of the passed style
func (c *Cell) erase(fill Style) {
	c.Grapheme = ""
	c.Width = 1
	c.Style = fill
	c.Link = 0
	c.spacer = false
}

func (c *Cell) empty() bool {
	return c.Grapheme == "" || c.Grapheme == " "
}

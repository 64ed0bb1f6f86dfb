package termcore

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/mattn/go-sixel"

	"git.sr.ht/~mglyn/termcore/ansi"
	"git.sr.ht/~mglyn/termcore/log"
)

// dcs executes a device-control string.
func (t *Terminal) dcs(seq ansi.Sequence) {
	switch {
	case seq.Final == 'q' && seq.Intermediate() == '$':
		t.decrqss(string(seq.Data))
	case seq.Final == 'q' && seq.Intermediate() == 0 && seq.Leader == 0:
		t.sixel(seq)
	case seq.Final == 'p':
		// ReGIS is not implemented; the payload is absorbed
		log.Debug("ignoring ReGIS data (%d bytes)", len(seq.Data))
	default:
		t.unknown.Warn(seq.String(), "unhandled sequence: %s", seq)
	}
}

// decrqss answers a request-status-string query. Valid requests respond
// DCS 1 $ r, invalid ones DCS 0 $ r.
func (t *Terminal) decrqss(setting string) {
	switch setting {
	case "m":
		t.reply("\x1bP1$r%sm\x1b\\", strings.Join(t.active.cursor.style.sgrParams(), ";"))
	case "r":
		t.reply("\x1bP1$r%d;%dr\x1b\\", t.active.margins.top+1, t.active.margins.bottom+1)
	case "s":
		t.reply("\x1bP1$r%d;%ds\x1b\\", t.active.leftMargin()+1, t.active.rightMargin()+1)
	case " q":
		t.reply("\x1bP1$r%d q\x1b\\", int(t.cursorVis.style))
	default:
		t.reply("\x1bP0$r\x1b\\")
	}
}

// sixel decodes a DCS q image payload and anchors the placement at the
// cursor. The image scrolls with its anchor line.
func (t *Terminal) sixel(seq ansi.Sequence) {
	if len(seq.Data) == 0 {
		return
	}
	// the decoder wants the full wire form back
	var raw bytes.Buffer
	raw.WriteString("\x1bP")
	for i, p := range seq.Params {
		if i > 0 {
			raw.WriteByte(';')
		}
		fmt.Fprintf(&raw, "%d", p.Value)
	}
	raw.WriteByte('q')
	raw.Write(seq.Data)
	raw.WriteString("\x1b\\")

	var img image.Image
	if err := sixel.NewDecoder(&raw).Decode(&img); err != nil {
		log.Warn("sixel decode failed: %v", err)
		return
	}

	s := t.active
	bounds := img.Bounds()
	cellW, cellH := t.size.CellPixels()
	cols, rows := cellExtent(bounds.Dx(), bounds.Dy(), cellW, cellH)
	if cols > s.cols()-s.cursor.col {
		cols = s.cols() - s.cursor.col
	}

	t.images = append(t.images, placement{
		absLine: s.grid.absolute(s.cursor.row),
		col:     s.cursor.col,
		rows:    rows,
		cols:    cols,
		img:     normalizeImage(img),
	})
	t.pruneImages()

	// the cursor lands on the row below the image
	for i := 0; i < rows; i++ {
		s.index()
	}
	s.carriageReturn()
}

// pruneImages drops placements whose anchor line left history, and caps
// the placement count.
func (t *Terminal) pruneImages() {
	const maxPlacements = 64
	s := t.active
	kept := t.images[:0]
	for _, p := range t.images {
		if _, ok := s.grid.offsetOf(p.absLine); !ok {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) > maxPlacements {
		kept = kept[len(kept)-maxPlacements:]
	}
	t.images = kept
}

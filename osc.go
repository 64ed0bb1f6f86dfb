package termcore

import (
	"encoding/base64"
	"strconv"
	"strings"

	"git.sr.ht/~mglyn/termcore/ansi"
	"git.sr.ht/~mglyn/termcore/log"
)

// osc executes an operating-system-command sequence.
func (t *Terminal) osc(seq ansi.Sequence) {
	data := string(seq.Data)
	selector, val, found := strings.Cut(data, ";")
	if !found {
		// OSC 104 with no argument resets the whole palette
		if data == "104" {
			t.palette = make(map[int]Color)
			return
		}
		return
	}
	switch selector {
	case "0":
		t.title = val
		t.iconName = val
		t.postEvent(EventTitle(val))
		t.postEvent(EventIconName(val))
	case "1":
		t.iconName = val
		t.postEvent(EventIconName(val))
	case "2":
		t.title = val
		t.postEvent(EventTitle(val))
	case "4":
		t.oscPalette(val)
	case "7":
		t.postEvent(EventWorkingDirectory(val))
	case "8":
		if t.OSC8 {
			t.oscHyperlink(val)
		}
	case "9":
		t.postEvent(EventNotify{Body: val})
	case "10":
		t.oscDynamicColor(&t.foreground, 10, val)
	case "11":
		t.oscDynamicColor(&t.background, 11, val)
	case "12":
		t.oscDynamicColor(&t.cursorFg, 12, val)
	case "22":
		t.postEvent(EventMouseShape(val))
	case "52":
		_, payload, ok := strings.Cut(val, ";")
		if !ok {
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			log.Error("error decoding OSC 52 payload")
			return
		}
		t.postEvent(EventClipboard(string(decoded)))
	case "104":
		for _, idx := range strings.Split(val, ";") {
			if n, err := strconv.Atoi(idx); err == nil {
				delete(t.palette, n)
			}
		}
	case "110":
		t.foreground = 0
	case "111":
		t.background = 0
	case "112":
		t.cursorFg = 0
	case "777":
		selector, val, found := strings.Cut(val, ";")
		if !found {
			return
		}
		if selector == "notify" {
			title, body, found := strings.Cut(val, ";")
			if !found {
				return
			}
			t.postEvent(EventNotify{Title: title, Body: body})
		}
	default:
		t.unknown.Warn("osc:"+selector, "unhandled sequence: %s", seq)
	}
}

// oscHyperlink parses an OSC 8 payload: params ; URI, with params of the
// form key1=value1:key2=value2. An empty URI closes the link.
func (t *Terminal) oscHyperlink(val string) {
	params, uri, found := strings.Cut(val, ";")
	if !found {
		return
	}
	s := t.active
	t.links.decref(s.cursor.link)
	if uri == "" {
		s.cursor.link = 0
		return
	}
	var id string
	for _, param := range strings.Split(params, ":") {
		key, v, ok := strings.Cut(param, "=")
		if !ok {
			continue
		}
		if key == "id" {
			id = v
		}
	}
	// the cursor holds one reference while the link is open
	s.cursor.link = t.links.intern(Hyperlink{URI: uri, Id: id})
	t.links.incref(s.cursor.link)
}

// oscPalette handles OSC 4: pairs of "index;spec", where spec "?" is a
// query.
func (t *Terminal) oscPalette(val string) {
	parts := strings.Split(val, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		spec := parts[i+1]
		if spec == "?" {
			c, ok := t.palette[idx]
			if !ok {
				c = IndexColor(uint8(idx))
			}
			t.reply("\x1b]4;%d;%s\x07", idx, c.SpecString())
			continue
		}
		if c, ok := ParseColorSpec(spec); ok {
			t.palette[idx] = c
		}
	}
}

// oscDynamicColor handles OSC 10/11/12 set and query.
func (t *Terminal) oscDynamicColor(target *Color, code int, val string) {
	if val == "?" {
		t.reply("\x1b]%d;%s\x07", code, target.SpecString())
		return
	}
	if c, ok := ParseColorSpec(val); ok {
		*target = c
	}
}

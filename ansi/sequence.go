package ansi

import (
	"strconv"
	"strings"
	"sync"
)

// scratchPool recycles string-payload scratch buffers. A Builder holds
// one for its lifetime; Close returns it.
var scratchPool = sync.Pool{
	New: func() any { return make([]byte, 0, 256) },
}

// DefaultMaxOscLength bounds OSC and DCS payload accumulation. Overflow is
// silently truncated; the sequence still dispatches with truncated data.
const DefaultMaxOscLength = 8192

const maxIntermediateCount = 4

// Sequence is one decoded control function: category, optional private
// leader, intermediates, parameters with sub-parameters, final byte, and
// the string payload for OSC and DCS.
type Sequence struct {
	Category      Category
	Leader        byte
	Intermediates []byte
	Params        []Param
	Final         byte
	Data          []byte
}

// Param returns the i-th parameter, or def when it is absent or zero.
func (s Sequence) Param(i, def int) int {
	if i >= len(s.Params) || s.Params[i].Value == 0 {
		return def
	}
	return s.Params[i].Value
}

// ParamOrZero returns the i-th parameter with absent treated as zero,
// for control functions whose default is 0 rather than 1.
func (s Sequence) ParamOrZero(i int) int {
	if i >= len(s.Params) {
		return 0
	}
	return s.Params[i].Value
}

// Sub returns the j-th sub-parameter of parameter i, or def.
func (s Sequence) Sub(i, j, def int) int {
	if i >= len(s.Params) || j >= len(s.Params[i].Sub) {
		return def
	}
	return s.Params[i].Sub[j]
}

// Intermediate returns the sole intermediate byte, or 0.
func (s Sequence) Intermediate() byte {
	if len(s.Intermediates) == 0 {
		return 0
	}
	return s.Intermediates[0]
}

// String renders the sequence in a loggable, wire-like form.
func (s Sequence) String() string {
	var b strings.Builder
	switch s.Category {
	case C0:
		b.WriteString("C0 ")
		b.WriteString(strconv.Itoa(int(s.Final)))
		return b.String()
	case Esc:
		b.WriteString("ESC ")
	case Csi:
		b.WriteString("CSI ")
	case Osc:
		b.WriteString("OSC ")
		if len(s.Data) > 64 {
			b.Write(s.Data[:64])
			b.WriteString("…")
		} else {
			b.Write(s.Data)
		}
		return b.String()
	case Dcs:
		b.WriteString("DCS ")
	}
	if s.Leader != 0 {
		b.WriteByte(s.Leader)
		b.WriteByte(' ')
	}
	for i, p := range s.Params {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(p.Value))
		for _, sub := range p.Sub {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(sub))
		}
	}
	if len(s.Params) > 0 {
		b.WriteByte(' ')
	}
	for _, im := range s.Intermediates {
		b.WriteByte(im)
		b.WriteByte(' ')
	}
	b.WriteByte(s.Final)
	if s.Category == Dcs && len(s.Data) > 0 {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(len(s.Data)))
		b.WriteString(" bytes)")
	}
	return b.String()
}

// Handler consumes the decoded stream: printable graphemes, C0 controls,
// and fully built control sequences.
type Handler interface {
	Print(r rune)
	Execute(b byte)
	Dispatch(seq Sequence)
}

// Builder accumulates parser events into Sequence values and forwards
// them to a Handler. It implements Observer.
type Builder struct {
	h Handler

	// MaxStringLength bounds OSC/DCS payloads; zero means
	// DefaultMaxOscLength
	MaxStringLength int

	pb            paramBuilder
	leader        byte
	intermediates []byte
	data          []byte
	hooked        bool
	dcsFinal      byte
}

func NewBuilder(h Handler) *Builder {
	return &Builder{
		h:    h,
		data: scratchPool.Get().([]byte)[:0],
	}
}

// Close releases the Builder's scratch buffer back to the pool. Only
// hosts that churn through short-lived Builders need to call it.
func (bl *Builder) Close() {
	if bl.data != nil {
		scratchPool.Put(bl.data[:0])
		bl.data = nil
	}
}

func (bl *Builder) maxString() int {
	if bl.MaxStringLength > 0 {
		return bl.MaxStringLength
	}
	return DefaultMaxOscLength
}

func (bl *Builder) Print(r rune)   { bl.h.Print(r) }
func (bl *Builder) Execute(b byte) { bl.h.Execute(b) }

func (bl *Builder) Clear() {
	bl.pb.reset()
	bl.leader = 0
	bl.intermediates = bl.intermediates[:0]
	bl.hooked = false
}

func (bl *Builder) Cancel() {
	bl.Clear()
	bl.data = bl.data[:0]
}

func (bl *Builder) Collect(b byte) {
	if b >= 0x3c && b <= 0x3f {
		if bl.leader == 0 {
			bl.leader = b
		}
		return
	}
	if len(bl.intermediates) < maxIntermediateCount {
		bl.intermediates = append(bl.intermediates, b)
	}
}

func (bl *Builder) Param(b byte) { bl.pb.feed(b) }

func (bl *Builder) EscDispatch(final byte) {
	bl.h.Dispatch(Sequence{
		Category:      Esc,
		Intermediates: bl.copyIntermediates(),
		Final:         final,
	})
}

func (bl *Builder) CsiDispatch(final byte) {
	bl.h.Dispatch(Sequence{
		Category:      Csi,
		Leader:        bl.leader,
		Intermediates: bl.copyIntermediates(),
		Params:        bl.pb.fixate(),
		Final:         final,
	})
}

func (bl *Builder) Hook(final byte) {
	bl.hooked = true
	bl.dcsFinal = final
	bl.data = bl.data[:0]
}

func (bl *Builder) Put(b byte) {
	if len(bl.data) < bl.maxString() {
		bl.data = append(bl.data, b)
	}
}

func (bl *Builder) Unhook() {
	if !bl.hooked {
		return
	}
	bl.hooked = false
	bl.h.Dispatch(Sequence{
		Category:      Dcs,
		Leader:        bl.leader,
		Intermediates: bl.copyIntermediates(),
		Params:        bl.pb.fixate(),
		Final:         bl.dcsFinal,
		Data:          bl.copyData(),
	})
}

func (bl *Builder) OscStart() {
	bl.data = bl.data[:0]
}

func (bl *Builder) OscPut(b byte) {
	if len(bl.data) < bl.maxString() {
		bl.data = append(bl.data, b)
	}
}

func (bl *Builder) OscEnd() {
	bl.h.Dispatch(Sequence{
		Category: Osc,
		Data:     bl.copyData(),
	})
}

func (bl *Builder) copyIntermediates() []byte {
	if len(bl.intermediates) == 0 {
		return nil
	}
	out := make([]byte, len(bl.intermediates))
	copy(out, bl.intermediates)
	return out
}

func (bl *Builder) copyData() []byte {
	out := make([]byte, len(bl.data))
	copy(out, bl.data)
	bl.data = bl.data[:0]
	return out
}

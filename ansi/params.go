package ansi

const (
	// maxParameterCount bounds the number of top-level parameters kept
	// for one sequence. Further parameters are parsed and discarded.
	maxParameterCount = 32
	// maxSubParameterCount bounds sub-parameters per parameter
	maxSubParameterCount = 8
	// maxParameterValue clamps any single decimal parameter
	maxParameterValue = 65535
)

// Param is one sequence parameter with its colon-separated sub-parameters.
// SGR 38:2::10:20:30 keeps position information that 38;2;10;20;30 does
// not: the former is a single Param with Sub = [2, 0, 10, 20, 30].
type Param struct {
	Value int
	Sub   []int
}

// paramBuilder accumulates parameter bytes. Empty parameters fixate to 0;
// interpretation of 0 as a per-sequence default happens at dispatch.
type paramBuilder struct {
	params []Param
	cur    Param
	inSub  bool
	subCur int
	any    bool
}

func (pb *paramBuilder) reset() {
	pb.params = pb.params[:0]
	pb.cur = Param{}
	pb.inSub = false
	pb.subCur = 0
	pb.any = false
}

func (pb *paramBuilder) multiplyBy10AndAdd(d int) {
	pb.any = true
	if pb.inSub {
		pb.subCur = clampParam(pb.subCur*10 + d)
		return
	}
	pb.cur.Value = clampParam(pb.cur.Value*10 + d)
}

func (pb *paramBuilder) nextParameter() {
	pb.any = true
	pb.closeSub()
	if len(pb.params) < maxParameterCount {
		pb.params = append(pb.params, pb.cur)
	}
	pb.cur = Param{}
}

func (pb *paramBuilder) nextSubParameter() {
	pb.any = true
	pb.closeSub()
	pb.inSub = true
}

func (pb *paramBuilder) closeSub() {
	if !pb.inSub {
		return
	}
	if len(pb.cur.Sub) < maxSubParameterCount {
		pb.cur.Sub = append(pb.cur.Sub, pb.subCur)
	}
	pb.subCur = 0
	pb.inSub = false
}

// fixate closes the parameter under construction and returns the full
// list. A sequence with no parameter bytes at all fixates to nil.
func (pb *paramBuilder) fixate() []Param {
	if !pb.any {
		return nil
	}
	pb.closeSub()
	if len(pb.params) < maxParameterCount {
		pb.params = append(pb.params, pb.cur)
	}
	out := make([]Param, len(pb.params))
	copy(out, pb.params)
	return out
}

func (pb *paramBuilder) feed(b byte) {
	switch {
	case b >= '0' && b <= '9':
		pb.multiplyBy10AndAdd(int(b - '0'))
	case b == ';':
		pb.nextParameter()
	case b == ':':
		pb.nextSubParameter()
	}
}

func clampParam(v int) int {
	if v > maxParameterValue {
		return maxParameterValue
	}
	return v
}

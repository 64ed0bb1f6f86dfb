package termcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorTagging(t *testing.T) {
	assert.True(t, Color(0).IsDefault())
	assert.False(t, IndexColor(3).IsDefault())
	assert.False(t, RGBColor(1, 2, 3).IsDefault())
	assert.True(t, IndexColor(0).IsIndexed())

	r, g, b := RGBColor(10, 20, 30).RGB()
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), b)
}

func TestColorParams(t *testing.T) {
	assert.Empty(t, Color(0).Params())
	assert.Equal(t, []uint8{7}, IndexColor(7).Params())
	assert.Equal(t, []uint8{1, 2, 3}, RGBColor(1, 2, 3).Params())
}

func TestParseColorSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Color
		ok   bool
	}{
		{"two digit rgb", "rgb:33/66/99", RGBColor(0x33, 0x66, 0x99), true},
		{"four digit rgb", "rgb:3333/6666/9999", RGBColor(0x33, 0x66, 0x99), true},
		{"one digit rgb", "rgb:f/0/f", RGBColor(0xff, 0, 0xff), true},
		{"hex", "#336699", RGBColor(0x33, 0x66, 0x99), true},
		{"garbage", "notacolor", 0, false},
		{"short rgb", "rgb:12/34", 0, false},
		{"bad hex digits", "rgb:zz/00/00", 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := ParseColorSpec(test.spec)
			assert.Equal(t, test.ok, ok)
			if test.ok {
				assert.Equal(t, test.want, got)
			}
		})
	}
}

func TestColorSpecString(t *testing.T) {
	assert.Equal(t, "rgb:3333/6666/9999", RGBColor(0x33, 0x66, 0x99).SpecString())
}

package graph

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/pitch"
)

// Palette maps a class name to its color.
type Palette map[string]color.NRGBA

var gray = color.NRGBA{0x80, 0x80, 0x80, 0xff}

func hex(v uint32) color.NRGBA {
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// DefaultPalette returns the stock accent colors.
func DefaultPalette() Palette {
	return Palette{
		pitch.RoleHeiban.String():            hex(0x005CE6),
		pitch.RoleAtamadaka.String():         hex(0xE60000),
		pitch.RoleNakadaka.String():          hex(0xE68A00),
		pitch.RoleOdaka.String():             hex(0x00802B),
		pitch.RoleKifuku.String():            hex(0xAC00E6),
		pitch.RoleBlack.String():             hex(0x4F4B4B),
		pitch.RoleWhite.String():             hex(0xD9D9D9),
		pitch.RoleSetsubigo.String():         gray,
		pitch.RoleEmpty.String():             gray,
		pitch.RoleParticle.String():          gray,
		pitch.RoleKeihanHeiban.String():      hex(0x3BB2ED),
		pitch.RoleKeihanAtamadaka.String():   hex(0xF76D94),
		pitch.RoleKeihanNakadaka.String():    hex(0xA89C0F),
		pitch.RoleKeihanLowHeiban.String():   hex(0x096999),
		pitch.RoleKeihanLowNakadaka.String(): hex(0x876333),
		pitch.RoleKeihanLowOdaka.String():    hex(0x658065),
		pitch.RoleKeihanKifuku.String():      hex(0xAC00E6),
		ConnectorClass:                       gray,
	}
}

// Resolve returns the color of a group class and whether its circles are
// hollow. A particle-flagged role keeps the role color.
func (p Palette) Resolve(class string) (color.NRGBA, bool) {
	fields := strings.Fields(class)
	hollow := false
	c, ok := gray, false
	for _, f := range fields {
		if f == pitch.RoleParticle.String() {
			hollow = true
			continue
		}
		if v, found := p[f]; found {
			c, ok = v, true
		}
	}
	if !ok && hollow {
		c = p[pitch.RoleParticle.String()]
	}
	return c, hollow
}

// Hex formats a color as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Stylesheet returns CSS that colors every class of the palette. Labels are
// filled but not stroked, particle circles are hollow.
func (p Palette) Stylesheet() string {
	classes := make([]string, 0, len(p))
	for class := range p {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var b strings.Builder
	for _, class := range classes {
		c := Hex(p[class])
		fmt.Fprintf(&b, ".%[1]s line, .%[1]s circle, .%[1]s text { fill: %[2]s; stroke: %[2]s; color: %[2]s; }\n", class, c)
		fmt.Fprintf(&b, "span.%s { color: %s; }\n", class, c)
	}
	b.WriteString(".particle circle, circle.devoiced, rect { fill: none; }\n")
	b.WriteString("text { stroke: none; }\n")
	return b.String()
}

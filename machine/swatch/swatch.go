// Package swatch builds small knitting programs used to exercise the machine:
// a tucked cast-on, stockinette, 1x1 rib, seed stitch and a two-by-two cable.
package swatch

import (
	"fmt"

	"github.com/inference-sim/vknit/machine"
)

// Pattern names a swatch program.
type Pattern string

const (
	PatternTuck        Pattern = "tuck"
	PatternStockinette Pattern = "stockinette"
	PatternRib         Pattern = "rib"
	PatternSeed        Pattern = "seed"
	PatternCable       Pattern = "cable"
)

// ValidPatterns is the set of recognized swatch names.
var ValidPatterns = map[Pattern]bool{
	PatternTuck:        true,
	PatternStockinette: true,
	PatternRib:         true,
	PatternSeed:        true,
	PatternCable:       true,
}

// cableWidth is the number of needles one cable spans: two crossing stitches
// with one background stitch on each side.
const cableWidth = 4

// Build returns the program for a pattern. Width is in needles starting at
// position 0; rows counts knitting passes after the cast-on.
func Build(p Pattern, width, rows, carrier int) ([]machine.Instruction, error) {
	if !ValidPatterns[p] {
		return nil, fmt.Errorf("unknown swatch pattern %q", p)
	}
	if width < 1 {
		return nil, fmt.Errorf("swatch width must be positive, got %d", width)
	}
	if rows < 0 {
		return nil, fmt.Errorf("swatch rows must be non-negative, got %d", rows)
	}
	if carrier < 1 {
		return nil, fmt.Errorf("swatch carrier must be positive, got %d", carrier)
	}
	switch p {
	case PatternTuck:
		return CastOn(width, carrier), nil
	case PatternStockinette:
		return Stockinette(width, rows, carrier), nil
	case PatternRib:
		return Rib(width, rows, carrier), nil
	case PatternSeed:
		return Seed(width, rows, carrier), nil
	default:
		if width < cableWidth {
			return nil, fmt.Errorf("cable needs a width of at least %d, got %d", cableWidth, width)
		}
		return Cable(width, rows, carrier), nil
	}
}

// CastOn hooks a carrier in and tucks every front needle in [0, width): a
// leftward pass over alternate needles from the right edge, then a rightward
// pass over the needles it skipped. The hook is released afterwards.
func CastOn(width, carrier int) []machine.Instruction {
	cs := []int{carrier}
	program := []machine.Instruction{machine.InHook{Carrier: carrier}}
	for pos := width - 1; pos >= 0; pos -= 2 {
		program = append(program, machine.Tuck{Direction: machine.Leftward, Needle: machine.Front(pos), Carriers: cs})
	}
	for pos := width % 2; pos < width; pos += 2 {
		program = append(program, machine.Tuck{Direction: machine.Rightward, Needle: machine.Front(pos), Carriers: cs})
	}
	return append(program, machine.ReleaseHook{})
}

// Stockinette knits every front needle for the given number of passes.
func Stockinette(width, rows, carrier int) []machine.Instruction {
	program := CastOn(width, carrier)
	for row := 0; row < rows; row++ {
		program = append(program, knitPass(rowDirection(row), width, carrier, allFront)...)
	}
	return program
}

// Rib moves every odd needle to the back bed and knits both beds, giving 1x1 rib.
func Rib(width, rows, carrier int) []machine.Instruction {
	program := append(CastOn(width, carrier), transferOdd(width)...)
	for row := 0; row < rows; row++ {
		program = append(program, knitPass(rowDirection(row), width, carrier, ribLayout(false))...)
	}
	return program
}

// Seed starts from a rib layout and moves every loop to the other bed after each
// pass, so knit and purl alternate both along the row and up the column.
func Seed(width, rows, carrier int) []machine.Instruction {
	program := append(CastOn(width, carrier), transferOdd(width)...)
	flipped := false
	for row := 0; row < rows; row++ {
		layout := ribLayout(flipped)
		program = append(program, knitPass(rowDirection(row), width, carrier, layout)...)
		for pos := 0; pos < width; pos++ {
			program = append(program, machine.Xfer{Needle: layout(pos)})
		}
		flipped = !flipped
	}
	return program
}

// Cable casts on with a single tuck pass and a knitted row, then crosses the
// two middle stitches of every four-needle group on every other pass. Each
// crossing moves the left stitch right at rack -1 and the right stitch left at
// rack 1 before both return to the front bed at rack 0.
func Cable(width, rows, carrier int) []machine.Instruction {
	cs := []int{carrier}
	program := []machine.Instruction{machine.InHook{Carrier: carrier}}
	for pos := width - 1; pos >= 0; pos-- {
		program = append(program, machine.Tuck{Direction: machine.Leftward, Needle: machine.Front(pos), Carriers: cs})
	}
	program = append(program, knitPass(machine.Rightward, width, carrier, allFront)...)
	program = append(program, machine.ReleaseHook{})
	program = append(program, crossCables(width)...)
	for row := 0; row < rows; row++ {
		program = append(program, knitPass(rowDirection(row), width, carrier, allFront)...)
		if row%2 == 1 && row < rows-1 {
			program = append(program, crossCables(width)...)
		}
	}
	return program
}

// crossCables swaps needles g+1 and g+2 of every complete group starting at g.
func crossCables(width int) []machine.Instruction {
	var groups []int
	for g := 0; g+cableWidth <= width; g += cableWidth {
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil
	}
	program := []machine.Instruction{machine.Rack{Value: -1}}
	for _, g := range groups {
		program = append(program, machine.Xfer{Needle: machine.Front(g + 1)})
	}
	program = append(program, machine.Rack{Value: 1})
	for _, g := range groups {
		program = append(program, machine.Xfer{Needle: machine.Front(g + 2)})
	}
	program = append(program, machine.Rack{Value: 0})
	for _, g := range groups {
		program = append(program,
			machine.Xfer{Needle: machine.Back(g + 1)},
			machine.Xfer{Needle: machine.Back(g + 2)})
	}
	return program
}

// transferOdd moves the loops of every odd front needle to the back bed at rack 0.
func transferOdd(width int) []machine.Instruction {
	var program []machine.Instruction
	for pos := 1; pos < width; pos += 2 {
		program = append(program, machine.Xfer{Needle: machine.Front(pos)})
	}
	return program
}

// layout places the stitch at a position on its bed.
type layout func(pos int) *machine.Needle

func allFront(pos int) *machine.Needle { return machine.Front(pos) }

// ribLayout puts even positions on the front bed, or odd ones when flipped.
func ribLayout(flipped bool) layout {
	return func(pos int) *machine.Needle {
		if (pos%2 == 0) != flipped {
			return machine.Front(pos)
		}
		return machine.Back(pos)
	}
}

// rowDirection alternates passes starting leftward, since every cast-on ends moving right.
func rowDirection(row int) machine.Direction {
	if row%2 == 0 {
		return machine.Leftward
	}
	return machine.Rightward
}

func knitPass(dir machine.Direction, width, carrier int, at layout) []machine.Instruction {
	cs := []int{carrier}
	program := make([]machine.Instruction, 0, width)
	for i := 0; i < width; i++ {
		pos := i
		if dir == machine.Leftward {
			pos = width - 1 - i
		}
		program = append(program, machine.Knit{Direction: dir, Needle: at(pos), Carriers: cs})
	}
	return program
}

package machine

import "fmt"

// SheetIdentifier names one of the interleaved layers of a gauged fabric.
type SheetIdentifier struct {
	sheet int
	gauge int
}

// NewSheetIdentifier validates 0 <= sheet < gauge.
func NewSheetIdentifier(sheet, gauge int) (SheetIdentifier, error) {
	if gauge <= 0 {
		return SheetIdentifier{}, fmt.Errorf("cannot make sheets for gauge %d", gauge)
	}
	if sheet < 0 || sheet >= gauge {
		return SheetIdentifier{}, fmt.Errorf("cannot identify sheet %d at gauge %d", sheet, gauge)
	}
	return SheetIdentifier{sheet: sheet, gauge: gauge}, nil
}

func (s SheetIdentifier) Sheet() int { return s.sheet }
func (s SheetIdentifier) Gauge() int { return s.gauge }

// Needle returns the machine needle at a position within this sheet.
func (s SheetIdentifier) Needle(m State, isFront bool, sheetPos int, isSlider bool) (*Needle, error) {
	return m.GetSpecifiedNeedle(isFront, ActualPosition(sheetPos, s.sheet, s.gauge), isSlider)
}

func (s SheetIdentifier) String() string {
	return fmt.Sprintf("s%d:g%d", s.sheet, s.gauge)
}

// SheetPosition is the index of an actual needle position within its sheet.
func SheetPosition(actualPos, gauge int) int {
	return floorDiv(actualPos, gauge)
}

// SheetOf is the sheet an actual needle position belongs to.
func SheetOf(actualPos, sheetPos, gauge int) int {
	return actualPos - sheetPos*gauge
}

// ActualPosition converts a sheet position back to a bed position.
func ActualPosition(sheetPos, sheet, gauge int) int {
	return sheet + sheetPos*gauge
}

// SheetNeedle is a needle addressed by sheet and position within the sheet.
type SheetNeedle struct {
	*Needle
	sheetPos int
	sheet    int
	gauge    int
}

// NewSheetNeedle returns a detached needle specification in a sheet.
func NewSheetNeedle(isFront bool, sheetPos, sheet, gauge int) SheetNeedle {
	return SheetNeedle{
		Needle:   NewNeedle(isFront, ActualPosition(sheetPos, sheet, gauge)),
		sheetPos: sheetPos,
		sheet:    sheet,
		gauge:    gauge,
	}
}

// NewSliderSheetNeedle returns a detached slider specification in a sheet.
func NewSliderSheetNeedle(isFront bool, sheetPos, sheet, gauge int) SheetNeedle {
	sn := NewSheetNeedle(isFront, sheetPos, sheet, gauge)
	sn.Needle.isSlider = true
	return sn
}

// SheetNeedleOf reinterprets a needle in the given gauge.
func SheetNeedleOf(n *Needle, gauge int) SheetNeedle {
	sheetPos := SheetPosition(n.Position(), gauge)
	sn := NewSheetNeedle(n.IsFront(), sheetPos, SheetOf(n.Position(), sheetPos, gauge), gauge)
	sn.Needle.isSlider = n.IsSlider()
	return sn
}

func (s SheetNeedle) SheetPos() int { return s.sheetPos }
func (s SheetNeedle) Sheet() int    { return s.sheet }
func (s SheetNeedle) Gauge() int    { return s.gauge }

// OffsetInSheet moves within the sheet, which is gauge needles per step on the bed.
func (s SheetNeedle) OffsetInSheet(offset int) SheetNeedle {
	out := NewSheetNeedle(s.IsFront(), s.sheetPos+offset, s.sheet, s.gauge)
	out.Needle.isSlider = s.IsSlider()
	return out
}

// GaugeNeighbors returns the needles at the same sheet position in every other sheet.
func (s SheetNeedle) GaugeNeighbors() []SheetNeedle {
	out := make([]SheetNeedle, 0, s.gauge-1)
	for sheet := 0; sheet < s.gauge; sheet++ {
		if sheet == s.sheet {
			continue
		}
		out = append(out, NewSheetNeedle(s.IsFront(), s.sheetPos, sheet, s.gauge))
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

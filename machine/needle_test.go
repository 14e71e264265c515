package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/vknit/machine/knitgraph"
)

func TestNeedle_SlotAtRack(t *testing.T) {
	tests := []struct {
		needle *Needle
		rack   int
		want   int
	}{
		{Front(5), 0, 5},
		{Front(5), -3, 5},
		{Back(5), 0, 5},
		{Back(5), 2, 7},
		{Back(5), -1, 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.needle.SlotAtRack(tc.rack), "%s at rack %d", tc.needle, tc.rack)
	}
}

func TestNeedle_SlotNumberFollowsMachineRack(t *testing.T) {
	// GIVEN a machine back needle
	m := newTestMachine(t)
	n, err := m.GetNeedle(Back(5))
	require.NoError(t, err)
	assert.Equal(t, 5, n.SlotNumber())

	// WHEN the machine racks
	require.NoError(t, m.SetRack(-2))

	// THEN the needle's slot moves with it, while a detached needle reads rack 0
	assert.Equal(t, 3, n.SlotNumber())
	assert.Equal(t, 5, Back(5).SlotNumber())
}

func TestNeedle_String(t *testing.T) {
	assert.Equal(t, "f3", Front(3).String())
	assert.Equal(t, "b12", Back(12).String())
	assert.Equal(t, "fs0", NewSliderNeedle(true, 0).String())
	assert.Equal(t, "bs7", NewSliderNeedle(false, 7).String())
}

func TestNeedle_DerivedNeedles(t *testing.T) {
	s := NewSliderNeedle(true, 4)

	assert.True(t, s.Opposite().Equal(NewSliderNeedle(false, 4)))
	assert.True(t, s.Offset(-2).Equal(NewSliderNeedle(true, 2)))
	assert.True(t, s.MainNeedle().Equal(Front(4)))
	assert.False(t, s.Equal(Front(4)))
	assert.True(t, (*Needle)(nil).Equal(nil))
}

func TestNeedle_Less(t *testing.T) {
	assert.True(t, Front(1).Less(Back(2)))
	assert.True(t, Front(2).Less(Back(2)), "front before back at the same position")
	assert.False(t, Back(2).Less(Front(2)))
	assert.False(t, Back(3).Less(Front(2)))
}

func TestNeedle_AtRackingComparison(t *testing.T) {
	tests := []struct {
		name      string
		a, b      *Needle
		rack      int
		allNeedle bool
		want      int
	}{
		{"left of", Front(1), Front(2), 0, false, -1},
		{"right of", Front(3), Back(1), 1, false, 1},
		{"same slot", Front(3), Back(2), 1, false, 0},
		{"all-needle front first", Front(3), Back(2), 1, true, -1},
		{"all-needle back second", Back(2), Front(3), 1, true, 1},
		{"all-needle same bed", Front(3), Front(3), 1, true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.AtRackingComparison(tc.b, tc.rack, tc.allNeedle))
		})
	}
}

func TestNeedle_PullDirection(t *testing.T) {
	assert.Equal(t, knitgraph.BackToFront, Front(0).PullDirection())
	assert.Equal(t, knitgraph.FrontToBack, Back(0).PullDirection())
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Rightward, Leftward.Opposite())
	assert.Equal(t, Leftward, Rightward.Opposite())
	assert.Equal(t, Leftward, DirectionFromString("-"))
	assert.Equal(t, Rightward, DirectionFromString("+"))
	assert.Equal(t, "Leftward", Leftward.Name())
	assert.Equal(t, "+", Rightward.String())
}

func TestDirection_SortNeedles(t *testing.T) {
	needles := []*Needle{Front(3), Back(1), Front(0), Back(2)}

	// GIVEN rack 1: b1 is in slot 2 and b2 shares slot 3 with f3
	right := Rightward.SortNeedles(needles, 1)
	left := Leftward.SortNeedles(needles, 1)

	// THEN rightward passes meet back before front on a shared slot, leftward the reverse
	assert.Equal(t, []string{"f0", "b1", "b2", "f3"}, needleNames(right))
	assert.Equal(t, []string{"f3", "b2", "b1", "f0"}, needleNames(left))
	assert.Equal(t, "f3", needles[0].String(), "input is not reordered")
}

func needleNames(needles []*Needle) []string {
	out := make([]string, len(needles))
	for i, n := range needles {
		out[i] = n.String()
	}
	return out
}

func TestSide(t *testing.T) {
	assert.Equal(t, RightSide, LeftSide.Opposite())
	assert.Equal(t, -1, LeftSide.Slot(540))
	assert.Equal(t, 541, RightSide.Slot(540))
	assert.Equal(t, Rightward, LeftSide.ParkedDirection())
	assert.Equal(t, Leftward, RightSide.ParkedDirection())
}

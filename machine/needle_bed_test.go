package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedleBed_ContainsAndNegativeIndex(t *testing.T) {
	m := newTestMachine(t)
	bed := m.FrontBed()

	assert.True(t, bed.Contains(0))
	assert.True(t, bed.Contains(539))
	assert.False(t, bed.Contains(540))
	assert.True(t, bed.Contains(-540))
	assert.False(t, bed.Contains(-541))

	last, err := bed.Needle(-1, false)
	require.NoError(t, err)
	assert.Equal(t, 539, last.Position())
	_, err = bed.Needle(540, true)
	assert.Error(t, err)
}

func TestNeedleBed_SliceClamps(t *testing.T) {
	m := newTestMachine(t)
	bed := m.BackBed()

	assert.Len(t, bed.Slice(2, 5), 3)
	assert.Len(t, bed.Slice(-3, 2), 2)
	assert.Len(t, bed.Slice(538, 600), 2)
	assert.Empty(t, bed.Slice(5, 5))
	assert.Empty(t, bed.Slice(6, 5))
}

func TestNeedleBed_AddLoopsWarnsAtMaximumHold(t *testing.T) {
	// GIVEN a bed with a maximum hold of 4
	m := newTestMachine(t)
	require.NoError(t, m.BringIn(1))
	cs := NewCarrierSet(1)

	// WHEN 3 loops are tucked onto one needle
	for i := 0; i < 3; i++ {
		_, err := m.Tuck(cs, Front(2), Leftward)
		require.NoError(t, err)
	}

	// THEN no warning yet
	assert.Equal(t, 0, m.Diagnostics().Count(DiagNeedleHoldsTooManyLoops))

	// WHEN the fourth and fifth loops arrive
	_, err := m.Tuck(cs, Front(2), Leftward)
	require.NoError(t, err)
	_, err = m.Tuck(cs, Front(2), Leftward)
	require.NoError(t, err)

	// THEN each is reported but still held
	assert.Equal(t, 2, m.Diagnostics().Count(DiagNeedleHoldsTooManyLoops))
	n, _ := m.GetNeedle(Front(2))
	assert.Len(t, n.HeldLoops(), 5)
}

func TestNeedleBed_DropEmptiesNeedle(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.BringIn(1))
	formed, err := m.Tuck(NewCarrierSet(1), Back(4), Rightward)
	require.NoError(t, err)

	dropped := m.back.Drop(Back(4))

	assert.Equal(t, formed, dropped)
	assert.True(t, dropped[0].Dropped())
	assert.Empty(t, m.BackLoops())
	assert.Empty(t, m.back.Drop(Back(4)), "dropping an empty needle returns nothing")
}

func TestNeedleBed_RejectsNeedleOfOtherBed(t *testing.T) {
	m := newTestMachine(t)
	_, err := m.front.AddLoops(Back(1), nil, false)
	assert.Error(t, err)
}

func TestNeedleBed_SliderTracking(t *testing.T) {
	// GIVEN a loop moved onto a back slider
	m := newTestMachine(t)
	require.NoError(t, m.BringIn(1))
	_, err := m.Tuck(NewCarrierSet(1), Front(3), Leftward)
	require.NoError(t, err)
	_, err = m.Xfer(Front(3), true, false)
	require.NoError(t, err)

	// THEN the back bed reports the slider as holding and sliders are not clear
	assert.False(t, m.SlidersAreClear())
	assert.False(t, m.BackBed().SlidersAreClear())
	assert.True(t, m.FrontBed().SlidersAreClear())
	require.Len(t, m.BackSliderLoops(), 1)
	assert.Equal(t, "bs3", m.BackSliderLoops()[0].String())
	assert.Len(t, m.BackBed().ActiveSliderLoops(), 1)
	assert.Empty(t, m.BackLoops())

	// WHEN the slider transfers back to the front needle
	_, err = m.Xfer(NewSliderNeedle(false, 3), false, false)
	require.NoError(t, err)

	// THEN sliders are clear again
	assert.True(t, m.SlidersAreClear())
	assert.Len(t, m.FrontLoops(), 1)
}

func TestPosition_ParkedDefaults(t *testing.T) {
	p := NewNeedleBedPosition(RightSide, 540, 10)

	assert.False(t, p.OnBed())
	assert.Equal(t, 541, p.SlotNumber())
	assert.Equal(t, Rightward, p.LastDirection(), "parked right, last moved right to get there")
	_, ok := p.ConflictingNeedleSlot()
	assert.False(t, ok)
	lo, hi := p.SlotRange()
	assert.Equal(t, 541, lo)
	assert.Equal(t, 541, hi)
	left, right := p.BetweenNeedles()
	assert.Equal(t, "f540", left.String())
	assert.Nil(t, right)
}

func TestPosition_SetPositionInfersDirection(t *testing.T) {
	p := NewNeedleBedPosition(LeftSide, 540, 10)

	p.SetPosition(Front(5), "")
	assert.Equal(t, Rightward, p.LastDirection(), "moving right from the left edge")

	p.SetPosition(Front(2), "")
	assert.Equal(t, Leftward, p.LastDirection())

	p.SetPosition(Front(2), "")
	assert.Equal(t, Rightward, p.LastDirection(), "no movement reverses the last direction")

	p.SetPosition(Front(7), Leftward)
	assert.Equal(t, Leftward, p.LastDirection(), "explicit direction wins")
}

func TestPosition_ConflictAndStoppingRange(t *testing.T) {
	p := NewNeedleBedPosition(RightSide, 540, 10)

	p.SetPosition(Front(20), Leftward)
	slot, ok := p.ConflictingNeedleSlot()
	require.True(t, ok)
	assert.Equal(t, 19, slot)
	lo, hi := p.SlotRange()
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)
	left, right := p.BetweenNeedles()
	assert.Equal(t, "f19", left.String())
	assert.Equal(t, "f20", right.String())

	p.SetPosition(Front(20), Rightward)
	slot, _ = p.ConflictingNeedleSlot()
	assert.Equal(t, 21, slot)
	lo, hi = p.SlotRange()
	assert.Equal(t, 20, lo)
	assert.Equal(t, 30, hi)
}

func TestPosition_TakeOffBedAndEqual(t *testing.T) {
	a := NewNeedleBedPosition(RightSide, 540, 10)
	b := NewNeedleBedPosition(RightSide, 540, 10)
	a.SetPosition(Front(3), Leftward)
	assert.False(t, a.Equal(b))

	b.UpdateFromPosition(a)
	assert.True(t, a.Equal(b))

	a.TakeOffBed()
	assert.False(t, a.OnBed())
	assert.Equal(t, Rightward, a.LastDirection(), "parks by moving toward the right edge")
	assert.Equal(t, Rightward, a.ReverseOfLastDirection().Opposite())
}

func TestCarriage_MovesAndRecordsPassDirection(t *testing.T) {
	// GIVEN a tucked loop
	m := newTestMachine(t)
	require.NoError(t, m.BringIn(1))
	_, err := m.Tuck(NewCarrierSet(1), Front(4), Leftward)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Carriage().SlotNumber())
	assert.Equal(t, Leftward, m.Carriage().LastSetDirection())

	// WHEN transferring from a needle to the right
	_, err = m.Xfer(Front(4), false, false)
	require.NoError(t, err)
	_, err = m.Drop(Front(9))
	require.NoError(t, err)

	// THEN the carriage follows but the last pass direction is unchanged
	assert.Equal(t, 9, m.Carriage().SlotNumber())
	assert.Equal(t, Rightward, m.Carriage().LastDirection())
	assert.Equal(t, Leftward, m.Carriage().LastSetDirection())
}

func TestCarrierSet(t *testing.T) {
	cs := NewCarrierSet(3, 1, 3, 2)

	assert.Equal(t, []int{3, 1, 2}, cs.IDs())
	assert.Equal(t, []int{3}, cs.Duplicates())
	assert.Equal(t, 3, cs.Len())
	assert.True(t, cs.Contains(1))
	assert.False(t, cs.Contains(4))
	assert.Equal(t, 312, cs.DATID())
	assert.Equal(t, "3 1 2", cs.String())
	assert.True(t, cs.Equal(NewCarrierSet(3, 1, 2)))
	assert.False(t, cs.Equal(NewCarrierSet(1, 2, 3)))

	var empty *CarrierSet
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, NewCarrierSet().DATID())
}

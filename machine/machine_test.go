package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T, opts ...Option) *Machine {
	t.Helper()
	return New(DefaultSpecification(), opts...)
}

// hookAndTuck hooks a carrier in, tucks the given front positions in a leftward
// pass and releases the hook. It returns the loops in tuck order.
func hookAndTuck(t *testing.T, m *Machine, carrier int, positions ...int) []*Loop {
	t.Helper()
	require.NoError(t, m.InHook(carrier))
	cs := NewCarrierSet(carrier)
	var loops []*Loop
	for _, p := range positions {
		formed, err := m.Tuck(cs, Front(p), Leftward)
		require.NoError(t, err)
		require.Len(t, formed, 1)
		loops = append(loops, formed...)
	}
	m.ReleaseHook()
	return loops
}

func TestNew_DefaultState(t *testing.T) {
	m := newTestMachine(t)

	assert.Equal(t, 0, m.Rack())
	assert.False(t, m.AllNeedleRack())
	assert.Equal(t, 1, m.GaugedLayers())
	assert.Equal(t, 540, m.NeedleCount())
	assert.Equal(t, 4, m.MaxRack())
	assert.Len(t, m.FrontNeedles(), 540)
	assert.Len(t, m.BackSliders(), 540)
	assert.Equal(t, 10, m.InsertionSystem().Len())
	assert.Empty(t, m.ActiveLoops())
	assert.True(t, m.SlidersAreClear())
	assert.Equal(t, 0, m.KnitGraph().Len())
	for _, c := range m.CarrierSystem().Carriers() {
		assert.False(t, c.IsActive(), "carrier %d", c.ID())
	}
	assert.Equal(t, -1, m.Carriage().SlotNumber(), "carriage parks left")
}

func TestNew_CustomSpecification(t *testing.T) {
	spec := DefaultSpecification()
	spec.NeedleCount = 100
	spec.CarrierCount = 5

	m := New(spec)

	assert.Equal(t, 100, m.NeedleCount())
	assert.Len(t, m.CarrierSystem().Carriers(), 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, m.CarrierSystem().CarrierIDs())
}

func TestNew_InvalidSpecificationPanics(t *testing.T) {
	spec := DefaultSpecification()
	spec.NeedleCount = 0
	assert.Panics(t, func() { New(spec) })
}

func TestSetRack(t *testing.T) {
	tests := []struct {
		name      string
		rack      float64
		wantRack  int
		allNeedle bool
	}{
		{"zero", 0, 0, false},
		{"whole positive", 3, 3, false},
		{"whole negative", -2, -2, false},
		{"all-needle positive truncates", 2.25, 2, true},
		{"all-needle negative rounds down", -2.75, -3, true},
		{"all-needle half negative", -0.5, -1, true},
		{"at max", 4, 4, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMachine(t)
			require.NoError(t, m.SetRack(tc.rack))
			assert.Equal(t, tc.wantRack, m.Rack())
			assert.Equal(t, tc.allNeedle, m.AllNeedleRack())
		})
	}
}

func TestSetRack_BeyondMaxRaises(t *testing.T) {
	// GIVEN a machine at rack 2
	m := newTestMachine(t)
	require.NoError(t, m.SetRack(2))

	// WHEN racking past the maximum in either direction
	for _, r := range []float64{5, -5, 4.5} {
		err := m.SetRack(r)

		// THEN a MaxRackError is returned and the rack is unchanged
		var rackErr *MaxRackError
		require.True(t, errors.As(err, &rackErr), "rack %v", r)
		assert.Equal(t, ViolationRackingOutOfRange, rackErr.Violation())
		assert.Equal(t, 2, m.Rack())
	}
}

func TestSetRack_PolicyCanAllowOutOfRange(t *testing.T) {
	// GIVEN a policy that warns and proceeds on racking violations
	p := NewViolationPolicy()
	p.SetResponseFor(ViolationRackingOutOfRange, NewViolationResponse(ActionWarn, false, true))
	m := newTestMachine(t, WithPolicy(p))

	// WHEN racking past the maximum
	require.NoError(t, m.SetRack(6))

	// THEN the rack is applied and a passed-machine-error diagnostic is recorded
	assert.Equal(t, 6, m.Rack())
	assert.Equal(t, 1, m.Diagnostics().Count(DiagPassedMachineError))

	// WHEN the same policy ignores without proceeding
	p.SetResponseFor(ViolationRackingOutOfRange, NewViolationResponse(ActionIgnore, false, false))
	require.NoError(t, m.SetRack(-7))

	// THEN the rack is left alone and the next legal rack still applies
	assert.Equal(t, 6, m.Rack())
	require.NoError(t, m.SetRack(1))
	assert.Equal(t, 1, m.Rack())
}

func TestUpdateRack(t *testing.T) {
	m := newTestMachine(t)

	changed, err := m.UpdateRack(1, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, -1, m.Rack())
	assert.True(t, m.ValidRack(1, 2))
	assert.False(t, m.ValidRack(2, 1))

	changed, err = m.UpdateRack(3, 4)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = m.UpdateRack(10, 0)
	assert.Error(t, err)
}

func TestGetRackAndTransferRack(t *testing.T) {
	assert.Equal(t, -1, GetRack(1, 2))
	assert.Equal(t, 3, GetRack(5, 2))

	r, err := GetTransferRack(Front(5), Back(2))
	require.NoError(t, err)
	assert.Equal(t, 3, r)

	r, err = GetTransferRack(Back(2), Front(5))
	require.NoError(t, err)
	assert.Equal(t, 3, r, "rack is front minus back regardless of direction")

	_, err = GetTransferRack(Front(1), Front(2))
	var same *SameBedTransferError
	assert.True(t, errors.As(err, &same))
}

func TestGetAlignedNeedle_RoundTrip(t *testing.T) {
	for _, rack := range []float64{-4, -1, 0, 2, 4} {
		m := newTestMachine(t)
		require.NoError(t, m.SetRack(rack))

		// GIVEN a front needle WHEN finding its aligned back needle and back again
		back, err := m.GetAlignedNeedle(Front(10), false)
		require.NoError(t, err)
		front, err := m.GetAlignedNeedle(back, false)
		require.NoError(t, err)

		// THEN the two share a slot and the round trip returns the start
		assert.True(t, back.IsBack())
		assert.Equal(t, 10-m.Rack(), back.Position())
		assert.Equal(t, 10, back.SlotNumber())
		assert.True(t, front.Equal(Front(10)))
	}
}

func TestGetAlignedNeedle_Slider(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetRack(1))

	n, err := m.GetAlignedNeedle(Back(3), true)
	require.NoError(t, err)

	assert.True(t, n.IsFront())
	assert.True(t, n.IsSlider())
	assert.Equal(t, 4, n.Position())
}

func TestGetNeedle_OutOfRange(t *testing.T) {
	m := newTestMachine(t)

	for _, n := range []*Needle{Front(-1), Back(540), NewSliderNeedle(true, 1000)} {
		_, err := m.GetNeedle(n)
		var rangeErr *NeedleOutOfRangeError
		assert.True(t, errors.As(err, &rangeErr), "needle %s", n)
	}
	assert.False(t, m.HasNeedle(Front(540)))
	assert.True(t, m.HasNeedle(Back(0)))
}

func TestGetNeedle_ReturnsMachineNeedle(t *testing.T) {
	m := newTestMachine(t)

	n, err := m.GetNeedle(Back(10))
	require.NoError(t, err)
	again, err := m.GetSpecifiedNeedle(false, 10, false)
	require.NoError(t, err)

	assert.Same(t, n, again)
	s, err := m.GetSpecifiedNeedle(false, 8, true)
	require.NoError(t, err)
	assert.True(t, s.IsSlider())
}

func TestSetGaugedLayers_ClampsToOne(t *testing.T) {
	m := newTestMachine(t)
	m.SetGaugedLayers(3)
	assert.Equal(t, 3, m.GaugedLayers())
	m.SetGaugedLayers(0)
	assert.Equal(t, 1, m.GaugedLayers())
}

func TestNewCarrierSet_DuplicatesAreDiagnosed(t *testing.T) {
	m := newTestMachine(t)

	cs := m.NewCarrierSet(1, 2, 1)

	assert.Equal(t, []int{1, 2}, cs.IDs())
	assert.Equal(t, 1, m.Diagnostics().Count(DiagDuplicateCarriersInSet))
}

func TestGetNeedleOfLoop(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.BringIn(1))
	front, err := m.Tuck(NewCarrierSet(1), Front(1), Leftward)
	require.NoError(t, err)
	back, err := m.Tuck(NewCarrierSet(1), Back(1), Leftward)
	require.NoError(t, err)

	assert.True(t, m.GetNeedleOfLoop(front[0]).Equal(Front(1)))
	assert.True(t, m.GetNeedleOfLoop(back[0]).Equal(Back(1)))

	_, err = m.Drop(Front(1))
	require.NoError(t, err)
	assert.Nil(t, m.GetNeedleOfLoop(front[0]))
	assert.False(t, m.HasLoop(front[0]))
	assert.True(t, m.HasLoop(back[0]))
}

func TestSlotRange(t *testing.T) {
	m := newTestMachine(t)
	lo, hi := m.SlotRange()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)

	require.NoError(t, m.BringIn(1))
	cs := NewCarrierSet(1)
	for _, n := range []*Needle{Front(5), Back(9), Front(2)} {
		_, err := m.Tuck(cs, n, Leftward)
		require.NoError(t, err)
	}
	require.NoError(t, m.SetRack(-2))

	lo, hi = m.SlotRange()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 7, hi, "b9 sits in slot 7 at rack -2")
}

func TestActiveFloats_AndLoopsCrossedByFloat(t *testing.T) {
	// GIVEN carrier 2 holding a loop on f3 and carrier 1 tucking f1 then f5
	m := newTestMachine(t)
	require.NoError(t, m.BringIn(1))
	require.NoError(t, m.BringIn(2))
	middle, err := m.Tuck(NewCarrierSet(2), Front(3), Leftward)
	require.NoError(t, err)
	a, err := m.Tuck(NewCarrierSet(1), Front(1), Rightward)
	require.NoError(t, err)
	b, err := m.Tuck(NewCarrierSet(1), Front(5), Rightward)
	require.NoError(t, err)

	// THEN the float from f1 to f5 is active and crosses the loop on f3
	floats := m.ActiveFloats()
	require.Len(t, floats, 1)
	assert.Same(t, a[0], floats[0].Start)
	assert.Same(t, b[0], floats[0].End)
	crossed, err := m.LoopsCrossedByFloat(a[0], b[0])
	require.NoError(t, err)
	assert.Equal(t, middle, crossed)

	// WHEN the float's start is dropped
	_, err = m.Drop(Front(1))
	require.NoError(t, err)

	// THEN the float is no longer active
	assert.Empty(t, m.ActiveFloats())
	_, err = m.LoopsCrossedByFloat(a[0], b[0])
	assert.Error(t, err)
}

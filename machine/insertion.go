package machine

import "sort"

// CarrierSystemState is the read-only view of the yarn insertion system.
type CarrierSystemState interface {
	Carriers() []CarrierState
	Carrier(id int) (CarrierState, error)
	CarrierIDs() []int
	HookPosition() (int, bool)
	HookInputDirection() Direction
	HookedCarrierID() (int, bool)
	SearchingForPosition() bool
	InsertingHookAvailable() bool
}

// YarnInsertionSystem owns the carriers and the single yarn inserting hook.
type YarnInsertionSystem struct {
	carriers           []*YarnCarrier
	hookPosition       *int
	hookInputDirection Direction
	searching          bool
	hookedCarrier      *YarnCarrier
	m                  *Machine
}

func newYarnInsertionSystem(m *Machine, carrierCount int) *YarnInsertionSystem {
	s := &YarnInsertionSystem{carriers: make([]*YarnCarrier, carrierCount), m: m}
	for i := range s.carriers {
		s.carriers[i] = newYarnCarrier(m, i+1)
	}
	return s
}

// Len returns the number of carriers.
func (s *YarnInsertionSystem) Len() int { return len(s.carriers) }

// Carriers returns every carrier ordered by id.
func (s *YarnInsertionSystem) Carriers() []CarrierState {
	out := make([]CarrierState, len(s.carriers))
	for i, c := range s.carriers {
		out[i] = c
	}
	return out
}

// Carrier returns a carrier by id.
func (s *YarnInsertionSystem) Carrier(id int) (CarrierState, error) {
	return s.carrier(id)
}

// YarnCarrier returns the mutable carrier by id.
func (s *YarnInsertionSystem) YarnCarrier(id int) (*YarnCarrier, error) {
	return s.carrier(id)
}

func (s *YarnInsertionSystem) carrier(id int) (*YarnCarrier, error) {
	if id < 1 || id > len(s.carriers) {
		return nil, &InvalidCarrierError{CarrierID: id, CarrierCount: len(s.carriers)}
	}
	return s.carriers[id-1], nil
}

// CarrierIDs returns 1..carrier count.
func (s *YarnInsertionSystem) CarrierIDs() []int {
	ids := make([]int, len(s.carriers))
	for i, c := range s.carriers {
		ids[i] = c.id
	}
	return ids
}

// Contains reports whether every id names a carrier of this system.
func (s *YarnInsertionSystem) Contains(ids ...int) bool {
	for _, id := range ids {
		if id < 1 || id > len(s.carriers) {
			return false
		}
	}
	return true
}

// HookPosition is the slot of the inserting hook. It returns false while the hook is
// unused or still searching for its position.
func (s *YarnInsertionSystem) HookPosition() (int, bool) {
	if s.hookPosition == nil {
		return 0, false
	}
	return *s.hookPosition, true
}

// HookInputDirection is the direction the hooked carrier entered in, or "" when unset.
func (s *YarnInsertionSystem) HookInputDirection() Direction { return s.hookInputDirection }

// HookedCarrierID returns the carrier on the inserting hook.
func (s *YarnInsertionSystem) HookedCarrierID() (int, bool) {
	if s.hookedCarrier == nil {
		return 0, false
	}
	return s.hookedCarrier.id, true
}

// SearchingForPosition is true between an inhook and the first loop the hooked carrier forms.
func (s *YarnInsertionSystem) SearchingForPosition() bool {
	if s.InsertingHookAvailable() {
		return false
	}
	return s.searching
}

// InsertingHookAvailable reports whether no carrier is on the hook.
func (s *YarnInsertionSystem) InsertingHookAvailable() bool { return s.hookedCarrier == nil }

// ActiveCarriers returns the carriers off the grippers ordered by id.
func (s *YarnInsertionSystem) ActiveCarriers() []*YarnCarrier {
	var out []*YarnCarrier
	for _, c := range s.carriers {
		if c.active {
			out = append(out, c)
		}
	}
	return out
}

// ActiveFloats merges the active floats of every yarn.
func (s *YarnInsertionSystem) ActiveFloats() map[*Loop]*Loop {
	out := make(map[*Loop]*Loop)
	for _, c := range s.carriers {
		for k, v := range c.yarn.ActiveFloats() {
			out[k] = v
		}
	}
	return out
}

// ConflictsWithInsertingHook reports whether the needle is at or right of the hook.
func (s *YarnInsertionSystem) ConflictsWithInsertingHook(needle *Needle) bool {
	pos, ok := s.HookPosition()
	if !ok {
		return false
	}
	return pos <= needle.SlotNumber()
}

// MissingCarriers returns the ids that are not active.
func (s *YarnInsertionSystem) MissingCarriers(ids []int) ([]int, error) {
	var missing []int
	for _, id := range ids {
		c, err := s.carrier(id)
		if err != nil {
			return nil, err
		}
		if !c.active {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// IsActive reports whether every carrier is active. The empty set is active.
func (s *YarnInsertionSystem) IsActive(ids []int) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	missing, err := s.MissingCarriers(ids)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// YarnIsLoose reports whether the carrier's yarn is not anchored on a needle.
func (s *YarnInsertionSystem) YarnIsLoose(id int) (bool, error) {
	c, err := s.carrier(id)
	if err != nil {
		return false, err
	}
	return c.yarn.LastNeedle() == nil, nil
}

// BringIn takes a carrier off the grippers.
func (s *YarnInsertionSystem) BringIn(id int) error {
	c, err := s.carrier(id)
	if err != nil {
		return err
	}
	c.BringIn()
	return nil
}

// Inhook puts a carrier on the inserting hook. The hook holds one carrier at a time;
// when the policy tolerates a conflict the previous carrier is released first.
func (s *YarnInsertionSystem) Inhook(id int) error {
	c, err := s.carrier(id)
	if err != nil {
		return err
	}
	return s.m.policy.checked(func() error {
		if err := s.m.policy.handle("", s.ReleaseHook, func() error {
			if !s.InsertingHookAvailable() && s.hookedCarrier != c {
				return &InsertingHookInUseError{CarrierID: id}
			}
			return nil
		}); err != nil {
			return err
		}
		if s.m.policy.Proceed() {
			s.hookedCarrier = c
			s.searching = true
			s.hookPosition = nil
			c.Inhook()
		}
		return nil
	})
}

// ReleaseHook frees the inserting hook.
func (s *YarnInsertionSystem) ReleaseHook() {
	if s.hookedCarrier != nil {
		s.hookedCarrier.ReleaseHook()
	}
	s.hookedCarrier = nil
	s.searching = false
	s.hookPosition = nil
	s.hookInputDirection = ""
}

// Out returns a carrier to the grippers. A hooked carrier must be released first.
func (s *YarnInsertionSystem) Out(id int) error {
	c, err := s.carrier(id)
	if err != nil {
		return err
	}
	return s.m.policy.checked(func() error {
		if err := s.m.policy.handle("", s.ReleaseHook, func() error {
			if c.hooked {
				return &HookedCarrierError{CarrierID: id}
			}
			return nil
		}); err != nil {
			return err
		}
		if s.m.policy.Proceed() {
			c.Out()
		}
		return nil
	})
}

// Outhook cuts a carrier's yarn and returns it to the grippers. It needs the
// inserting hook, so it fails while the carrier or another carrier is hooked.
func (s *YarnInsertionSystem) Outhook(id int) error {
	c, err := s.carrier(id)
	if err != nil {
		return err
	}
	return s.m.policy.checked(func() error {
		if err := s.m.policy.handle(ViolationInsertingHookInUse, s.ReleaseHook, func() error {
			if c.hooked {
				return &HookedCarrierError{CarrierID: id}
			}
			if !s.InsertingHookAvailable() {
				return &InsertingHookInUseError{CarrierID: id}
			}
			return nil
		}); err != nil {
			return err
		}
		if s.m.policy.Proceed() {
			return c.Outhook()
		}
		return nil
	})
}

// PositionCarrierAtNeedle moves a carrier beside a needle. Slots at or right of the
// inserting hook are blocked while a carrier is hooked. An empty direction is inferred.
func (s *YarnInsertionSystem) PositionCarrierAtNeedle(id int, needle *Needle, direction Direction) error {
	c, err := s.carrier(id)
	if err != nil {
		return err
	}
	return s.m.policy.checked(func() error {
		if err := s.m.policy.handle("", s.ReleaseHook, func() error {
			if needle != nil && s.hookedCarrier != nil && s.ConflictsWithInsertingHook(needle) {
				return &BlockedByHookError{HookedCarrierID: s.hookedCarrier.id, Needle: needle}
			}
			return nil
		}); err != nil {
			return err
		}
		if s.m.policy.Proceed() {
			c.SetPosition(needle, direction)
		}
		return nil
	})
}

// setHookInputDirection locks the direction the hooked carrier entered in, which must be leftward.
func (s *YarnInsertionSystem) setHookInputDirection(direction Direction) error {
	if direction == "" {
		s.hookInputDirection = ""
		return nil
	}
	return s.m.policy.checked(func() error {
		if err := s.m.policy.handle(ViolationInhookRightwards, nil, func() error {
			if direction == Rightward {
				return &InhookDirectionError{Direction: direction}
			}
			return nil
		}); err != nil {
			return err
		}
		if s.m.policy.Proceed() {
			s.hookInputDirection = direction
		}
		return nil
	})
}

// MakeLoops forms one loop per carrier on the needle, in carrier order. The loops
// are appended to their yarns but not placed on the needle.
//
// The first loop after an inhook fixes the hook one slot right of the needle.
// Each new loop also registers the loops its float passes over: loops on front
// needles sit in front of the float, loops on back needles behind it. These
// registrations accumulate; calling MakeLoops again adds them again.
func (s *YarnInsertionSystem) MakeLoops(ids []int, needle *Needle, direction Direction) ([]*Loop, error) {
	needle, err := s.m.GetNeedle(needle)
	if err != nil {
		return nil, err
	}
	if s.SearchingForPosition() {
		pos := needle.SlotNumber() + 1
		s.hookPosition = &pos
		if err := s.setHookInputDirection(direction); err != nil {
			return nil, err
		}
		s.searching = false
	}
	loops := make([]*Loop, 0, len(ids))
	for _, id := range ids {
		c, err := s.carrier(id)
		if err != nil {
			return loops, err
		}
		var floatSource *Needle
		if last := c.yarn.LastLoop(); last != nil {
			floatSource = last.HoldingNeedle()
		}
		loop, err := c.makeLoop(needle)
		if err != nil {
			return loops, err
		}
		if loop == nil {
			continue
		}
		c.yarn.addLoopToEnd(loop, s.m.spec.MaximumFloat, s.m.diag)
		if floatSource != nil {
			s.registerFloat(floatSource, needle)
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// registerFloat records the loops held between the float's source needle and the new loop's needle.
func (s *YarnInsertionSystem) registerFloat(source, target *Needle) {
	source, err := s.m.GetNeedle(source)
	if err != nil {
		return
	}
	start, end := source.position, target.position
	if start > end {
		start, end = end, start
	}
	excluded := func(n *Needle) bool { return n.Equal(source) || n.Equal(target) }
	var front, back []*Needle
	for _, n := range s.m.front.Slice(start, end+1) {
		if !excluded(n) {
			front = append(front, n)
		}
	}
	for _, n := range s.m.back.Slice(start, end+1) {
		if !excluded(n) {
			back = append(back, n)
		}
	}
	for _, fl := range source.held {
		for _, fn := range front {
			for _, crossed := range fn.held {
				s.m.graph.AddLoopInFrontOfFloat(fl, crossed)
			}
		}
		for _, bn := range back {
			for _, crossed := range bn.held {
				s.m.graph.AddLoopBehindFloat(fl, crossed)
			}
		}
	}
}

func (s *YarnInsertionSystem) freeze(remap func(*Needle) *Needle) *frozenCarrierSystem {
	f := &frozenCarrierSystem{
		carriers:           make([]*frozenCarrier, len(s.carriers)),
		hookInputDirection: s.hookInputDirection,
		searching:          s.SearchingForPosition(),
		hookedCarrier:      -1,
	}
	if s.hookPosition != nil {
		pos := *s.hookPosition
		f.hookPosition = &pos
	}
	if s.hookedCarrier != nil {
		f.hookedCarrier = s.hookedCarrier.id
	}
	for i, c := range s.carriers {
		pos := c.position.clone()
		if pos.needle != nil {
			pos.needle = remap(pos.needle)
		}
		f.carriers[i] = &frozenCarrier{id: c.id, active: c.active, hooked: c.hooked, position: pos, yarn: c.yarn}
	}
	return f
}

// frozenCarrierSystem is a point-in-time copy of the insertion system.
type frozenCarrierSystem struct {
	carriers           []*frozenCarrier
	hookPosition       *int
	hookInputDirection Direction
	searching          bool
	hookedCarrier      int
}

func (f *frozenCarrierSystem) Carriers() []CarrierState {
	out := make([]CarrierState, len(f.carriers))
	for i, c := range f.carriers {
		out[i] = c
	}
	return out
}

func (f *frozenCarrierSystem) Carrier(id int) (CarrierState, error) {
	if id < 1 || id > len(f.carriers) {
		return nil, &InvalidCarrierError{CarrierID: id, CarrierCount: len(f.carriers)}
	}
	return f.carriers[id-1], nil
}

func (f *frozenCarrierSystem) CarrierIDs() []int {
	ids := make([]int, len(f.carriers))
	for i, c := range f.carriers {
		ids[i] = c.id
	}
	sort.Ints(ids)
	return ids
}

func (f *frozenCarrierSystem) HookPosition() (int, bool) {
	if f.hookPosition == nil {
		return 0, false
	}
	return *f.hookPosition, true
}

func (f *frozenCarrierSystem) HookInputDirection() Direction { return f.hookInputDirection }

func (f *frozenCarrierSystem) HookedCarrierID() (int, bool) {
	return f.hookedCarrier, f.hookedCarrier > 0
}

func (f *frozenCarrierSystem) SearchingForPosition() bool   { return f.searching }
func (f *frozenCarrierSystem) InsertingHookAvailable() bool { return f.hookedCarrier <= 0 }

package machine

// Snapshot is a frozen copy of a machine's beds, carriers, carriage and rack.
// It shares the live knit graph and loops, so loops formed after the snapshot
// appear in KnitGraph but not on the snapshot's needles.
type Snapshot struct {
	view
	carriers   *frozenCarrierSystem
	carriage   *Carriage
	lastLoopID int64
}

func newSnapshot(m *Machine) *Snapshot {
	s := &Snapshot{
		view: view{
			spec:      m.spec,
			graph:     m.graph,
			rack:      m.rack,
			allNeedle: m.allNeedle,
			gauge:     m.gauge,
		},
		lastLoopID: m.graph.LastLoopID(),
	}
	s.front = m.front.freeze(&s.view)
	s.back = m.back.freeze(&s.view)
	s.carriers = m.carriers.freeze(s.remap)
	s.carriage = m.carriage.clone()
	if n := s.carriage.position.needle; n != nil {
		s.carriage.position.needle = s.remap(n)
	}
	return s
}

// remap returns the snapshot's copy of a live needle.
func (s *Snapshot) remap(n *Needle) *Needle {
	frozen, err := s.bed(n.isFront).Needle(n.position, n.isSlider)
	if err != nil {
		return n
	}
	return frozen
}

func (s *Snapshot) CarrierSystem() CarrierSystemState { return s.carriers }
func (s *Snapshot) Carriage() CarriageState           { return s.carriage }

// Carrier returns the frozen carrier by id.
func (s *Snapshot) Carrier(id int) (CarrierState, error) { return s.carriers.Carrier(id) }

// LastLoopID is the id of the newest loop when the snapshot was taken, or -1.
func (s *Snapshot) LastLoopID() int64 { return s.lastLoopID }

// LoopMadeBeforeSnapshot reports whether the loop existed when the snapshot was taken.
func (s *Snapshot) LoopMadeBeforeSnapshot(loop *Loop) bool {
	return s.lastLoopID >= 0 && loop.ID() <= s.lastLoopID
}

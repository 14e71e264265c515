package machine

import (
	"strconv"
	"strings"
)

// CarrierSet is an ordered set of carrier ids used together in one instruction.
type CarrierSet struct {
	ids        []int
	duplicates []int
}

// NewCarrierSet builds a set, keeping the first occurrence of each id.
func NewCarrierSet(ids ...int) *CarrierSet {
	cs := &CarrierSet{ids: make([]int, 0, len(ids))}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			cs.duplicates = append(cs.duplicates, id)
			continue
		}
		seen[id] = true
		cs.ids = append(cs.ids, id)
	}
	return cs
}

// IDs returns the carrier ids in order.
func (cs *CarrierSet) IDs() []int {
	if cs == nil {
		return nil
	}
	return append([]int(nil), cs.ids...)
}

// Duplicates returns ids that were dropped because they repeated.
func (cs *CarrierSet) Duplicates() []int {
	if cs == nil {
		return nil
	}
	return append([]int(nil), cs.duplicates...)
}

// Len returns the number of carriers in the set.
func (cs *CarrierSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.ids)
}

// Contains reports whether the carrier id is in the set.
func (cs *CarrierSet) Contains(id int) bool {
	for _, c := range cs.IDs() {
		if c == id {
			return true
		}
	}
	return false
}

// DATID is the set's id in a DAT file: the carrier digits concatenated in order.
func (cs *CarrierSet) DATID() int {
	var b strings.Builder
	for _, id := range cs.IDs() {
		b.WriteString(strconv.Itoa(id))
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return v
}

// PositionCarriersAtNeedle moves every carrier of the set beside the needle.
func (cs *CarrierSet) PositionCarriersAtNeedle(system *YarnInsertionSystem, needle *Needle, direction Direction) error {
	for _, id := range cs.IDs() {
		if err := system.PositionCarrierAtNeedle(id, needle, direction); err != nil {
			return err
		}
	}
	return nil
}

// Equal compares carrier order.
func (cs *CarrierSet) Equal(other *CarrierSet) bool {
	a, b := cs.IDs(), other.IDs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (cs *CarrierSet) String() string {
	parts := make([]string, 0, cs.Len())
	for _, id := range cs.IDs() {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, " ")
}

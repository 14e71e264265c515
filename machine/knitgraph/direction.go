package knitgraph

// PullDirection is the side of the fabric a child loop is pulled toward.
type PullDirection string

const (
	// BackToFront pulls the child through toward the front face (a knit stitch on the front bed).
	BackToFront PullDirection = "BtF"
	// FrontToBack pulls the child through toward the back face (a purl stitch).
	FrontToBack PullDirection = "FtB"
)

// Opposite returns the reverse pull direction.
func (p PullDirection) Opposite() PullDirection {
	if p == BackToFront {
		return FrontToBack
	}
	return BackToFront
}

// CrossingDirection describes how a left loop passes a right loop.
type CrossingDirection string

const (
	// OverRight means the left loop crosses over the right loop moving right.
	OverRight CrossingDirection = "+"
	// UnderRight means the left loop crosses under the right loop moving right.
	UnderRight CrossingDirection = "-"
	// NoCross marks a pair of loops that do not cross.
	NoCross CrossingDirection = "|"
)

// Opposite swaps over and under. NoCross is its own opposite.
func (c CrossingDirection) Opposite() CrossingDirection {
	switch c {
	case OverRight:
		return UnderRight
	case UnderRight:
		return OverRight
	default:
		return NoCross
	}
}

// String returns the crossing's name.
func (c CrossingDirection) String() string {
	switch c {
	case OverRight:
		return "Over_Right"
	case UnderRight:
		return "Under_Right"
	default:
		return "No_Cross"
	}
}

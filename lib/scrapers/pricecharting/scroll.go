package pricecharting

import "time"

// The listing page appends rows while the viewport keeps reaching the bottom
// of the document. There is no completion signal, so rendering keeps
// scrolling until the page height stops growing for a few consecutive
// cycles. This is a heuristic, a slow site can still leave rows unloaded and
// everything downstream tolerates a partial listing.
const (
	// consecutive no-growth cycles before the page counts as settled
	scrollStallThreshold = 3
	// hard cap on scroll cycles regardless of growth
	scrollCycleCeiling = 80
	// wait between scrolling and re-measuring the page height
	scrollSettleDelay = 500 * time.Millisecond
	// extra wait after convergence so late row images land in the markup
	scrollFinalDelay = 600 * time.Millisecond
)

type scrollState int

const (
	scrollGrowing scrollState = iota
	scrollStalled
	scrollDone
)

type scrollTracker struct {
	state      scrollState
	prevHeight int64
	stalls     int
	cycles     int
}

// observe feeds one measured page height into the tracker and returns the
// resulting state.
func (t *scrollTracker) observe(height int64) scrollState {
	t.cycles++
	if t.cycles >= scrollCycleCeiling {
		t.state = scrollDone
		return t.state
	}

	if height <= t.prevHeight {
		t.stalls++
		if t.stalls >= scrollStallThreshold {
			t.state = scrollDone
		} else {
			t.state = scrollStalled
		}
		return t.state
	}

	t.stalls = 0
	t.prevHeight = height
	t.state = scrollGrowing
	return t.state
}

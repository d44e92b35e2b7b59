package thread

import "context"

// DeleteConfirm is a two-state gesture guard against accidental deletion.
// The zero value is ready to use and starts idle.
//
// Idle --click--> Armed --click--> commit (back to Idle)
// Armed --container click--> Idle, no side effect
//
// State is local and ephemeral; it is never persisted and resets whenever the
// user clicks elsewhere in the reply's container. The machine does not re-arm
// itself after a failed commit: the error propagates and the user may click
// again.
type DeleteConfirm struct {
	armed bool
}

// Click advances the machine. When idle it arms and returns (false, nil).
// When armed it invokes del with the reply id, disarms, and returns
// (true, err) with any mutation error propagated unchanged.
func (d *DeleteConfirm) Click(ctx context.Context, replyID uint, del func(context.Context, uint) error) (bool, error) {
	if !d.armed {
		d.armed = true
		return false, nil
	}
	d.armed = false
	return true, del(ctx, replyID)
}

// Disarm returns the machine to idle without side effect.
func (d *DeleteConfirm) Disarm() {
	d.armed = false
}

// Armed reports whether the next click commits the delete.
func (d *DeleteConfirm) Armed() bool {
	return d.armed
}

// Label returns the control caption for the current state.
func (d *DeleteConfirm) Label() string {
	if d.armed {
		return "Click again to confirm"
	}
	return "Delete"
}

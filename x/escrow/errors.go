package escrow

import "github.com/iov-one/weave-escrow/errors"

// escrow takes 1010-1020
var (
	// ErrAlreadyApproved is returned when a participant approves an
	// escrow for the second time.
	ErrAlreadyApproved = errors.Register(1010, "already approved")

	// ErrAlreadyReleased is returned for any approval of an escrow whose
	// funds were already paid out.
	ErrAlreadyReleased = errors.Register(1011, "already released")

	// ErrTransfer is returned when the payout could not be delivered to
	// the destination.
	ErrTransfer = errors.Register(1012, "transfer failed")
)

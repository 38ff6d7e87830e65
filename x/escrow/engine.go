package escrow

import (
	"context"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
)

// Bank keeps the funds of escrows. Every approved deposit is credited to
// the escrow address and the payout moves the collected funds from there
// to the destination. A failing MoveCoins must not modify db.
// cash.BaseController implements it.
type Bank interface {
	CoinMint(db weave.KVStore, dest weave.Address, amount coin.Coin) error
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error
}

// ApprovalResult describes the escrow state after an approval.
type ApprovalResult struct {
	EscrowID uint64 `json:"escrow_id"`
	Approved uint64 `json:"approved"`
	Total    uint64 `json:"total"`
	Released bool   `json:"released"`
	// Payout is what was sent to the destination. It is nil unless this
	// approval released the escrow.
	Payout *coin.Coin `json:"payout,omitempty"`
}

// Engine runs the approval process of escrows kept by a registry.
type Engine struct {
	registry *Registry
	bank     Bank
}

// NewEngine returns an engine that keeps escrow funds in b.
func NewEngine(r *Registry, b Bank) *Engine {
	return &Engine{registry: r, bank: b}
}

// Approve records the approval of caller, who attached given amount to
// escrow id. The deposit is credited to the escrow address. When the
// approval brings the escrow to its approval ratio, everything collected
// is moved to the destination and the escrow is released.
//
// Checks are done in order and the first failing one is returned:
//
//	ErrNotFound        no such escrow
//	ErrAlreadyReleased the escrow was paid out already
//	ErrUnauthorized    caller is not a participant
//	ErrAmount          attached is not the required amount, malformed
//	                   amounts included
//	ErrAlreadyApproved caller approved before
//
// None of them modify state.
//
// If the transfer fails, ErrTransfer is returned together with the result.
// The deposit and the approval are kept in db and the escrow stays open.
// A later approval by another participant, or Settle, retries the payout.
func (e *Engine) Approve(ctx context.Context, db weave.KVStore, id uint64, caller weave.Address, attached coin.Coin) (*ApprovalResult, error) {
	esc, err := e.registry.Lookup(db, id)
	if err != nil {
		return nil, err
	}
	if esc.Released {
		return nil, errors.Wrapf(ErrAlreadyReleased, "escrow %d", id)
	}
	p := esc.Participant(caller)
	if p == nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a participant of escrow %d", caller, id)
	}
	if !attached.Equals(*esc.RequiredAmount) {
		return nil, errors.Wrapf(errors.ErrAmount, "attached %s, required %s", attached, esc.RequiredAmount)
	}
	if p.Approved {
		return nil, errors.Wrapf(ErrAlreadyApproved, "%s for escrow %d", caller, id)
	}

	collected, err := esc.Collected.Add(attached)
	if err != nil {
		return nil, errors.Wrap(err, "collect deposit")
	}
	if err := e.bank.CoinMint(db, esc.Address, attached); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	p.Approved = true
	esc.Collected = &collected
	if err := e.registry.Save(db, esc); err != nil {
		return nil, err
	}

	return e.settle(ctx, db, esc)
}

// Settle pays out an escrow that has enough approvals but was not
// released, which only happens after a failed transfer. It returns
// ErrState if the approval ratio is not met.
func (e *Engine) Settle(ctx context.Context, db weave.KVStore, id uint64) (*ApprovalResult, error) {
	esc, err := e.registry.Lookup(db, id)
	if err != nil {
		return nil, err
	}
	if esc.Released {
		return nil, errors.Wrapf(ErrAlreadyReleased, "escrow %d", id)
	}
	if !esc.ApprovalRatio.MeetsRatio(esc.ApprovedCount(), esc.Total()) {
		return nil, errors.Wrapf(errors.ErrState, "escrow %d approval ratio %s not met", id, esc.ApprovalRatio)
	}
	return e.settle(ctx, db, esc)
}

// settle releases the escrow if its ratio is met. esc must be open.
func (e *Engine) settle(ctx context.Context, db weave.KVStore, esc *Escrow) (*ApprovalResult, error) {
	res := &ApprovalResult{
		EscrowID: esc.ID,
		Approved: esc.ApprovedCount(),
		Total:    esc.Total(),
	}
	if !esc.ApprovalRatio.MeetsRatio(res.Approved, res.Total) {
		return res, nil
	}

	payout := *esc.Collected
	if err := e.bank.MoveCoins(db, esc.Address, esc.Destination, payout); err != nil {
		return res, errors.Wrapf(ErrTransfer, "escrow %d: %s", esc.ID, err)
	}

	esc.Released = true
	if err := e.registry.Save(db, esc); err != nil {
		return nil, err
	}
	res.Released = true
	res.Payout = &payout
	return res, nil
}

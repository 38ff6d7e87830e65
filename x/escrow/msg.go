package escrow

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
)

// CreateMsg requests a new escrow.
type CreateMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	// Participants may contain duplicates. They are collapsed into a
	// single group member.
	Participants   []weave.Address `json:"participants"`
	RequiredAmount *coin.Coin      `json:"required_amount"`
	ApprovalRatio  *weave.Fraction `json:"approval_ratio"`
	Destination    weave.Address   `json:"destination"`
}

// Validate makes sure that this is sensible. Every problem is reported as
// an ErrInput tagged with the name of the offending field.
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())

	if len(m.Participants) == 0 {
		errs = errors.Append(errs, errors.Field("Participants", errors.ErrInput, "at least one participant required"))
	}
	for i, p := range m.Participants {
		if err := p.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Participants", errors.ErrInput, "participant %d: %s", i, err))
		}
	}

	switch {
	case m.RequiredAmount == nil:
		errs = errors.Append(errs, errors.Field("RequiredAmount", errors.ErrInput, "required"))
	case m.RequiredAmount.Validate() != nil:
		errs = errors.Append(errs, errors.Field("RequiredAmount", errors.ErrInput, "%s", m.RequiredAmount.Validate()))
	case !m.RequiredAmount.IsPositive():
		errs = errors.Append(errs, errors.Field("RequiredAmount", errors.ErrInput, "must be positive"))
	}

	if err := validateRatio(m.ApprovalRatio); err != nil {
		errs = errors.Append(errs, errors.Field("ApprovalRatio", errors.ErrInput, "%s", err))
	}
	if err := m.Destination.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Destination", errors.ErrInput, "%s", err))
	}
	return errs
}

// uniqueParticipants returns participant addresses with duplicates removed.
// The order of the first occurrence is kept.
func (m *CreateMsg) uniqueParticipants() []weave.Address {
	seen := make(map[string]struct{}, len(m.Participants))
	res := make([]weave.Address, 0, len(m.Participants))
	for _, p := range m.Participants {
		if _, ok := seen[string(p)]; ok {
			continue
		}
		seen[string(p)] = struct{}{}
		res = append(res, p)
	}
	return res
}

// ApproveMsg is sent by a participant to approve an escrow. Amount must be
// exactly the escrow required amount.
type ApproveMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	EscrowID uint64          `json:"escrow_id"`
	Caller   weave.Address   `json:"caller"`
	Amount   *coin.Coin      `json:"amount"`
}

// Validate makes sure that this is sensible. The amount is only required
// to be present, comparing it with the escrow is done when the approval is
// processed.
func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if err := m.Caller.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Caller", errors.ErrInput, "%s", err))
	}
	// Any attached amount other than the required one is rejected when
	// the approval is processed.
	if m.Amount == nil {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInput, "required"))
	}
	return errs
}

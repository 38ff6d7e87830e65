package escrow

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/migration"
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where escrow records are stored.
const BucketName = "esc"

// Participant is a single member of an escrow group.
type Participant struct {
	Address  weave.Address `json:"address"`
	Approved bool          `json:"approved"`
}

// Escrow is the state of a single escrow.
type Escrow struct {
	Metadata *weave.Metadata `json:"metadata"`
	// ID is assigned by the registry on creation.
	ID           uint64         `json:"id"`
	Participants []*Participant `json:"participants"`
	// RequiredAmount is what every participant attaches when approving.
	RequiredAmount *coin.Coin      `json:"required_amount"`
	ApprovalRatio  *weave.Fraction `json:"approval_ratio"`
	Destination    weave.Address   `json:"destination"`
	// Collected is the sum of all deposits attached so far.
	Collected *coin.Coin `json:"collected"`
	Released  bool       `json:"released"`
	// Address is where the escrow holds the collected funds.
	Address weave.Address `json:"address"`
}

var _ orm.Model = (*Escrow)(nil)

func init() {
	migration.MustRegister(1, &Escrow{}, migration.NoModification)
}

// GetMetadata implements migration.Migratable.
func (e *Escrow) GetMetadata() *weave.Metadata {
	return e.Metadata
}

// Marshal implements weave.Persistent.
func (e *Escrow) Marshal() ([]byte, error) {
	return weave.MarshalBinary(e)
}

// Unmarshal implements weave.Persistent.
func (e *Escrow) Unmarshal(raw []byte) error {
	return weave.UnmarshalBinary(raw, e)
}

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Participants", validateParticipants(e.Participants))

	if e.RequiredAmount == nil {
		errs = errors.Append(errs, errors.Field("RequiredAmount", errors.ErrEmpty, "required"))
	} else if err := e.RequiredAmount.Validate(); err != nil {
		errs = errors.AppendField(errs, "RequiredAmount", err)
	} else if !e.RequiredAmount.IsPositive() {
		errs = errors.Append(errs, errors.Field("RequiredAmount", errors.ErrAmount, "must be positive"))
	}

	errs = errors.AppendField(errs, "ApprovalRatio", validateRatio(e.ApprovalRatio))
	errs = errors.AppendField(errs, "Destination", e.Destination.Validate())
	errs = errors.AppendField(errs, "Address", e.Address.Validate())

	if e.Collected == nil {
		errs = errors.Append(errs, errors.Field("Collected", errors.ErrEmpty, "required"))
	} else if err := e.Collected.Validate(); err != nil {
		errs = errors.AppendField(errs, "Collected", err)
	} else if e.RequiredAmount != nil {
		want, err := e.RequiredAmount.Multiply(int64(e.ApprovedCount()))
		if err != nil {
			errs = errors.AppendField(errs, "Collected", err)
		} else if !want.Equals(*e.Collected) {
			errs = errors.Append(errs, errors.Field("Collected", errors.ErrState,
				"got %s, approvals require %s", e.Collected, want))
		}
	}

	if e.Released && e.ApprovalRatio != nil && !e.ApprovalRatio.MeetsRatio(e.ApprovedCount(), e.Total()) {
		errs = errors.Append(errs, errors.Field("Released", errors.ErrState, "approval ratio not met"))
	}
	return errs
}

func validateParticipants(ps []*Participant) error {
	if len(ps) == 0 {
		return errors.Wrap(errors.ErrEmpty, "at least one participant required")
	}
	var errs error
	seen := make(map[string]struct{}, len(ps))
	for i, p := range ps {
		if p == nil {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrEmpty, "participant %d", i))
			continue
		}
		if err := p.Address.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "participant %d", i))
			continue
		}
		if _, ok := seen[string(p.Address)]; ok {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrDuplicate, "participant %d", i))
		}
		seen[string(p.Address)] = struct{}{}
	}
	return errs
}

// validateRatio requires 0 < ratio <= 1.
func validateRatio(r *weave.Fraction) error {
	if r == nil {
		return errors.Wrap(errors.ErrEmpty, "required")
	}
	if r.Denominator == 0 {
		return errors.Wrap(errors.ErrState, "zero division")
	}
	if r.Numerator == 0 {
		return errors.Wrap(errors.ErrInput, "must be greater than zero")
	}
	if r.Numerator > r.Denominator {
		return errors.Wrap(errors.ErrInput, "must not be greater than one")
	}
	return nil
}

// Copy makes a deep copy of the escrow.
func (e *Escrow) Copy() orm.CloneableData {
	ps := make([]*Participant, len(e.Participants))
	for i, p := range e.Participants {
		ps[i] = &Participant{Address: p.Address.Clone(), Approved: p.Approved}
	}
	var ratio *weave.Fraction
	if e.ApprovalRatio != nil {
		r := *e.ApprovalRatio
		ratio = &r
	}
	return &Escrow{
		Metadata:       e.Metadata.Copy(),
		ID:             e.ID,
		Participants:   ps,
		RequiredAmount: e.RequiredAmount.Clone(),
		ApprovalRatio:  ratio,
		Destination:    e.Destination.Clone(),
		Collected:      e.Collected.Clone(),
		Released:       e.Released,
		Address:        e.Address.Clone(),
	}
}

// Participant returns the group member with given address or nil.
func (e *Escrow) Participant(addr weave.Address) *Participant {
	for _, p := range e.Participants {
		if p.Address.Equals(addr) {
			return p
		}
	}
	return nil
}

// ApprovedCount returns the number of participants that approved.
func (e *Escrow) ApprovedCount() uint64 {
	var n uint64
	for _, p := range e.Participants {
		if p.Approved {
			n++
		}
	}
	return n
}

// Total returns the number of participants.
func (e *Escrow) Total() uint64 {
	return uint64(len(e.Participants))
}

// Condition calculates the address of an escrow given its ID.
func Condition(id uint64) weave.Condition {
	return weave.NewCondition("escrow", "seq", orm.EncodeSequence(id))
}

// NewBucket returns the bucket that stores all escrows. Records are keyed
// by the sequence encoded ID.
func NewBucket() orm.ModelBucket {
	return migration.NewModelBucket(orm.NewModelBucket(BucketName))
}

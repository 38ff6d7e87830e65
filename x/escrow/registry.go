package escrow

import (
	"context"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// Registry owns escrow records and assigns their IDs.
type Registry struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewRegistry returns a registry that keeps escrows in the escrow bucket.
func NewRegistry() *Registry {
	return &Registry{
		bucket: NewBucket(),
		seq:    orm.NewSequence("escrow", "id"),
	}
}

// Create validates given message and stores a new escrow with all
// approvals unset. It returns the ID assigned to the escrow. IDs start at 0
// and are never reused.
//
// Nothing is written when the message is not valid.
func (r *Registry) Create(ctx context.Context, db weave.KVStore, msg *CreateMsg) (uint64, error) {
	if err := msg.Validate(); err != nil {
		return 0, err
	}
	addrs := msg.uniqueParticipants()

	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	if conf != nil && len(addrs) > int(conf.MaxParticipants) {
		return 0, errors.Field("Participants", errors.ErrInput,
			"%d participants, at most %d allowed", len(addrs), conf.MaxParticipants)
	}

	id, err := r.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire ID")
	}

	ps := make([]*Participant, len(addrs))
	for i, a := range addrs {
		ps[i] = &Participant{Address: a.Clone()}
	}
	ratio := *msg.ApprovalRatio
	esc := &Escrow{
		Metadata:       &weave.Metadata{Schema: 1},
		ID:             id,
		Participants:   ps,
		RequiredAmount: msg.RequiredAmount.Clone(),
		ApprovalRatio:  &ratio,
		Destination:    msg.Destination.Clone(),
		Collected:      &coin.Coin{Ticker: msg.RequiredAmount.Ticker},
		Address:        Condition(id).Address(),
	}
	if err := r.Save(db, esc); err != nil {
		return 0, err
	}
	weave.GetLogger(ctx).Debug("escrow stored", "escrow", id, "participants", len(ps))
	return id, nil
}

// Lookup returns the escrow with given ID. It returns ErrNotFound if there
// is no such escrow.
func (r *Registry) Lookup(db weave.ReadOnlyKVStore, id uint64) (*Escrow, error) {
	var esc Escrow
	if err := r.bucket.One(db, orm.EncodeSequence(id), &esc); err != nil {
		return nil, errors.Wrapf(err, "escrow %d", id)
	}
	return &esc, nil
}

// Save writes given escrow under its ID.
func (r *Registry) Save(db weave.KVStore, esc *Escrow) error {
	if err := r.bucket.Put(db, orm.EncodeSequence(esc.ID), esc); err != nil {
		return errors.Wrapf(err, "cannot store escrow %d", esc.ID)
	}
	return nil
}

// NextID returns the ID that the next created escrow gets.
func (r *Registry) NextID(db weave.ReadOnlyKVStore) (uint64, error) {
	return r.seq.Peek(db)
}

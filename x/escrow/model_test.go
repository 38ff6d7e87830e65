package escrow

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestEscrowValidate(t *testing.T) {
	alice := weavetest.NewAddress()
	bert := weavetest.NewAddress()

	valid := func() *Escrow {
		return &Escrow{
			Metadata: &weave.Metadata{Schema: 1},
			ID:       3,
			Participants: []*Participant{
				{Address: alice, Approved: true},
				{Address: bert},
			},
			RequiredAmount: coin.NewCoinp(10, 0, "IOV"),
			ApprovalRatio:  &weave.Fraction{Numerator: 1, Denominator: 1},
			Destination:    weavetest.NewAddress(),
			Collected:      coin.NewCoinp(10, 0, "IOV"),
			Address:        Condition(3).Address(),
		}
	}

	cases := map[string]struct {
		Modify    func(*Escrow)
		WantField string
		WantErr   *errors.Error
	}{
		"valid model": {
			Modify: func(*Escrow) {},
		},
		"missing metadata": {
			Modify:    func(e *Escrow) { e.Metadata = nil },
			WantField: "Metadata",
			WantErr:   errors.ErrMetadata,
		},
		"no participants": {
			Modify: func(e *Escrow) {
				e.Participants = nil
				e.Collected = coin.NewCoinp(0, 0, "IOV")
			},
			WantField: "Participants",
			WantErr:   errors.ErrEmpty,
		},
		"duplicated participant": {
			Modify: func(e *Escrow) {
				e.Participants = append(e.Participants, &Participant{Address: bert})
			},
			WantField: "Participants",
			WantErr:   errors.ErrDuplicate,
		},
		"zero required amount": {
			Modify: func(e *Escrow) {
				e.RequiredAmount = coin.NewCoinp(0, 0, "IOV")
				e.Collected = coin.NewCoinp(0, 0, "IOV")
			},
			WantField: "RequiredAmount",
			WantErr:   errors.ErrAmount,
		},
		"zero approval ratio": {
			Modify:    func(e *Escrow) { e.ApprovalRatio = &weave.Fraction{Numerator: 0, Denominator: 3} },
			WantField: "ApprovalRatio",
			WantErr:   errors.ErrInput,
		},
		"approval ratio greater than one": {
			Modify:    func(e *Escrow) { e.ApprovalRatio = &weave.Fraction{Numerator: 5, Denominator: 4} },
			WantField: "ApprovalRatio",
			WantErr:   errors.ErrInput,
		},
		"collected does not match approvals": {
			Modify:    func(e *Escrow) { e.Collected = coin.NewCoinp(20, 0, "IOV") },
			WantField: "Collected",
			WantErr:   errors.ErrState,
		},
		"released without enough approvals": {
			Modify:    func(e *Escrow) { e.Released = true },
			WantField: "Released",
			WantErr:   errors.ErrState,
		},
		"missing destination": {
			Modify:    func(e *Escrow) { e.Destination = nil },
			WantField: "Destination",
			WantErr:   errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			esc := valid()
			tc.Modify(esc)
			err := esc.Validate()
			if tc.WantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.WantField, tc.WantErr)
		})
	}
}

func TestEscrowCopy(t *testing.T) {
	esc := &Escrow{
		Metadata:       &weave.Metadata{Schema: 1},
		Participants:   []*Participant{{Address: weavetest.NewAddress()}},
		RequiredAmount: coin.NewCoinp(1, 0, "IOV"),
		ApprovalRatio:  &weave.Fraction{Numerator: 1, Denominator: 1},
		Destination:    weavetest.NewAddress(),
		Collected:      coin.NewCoinp(0, 0, "IOV"),
		Address:        Condition(0).Address(),
	}
	cpy := esc.Copy().(*Escrow)
	assert.Equal(t, esc, cpy)

	cpy.Participants[0].Approved = true
	cpy.Collected.Whole = 1
	cpy.ApprovalRatio.Numerator = 0
	assert.Equal(t, false, esc.Participants[0].Approved)
	assert.Equal(t, int64(0), esc.Collected.Whole)
	assert.Equal(t, uint32(1), esc.ApprovalRatio.Numerator)
}

func TestEscrowPersistence(t *testing.T) {
	esc := &Escrow{
		Metadata: &weave.Metadata{Schema: 1},
		ID:       7,
		Participants: []*Participant{
			{Address: weavetest.NewAddress(), Approved: true},
			{Address: weavetest.NewAddress()},
		},
		RequiredAmount: coin.NewCoinp(2, 500000000, "ETH"),
		ApprovalRatio:  &weave.Fraction{Numerator: 2, Denominator: 3},
		Destination:    weavetest.NewAddress(),
		Collected:      coin.NewCoinp(2, 500000000, "ETH"),
		Address:        Condition(7).Address(),
	}
	raw, err := esc.Marshal()
	assert.Nil(t, err)

	var got Escrow
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, esc, &got)
	assert.Nil(t, got.Validate())
}

func TestBucketRejectsUnknownSchema(t *testing.T) {
	db := store.MemStore()
	esc := &Escrow{
		Metadata:       &weave.Metadata{Schema: 2},
		Participants:   []*Participant{{Address: weavetest.NewAddress()}},
		RequiredAmount: coin.NewCoinp(1, 0, "IOV"),
		ApprovalRatio:  &weave.Fraction{Numerator: 1, Denominator: 1},
		Destination:    weavetest.NewAddress(),
		Collected:      coin.NewCoinp(0, 0, "IOV"),
		Address:        Condition(0).Address(),
	}
	key := weavetest.SequenceID(0)
	assert.IsErr(t, errors.ErrSchema, NewBucket().Put(db, key, esc))

	esc.Metadata.Schema = 1
	assert.Nil(t, NewBucket().Put(db, key, esc))
	var got Escrow
	assert.Nil(t, NewBucket().One(db, key, &got))
	assert.Equal(t, esc, &got)
}

func TestConditionIsUniquePerID(t *testing.T) {
	assert.Equal(t, Condition(1).Address(), Condition(1).Address())
	if Condition(1).Address().Equals(Condition(2).Address()) {
		t.Fatal("two escrows share an address")
	}
}

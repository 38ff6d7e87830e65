package escrow

import (
	"bytes"
	"context"
	"hash/maphash"
	"sync"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/puzpuzpuz/xsync/v2"
)

// Service is the entry point to the escrow extension. It is safe for
// concurrent use as long as the backing store is, see store.Locked.
//
// Creation is serialized. Approvals of one escrow are serialized while
// approvals of different escrows run in parallel, unless they share a
// destination wallet. Every call works on its own cache of the backing
// store, which is written back only if the call succeeds.
type Service struct {
	db       weave.CacheableKVStore
	registry *Registry
	engine   *Engine
	metrics  *Metrics

	createMu sync.Mutex
	locks    *xsync.MapOf[uint64, *sync.Mutex]
	wallets  *xsync.MapOf[string, *sync.Mutex]
}

// NewService returns a service that keeps escrows in db and their funds in
// bank. Metrics may be nil.
func NewService(db weave.CacheableKVStore, bank Bank, metrics *Metrics) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	registry := NewRegistry()
	return &Service{
		db:       db,
		registry: registry,
		engine:   NewEngine(registry, bank),
		metrics:  metrics,
		locks:    xsync.NewTypedMapOf[uint64, *sync.Mutex](hashID),
		wallets:  xsync.NewMapOf[*sync.Mutex](),
	}
}

func hashID(seed maphash.Seed, id uint64) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.Write(orm.EncodeSequence(id))
	return h.Sum64()
}

// CreateEscrow stores a new escrow and returns its ID.
func (s *Service) CreateEscrow(ctx context.Context, msg *CreateMsg) (id uint64, err error) {
	defer errors.Recover(&err)

	s.createMu.Lock()
	defer s.createMu.Unlock()

	cache := s.db.CacheWrap()
	id, err = s.registry.Create(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		return 0, err
	}
	if err := cache.Write(); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.metrics.created.Inc()
	weave.GetLogger(ctx).Info("escrow created",
		"escrow", id, "participants", len(msg.Participants), "amount", msg.RequiredAmount, "ratio", msg.ApprovalRatio)
	return id, nil
}

// Approve processes an approval. See Engine.Approve for the rules.
func (s *Service) Approve(ctx context.Context, msg *ApproveMsg) (res *ApprovalResult, err error) {
	defer func() { s.metrics.observeApproval(res, err) }()
	defer errors.Recover(&err)

	if err := msg.Validate(); err != nil {
		return nil, err
	}
	ctx = weave.WithLogInfo(ctx, "escrow", msg.EscrowID, "caller", msg.Caller)

	return s.withLock(ctx, msg.EscrowID, func(db weave.KVStore) (*ApprovalResult, error) {
		return s.engine.Approve(ctx, db, msg.EscrowID, msg.Caller, *msg.Amount)
	})
}

// Settle retries the payout of an escrow whose transfer failed before.
func (s *Service) Settle(ctx context.Context, id uint64) (res *ApprovalResult, err error) {
	defer errors.Recover(&err)

	ctx = weave.WithLogInfo(ctx, "escrow", id)
	res, err = s.withLock(ctx, id, func(db weave.KVStore) (*ApprovalResult, error) {
		return s.engine.Settle(ctx, db, id)
	})
	if err == nil && res.Released {
		s.metrics.released.Inc()
	}
	return res, err
}

// withLock runs fn with exclusive access to escrow id, in a cache wrap of
// the backing store. A transfer failure still writes the cache so that
// the approval is kept.
func (s *Service) withLock(ctx context.Context, id uint64, fn func(weave.KVStore) (*ApprovalResult, error)) (*ApprovalResult, error) {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu.Lock()
	defer mu.Unlock()

	// Both wallets of the escrow are read and written. The destination
	// may be shared with other escrows.
	if esc, err := s.registry.Lookup(s.db, id); err == nil {
		unlock := s.lockWallets(esc.Address, esc.Destination)
		defer unlock()
	}

	log := weave.GetLogger(ctx)
	cache := s.db.CacheWrap()
	res, err := fn(cache)
	if err != nil && !ErrTransfer.Is(err) {
		cache.Discard()
		log.Debug("approval rejected", "err", err)
		return nil, err
	}
	if werr := cache.Write(); werr != nil {
		return nil, errors.Wrap(errors.ErrDatabase, werr.Error())
	}
	if err != nil {
		log.Error("escrow payout failed", "err", err, "approved", res.Approved, "total", res.Total)
		return res, err
	}
	if res.Released {
		log.Info("escrow released", "payout", res.Payout, "approved", res.Approved, "total", res.Total)
	} else {
		log.Info("escrow approved", "approved", res.Approved, "total", res.Total)
	}
	return res, nil
}

// lockWallets locks given wallets in address order, so that two calls never
// wait for each other.
func (s *Service) lockWallets(a, b weave.Address) (unlock func()) {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	first, _ := s.wallets.LoadOrStore(string(a), &sync.Mutex{})
	first.Lock()
	if a.Equals(b) {
		return first.Unlock
	}
	second, _ := s.wallets.LoadOrStore(string(b), &sync.Mutex{})
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

// GetEscrow returns the escrow with given ID. It never modifies state.
func (s *Service) GetEscrow(ctx context.Context, id uint64) (*Escrow, error) {
	return s.registry.Lookup(s.db, id)
}

// NextID returns the ID the next created escrow gets.
func (s *Service) NextID(ctx context.Context) (uint64, error) {
	return s.registry.NextID(s.db)
}

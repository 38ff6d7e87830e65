package escrow

import (
	"context"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

const optKey = "escrow"

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the escrow configuration found under conf.escrow, if
// any, and creates every escrow listed under escrow. Escrows get IDs in the
// order they are listed.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var escrows []CreateMsg
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return err
	}
	registry := NewRegistry()
	for i := range escrows {
		msg := &escrows[i]
		if msg.Metadata == nil {
			msg.Metadata = &weave.Metadata{Schema: 1}
		}
		if _, err := registry.Create(context.Background(), db, msg); err != nil {
			return errors.Wrapf(err, "escrow %d", i)
		}
	}
	return nil
}

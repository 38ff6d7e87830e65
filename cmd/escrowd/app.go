package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/store/iavl"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

const dbName = "escrowd"

// application is the state kept in the home directory together with the
// services that operate on it.
type application struct {
	logger  log.Logger
	commit  *iavl.CommitStore
	db      *store.Locked
	wallets cash.Controller
	escrows *escrow.Service
}

// openApplication loads the latest committed state from home. Call Close
// when done.
func openApplication(home string, logger log.Logger) (*application, error) {
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create home: %s", err)
	}
	cs, err := iavl.NewCommitStore(home, dbName)
	if err != nil {
		return nil, err
	}
	if err := cs.LoadLatestVersion(); err != nil {
		cs.Close()
		return nil, err
	}

	db := store.NewLocked(cs.Working())
	wallets := cash.NewController(cash.NewBucket())
	return &application{
		logger:  logger,
		commit:  cs,
		db:      db,
		wallets: wallets,
		escrows: escrow.NewService(db, wallets, nil),
	}, nil
}

// Context returns a context carrying the application logger.
func (a *application) Context() context.Context {
	return weave.WithLogger(context.Background(), a.logger)
}

// Version returns the latest committed version. Zero means nothing was
// committed yet.
func (a *application) Version() (int64, error) {
	id, err := a.commit.LatestVersion()
	if err != nil {
		return 0, err
	}
	return id.Version, nil
}

// Commit persists all changes as a new version.
func (a *application) Commit() error {
	id, err := a.commit.Commit()
	if err != nil {
		return errors.Wrap(err, "commit")
	}
	a.logger.Info("state committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

func (a *application) Close() {
	a.commit.Close()
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot serialize: %s", err)
	}
	_, err = out.Write(append(raw, '\n'))
	return err
}

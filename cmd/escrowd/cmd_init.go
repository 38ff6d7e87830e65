package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

// initializers load genesis state of all extensions.
var initializers = weave.ChainInitializers(
	cash.Initializer{},
	escrow.Initializer{},
)

func cmdInit(home string, logger log.Logger, out io.Writer, args []string) error {
	fl := flag.NewFlagSet("init", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), `
Load the genesis file into an empty store and commit the first version.

The genesis file is a JSON object. The "cash" key holds initial wallets, the
"escrow" key initial escrows and "conf" the per extension configuration.
		`)
		fl.PrintDefaults()
	}
	var (
		genesisFl = fl.String("genesis", "", "Path to the genesis file. Defaults to <home>/genesis.json")
	)
	fl.Parse(args)

	path := *genesisFl
	if path == "" {
		path = filepath.Join(home, "genesis.json")
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	opts, err := weave.ParseOptions(raw)
	if err != nil {
		return errors.Wrap(err, "genesis")
	}

	app, err := openApplication(home, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	switch v, err := app.Version(); {
	case err != nil:
		return err
	case v != 0:
		return errors.Wrapf(errors.ErrState, "store already initialized, version %d", v)
	}

	cache := app.db.CacheWrap()
	if err := initializers.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := app.Commit(); err != nil {
		return err
	}
	logger.Info("genesis loaded", "path", path)
	return nil
}

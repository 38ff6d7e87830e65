package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/tendermint/tendermint/libs/log"
)

func cmdBalance(home string, logger log.Logger, out io.Writer, args []string) error {
	fl := flag.NewFlagSet("balance", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), `
Print all coins held by given address. An unknown address holds nothing.
		`)
		fl.PrintDefaults()
	}
	var (
		addressFl = flAddress(fl, "address", "", "Wallet owner address.")
	)
	fl.Parse(args)

	app, err := openApplication(home, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	coins, err := app.wallets.Balance(app.db, *addressFl)
	switch {
	case errors.ErrNotFound.Is(err):
		coins = coin.Coins{}
	case err != nil:
		return err
	case coins == nil:
		coins = coin.Coins{}
	}
	return writeJSON(out, coins)
}

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

func cmdCreate(home string, logger log.Logger, out io.Writer, args []string) error {
	fl := flag.NewFlagSet("create", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), `
Create a new escrow and print it. Every participant approves by attaching
exactly the required amount. Once the approval ratio of all participants is
reached, everything collected is paid out to the destination.
		`)
		fl.PrintDefaults()
	}
	var (
		participantsFl = flAddresses(fl, "participant", "Participant address. Use several times or separate addresses with a comma.")
		amountFl       = flCoin(fl, "amount", "", "Amount that each participant attaches when approving, for example \"10 IOV\".")
		ratioFl        = flFraction(fl, "ratio", "1/1", "Part of participants that must approve to release the funds.")
		destinationFl  = flAddress(fl, "destination", "", "Address that receives the funds.")
	)
	fl.Parse(args)

	app, err := openApplication(home, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := app.Context()
	id, err := app.escrows.CreateEscrow(ctx, &escrow.CreateMsg{
		Metadata:       &weave.Metadata{Schema: 1},
		Participants:   *participantsFl,
		RequiredAmount: amountFl,
		ApprovalRatio:  ratioFl,
		Destination:    *destinationFl,
	})
	if err != nil {
		return err
	}
	if err := app.Commit(); err != nil {
		return err
	}
	esc, err := app.escrows.GetEscrow(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(out, esc)
}

func cmdApprove(home string, logger log.Logger, out io.Writer, args []string) error {
	fl := flag.NewFlagSet("approve", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), `
Approve an escrow as one of its participants and print the approval result.
		`)
		fl.PrintDefaults()
	}
	var (
		escrowFl = fl.Uint64("escrow", 0, "ID of the escrow to approve.")
		callerFl = flAddress(fl, "caller", "", "Address of the approving participant.")
		amountFl = flCoin(fl, "amount", "", "Attached amount. Must be the escrow required amount.")
	)
	fl.Parse(args)

	app, err := openApplication(home, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.escrows.Approve(app.Context(), &escrow.ApproveMsg{
		Metadata: &weave.Metadata{Schema: 1},
		EscrowID: *escrowFl,
		Caller:   *callerFl,
		Amount:   amountFl,
	})
	// A failed payout keeps the approval, it must be committed as well.
	if err != nil && !escrow.ErrTransfer.Is(err) {
		return err
	}
	if cerr := app.Commit(); cerr != nil {
		return cerr
	}
	if err != nil {
		return err
	}
	return writeJSON(out, res)
}

func cmdSettle(home string, logger log.Logger, out io.Writer, args []string) error {
	fl := flag.NewFlagSet("settle", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), `
Retry the payout of an escrow that has enough approvals but whose transfer
failed.
		`)
		fl.PrintDefaults()
	}
	var (
		escrowFl = fl.Uint64("escrow", 0, "ID of the escrow to settle.")
	)
	fl.Parse(args)

	app, err := openApplication(home, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.escrows.Settle(app.Context(), *escrowFl)
	if err != nil {
		return err
	}
	if err := app.Commit(); err != nil {
		return err
	}
	return writeJSON(out, res)
}

func cmdShow(home string, logger log.Logger, out io.Writer, args []string) error {
	fl := flag.NewFlagSet("show", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), `
Print the escrow with given ID.
		`)
		fl.PrintDefaults()
	}
	var (
		escrowFl = fl.Uint64("escrow", 0, "ID of the escrow.")
	)
	fl.Parse(args)

	app, err := openApplication(home, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	esc, err := app.escrows.GetEscrow(app.Context(), *escrowFl)
	if err != nil {
		return err
	}
	return writeJSON(out, esc)
}

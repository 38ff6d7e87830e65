package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *weave.Address {
	var a weave.Address
	if defaultVal != "" {
		var err error
		a, err = weave.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q weave.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flCoin returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flCoin(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Coin {
	var c coin.Coin
	if defaultVal != "" {
		var err error
		c, err = coin.ParseHumanFormat(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q coin.Coin flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&c, name, usage)
	return &c
}

// flFraction returns a fraction flag value. See flCoin.
func flFraction(fl *flag.FlagSet, name, defaultVal, usage string) *weave.Fraction {
	var f weave.Fraction
	if defaultVal != "" {
		if err := f.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q weave.Fraction flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&f, name, usage)
	return &f
}

// flAddresses returns a list of addresses. Each use of the flag appends an
// address, a single value can also hold several comma separated addresses.
func flAddresses(fl *flag.FlagSet, name, usage string) *[]weave.Address {
	var addrs addressList
	fl.Var(&addrs, name, usage)
	return (*[]weave.Address)(&addrs)
}

type addressList []weave.Address

func (l addressList) String() string {
	s := make([]string, len(l))
	for i, a := range l {
		s[i] = a.String()
	}
	return strings.Join(s, ",")
}

func (l *addressList) Set(raw string) error {
	for _, enc := range strings.Split(raw, ",") {
		a, err := weave.ParseAddress(strings.TrimSpace(enc))
		if err != nil {
			return err
		}
		*l = append(*l, a)
	}
	return nil
}

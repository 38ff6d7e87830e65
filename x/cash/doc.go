/*
Package cash defines a simple ledger of wallets. A wallet is a set of coins
owned by an address.

There is no logic in the coins (tokens), except that the balance
of any coin may not go below zero when it is moved. Thus, this
implementation is referred to as cash. Simple and safe.

Other extensions hold funds in wallets of their own condition addresses and
move them through a Controller, inside the store they work on.
*/
package cash

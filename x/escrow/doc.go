/*
Package escrow implements a multi party escrow.

An escrow is created for a fixed group of participants, a required amount
and an approval ratio. Each participant approves the escrow by attaching
exactly the required amount. Once the number of approvals reaches the
ratio of all participants, everything that was collected is paid out to
the destination in a single transfer and the escrow is released. A
released escrow accepts no further approvals.

	Open --approve--> Open --approve (ratio met)--> Released

Registry owns the escrow records and issues sequential IDs, starting at
0. Engine runs the approval state machine on top of a registry. Service
combines both with the locking and store handling that make it safe to
call from many goroutines at once.

Funds are kept by a Bank. Every deposit is credited to the wallet of the
escrow address and the payout moves the collected funds from that wallet
to the destination, all within the store the approval runs on. The cash
extension provides the Bank.
*/
package escrow

package core

// Metrics records domain level counters. Implementations must be safe for
// concurrent use and must never fail the calling operation.
type Metrics interface {
	// LedgerEntry records one appended ledger transaction
	LedgerEntry(txType string, coins int64)
	// LedgerRejected records a debit refused for insufficient funds
	LedgerRejected(txType string)
	// RequestTransition records a committed request state change
	RequestTransition(from, to string)
	// Settlement records the split of a completed session
	Settlement(coinsOwed, coinsRefunded int64)
	// NotificationFailed records a failed best-effort delivery
	NotificationFailed(channel string)
}

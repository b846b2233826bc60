package core

// IDGenerator produces opaque unique identifiers for accounts, requests,
// ledger transactions and notifications.
type IDGenerator interface {
	NewID() string
}

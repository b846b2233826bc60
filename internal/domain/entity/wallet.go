package entity

// WalletSummary is the balance view of an account
type WalletSummary struct {
	UserID        string
	Coins         int64
	CurrencyValue string
	MBEquivalent  int64
}

// ProviderSummary is what requesters see when choosing a provider. It never
// carries the provider's balance.
type ProviderSummary struct {
	UserID                  string
	Name                    string
	TotalMBShared           int64
	TotalSessionsAsProvider int64
}

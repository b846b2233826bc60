package metrics

import "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"

// Noop discards every measurement
type Noop struct{}

var _ core.Metrics = Noop{}

func (Noop) LedgerEntry(string, int64) {}
func (Noop) LedgerRejected(string) {}
func (Noop) RequestTransition(string, string) {}
func (Noop) Settlement(int64, int64) {}
func (Noop) NotificationFailed(string) {}

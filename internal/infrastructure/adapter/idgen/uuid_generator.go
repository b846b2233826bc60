package idgen

import (
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/google/uuid"
)

// UUIDGenerator issues version 7 UUIDs. Ids from one process sort in the
// order they were issued, which breaks created_at ties in the journal.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUID generator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

var _ core.IDGenerator = (*UUIDGenerator)(nil)

// NewID returns a new UUID string, falling back to a random one if the
// time-ordered generator fails
func (g *UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

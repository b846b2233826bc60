package persistence

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// UserRepository stores accounts and their balances. Balance changes are
// conditional single-statement updates so the store itself never lets a
// balance go negative.
type UserRepository interface {
	// GetByID retrieves an account
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	// - ErrCollaboratorUnavailable: If the database is unreachable
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves an account by its normalized email
	//
	// Possible errors:
	// - ErrUserNotFound: If no account uses the email
	// - ErrCollaboratorUnavailable: If the database is unreachable
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create inserts a new account with a zero balance
	//
	// Possible errors:
	// - ErrDuplicateUser: If the id or email is taken
	// - ErrCollaboratorUnavailable: If the database is unreachable
	Create(ctx context.Context, user *entity.User) error

	// Credit adds coins and returns the new balance
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	// - ErrCollaboratorUnavailable: If the database is unreachable
	Credit(ctx context.Context, id string, coins int64) (int64, error)

	// Debit removes coins only while the balance covers them and returns the new balance
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	// - ErrInsufficientFunds: If the balance is below coins
	// - ErrTransientConflict: If a concurrent writer aborted the statement
	// - ErrCollaboratorUnavailable: If the database is unreachable
	Debit(ctx context.Context, id string, coins int64) (int64, error)

	// RecordProviderSession adds shared MB and one provider session
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	RecordProviderSession(ctx context.Context, id string, mb int64) error

	// RecordRequesterSession adds consumed MB and one requester session
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	RecordRequesterSession(ctx context.Context, id string, mb int64) error

	// SetAvailability toggles whether the account is listed as a provider
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	SetAvailability(ctx context.Context, id string, available bool) error

	// UpdateProfile persists the editable profile fields
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	UpdateProfile(ctx context.Context, user *entity.User) error

	// ListAvailable returns every available account except excludeID
	ListAvailable(ctx context.Context, excludeID string) ([]*entity.User, error)
}

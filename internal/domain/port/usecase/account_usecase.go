package usecase

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// RegisterCommand carries the sign-up form
type RegisterCommand struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// AccountUseCase manages identity and profile
type AccountUseCase interface {
	Register(ctx context.Context, cmd RegisterCommand) (*entity.User, error)
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	SetAvailability(ctx context.Context, userID string, available bool) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*entity.User, error)
}

// InboxUseCase reads and acknowledges in-app notifications
type InboxUseCase interface {
	List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

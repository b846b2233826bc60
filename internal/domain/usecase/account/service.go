package account

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores the rest
)

// Service handles registration, login and profile changes
type Service struct {
	uow          persistence.UnitOfWork
	ledger       usecase.LedgerUseCase
	hasher       coreport.PasswordHasher
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	providers    cache.ProviderCache
	welcomeBonus int64
}

// NewService creates an account service. providers may be nil.
func NewService(
	uow persistence.UnitOfWork,
	ledger usecase.LedgerUseCase,
	hasher coreport.PasswordHasher,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	providers cache.ProviderCache,
	welcomeBonus int64,
) *Service {
	if welcomeBonus < 0 {
		welcomeBonus = 0
	}
	return &Service{
		uow:          uow,
		ledger:       ledger,
		hasher:       hasher,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
		providers:    providers,
		welcomeBonus: welcomeBonus,
	}
}

var _ usecase.AccountUseCase = (*Service)(nil)

// Register creates the account and credits the welcome bonus in one unit
func (s *Service) Register(ctx context.Context, cmd usecase.RegisterCommand) (*entity.User, error) {
	role, err := entity.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}
	if n := len(cmd.Password); n < minPasswordLength || n > maxPasswordLength {
		return nil, &errs.ValidationError{Entity: "user", Fields: []string{"Password:len"}}
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(s.ids.NewID(), cmd.Email, cmd.Name, role, hash, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.uow.GetUserRepository(txCtx).Create(txCtx, user); err != nil {
			return err
		}
		if s.welcomeBonus == 0 {
			return nil
		}
		_, err := s.ledger.Credit(txCtx, usecase.LedgerEntry{
			UserID:      user.ID,
			Coins:       s.welcomeBonus,
			Type:        entity.TransactionBonus,
			Description: "Welcome bonus",
		})
		return err
	})
	if err != nil {
		s.logger.Warn("Registration failed", map[string]any{
			"email": user.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	user.SetCoins(s.welcomeBonus)
	s.logger.Info("User registered", map[string]any{
		"userId": user.ID,
		"role":   user.Role,
		"bonus":  s.welcomeBonus,
	})
	return user, nil
}

// Authenticate returns the account whose password matches. Unknown emails and
// wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := s.uow.GetUserRepository(ctx).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Info("Login rejected", map[string]any{"userId": user.ID})
		return nil, errs.ErrInvalidCredentials
	}
	return user, nil
}

// SetAvailability lists or unlists the user as a provider
func (s *Service) SetAvailability(ctx context.Context, userID string, available bool) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	users := s.uow.GetUserRepository(ctx)
	if err := users.SetAvailability(ctx, userID, available); err != nil {
		return nil, err
	}
	if s.providers != nil {
		s.providers.Invalidate(ctx)
	}

	s.logger.Info("Availability changed", map[string]any{
		"userId":    userID,
		"available": available,
	})
	return users.GetByID(ctx, userID)
}

// UpdateProfile renames the user
func (s *Service) UpdateProfile(ctx context.Context, userID, name string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	var updated *entity.User
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)
		user, err := users.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if err := user.Rename(name, s.timeProvider); err != nil {
			return err
		}
		if err := users.UpdateProfile(txCtx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.IsAvailable && s.providers != nil {
		s.providers.Invalidate(ctx)
	}
	return updated, nil
}

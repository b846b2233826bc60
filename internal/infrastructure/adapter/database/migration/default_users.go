package migration

import (
	"context"
	"errors"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// DemoPassword is shared by every seeded demo account
const DemoPassword = "hotfinet-demo"

// defaultUsers are registered on development databases
var defaultUsers = []usecase.RegisterCommand{
	{Email: "provider@hotfinet.local", Name: "Demo Provider", Role: "provider"},
	{Email: "requester@hotfinet.local", Name: "Demo Requester", Role: "requester"},
	{Email: "casey@hotfinet.local", Name: "Casey", Role: "requester"},
}

// CreateDefaultUsers registers the demo accounts through the normal sign-up
// path, so each one starts with the welcome bonus. Existing accounts are kept.
func CreateDefaultUsers(ctx context.Context, accounts usecase.AccountUseCase) (int, error) {
	created := 0
	for _, cmd := range defaultUsers {
		cmd.Password = DemoPassword
		if _, err := accounts.Register(ctx, cmd); err != nil {
			if errors.Is(err, errs.ErrDuplicateUser) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

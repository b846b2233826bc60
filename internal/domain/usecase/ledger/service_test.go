package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/core"
	mpers "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/persistence"
)

type ledgerMocks struct {
	uow     *mpers.MockUnitOfWork
	users   *mpers.MockUserRepository
	txns    *mpers.MockTransactionRepository
	ids     *mcore.MockIDGenerator
	clock   *mcore.MockTimeProvider
	logger  *mcore.MockLogger
	metrics *mcore.MockMetrics
}

func newLedgerMocks(t *testing.T) *ledgerMocks {
	m := &ledgerMocks{
		uow:     mpers.NewMockUnitOfWork(t),
		users:   mpers.NewMockUserRepository(t),
		txns:    mpers.NewMockTransactionRepository(t),
		ids:     mcore.NewMockIDGenerator(t),
		clock:   mcore.NewMockTimeProvider(t),
		logger:  mcore.NewMockLogger(t),
		metrics: mcore.NewMockMetrics(t),
	}

	m.uow.On("Execute", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).Maybe()
	m.uow.On("AfterCommit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(func())() }).Maybe()
	m.uow.On("GetUserRepository", mock.Anything).Return(m.users).Maybe()
	m.uow.On("GetTransactionRepository", mock.Anything).Return(m.txns).Maybe()
	m.ids.On("NewID").Return("txn-1").Maybe()
	m.clock.On("Now").Return(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)).Maybe()

	m.logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Info", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return m
}

func (m *ledgerMocks) service() *Service {
	return NewService(m.uow, m.ids, m.clock, m.logger, m.metrics)
}

func TestCredit(t *testing.T) {
	tests := []struct {
		name       string
		entry      usecase.LedgerEntry
		setupMocks func(*ledgerMocks)
		wantErr    error
	}{
		{
			name:  "Refund credits balance and journals the entry",
			entry: usecase.LedgerEntry{UserID: "u-1", Coins: 50, Type: entity.TransactionRefund, RequestID: "r-1"},
			setupMocks: func(m *ledgerMocks) {
				m.users.On("Credit", mock.Anything, "u-1", int64(50)).Return(int64(950), nil)
				m.txns.On("Create", mock.Anything, mock.MatchedBy(func(txn *entity.Transaction) bool {
					return txn.ID == "txn-1" && txn.Type == entity.TransactionRefund && txn.RequestID == "r-1"
				})).Return(nil)
				m.metrics.On("LedgerEntry", "refund", int64(50)).Once()
			},
		},
		{
			name:       "Debit type is rejected",
			entry:      usecase.LedgerEntry{UserID: "u-1", Coins: 50, Type: entity.TransactionSpent},
			setupMocks: func(*ledgerMocks) {},
			wantErr:    errs.ErrInvalidTransactionType,
		},
		{
			name:       "Zero coins are rejected before the store is touched",
			entry:      usecase.LedgerEntry{UserID: "u-1", Coins: 0, Type: entity.TransactionBonus},
			setupMocks: func(*ledgerMocks) {},
			wantErr:    errs.ErrInvalidAmount,
		},
		{
			name:  "Unknown user",
			entry: usecase.LedgerEntry{UserID: "ghost", Coins: 10, Type: entity.TransactionBonus},
			setupMocks: func(m *ledgerMocks) {
				m.users.On("Credit", mock.Anything, "ghost", int64(10)).Return(int64(0), errs.ErrUserNotFound)
			},
			wantErr: errs.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newLedgerMocks(t)
			tt.setupMocks(m)

			txn, err := m.service().Credit(context.Background(), tt.entry)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, txn)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.entry.Coins, txn.Coins)
		})
	}
}

func TestDebit(t *testing.T) {
	t.Run("Spent debits balance", func(t *testing.T) {
		m := newLedgerMocks(t)
		m.users.On("Debit", mock.Anything, "u-1", int64(100)).Return(int64(900), nil)
		m.txns.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)
		m.metrics.On("LedgerEntry", "spent", int64(100)).Once()

		txn, err := m.service().Debit(context.Background(), usecase.LedgerEntry{
			UserID: "u-1", Coins: 100, Type: entity.TransactionSpent, RequestID: "r-1",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-100), txn.SignedCoins())
	})

	t.Run("Insufficient funds writes no journal line", func(t *testing.T) {
		m := newLedgerMocks(t)
		m.users.On("Debit", mock.Anything, "u-1", int64(100)).
			Return(int64(0), errs.NewInsufficientFundsError("u-1", 100, 30))
		m.metrics.On("LedgerRejected", "spent").Once()

		_, err := m.service().Debit(context.Background(), usecase.LedgerEntry{
			UserID: "u-1", Coins: 100, Type: entity.TransactionSpent,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, errs.CodeInsufficientFunds, errs.ErrorCode(err))

		var funds *errs.InsufficientFundsError
		require.True(t, errors.As(err, &funds))
		assert.Equal(t, int64(30), funds.Available)
		m.txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Credit type is rejected", func(t *testing.T) {
		m := newLedgerMocks(t)
		_, err := m.service().Debit(context.Background(), usecase.LedgerEntry{
			UserID: "u-1", Coins: 10, Type: entity.TransactionPurchase,
		})
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
	})
}

func TestPurchase(t *testing.T) {
	tests := []struct {
		name    string
		coins   int64
		price   string
		wantErr error
	}{
		{name: "Exact tariff price", coins: 500, price: "50.00"},
		{name: "Price without trailing zeros", coins: 100, price: "10"},
		{name: "Underpaid", coins: 500, price: "49.99", wantErr: errs.ErrPriceMismatch},
		{name: "Zero coins", coins: 0, price: "0", wantErr: errs.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newLedgerMocks(t)
			if tt.wantErr == nil {
				m.users.On("Credit", mock.Anything, "u-1", tt.coins).Return(tt.coins, nil)
				m.txns.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)
				m.metrics.On("LedgerEntry", "purchase", tt.coins).Once()
			}

			txn, err := m.service().Purchase(context.Background(), "u-1", tt.coins, decimal.RequireFromString(tt.price))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, errs.CodeInvalidAmount, errs.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.TransactionPurchase, txn.Type)
		})
	}
}

func TestWallet(t *testing.T) {
	m := newLedgerMocks(t)
	user := &entity.User{ID: "u-1"}
	user.SetCoins(150)
	m.users.On("GetByID", mock.Anything, "u-1").Return(user, nil)

	wallet, err := m.service().Wallet(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), wallet.Coins)
	assert.Equal(t, "15.00", wallet.CurrencyValue)
	assert.Equal(t, int64(300), wallet.MBEquivalent)

	_, err = m.service().Wallet(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}

func TestPackages(t *testing.T) {
	m := newLedgerMocks(t)
	packages := m.service().Packages()
	require.NotEmpty(t, packages)
	for _, p := range packages {
		assert.True(t, p.Price.Equal(entity.CoinsToCurrency(p.Coins)), p.Label)
	}
}

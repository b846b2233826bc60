package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/time"
)

type fixture struct {
	ctx   context.Context
	clock *timeprovider.ManualTimeProvider
	uow   *database.UnitOfWork
}

func newFixture(t *testing.T) *fixture {
	clock := timeprovider.NewManualTimeProvider(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	testDB := database.NewTestDBManager(t, logger.NewNoopLogger(), clock)
	return &fixture{
		ctx:   context.Background(),
		clock: clock,
		uow:   testDB.UnitOfWork(),
	}
}

func (f *fixture) createUser(t *testing.T, id string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(id, id+"@example.com", "User "+id, entity.RoleRequester, "hash", f.clock)
	require.NoError(t, err)
	require.NoError(t, f.uow.GetUserRepository(f.ctx).Create(f.ctx, user))
	return user
}

func (f *fixture) createRequest(t *testing.T, id, requester, provider, clientRef string) *entity.Request {
	t.Helper()
	req, err := entity.NewRequest(id, requester, provider, 200, 100, clientRef, 50, f.clock)
	require.NoError(t, err)
	require.NoError(t, f.uow.GetRequestRepository(f.ctx).Create(f.ctx, req))
	return req
}

func TestUserRepository(t *testing.T) {
	t.Run("create and look up", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "alice")
		users := f.uow.GetUserRepository(f.ctx)

		byID, err := users.GetByID(f.ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", byID.Email)
		assert.Zero(t, byID.Coins())

		byEmail, err := users.GetByEmail(f.ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", byEmail.ID)

		_, err = users.GetByID(f.ctx, "nobody")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "alice")

		dup, err := entity.NewUser("alice-2", "alice@example.com", "Alice Again", entity.RoleProvider, "hash", f.clock)
		require.NoError(t, err)
		assert.ErrorIs(t, f.uow.GetUserRepository(f.ctx).Create(f.ctx, dup), errs.ErrDuplicateUser)
	})

	t.Run("credit and guarded debit", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "alice")
		users := f.uow.GetUserRepository(f.ctx)

		balance, err := users.Credit(f.ctx, "alice", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), balance)

		balance, err = users.Debit(f.ctx, "alice", 970)
		require.NoError(t, err)
		assert.Equal(t, int64(30), balance)

		_, err = users.Debit(f.ctx, "alice", 100)
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		var insufficient *errs.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int64(30), insufficient.Available)

		user, err := users.GetByID(f.ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(30), user.Coins(), "a rejected debit leaves the balance untouched")

		_, err = users.Credit(f.ctx, "nobody", 10)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("session counters and availability", func(t *testing.T) {
		f := newFixture(t)
		f.createUser(t, "alice")
		f.createUser(t, "bob")
		users := f.uow.GetUserRepository(f.ctx)

		require.NoError(t, users.RecordProviderSession(f.ctx, "bob", 150))
		require.NoError(t, users.RecordRequesterSession(f.ctx, "alice", 150))
		require.NoError(t, users.SetAvailability(f.ctx, "bob", true))
		require.NoError(t, users.SetAvailability(f.ctx, "alice", true))

		bob, err := users.GetByID(f.ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(150), bob.Stats.TotalMBShared)
		assert.Equal(t, int64(1), bob.Stats.TotalSessionsAsProvider)

		available, err := users.ListAvailable(f.ctx, "alice")
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "bob", available[0].ID)

		all, err := users.ListAvailable(f.ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "bob", all[0].ID, "ordered by MB shared")

		assert.ErrorIs(t, users.SetAvailability(f.ctx, "nobody", true), errs.ErrUserNotFound)
	})

	t.Run("available list is not truncated", func(t *testing.T) {
		f := newFixture(t)
		users := f.uow.GetUserRepository(f.ctx)
		for i := 0; i < 150; i++ {
			id := fmt.Sprintf("provider-%03d", i)
			f.createUser(t, id)
			require.NoError(t, users.SetAvailability(f.ctx, id, true))
		}
		f.createUser(t, "offline")

		all, err := users.ListAvailable(f.ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 150)

		others, err := users.ListAvailable(f.ctx, "provider-149")
		require.NoError(t, err)
		assert.Len(t, others, 149)
	})
}

func TestTransactionRepository(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")
	journal := f.uow.GetTransactionRepository(f.ctx)

	entries := []struct {
		txType entity.TransactionType
		coins  int64
		req    string
	}{
		{entity.TransactionBonus, 1000, ""},
		{entity.TransactionSpent, 100, "req-1"},
		{entity.TransactionRefund, 50, "req-1"},
	}
	for i, e := range entries {
		f.clock.Advance(time.Second)
		tx, err := entity.NewTransaction(fmt.Sprintf("tx-%d", i), "alice", e.txType, e.coins, string(e.txType), e.req, f.clock)
		require.NoError(t, err)
		require.NoError(t, journal.Create(f.ctx, tx))
	}

	history, err := journal.ListByUser(f.ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "tx-2", history[0].ID, "newest first")

	byRequest, err := journal.ListByRequest(f.ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, byRequest, 2)
	assert.Equal(t, entity.TransactionSpent, byRequest[0].Type)

	sum, err := journal.SignedSumByUser(f.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(950), sum)

	empty, err := journal.SignedSumByUser(f.ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestTransactionRepository_SameInstantKeepsWriteOrder(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")
	journal := f.uow.GetTransactionRepository(f.ctx)
	ids := idgen.NewUUIDGenerator()

	// A settlement writes both lines at one clock reading
	written := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		tx, err := entity.NewTransaction(ids.NewID(), "alice", entity.TransactionRefund, int64(i+1), "refund", "req-1", f.clock)
		require.NoError(t, err)
		require.NoError(t, journal.Create(f.ctx, tx))
		written = append(written, tx.ID)
	}

	byRequest, err := journal.ListByRequest(f.ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, byRequest, len(written))
	for i, tx := range byRequest {
		assert.Equal(t, written[i], tx.ID, "oldest first")
	}

	history, err := journal.ListByUser(f.ctx, "alice", len(written))
	require.NoError(t, err)
	require.Len(t, history, len(written))
	for i, tx := range history {
		assert.Equal(t, written[len(written)-1-i], tx.ID, "newest first")
	}
}

func TestRequestRepository(t *testing.T) {
	t.Run("one active request per requester", func(t *testing.T) {
		f := newFixture(t)
		f.createRequest(t, "req-1", "alice", "bob", "")

		second, err := entity.NewRequest("req-2", "alice", "carol", 200, 100, "", 50, f.clock)
		require.NoError(t, err)
		assert.ErrorIs(t, f.uow.GetRequestRepository(f.ctx).Create(f.ctx, second), errs.ErrActiveRequestExists)

		// Another requester is unaffected
		f.createRequest(t, "req-3", "carol", "bob", "")
	})

	t.Run("finished request frees the requester", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest(t, "req-1", "alice", "bob", "")
		requests := f.uow.GetRequestRepository(f.ctx)

		change, err := req.Ignore(entity.IgnoreReasonProvider, f.clock.Now())
		require.NoError(t, err)
		require.NoError(t, requests.Transition(f.ctx, change))

		_, err = requests.FindActiveByRequester(f.ctx, "alice")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)

		f.createRequest(t, "req-2", "alice", "bob", "")
	})

	t.Run("lookups", func(t *testing.T) {
		f := newFixture(t)
		f.createRequest(t, "req-1", "alice", "bob", "ref-1")
		requests := f.uow.GetRequestRepository(f.ctx)

		active, err := requests.FindActiveByRequester(f.ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "req-1", active.ID)

		byRef, err := requests.FindByClientRef(f.ctx, "alice", "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "req-1", byRef.ID)

		_, err = requests.FindByClientRef(f.ctx, "bob", "ref-1")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)

		inbox, err := requests.ListPendingForProvider(f.ctx, "bob", 10)
		require.NoError(t, err)
		require.Len(t, inbox, 1)

		_, err = requests.GetByID(f.ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("transition is guarded by the current status", func(t *testing.T) {
		f := newFixture(t)
		req := f.createRequest(t, "req-1", "alice", "bob", "")
		requests := f.uow.GetRequestRepository(f.ctx)

		stale := *req
		accept, err := req.Accept(f.clock.Now())
		require.NoError(t, err)
		require.NoError(t, requests.Transition(f.ctx, accept))

		// A writer still holding the pending copy loses
		ignore, err := stale.Ignore(entity.IgnoreReasonProvider, f.clock.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, requests.Transition(f.ctx, ignore), errs.ErrInvalidTransition)

		completed, err := req.Complete(150, 75, f.clock.Now())
		require.NoError(t, err)
		require.NoError(t, requests.Transition(f.ctx, completed))

		stored, err := requests.GetByID(f.ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, entity.RequestCompleted, stored.Status)
		require.NotNil(t, stored.MBUsed)
		assert.Equal(t, int64(150), *stored.MBUsed)
		require.NotNil(t, stored.CoinsSettled)
		assert.Equal(t, int64(75), *stored.CoinsSettled)
		assert.NotNil(t, stored.AcceptedAt)
		assert.NotNil(t, stored.CompletedAt)

		missing := completed
		missing.RequestID = "missing"
		assert.ErrorIs(t, requests.Transition(f.ctx, missing), errs.ErrRequestNotFound)
	})

	t.Run("stale pending requests", func(t *testing.T) {
		f := newFixture(t)
		f.createRequest(t, "req-old", "alice", "bob", "")
		f.clock.Advance(time.Hour)
		f.createRequest(t, "req-new", "carol", "bob", "")

		stale, err := f.uow.GetRequestRepository(f.ctx).ListPendingCreatedBefore(f.ctx, f.clock.Now().Add(-30*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, "req-old", stale[0].ID)
	})
}

func TestNotificationRepository(t *testing.T) {
	f := newFixture(t)
	inbox := f.uow.GetNotificationRepository(f.ctx)

	for i := 0; i < 3; i++ {
		f.clock.Advance(time.Second)
		require.NoError(t, inbox.Create(f.ctx, &entity.Notification{
			ID:        fmt.Sprintf("n-%d", i),
			UserID:    "bob",
			Event:     entity.EventRequestCreated,
			Title:     "New request",
			RequestID: "req-1",
			CreatedAt: f.clock.Now(),
		}))
	}

	require.NoError(t, inbox.MarkRead(f.ctx, "bob", "n-0"))
	require.NoError(t, inbox.MarkRead(f.ctx, "bob", "n-0"), "marking twice succeeds")
	assert.ErrorIs(t, inbox.MarkRead(f.ctx, "alice", "n-1"), errs.ErrNotificationNotFound)

	all, err := inbox.ListByUser(f.ctx, "bob", false, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "n-2", all[0].ID)

	unread, err := inbox.ListByUser(f.ctx, "bob", true, 10)
	require.NoError(t, err)
	assert.Len(t, unread, 2)
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

var activeStatuses = []string{string(entity.RequestPending), string(entity.RequestAccepted)}

// RequestRepository implements RequestRepository interface using GORM
type RequestRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRequestRepository creates a new RequestRepository instance
func NewRequestRepository(db *gorm.DB, logger coreport.Logger) *RequestRepository {
	return &RequestRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *RequestRepository) entityToModel(req *entity.Request) model.Request {
	return model.Request{
		ID:           req.ID,
		RequesterID:  req.RequesterID,
		ProviderID:   req.ProviderID,
		MB:           req.MB,
		CoinsOffered: req.CoinsOffered,
		Status:       string(req.Status),
		MBUsed:       req.MBUsed,
		CoinsSettled: req.CoinsSettled,
		IgnoreReason: string(req.IgnoreReason),
		ClientRef:    req.ClientRef,
		CreatedAt:    req.CreatedAt,
		AcceptedAt:   req.AcceptedAt,
		IgnoredAt:    req.IgnoredAt,
		CompletedAt:  req.CompletedAt,
	}
}

func (r *RequestRepository) modelToEntity(m *model.Request) *entity.Request {
	return &entity.Request{
		ID:           m.ID,
		RequesterID:  m.RequesterID,
		ProviderID:   m.ProviderID,
		MB:           m.MB,
		CoinsOffered: m.CoinsOffered,
		Status:       entity.RequestStatus(m.Status),
		MBUsed:       m.MBUsed,
		CoinsSettled: m.CoinsSettled,
		IgnoreReason: entity.IgnoreReason(m.IgnoreReason),
		ClientRef:    m.ClientRef,
		CreatedAt:    m.CreatedAt,
		AcceptedAt:   m.AcceptedAt,
		IgnoredAt:    m.IgnoredAt,
		CompletedAt:  m.CompletedAt,
	}
}

// Create inserts a pending request. The partial unique index on active
// requests turns a racing second create into ErrActiveRequestExists.
func (r *RequestRepository) Create(ctx context.Context, req *entity.Request) error {
	requestModel := r.entityToModel(req)

	if result := r.db.WithContext(ctx).Create(&requestModel); result.Error != nil {
		mapped := r.errorClassifier.MapError(result.Error, errs.ErrRequestNotFound, errs.ErrActiveRequestExists)
		if !errors.Is(mapped, errs.ErrActiveRequestExists) {
			r.logger.Error("Failed to create request", map[string]any{
				"requestId": req.ID,
				"error":     result.Error.Error(),
			})
		}
		return mapped
	}
	return nil
}

// GetByID retrieves a request
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	return r.first(ctx, "getting request", r.db.WithContext(ctx).Where("id = ?", id))
}

// FindActiveByRequester returns the requester's pending or accepted request
func (r *RequestRepository) FindActiveByRequester(ctx context.Context, requesterID string) (*entity.Request, error) {
	return r.first(ctx, "finding active request",
		r.db.WithContext(ctx).Where("requester_id = ? AND status IN ?", requesterID, activeStatuses))
}

// FindByClientRef returns the request created with the requester's idempotency key
func (r *RequestRepository) FindByClientRef(ctx context.Context, requesterID, clientRef string) (*entity.Request, error) {
	return r.first(ctx, "finding request by client reference",
		r.db.WithContext(ctx).Where("requester_id = ? AND client_ref = ?", requesterID, clientRef))
}

func (r *RequestRepository) first(ctx context.Context, operation string, query *gorm.DB) (*entity.Request, error) {
	var requestModel model.Request
	if result := query.First(&requestModel); result.Error != nil {
		return nil, r.handleDatabaseError(operation, result.Error)
	}
	return r.modelToEntity(&requestModel), nil
}

// ListPendingForProvider returns the provider's pending inbox, oldest first
func (r *RequestRepository) ListPendingForProvider(ctx context.Context, providerID string, limit int) ([]*entity.Request, error) {
	return r.list("listing provider inbox", r.db.WithContext(ctx).
		Where("provider_id = ? AND status = ?", providerID, string(entity.RequestPending)).
		Order("created_at").
		Limit(limit))
}

// ListPendingCreatedBefore returns pending requests older than cutoff, oldest first
func (r *RequestRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Request, error) {
	return r.list("listing stale requests", r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entity.RequestPending), cutoff).
		Order("created_at").
		Limit(limit))
}

func (r *RequestRepository) list(operation string, query *gorm.DB) ([]*entity.Request, error) {
	var requestModels []model.Request
	if result := query.Find(&requestModels); result.Error != nil {
		return nil, r.handleDatabaseError(operation, result.Error)
	}

	out := make([]*entity.Request, 0, len(requestModels))
	for i := range requestModels {
		out = append(out, r.modelToEntity(&requestModels[i]))
	}
	return out, nil
}

// Transition writes the new status only while the row is still in
// change.From. Zero affected rows means another writer won the race, or the
// request does not exist.
func (r *RequestRepository) Transition(ctx context.Context, change entity.StatusChange) error {
	updates := map[string]any{"status": string(change.To)}
	switch change.To {
	case entity.RequestAccepted:
		updates["accepted_at"] = change.At
	case entity.RequestIgnored:
		updates["ignored_at"] = change.At
		updates["ignore_reason"] = string(change.IgnoreReason)
	case entity.RequestCompleted:
		updates["completed_at"] = change.At
		updates["mb_used"] = change.MBUsed
		updates["coins_settled"] = change.CoinsSettled
	}

	result := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ? AND status = ?", change.RequestID, string(change.From)).
		Updates(updates)
	if result.Error != nil {
		return r.handleDatabaseError("transitioning request", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Request{}).Where("id = ?", change.RequestID).Count(&count).Error; err != nil {
		return r.handleDatabaseError("checking request", err)
	}
	if count == 0 {
		return errs.ErrRequestNotFound
	}

	r.logger.Info("Request changed concurrently", map[string]any{
		"requestId": change.RequestID,
		"from":      change.From,
		"to":        change.To,
	})
	return errs.NewTransitionError(change.RequestID, "", string(change.To))
}

func (r *RequestRepository) handleDatabaseError(operation string, err error) error {
	mapped := r.errorClassifier.MapError(err, errs.ErrRequestNotFound, nil)
	if !errors.Is(mapped, errs.ErrRequestNotFound) {
		r.logger.Error("Database error when "+operation, map[string]any{
			"error": err.Error(),
		})
	}
	return mapped
}

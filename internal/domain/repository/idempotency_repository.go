package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/entity"
)

// IdempotencyRepository stores the responses of side-effecting requests per caller
type IdempotencyRepository interface {
	// GetByKey returns the stored response for the key and caller, or nil
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a response. A second response under the same key and caller
	// is reported as ErrDuplicateKey.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteIfExpired removes one key if it expired before the given time
	DeleteIfExpired(ctx context.Context, id uuid.UUID, before time.Time) error
	// DeleteExpired removes keys that expired before the given time
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order. A reused id or order number is a conflict; the
// connection must be opened with TranslateError for it to be detected.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *fulfillment.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order "+dto.OrderNumber+" already exists", dto.OrderNumber, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of an existing order, including zero values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *fulfillment.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID. Inside a transaction the row is locked
// FOR UPDATE until commit, so concurrent read-modify-write cycles on the same
// order (admin actions, the step backfill job) run one after the other.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx)
	if _, inTx := r.db.Statement.ConnPool.(gorm.TxCommitter); inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := q.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its customer-facing number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*fulfillment.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListNeedingSteps finds orders without stored steps and orders with a
// completed legacy authority step that has no pickup step yet.
func (r *GormOrderRepository) ListNeedingSteps(ctx context.Context, limit int) ([]kernel.UUID, error) {
	legacy := make([]string, 0, len(order.Authorities))
	for _, a := range order.Authorities {
		legacy = append(legacy, string(a))
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.id
		FROM orders o
		WHERE CASE
			WHEN o.steps IS NULL OR jsonb_typeof(o.steps) <> 'array' THEN true
			WHEN jsonb_array_length(o.steps) = 0 THEN true
			ELSE EXISTS (
				SELECT 1
				FROM jsonb_array_elements(o.steps) s
				WHERE s->>'status' = 'completed'
				  AND (s->>'id' LIKE '%\_processing' OR s->>'id' IN ?)
				  AND NOT EXISTS (
					SELECT 1
					FROM jsonb_array_elements(o.steps) p
					WHERE p->>'id' = regexp_replace(s->>'id', '_processing$', '') || '_pickup'
				  )
			)
		END
		ORDER BY o.created_at
		LIMIT ?
	`, legacy, limit).Scan(&ids).Error
	if err != nil {
		return nil, err
	}

	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		kid, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, kid)
	}
	return out, nil
}

// Package noterepo stores internal admin notes. The table is insert-only.
package noterepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type      string    `gorm:"type:varchar(16);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedBy string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (NoteDTO) TableName() string {
	return "order_notes"
}

type GormNoteRepository struct {
	db *gorm.DB
}

func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

func (r *GormNoteRepository) Append(ctx context.Context, note order.Note) error {
	dto := NoteDTO{
		ID:        note.ID.Bytes(),
		OrderID:   note.OrderID.Bytes(),
		Type:      string(note.Type),
		Content:   note.Content,
		CreatedBy: note.CreatedBy,
		CreatedAt: note.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// List returns the notes of an order, newest first.
func (r *GormNoteRepository) List(ctx context.Context, orderID kernel.UUID) ([]order.Note, error) {
	var dtos []NoteDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	notes := make([]order.Note, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		notes = append(notes, order.Note{
			ID:        id,
			OrderID:   orderID,
			Type:      order.NoteType(dto.Type),
			Content:   dto.Content,
			CreatedBy: dto.CreatedBy,
			CreatedAt: dto.CreatedAt,
		})
	}
	return notes, nil
}

// Package emailrepo is the customer email outbox. Notifications are inserted
// in the command's transaction and picked up by the mail service after
// commit, so an email is never sent for a change that was rolled back.
package emailrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerEmailDTO is one queued email. SentAt is set by the mail service.
type CustomerEmailDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID         `gorm:"type:uuid;index;not null"`
	OrderNumber string            `gorm:"type:varchar(32)"`
	Kind        string            `gorm:"type:varchar(64);not null"`
	Recipient   string            `gorm:"not null"`
	Locale      string            `gorm:"type:varchar(8)"`
	Data        map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	SentAt      *time.Time `gorm:"index"`
}

func (CustomerEmailDTO) TableName() string {
	return "customer_emails"
}

// GormOutbox implements ports.Notifier.
type GormOutbox struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db, now: time.Now}
}

func (o *GormOutbox) Notify(ctx context.Context, n ports.Notification) error {
	dto := CustomerEmailDTO{
		ID:          uuid.New(),
		OrderID:     n.OrderID.Bytes(),
		OrderNumber: n.OrderNumber,
		Kind:        string(n.Kind),
		Recipient:   n.Recipient,
		Locale:      n.Locale,
		Data:        n.Data,
		CreatedAt:   o.now().UTC(),
	}
	return o.db.WithContext(ctx).Create(&dto).Error
}

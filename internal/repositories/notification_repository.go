package repositories

import (
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByRecipient(toID string) ([]models.Notification, error)
	MarkAllRead(toID string) error
	DeleteByRecipient(toID string) error
	DeleteByUser(userID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository
// backed by PostgreSQL.
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipient(toID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("to_id = ?", toID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) MarkAllRead(toID string) error {
	return r.db.Model(&models.Notification{}).
		Where("to_id = ? AND read = ?", toID, false).
		Update("read", true).Error
}

func (r *postgresNotificationRepository) DeleteByRecipient(toID string) error {
	return r.db.Where("to_id = ?", toID).Delete(&models.Notification{}).Error
}

// DeleteByUser removes notifications referencing the user on either side,
// used when an account is deleted.
func (r *postgresNotificationRepository) DeleteByUser(userID string) error {
	return r.db.Where("to_id = ? OR from_id = ?", userID, userID).Delete(&models.Notification{}).Error
}

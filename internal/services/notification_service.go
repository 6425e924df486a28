package services

import (
	"context"

	"github.com/sajibdev/chirpnet/backend/internal/logger"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService lists, clears and emits fan-out notifications.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications repositories.NotificationRepository, users repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
	}
}

// Emit records a notification from actor to recipient. Emission is a
// side effect of the primary mutation; callers log failures and move on.
func (s *NotificationService) Emit(from, to primitive.ObjectID, notifType string) error {
	return s.notifications.Create(&models.Notification{
		FromID: from.Hex(),
		ToID:   to.Hex(),
		Type:   notifType,
	})
}

// List returns the actor's notifications with their actors hydrated,
// then bulk-marks everything returned as read.
func (s *NotificationService) List(ctx context.Context, actor *models.User) ([]models.NotificationView, error) {
	notifications, err := s.notifications.GetByRecipient(actor.ID.Hex())
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	actorCache := make(map[string]models.UserCompact)
	for _, n := range notifications {
		view := models.NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if from, ok := actorCache[n.FromID]; ok {
			view.From = from
		} else if id, idErr := primitive.ObjectIDFromHex(n.FromID); idErr == nil {
			if user, userErr := s.users.GetByID(ctx, id); userErr == nil {
				compact := user.ToCompact()
				actorCache[n.FromID] = compact
				view.From = compact
			}
		}
		views = append(views, view)
	}

	if err := s.notifications.MarkAllRead(actor.ID.Hex()); err != nil {
		logger.Error("marking notifications read", "user", actor.ID.Hex(), "error", err)
	}
	return views, nil
}

// DeleteAll removes every notification addressed to the actor.
func (s *NotificationService) DeleteAll(ctx context.Context, actor *models.User) error {
	return s.notifications.DeleteByRecipient(actor.ID.Hex())
}

// DeleteForUser removes notifications referencing the user on either
// side. Used by the account-deletion cascade.
func (s *NotificationService) DeleteForUser(userID primitive.ObjectID) error {
	return s.notifications.DeleteByUser(userID.Hex())
}

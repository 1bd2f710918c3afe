package usecase

import (
	"context"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

const notificationListLimit = 50

// NotificationUseCase lectura y marcado de notificaciones.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List últimas notificaciones del usuario y el total sin leer.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(list))}
	for _, n := range list {
		out.Items = append(out.Items, *ToNotificationResponse(n))
		if !n.Read {
			out.Unread++
		}
	}
	return out, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead marca todas como leídas y devuelve cuántas cambiaron.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}

// ToNotificationResponse mapea la entidad al DTO.
func ToNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

package handlers

import (
	"errors"

	"paygo/internal/repositories"
	"paygo/internal/services/notification"
	"paygo/internal/utils/pagination"
	"paygo/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the user's notifications, newest first. Pass
// ?unread=true to only return unread ones.
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	claims := mustClaims(c)
	p := pagination.ParseFromRequest(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, unread, err := h.notificationService.List(claims.UserID, unreadOnly, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to list notifications")
	}

	p.Total = total
	return response.Success(c, "Notifications retrieved", fiber.Map{
		"page":          p.Page,
		"limit":         p.Limit,
		"total":         total,
		"totalPages":    p.TotalPages(),
		"unreadCount":   unread,
		"notifications": notifications,
	})
}

// MarkNotificationRead marks one notification as read and returns the
// remaining unread count.
func (h *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	claims := mustClaims(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid notification id")
	}

	unread, err := h.notificationService.MarkRead(id, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.ServerError(c, "Failed to mark notification read")
	}

	return response.Success(c, "Notification marked read", fiber.Map{
		"unreadCount": unread,
	})
}

// MarkAllNotificationsRead marks every unread notification as read.
func (h *NotificationHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	claims := mustClaims(c)

	if err := h.notificationService.MarkAllRead(claims.UserID); err != nil {
		return response.ServerError(c, "Failed to mark notifications read")
	}

	return response.Success(c, "All notifications marked read", fiber.Map{
		"unreadCount": 0,
	})
}

// DeleteNotification removes a notification.
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	claims := mustClaims(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.notificationService.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.ServerError(c, "Failed to delete notification")
	}

	return response.Success(c, "Notification deleted", nil)
}

package handlers

import (
	"errors"

	"paygo/internal/repositories"
	"paygo/internal/services/notification"
	"paygo/internal/utils/pagination"
	"paygo/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Notifier hands off side effects of admin actions.
type Notifier interface {
	Dispatch(e notification.Event)
}

type AdminHandler struct {
	users    repositories.UserRepository
	notifier Notifier
}

func NewAdminHandler(users repositories.UserRepository, notifier Notifier) *AdminHandler {
	return &AdminHandler{users: users, notifier: notifier}
}

// ListUsers returns all accounts, paginated.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.users.List(p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to list users")
	}

	items := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		m := userPayload(u)
		m["isSuspended"] = u.IsSuspended
		m["createdAt"] = u.CreatedAt
		items = append(items, m)
	}

	p.Total = total
	return response.Success(c, "Users retrieved", fiber.Map{
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": p.TotalPages(),
		"users":      items,
	})
}

// SuspendUser blocks an account from logging in and transacting.
func (h *AdminHandler) SuspendUser(c *fiber.Ctx) error {
	return h.setSuspended(c, true)
}

// UnsuspendUser restores a suspended account.
func (h *AdminHandler) UnsuspendUser(c *fiber.Ctx) error {
	return h.setSuspended(c, false)
}

func (h *AdminHandler) setSuspended(c *fiber.Ctx, suspended bool) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid user id")
	}

	claims := mustClaims(c)
	if suspended && id == claims.UserID {
		return response.BadRequest(c, "You cannot suspend your own account")
	}

	target, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.ServerError(c, "Failed to load user")
	}

	if err := h.users.SetSuspended(id, suspended); err != nil {
		return response.ServerError(c, "Failed to update user")
	}

	title, msg := "Account reactivated", "Your account has been reactivated. You can log in and transact again."
	if suspended {
		title, msg = "Account suspended", "Your account has been suspended. Contact support for assistance."
	}
	h.notifier.Dispatch(notification.SecurityAlert{User: target, Title: title, Message: msg})

	logrus.WithFields(logrus.Fields{
		"admin_id":  claims.UserID,
		"user_id":   id,
		"suspended": suspended,
	}).Info("account suspension changed")

	return response.Success(c, title, fiber.Map{
		"userId":      id,
		"isSuspended": suspended,
	})
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid user id")
	}

	claims := mustClaims(c)
	if id == claims.UserID {
		return response.BadRequest(c, "You cannot delete your own account")
	}

	if err := h.users.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.ServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted", nil)
}

// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors: not-found sentinels map to HTTP 404,
// duplicate sentinels to 409.
package repository

import (
	"errors"
	"strings"
)

// Not-found sentinels, one per entity.
var (
	ErrHallNotFound         = errors.New("hall not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrMenuNotFound         = errors.New("menu not found")
	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrUserNotFound         = errors.New("user not found")
)

// Uniqueness conflicts surfaced as 409s.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrHallCodeExists = errors.New("hall code already exists")
	ErrMenuSlotExists = errors.New("menu already exists for that day and meal")
)

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

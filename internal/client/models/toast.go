package models

import "time"

// ToastKind selects the styling of a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification raised by a screen.
type Toast struct {
	Message   string
	Kind      ToastKind
	ExpiresAt time.Time
}

// NewToast returns a toast that stays visible for ttl from now.
func NewToast(kind ToastKind, message string, now time.Time, ttl time.Duration) Toast {
	return Toast{Message: message, Kind: kind, ExpiresAt: now.Add(ttl)}
}

// Visible reports whether the toast should still be shown at now.
func (t Toast) Visible(now time.Time) bool {
	return t.Message != "" && now.Before(t.ExpiresAt)
}

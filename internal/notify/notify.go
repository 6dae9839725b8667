// Package notify delivers best-effort user notifications. Delivery
// failure is never fatal to the caller.
package notify

import "context"

// Notifier displays a human-readable notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Nop discards notifications; used when no channel is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }

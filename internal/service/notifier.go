package service

import (
	"context"
	"log/slog"
)

// Notification describes a change made to a bill.
type Notification struct {
	BillID  string
	Title   string
	Message string
}

// Notifier is told about every successful change to a bill.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the default slog logger.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) {
	slog.InfoContext(ctx, n.Title, "bill_id", n.BillID, "message", n.Message)
}

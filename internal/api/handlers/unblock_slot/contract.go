package unblock_slot

import "context"

type ReservationsService interface {
	Unblock(ctx context.Context, blockID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

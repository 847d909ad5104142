package get_bookings

import (
	"context"

	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations/models"
)

type ReservationsService interface {
	List(ctx context.Context, req *models.GetReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package usecase

import (
	"mahal-booking/internal/data/repository"
	"mahal-booking/pkg/lock"
	"mahal-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
}

func NewService(repo *repository.Repository, locker lock.Locker, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Booking: NewBookingService(repo, locker, config, log),
	}
}

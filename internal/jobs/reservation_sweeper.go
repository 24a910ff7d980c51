package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"fittrack/fitness-tracker/internal/service"

	"github.com/robfig/cron/v3"
)

// ReservationSweeper periodically releases slot reservations whose payment
// was never confirmed, so an abandoned checkout cannot lock a slot forever.
type ReservationSweeper struct {
	bookings service.BookingService
	interval time.Duration
	cron     *cron.Cron
}

// NewReservationSweeper creates a sweeper running at the given interval.
func NewReservationSweeper(bookings service.BookingService, interval time.Duration) *ReservationSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReservationSweeper{
		bookings: bookings,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start schedules the sweep and begins the cron loop.
func (s *ReservationSweeper) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Reservation sweeper started (interval %s)", s.interval)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *ReservationSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *ReservationSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	released, err := s.bookings.ExpireReservations(ctx)
	if err != nil {
		log.Printf("ERROR: Reservation sweep failed: %v", err)
		return
	}
	if released > 0 {
		log.Printf("Reservation sweep released %d expired hold(s)", released)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

// maxBookingAttempts bounds the retries on a booking id collision.
const maxBookingAttempts = 5

const reservationDateLayout = "2006-01-02"

type ReservationInput struct {
	Date            string
	Time            string
	Guests          int
	SpecialRequests string
}

type ReservationService struct {
	db     *gorm.DB
	ids    *BookingIDGenerator
	events EventPublisher
	now    func() time.Time
	loc    *time.Location
}

func NewReservationService(db *gorm.DB, events EventPublisher) *ReservationService {
	return &ReservationService{
		db:     db,
		ids:    NewBookingIDGenerator(),
		events: publisherOrNoop(events),
		now:    time.Now,
		loc:    time.Local,
	}
}

// WithClock sets the time source used for the past-date check and the
// location that defines "today".
func (s *ReservationService) WithClock(now func() time.Time, loc *time.Location) *ReservationService {
	s.now = now
	if loc != nil {
		s.loc = loc
	}
	return s
}

func (s *ReservationService) WithIDGenerator(g *BookingIDGenerator) *ReservationService {
	s.ids = g
	return s
}

// Create validates and stores a Pending reservation for userID. A booking
// id is assigned before the first insert and regenerated only if that
// insert collides on the unique index.
func (s *ReservationService) Create(ctx context.Context, userID uint, in ReservationInput) (*models.Reservation, error) {
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	requests := strings.TrimSpace(in.SpecialRequests)

	if date == "" || clock == "" || in.Guests == 0 {
		return nil, fmt.Errorf("%w: date, time, and guests are required", utils.ErrValidation)
	}

	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	if day.Before(s.today()) {
		return nil, utils.ErrPastDate
	}

	switch {
	case in.Guests < models.MinGuests:
		return nil, fmt.Errorf("%w: at least %d guest required", utils.ErrValidation, models.MinGuests)
	case in.Guests > models.MaxGuests:
		return nil, fmt.Errorf("%w: maximum %d guests per reservation", utils.ErrValidation, models.MaxGuests)
	case utf8.RuneCountInString(requests) > models.MaxSpecialRequestsLen:
		return nil, fmt.Errorf("%w: special requests cannot exceed %d characters", utils.ErrValidation, models.MaxSpecialRequestsLen)
	}

	r := models.Reservation{
		UserID:          userID,
		Date:            date,
		Time:            clock,
		Guests:          in.Guests,
		SpecialRequests: requests,
		Status:          models.ReservationPending,
	}

	for attempt := 1; ; attempt++ {
		r.ID = 0
		r.BookingID = s.ids.Next()
		err = s.db.WithContext(ctx).Create(&r).Error
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= maxBookingAttempts {
			return nil, fmt.Errorf("create reservation: %w", err)
		}
		utils.InfoLogger.WithField("booking_id", r.BookingID).Warn("Booking id collision, retrying")
	}

	utils.InfoLogger.WithField("booking_id", r.BookingID).Info("Reservation created")
	s.events.BroadcastReservationCreated(r)
	return &r, nil
}

// ListForUser returns the caller's reservations, newest first.
func (s *ReservationService) ListForUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	out := make([]models.Reservation, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

// parseDay accepts YYYY-MM-DD or a full RFC 3339 timestamp and returns the
// calendar day at midnight in the service location.
func (s *ReservationService) parseDay(date string) (time.Time, error) {
	if t, err := time.ParseInLocation(reservationDateLayout, date, s.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return midnight(t.In(s.loc)), nil
	}
	return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", utils.ErrValidation)
}

func (s *ReservationService) today() time.Time {
	return midnight(s.now().In(s.loc))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

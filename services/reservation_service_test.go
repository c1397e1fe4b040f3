package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

var reservationNow = time.Date(2026, 10, 15, 21, 30, 0, 0, time.UTC)

func newReservationService(t *testing.T) (*services.ReservationService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := setupTestDB(t)
	pub := &recordingPublisher{}
	svc := services.NewReservationService(db, pub).WithClock(fixedClock(reservationNow), time.UTC)
	return svc, db, pub
}

func TestCreateReservation(t *testing.T) {
	svc, db, pub := newReservationService(t)
	user := seedUser(t, db, "a@x.com")

	r, err := svc.Create(context.Background(), user.ID, services.ReservationInput{
		Date:            "2026-10-20",
		Time:            "19:30",
		Guests:          4,
		SpecialRequests: "  Window seat please ",
	})
	require.NoError(t, err)

	assert.Regexp(t, bookingIDPattern, r.BookingID)
	assert.Equal(t, models.ReservationPending, r.Status)
	assert.Equal(t, "Window seat please", r.SpecialRequests)
	assert.Equal(t, user.ID, r.UserID)
	require.Len(t, pub.reservations, 1)
	assert.Equal(t, r.BookingID, pub.reservations[0].BookingID)

	var stored models.Reservation
	require.NoError(t, db.First(&stored, r.ID).Error)
	assert.Equal(t, r.BookingID, stored.BookingID)
}

func TestCreateReservationToday(t *testing.T) {
	svc, db, _ := newReservationService(t)
	user := seedUser(t, db, "a@x.com")

	// Time of day is not compared: 09:00 today is already past but allowed.
	_, err := svc.Create(context.Background(), user.ID, services.ReservationInput{
		Date: "2026-10-15", Time: "09:00", Guests: 2,
	})
	assert.NoError(t, err)
}

func TestCreateReservationPastDate(t *testing.T) {
	svc, db, pub := newReservationService(t)
	user := seedUser(t, db, "a@x.com")

	for _, at := range []string{"00:00", "23:59", "anything"} {
		_, err := svc.Create(context.Background(), user.ID, services.ReservationInput{
			Date: "2026-10-14", Time: at, Guests: 2,
		})
		assert.ErrorIs(t, err, utils.ErrPastDate, at)
	}
	assert.Empty(t, pub.reservations)
}

func TestCreateReservationValidation(t *testing.T) {
	svc, db, _ := newReservationService(t)
	user := seedUser(t, db, "a@x.com")

	tests := []struct {
		name string
		in   services.ReservationInput
	}{
		{"missing date", services.ReservationInput{Time: "19:00", Guests: 2}},
		{"missing time", services.ReservationInput{Date: "2026-10-20", Guests: 2}},
		{"missing guests", services.ReservationInput{Date: "2026-10-20", Time: "19:00"}},
		{"too few guests", services.ReservationInput{Date: "2026-10-20", Time: "19:00", Guests: -1}},
		{"too many guests", services.ReservationInput{Date: "2026-10-20", Time: "19:00", Guests: 21}},
		{"bad date", services.ReservationInput{Date: "next tuesday", Time: "19:00", Guests: 2}},
		{"long requests", services.ReservationInput{Date: "2026-10-20", Time: "19:00", Guests: 2, SpecialRequests: strings.Repeat("é", 501)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user.ID, tt.in)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestCreateReservationBoundaries(t *testing.T) {
	svc, db, _ := newReservationService(t)
	user := seedUser(t, db, "a@x.com")

	for _, in := range []services.ReservationInput{
		{Date: "2026-10-20", Time: "19:00", Guests: 1},
		{Date: "2026-10-20", Time: "19:00", Guests: 20, SpecialRequests: strings.Repeat("é", 500)},
		{Date: "2026-10-20T18:00:00Z", Time: "18:00", Guests: 3},
	} {
		_, err := svc.Create(context.Background(), user.ID, in)
		assert.NoError(t, err, "%+v", in)
	}
}

func TestCreateReservationRetriesOnCollision(t *testing.T) {
	svc, db, _ := newReservationService(t)
	user := seedUser(t, db, "a@x.com")

	// The first two ids collide with each other, the third is fresh.
	suffixes := []int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	i := 0
	svc.WithIDGenerator(&services.BookingIDGenerator{
		Now: fixedClock(reservationNow),
		Rand: func(int) int {
			v := suffixes[i%len(suffixes)]
			i++
			return v
		},
	})

	in := services.ReservationInput{Date: "2026-10-20", Time: "19:00", Guests: 2}
	first, err := svc.Create(context.Background(), user.ID, in)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), user.ID, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.BookingID, second.BookingID)
	assert.True(t, strings.HasSuffix(second.BookingID, "-1111"), second.BookingID)
}

func TestCreateReservationGivesUpAfterRetries(t *testing.T) {
	svc, db, _ := newReservationService(t)
	user := seedUser(t, db, "a@x.com")
	svc.WithIDGenerator(&services.BookingIDGenerator{
		Now:  fixedClock(reservationNow),
		Rand: func(int) int { return 7 },
	})

	in := services.ReservationInput{Date: "2026-10-20", Time: "19:00", Guests: 2}
	_, err := svc.Create(context.Background(), user.ID, in)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user.ID, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListForUser(t *testing.T) {
	svc, db, _ := newReservationService(t)
	alice := seedUser(t, db, "alice@x.com")
	bob := seedUser(t, db, "bob@x.com")
	ctx := context.Background()

	for _, d := range []string{"2026-10-20", "2026-10-21", "2026-10-22"} {
		_, err := svc.Create(ctx, alice.ID, services.ReservationInput{Date: d, Time: "19:00", Guests: 2})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bob.ID, services.ReservationInput{Date: "2026-10-23", Time: "19:00", Guests: 2})
	require.NoError(t, err)

	list, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-10-22", list[0].Date)
	assert.Equal(t, "2026-10-20", list[2].Date)

	list, err = svc.ListForUser(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, list)
}

package services

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	bookingIDPrefix = "LUM"
	bookingSuffix   = 4
	base36Digits    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// BookingIDGenerator builds LUM-<base36 unix millis>-<4 random base36>
// references. Now and Rand are swappable for tests; Rand(n) must return a
// value in [0, n).
type BookingIDGenerator struct {
	Now  func() time.Time
	Rand func(n int) int
}

func NewBookingIDGenerator() *BookingIDGenerator {
	return &BookingIDGenerator{
		Now:  time.Now,
		Rand: rand.IntN,
	}
}

func (g *BookingIDGenerator) Next() string {
	ts := strings.ToUpper(strconv.FormatInt(g.Now().UnixMilli(), 36))

	var b strings.Builder
	b.Grow(len(bookingIDPrefix) + len(ts) + bookingSuffix + 2)
	b.WriteString(bookingIDPrefix)
	b.WriteByte('-')
	b.WriteString(ts)
	b.WriteByte('-')
	for i := 0; i < bookingSuffix; i++ {
		b.WriteByte(base36Digits[g.Rand(len(base36Digits))])
	}
	return b.String()
}

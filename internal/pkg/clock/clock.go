// Package clock abstracts the wall clock used to stamp stored levels
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=clockmock github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock Clock

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

type system struct{}

func (system) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock in UTC
func New() Clock {
	return system{}
}

// Fixed is a clock stopped at one instant
type Fixed time.Time

// Now returns the fixed instant
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

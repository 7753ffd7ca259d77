// Package availability computes which tables are free at a given time.
//
// The restaurant has a fixed universe of tables numbered 1..N. A table is
// considered booked at time T when an existing reservation holds it at
// exactly T; two reservations one second apart never conflict. The
// calculation is a pure set subtraction over the current reservation
// collection and has no side effects, which keeps it trivially testable and
// reusable inside or outside transactions.
package availability

import (
	"time"

	"github.com/dkontos/go-reservation-backend/internal/domain"
)

// DefaultTableCount is the size of the table universe used when no explicit
// configuration overrides it.
const DefaultTableCount = 15

// Normalize truncates t to whole seconds in UTC. All timestamp comparisons in
// the reservation domain go through this so that wall-clock representations
// with differing zones or sub-second noise compare as intended.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// FreeTables returns the ascending list of table numbers from 1..tableCount
// that are not booked at time at. A tableCount <= 0 falls back to
// DefaultTableCount.
//
// The result is never nil: with no reservations it is the full universe, and
// when every table is booked it is an empty slice rather than an error.
// Reservations referencing tables outside the universe are ignored here;
// range validation happens before a record is ever written.
func FreeTables(reservations []domain.Reservation, at time.Time, tableCount int) []int {
	if tableCount <= 0 {
		tableCount = DefaultTableCount
	}
	at = Normalize(at)

	booked := make(map[int]struct{}, len(reservations))
	for _, r := range reservations {
		if Normalize(r.StartsAt).Equal(at) {
			booked[r.TableNumber] = struct{}{}
		}
	}

	free := make([]int, 0, tableCount)
	for n := 1; n <= tableCount; n++ {
		if _, taken := booked[n]; !taken {
			free = append(free, n)
		}
	}
	return free
}

// InUniverse reports whether table n is a member of the 1..tableCount
// universe. A tableCount <= 0 falls back to DefaultTableCount.
func InUniverse(n, tableCount int) bool {
	if tableCount <= 0 {
		tableCount = DefaultTableCount
	}
	return n >= 1 && n <= tableCount
}

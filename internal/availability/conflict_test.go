package availability_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
)

func TestConflictOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name                   string
		cStart, cEnd           int // conflict window, minutes from base
		qStart, qEnd           int // queried window
		want                   bool
	}{
		{"disjoint before", 0, 30, 60, 90, false},
		{"disjoint after", 60, 90, 0, 30, false},
		{"touching end-to-start", 0, 60, 60, 120, false},
		{"touching start-to-end", 60, 120, 0, 60, false},
		{"partial overlap left", 0, 60, 30, 90, true},
		{"partial overlap right", 30, 90, 0, 60, true},
		{"query contains record", 30, 60, 0, 90, true},
		{"record contains query", 0, 90, 30, 60, true},
		{"identical windows", 0, 60, 0, 60, true},
		{"one-minute overlap", 0, 31, 30, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := availability.Conflict{Start: at(tt.cStart), End: at(tt.cEnd)}
			require.Equal(t, tt.want, c.Overlaps(at(tt.qStart), at(tt.qEnd)))
		})
	}
}

// Randomized sweep: the overlap predicate must agree with the half-open
// interval definition for arbitrary window pairs.
func TestConflictOverlapsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		a1 := rng.Intn(1000)
		a2 := a1 + 1 + rng.Intn(100)
		b1 := rng.Intn(1000)
		b2 := b1 + 1 + rng.Intn(100)

		c := availability.Conflict{
			Start: base.Add(time.Duration(a1) * time.Minute),
			End:   base.Add(time.Duration(a2) * time.Minute),
		}
		qStart := base.Add(time.Duration(b1) * time.Minute)
		qEnd := base.Add(time.Duration(b2) * time.Minute)

		want := a1 < b2 && b1 < a2
		require.Equalf(t, want, c.Overlaps(qStart, qEnd),
			"A=[%d,%d) B=[%d,%d)", a1, a2, b1, b2)
	}
}

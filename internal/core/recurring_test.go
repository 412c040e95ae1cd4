package core

import (
	"testing"
	"time"
)

func TestRecurringFrequencyNext(t *testing.T) {
	tests := []struct {
		name string
		freq RecurringFrequency
		from time.Time
		want time.Time
	}{
		{"daily", Daily, day(2024, 1, 15), day(2024, 1, 16)},
		{"weekly", Weekly, day(2024, 1, 15), day(2024, 1, 22)},
		{"monthly", Monthly, day(2024, 1, 15), day(2024, 2, 15)},
		{"monthly clamps to leap february", Monthly, day(2024, 1, 31), day(2024, 2, 29)},
		{"monthly clamps to april", Monthly, day(2024, 3, 31), day(2024, 4, 30)},
		{"yearly from leap day", Yearly, day(2024, 2, 29), day(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.freq.Next(tt.from); !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecurringFrequencyNextAfterKeepsAnchorDay(t *testing.T) {
	anchor := day(2024, 1, 31)
	now := day(2024, 3, 5)
	got := Monthly.NextAfter(anchor, now)
	if want := day(2024, 3, 31); !got.Equal(want) {
		t.Fatalf("NextAfter() = %v, want %v", got, want)
	}
	if got := Weekly.NextAfter(day(2024, 3, 10), now); !got.Equal(day(2024, 3, 10)) {
		t.Fatalf("future anchor should be returned as is, got %v", got)
	}
}

// nextAfterByStepping is the one-period-at-a-time definition NextAfter must match.
func nextAfterByStepping(f RecurringFrequency, anchor, now time.Time) time.Time {
	next := anchor
	for i := 1; !next.After(now); i++ {
		next = f.step(anchor, i)
	}
	return next
}

func TestRecurringFrequencyNextAfterMatchesStepping(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		rome = time.UTC
	}
	anchors := []time.Time{
		day(2020, 1, 31),
		day(2023, 2, 28),
		time.Date(2021, 3, 27, 23, 30, 0, 0, rome),
		time.Date(2019, 10, 26, 2, 30, 0, 0, rome),
	}
	nows := []time.Time{
		day(2024, 3, 5),
		time.Date(2024, 3, 31, 2, 30, 0, 0, rome),
		time.Date(2024, 10, 27, 23, 59, 0, 0, rome),
		day(2024, 12, 31),
	}
	for _, f := range []RecurringFrequency{Daily, Weekly, Monthly, Yearly} {
		for _, anchor := range anchors {
			for _, now := range nows {
				want := nextAfterByStepping(f, anchor, now)
				if got := f.NextAfter(anchor, now); !got.Equal(want) {
					t.Errorf("%s NextAfter(%v, %v) = %v, want %v", f, anchor, now, got, want)
				}
			}
		}
	}
}

func TestRecurringFrequencyNextAfterDistantAnchor(t *testing.T) {
	anchor := day(1900, 1, 1)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	if got, want := Daily.NextAfter(anchor, now), day(2024, 6, 16); !got.Equal(want) {
		t.Fatalf("NextAfter() = %v, want %v", got, want)
	}
	if n := Daily.elapsedPeriods(anchor, now); n < 45000 {
		t.Fatalf("expected a jump close to the answer, got %d periods", n)
	}
}

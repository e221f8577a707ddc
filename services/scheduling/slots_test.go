package scheduling

import (
	"testing"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

func mustTime(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	v, err := models.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func day(t *testing.T, windows ...[2]string) models.DayAvailability {
	t.Helper()
	d := models.DayAvailability{IsAvailable: true}
	for _, w := range windows {
		d.Slots = append(d.Slots, models.Interval{
			Start: mustTime(t, w[0]),
			End:   mustTime(t, w[1]),
		})
	}
	return d
}

func TestGenerateSlotsWithBuffer(t *testing.T) {
	// 09:00-12:00, 60 min duration, 15 min buffer: 09:00-10:00 and
	// 10:15-11:15. The third slot would run 11:30-12:30, past the close.
	slots := GenerateSlots(day(t, [2]string{"09:00", "12:00"}), 60, 15)

	want := []models.Interval{
		{Start: mustTime(t, "09:00"), End: mustTime(t, "10:00")},
		{Start: mustTime(t, "10:15"), End: mustTime(t, "11:15")},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %v", len(slots), len(want), slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %s-%s, want %s-%s",
				i, slots[i].Start, slots[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestGenerateSlotsZeroBuffer(t *testing.T) {
	slots := GenerateSlots(day(t, [2]string{"09:00", "11:00"}), 30, 0)
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4: %v", len(slots), slots)
	}
	// Back-to-back slots touch but must not overlap.
	for i := 1; i < len(slots); i++ {
		if slots[i].Start != slots[i-1].End {
			t.Errorf("slot %d should start where slot %d ends", i, i-1)
		}
	}
}

func TestGenerateSlotsDiscardsTrailingGap(t *testing.T) {
	// 45 minutes of room after the only full slot: discarded, not shortened.
	slots := GenerateSlots(day(t, [2]string{"09:00", "10:45"}), 60, 0)
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1: %v", len(slots), slots)
	}
	if slots[0].End != mustTime(t, "10:00") {
		t.Errorf("slot end = %s, want 10:00", slots[0].End)
	}
}

func TestGenerateSlotsIntervalsIndependent(t *testing.T) {
	// Two touching open intervals: a slot never spans the seam.
	slots := GenerateSlots(day(t, [2]string{"09:00", "09:45"}, [2]string{"09:45", "10:30"}), 30, 0)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2: %v", len(slots), slots)
	}
	if slots[0].Start != mustTime(t, "09:00") || slots[1].Start != mustTime(t, "09:45") {
		t.Errorf("slots should restart at each open interval: %v", slots)
	}
}

func TestGenerateSlotsUnavailableDay(t *testing.T) {
	if slots := GenerateSlots(models.DayAvailability{IsAvailable: false}, 60, 0); slots != nil {
		t.Errorf("unavailable day produced slots: %v", slots)
	}
}

func TestGenerateSlotsSortedNonOverlapping(t *testing.T) {
	cases := []struct {
		day      models.DayAvailability
		duration int
		buffer   int
	}{
		{day(t, [2]string{"08:00", "18:00"}), 25, 5},
		{day(t, [2]string{"00:00", "23:59"}), 90, 0},
		{day(t, [2]string{"06:30", "08:00"}, [2]string{"13:00", "17:45"}), 45, 10},
		{day(t, [2]string{"09:00", "09:30"}), 60, 15},
	}
	for _, tc := range cases {
		slots := GenerateSlots(tc.day, tc.duration, tc.buffer)
		for i, s := range slots {
			if s.Duration() != tc.duration {
				t.Errorf("slot %s-%s has duration %d, want %d", s.Start, s.End, s.Duration(), tc.duration)
			}
			if i == 0 {
				continue
			}
			if slots[i-1].Start >= s.Start {
				t.Errorf("slots not sorted ascending: %v", slots)
			}
			if slots[i-1].Overlaps(s) {
				t.Errorf("slots %d and %d overlap: %v", i-1, i, slots)
			}
		}
	}
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return NewClassifier(loc, Holidays2026)
}

func jakartaTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	require.NoError(t, err)
	return ts
}

func TestClassifyClockIn_RegularDeadline(t *testing.T) {
	c := testClassifier(t)

	tests := []struct {
		name       string
		at         string
		shiftType  string
		wantStatus string
	}{
		{"regular exactly on deadline", "2026-03-02 08:30:00", attendance.ShiftTypeRegular, attendance.StatusPresent},
		{"regular one second past deadline", "2026-03-02 08:30:01", attendance.ShiftTypeRegular, attendance.StatusLate},
		{"regular early morning", "2026-03-02 07:02:11", attendance.ShiftTypeRegular, attendance.StatusPresent},
		{"regular mid morning late", "2026-03-02 09:15:00", attendance.ShiftTypeRegular, attendance.StatusLate},
		{"piket exactly on deadline", "2026-03-02 08:15:00", attendance.ShiftTypePiket, attendance.StatusPresent},
		{"piket one second past deadline", "2026-03-02 08:15:01", attendance.ShiftTypePiket, attendance.StatusLate},
		{"piket within regular window is still late", "2026-03-02 08:20:00", attendance.ShiftTypePiket, attendance.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ClassifyClockIn(jakartaTime(t, tt.at), tt.shiftType)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.False(t, got.IsOvertime)
			assert.Empty(t, got.Notes)
		})
	}
}

func TestClassifyClockIn_WeekendAndHoliday(t *testing.T) {
	c := testClassifier(t)

	t.Run("saturday is weekend overtime", func(t *testing.T) {
		got := c.ClassifyClockIn(jakartaTime(t, "2026-03-07 08:00:00"), attendance.ShiftTypeRegular)
		assert.Equal(t, attendance.StatusOvertime, got.Status)
		assert.True(t, got.IsOvertime)
		assert.Equal(t, NoteWeekend, got.Notes)
	})

	t.Run("sunday is weekend overtime even when early", func(t *testing.T) {
		got := c.ClassifyClockIn(jakartaTime(t, "2026-03-08 07:00:00"), attendance.ShiftTypePiket)
		assert.Equal(t, attendance.StatusOvertime, got.Status)
		assert.Equal(t, NoteWeekend, got.Notes)
	})

	t.Run("independence day is national holiday overtime", func(t *testing.T) {
		got := c.ClassifyClockIn(jakartaTime(t, "2026-08-17 08:10:00"), attendance.ShiftTypeRegular)
		assert.Equal(t, attendance.StatusOvertime, got.Status)
		assert.True(t, got.IsOvertime)
		assert.Equal(t, NoteNationalHoliday, got.Notes)
	})

	t.Run("holiday note wins over weekend note", func(t *testing.T) {
		// 2026-04-05 is Easter Sunday, both a weekend and a listed holiday
		got := c.ClassifyClockIn(jakartaTime(t, "2026-04-05 09:00:00"), attendance.ShiftTypeRegular)
		assert.Equal(t, NoteNationalHoliday, got.Notes)
	})

	t.Run("holiday overrides lateness", func(t *testing.T) {
		got := c.ClassifyClockIn(jakartaTime(t, "2026-05-01 14:45:00"), attendance.ShiftTypeRegular)
		assert.Equal(t, attendance.StatusOvertime, got.Status)
	})
}

func TestClassifyClockIn_TimezoneBoundary(t *testing.T) {
	c := testClassifier(t)

	// 01:25 UTC on March 2nd is 08:25 in Jakarta, before the regular deadline.
	utc := time.Date(2026, 3, 2, 1, 25, 0, 0, time.UTC)
	got := c.ClassifyClockIn(utc, attendance.ShiftTypeRegular)
	assert.Equal(t, attendance.StatusPresent, got.Status)

	// 01:31 UTC is 08:31 in Jakarta, past the deadline.
	got = c.ClassifyClockIn(time.Date(2026, 3, 2, 1, 31, 0, 0, time.UTC), attendance.ShiftTypeRegular)
	assert.Equal(t, attendance.StatusLate, got.Status)
}

func TestClassifyResume(t *testing.T) {
	c := testClassifier(t)

	tests := []struct {
		name           string
		at             string
		sessionNumber  int
		wantStatus     string
		wantIsOvertime bool
		wantNotes      string
	}{
		{"inside window", "2026-03-02 13:00:00", 2, attendance.StatusPresent, false, "Sesi ke-2"},
		{"last second inside window", "2026-03-02 16:59:59", 3, attendance.StatusPresent, false, "Sesi ke-3"},
		{"at window end", "2026-03-02 17:00:00", 2, attendance.StatusOvertime, true, "Overtime (Sesi 2)"},
		{"evening", "2026-03-02 21:30:00", 4, attendance.StatusOvertime, true, "Overtime (Sesi 4)"},
		{"before window start", "2026-03-02 05:59:59", 2, attendance.StatusOvertime, true, "Overtime (Sesi 2)"},
		{"weekend inside window", "2026-03-07 13:00:00", 2, attendance.StatusOvertime, true, "Overtime (Sesi 2)"},
		{"holiday inside window", "2026-08-17 10:00:00", 2, attendance.StatusOvertime, true, "Overtime (Sesi 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ClassifyResume(jakartaTime(t, tt.at), tt.sessionNumber)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantIsOvertime, got.IsOvertime)
			assert.Equal(t, tt.wantNotes, got.Notes)
		})
	}
}

func TestIsWorkingDay(t *testing.T) {
	assert.True(t, IsWorkingDay(jakartaTime(t, "2026-03-02 00:00:00")))  // Monday
	assert.True(t, IsWorkingDay(jakartaTime(t, "2026-03-06 00:00:00")))  // Friday
	assert.False(t, IsWorkingDay(jakartaTime(t, "2026-03-07 00:00:00"))) // Saturday
	assert.False(t, IsWorkingDay(jakartaTime(t, "2026-03-08 00:00:00"))) // Sunday
}

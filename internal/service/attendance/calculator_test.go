package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday in a week without holidays
var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// 08:00-18:00 window
var testHours = workinghours.Static{
	StartTime: time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC),
	EndTime:   time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
}

type fakeHolidayRepo struct {
	dates []time.Time
}

func (f *fakeHolidayRepo) ListDates(ctx context.Context) ([]time.Time, error) {
	return f.dates, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Add(ctx context.Context, date time.Time, name string) (holiday.Holiday, error) {
	return holiday.Holiday{Date: date, Name: name}, nil
}

func (f *fakeHolidayRepo) Remove(ctx context.Context, date time.Time) error {
	return nil
}

type failingProvider struct{}

func (failingProvider) Resolve(ctx context.Context) (workinghours.WorkingHours, error) {
	return workinghours.WorkingHours{}, workinghours.ErrNotConfigured
}

func newTestCalculator(holidays ...time.Time) *Calculator {
	return NewCalculator(testHours, &fakeHolidayRepo{dates: holidays}, time.UTC)
}

// at returns an instant on the test day
func at(hour, minute int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), hour, minute, 0, 0, time.UTC)
}

func atp(hour, minute int) *time.Time {
	t := at(hour, minute)
	return &t
}

func session(checkIn, checkOut *time.Time) attendance.Attendance {
	status := attendance.StatusCheckedIn
	if checkOut != nil {
		status = attendance.StatusCheckedOut
	}
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       testDay,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
	}
}

func leaveMarker() attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       testDay,
		Status:     attendance.StatusOnLeave,
	}
}

func TestLatenessAndWorkDuration_SingleClosedSession(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()

	events := []attendance.Attendance{session(atp(9, 0), atp(17, 0))}
	now := at(18, 0)

	work, err := calc.WorkDuration(ctx, events, now)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, work)

	lateness, err := calc.Lateness(ctx, events, now, true)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, lateness)
}

func TestLateness_AbsenceOnWorkingDay(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()
	now := at(12, 0)

	// The whole elapsed window counts when absence is included
	lateness, err := calc.Lateness(ctx, nil, now, true)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, lateness)

	// And nothing counts when it is not
	lateness, err = calc.Lateness(ctx, nil, now, false)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), lateness)
}

func TestLateness_AbsenceOnWeekendAndHoliday(t *testing.T) {
	ctx := context.Background()

	saturday := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	calc := newTestCalculator()
	lateness, err := calc.Lateness(ctx, nil, saturday, true)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), lateness)

	calc = newTestCalculator(testDay)
	lateness, err = calc.Lateness(ctx, nil, at(12, 0), true)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), lateness)
}

func TestLatenessAndWorkDuration_OnLeave(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()

	events := []attendance.Attendance{leaveMarker()}

	for _, now := range []time.Time{at(9, 0), at(12, 0), at(23, 0)} {
		lateness, err := calc.Lateness(ctx, events, now, true)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), lateness)

		work, err := calc.WorkDuration(ctx, events, now)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), work)
	}
}

func TestLateness_OpenSessionRunsUntilNow(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()

	events := []attendance.Attendance{
		session(atp(8, 0), atp(12, 0)),
		session(atp(13, 0), nil),
	}
	now := at(15, 0)

	work, err := calc.WorkDuration(ctx, events, now)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, work)

	lateness, err := calc.Lateness(ctx, events, now, true)
	require.NoError(t, err)
	assert.Equal(t, 1*time.Hour, lateness)
}

func TestLateness_NowBeforeWindowOpens(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()
	now := at(7, 0)

	lateness, err := calc.Lateness(ctx, nil, now, true)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), lateness)

	work, err := calc.WorkDuration(ctx, []attendance.Attendance{session(atp(6, 0), nil)}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), work)
}

func TestTotalPresence_ClampsToWindow(t *testing.T) {
	calc := newTestCalculator()

	events := []attendance.Attendance{session(atp(7, 0), atp(19, 0))}
	got := calc.TotalPresence(events, at(8, 0), at(18, 0))
	assert.Equal(t, 10*time.Hour, got)
}

func TestTotalPresence_SkipsEventsOutsideWindow(t *testing.T) {
	calc := newTestCalculator()

	events := []attendance.Attendance{
		session(atp(5, 0), atp(7, 0)),  // ends before the window opens
		session(atp(19, 0), atp(20, 0)), // starts after the window closes
	}
	got := calc.TotalPresence(events, at(8, 0), at(18, 0))
	assert.Equal(t, time.Duration(0), got)
}

func TestTotalPresence_OverlappingSessionsAreNotMerged(t *testing.T) {
	calc := newTestCalculator()

	// Each record contributes its own clamped span; the 10:00-12:00
	// overlap is counted twice.
	events := []attendance.Attendance{
		session(atp(8, 0), atp(12, 0)),
		session(atp(10, 0), atp(12, 0)),
	}
	got := calc.TotalPresence(events, at(8, 0), at(18, 0))
	assert.Equal(t, 6*time.Hour, got)
}

func TestTotalPresence_MalformedEventYieldsZero(t *testing.T) {
	calc := newTestCalculator()

	// check-out before check-in clamps away to nothing
	events := []attendance.Attendance{session(atp(10, 0), atp(9, 0))}
	got := calc.TotalPresence(events, at(8, 0), at(18, 0))
	assert.Equal(t, time.Duration(0), got)
}

func TestTotalPresence_RecordWithoutCheckInIsIgnored(t *testing.T) {
	calc := newTestCalculator()

	events := []attendance.Attendance{session(nil, atp(12, 0))}
	got := calc.TotalPresence(events, at(8, 0), at(18, 0))
	assert.Equal(t, time.Duration(0), got)
}

func TestLateness_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()

	events := []attendance.Attendance{session(atp(9, 30), atp(16, 0))}
	now := at(17, 0)

	first, err := calc.Lateness(ctx, events, now, true)
	require.NoError(t, err)
	second, err := calc.Lateness(ctx, events, now, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLateness_MissingConfiguration(t *testing.T) {
	calc := NewCalculator(failingProvider{}, &fakeHolidayRepo{}, time.UTC)
	ctx := context.Background()

	_, err := calc.Lateness(ctx, nil, at(12, 0), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, workinghours.ErrNotConfigured))
}

func TestDayStatus(t *testing.T) {
	ctx := context.Background()
	saturday := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		holidays []time.Time
		events   []attendance.Attendance
		now      time.Time
		day      time.Time
		want     attendance.EventStatus
	}{
		{
			name: "weekend",
			now:  saturday,
			day:  saturday,
			want: attendance.StatusNotWorkingDay,
		},
		{
			name:     "holiday",
			holidays: []time.Time{testDay},
			now:      at(12, 0),
			day:      testDay,
			want:     attendance.StatusNotWorkingDay,
		},
		{
			name: "before window opens",
			now:  at(7, 0),
			day:  testDay,
			want: attendance.StatusNotWorkingHour,
		},
		{
			name:   "on leave",
			events: []attendance.Attendance{leaveMarker()},
			now:    at(12, 0),
			day:    testDay,
			want:   attendance.StatusOnLeave,
		},
		{
			name: "no records yet",
			now:  at(12, 0),
			day:  testDay,
			want: attendance.StatusNotCheckedIn,
		},
		{
			name:   "open session",
			events: []attendance.Attendance{session(atp(9, 0), nil)},
			now:    at(12, 0),
			day:    testDay,
			want:   attendance.StatusCheckedIn,
		},
		{
			name:   "closed session",
			events: []attendance.Attendance{session(atp(9, 0), atp(11, 0))},
			now:    at(12, 0),
			day:    testDay,
			want:   attendance.StatusCheckedOut,
		},
		{
			name: "closed session ranks ahead of a later open one",
			events: []attendance.Attendance{
				session(atp(8, 0), atp(12, 0)),
				session(atp(13, 0), nil),
			},
			now:  at(14, 0),
			day:  testDay,
			want: attendance.StatusCheckedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(tt.holidays...)
			got, err := calc.DayStatus(ctx, tt.events, tt.now, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWorkingTime(t *testing.T) {
	calc := newTestCalculator()
	ctx := context.Background()

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"window start is inclusive", at(8, 0), true},
		{"window end is inclusive", at(18, 0), true},
		{"inside the window", at(12, 30), true},
		{"just before the window", at(7, 59), false},
		{"just after the window", at(18, 1), false},
		{"weekend", time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.IsWorkingTime(ctx, tt.t)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWorkingTime_Holiday(t *testing.T) {
	calc := newTestCalculator(testDay)
	ctx := context.Background()

	got, err := calc.IsWorkingTime(ctx, at(12, 0))
	require.NoError(t, err)
	assert.False(t, got)
}

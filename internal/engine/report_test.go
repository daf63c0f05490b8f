package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitquest/internal/storage"
)

func TestBuildReportFindsWeakestLink(t *testing.T) {
	steady := habitWith(runEnding("2024-03-10", 10)...)
	steady.ID, steady.Name = "a", "Read"
	spotty := habitWith(done("2024-03-02"), done("2024-03-09"))
	spotty.ID, spotty.Name = "b", "Run"

	r := BuildReport([]storage.Habit{steady, spotty}, "2024-03-10", 10)
	assert.Equal(t, "2024-03-01", r.Start)
	assert.Equal(t, "2024-03-10", r.End)
	require.Len(t, r.Points, 10)
	require.Len(t, r.Rates, 2)
	assert.Equal(t, 100.0, r.Rates[0].Rate)
	assert.Equal(t, 20.0, r.Rates[1].Rate)
	require.NotNil(t, r.Weakest)
	assert.Equal(t, "Run", r.Weakest.Name)
}

func TestBuildReportNoWeakLinkWhenAllStrong(t *testing.T) {
	h := habitWith(runEnding("2024-03-10", 5)...)
	r := BuildReport([]storage.Habit{h}, "2024-03-10", 5)
	assert.Nil(t, r.Weakest)

	empty := BuildReport(nil, "2024-03-10", 0)
	assert.Empty(t, empty.Points)
	assert.Empty(t, empty.Start)
}

func TestWindowEnd(t *testing.T) {
	assert.Equal(t, "2024-03-10", WindowEnd("2024-03-10", 0))
	assert.Equal(t, "2024-02-09", WindowEnd("2024-03-10", 30))
	assert.Equal(t, "2024-03-10", WindowEnd("2024-03-10", -4))
}

func TestMonthIntensity(t *testing.T) {
	habits := []storage.Habit{
		habitWith(done("2024-02-29")),
		habitWith(done("2024-02-29"), done("2024-02-01")),
	}
	days := MonthIntensity(habits, 2024, time.February)
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0].Date)
	assert.Equal(t, 0.5, days[0].Ratio)
	assert.Equal(t, 1.0, days[28].Ratio)
	assert.Equal(t, 0.0, days[10].Ratio)
}

func TestSummarize(t *testing.T) {
	h := habitWith(done("2024-01-01"), missed("2024-01-02"), done("2024-01-03"), done("2024-01-04"))
	h.Name, h.Streak = "Read", 2
	s := Summarize([]storage.Habit{h})
	require.Len(t, s, 1)
	assert.Equal(t, HabitSummary{Name: "Read", Streak: 2, CompletionRate: 75, Last7Days: 3}, s[0])

	none := Summarize([]storage.Habit{habitWith()})
	assert.Equal(t, 0.0, none[0].CompletionRate)
}

func TestRemindersFor(t *testing.T) {
	read := habitWith(done("2024-01-01"))
	read.ID, read.Name = "a", "Read"
	read.Reminders = []storage.Reminder{{ID: "r1", Time: "21:00", Days: []int{1}, Enabled: true}}
	run := habitWith()
	run.ID, run.Name = "b", "Run"
	run.Reminders = []storage.Reminder{
		{ID: "r2", Time: "07:30", Days: []int{0, 1}, Enabled: true},
		{ID: "r3", Time: "12:00", Days: []int{1}, Enabled: false},
	}

	// 2024-01-01 is a Monday.
	due := RemindersFor([]storage.Habit{read, run}, "2024-01-01")
	require.Len(t, due, 2)
	assert.Equal(t, DueReminder{HabitID: "b", HabitName: "Run", Time: "07:30"}, due[0])
	assert.Equal(t, DueReminder{HabitID: "a", HabitName: "Read", Time: "21:00", Done: true}, due[1])

	assert.Empty(t, RemindersFor([]storage.Habit{read}, "2024-01-02"))
}

func TestStateResolve(t *testing.T) {
	st := &State{Habits: []storage.Habit{
		{ID: "3f2a9c10-aaaa", Name: "Read"},
		{ID: "3f2b0000-bbbb", Name: "Run"},
	}}

	h, err := st.Resolve("3f2a")
	require.NoError(t, err)
	assert.Equal(t, "Read", h.Name)

	h, err = st.Resolve("run")
	require.NoError(t, err)
	assert.Equal(t, "3f2b0000-bbbb", h.ID)

	_, err = st.Resolve("3f2")
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = st.Resolve("zzz")
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
}

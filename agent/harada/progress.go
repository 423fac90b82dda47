package harada

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	storex "github.com/haradakit/companion/agent/store"
)

const dateLayout = "2006-01-02"

// computeStreak walks backward from today for up to a year and counts the
// consecutive days on which every currently-active habit was done. A habit
// with no log entry for a day reads as not done, so a freshly added habit
// caps the streak for all prior days. That is the long-observed behavior
// of the habit dashboard and is kept as-is.
func computeStreak(habitLog HabitLog, active []Habit, today time.Time) int {
	if len(active) == 0 {
		return 0
	}

	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		dayLog := habitLog[date]
		allDone := true
		for _, h := range active {
			if !dayLog[h.ID] {
				allDone = false
				break
			}
		}
		if !allDone {
			break
		}
		streak++
	}
	return streak
}

// goalTotals counts a goal's completed actions and its actions with
// non-empty text. Empty slots never contribute to totals.
func goalTotals(goal SupportingGoal) (done, total int) {
	for _, a := range goal.Actions {
		if a.Completed {
			done++
		}
		if a.Text != "" {
			total++
		}
	}
	return done, total
}

// chartTotals aggregates goalTotals across the whole chart.
func chartTotals(chart Chart) (done, total int) {
	for _, goal := range chart.SupportingGoals {
		d, t := goalTotals(goal)
		done += d
		total += t
	}
	return done, total
}

// roundPct is done/total as a rounded percentage, 0 when total is 0.
func roundPct(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// wholeDays truncates a duration to whole days, flooring like calendar
// arithmetic does for past dates.
func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}

func parseDateish(s string) (time.Time, bool) {
	if len(s) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (d *Dispatcher) getProgress(ctx context.Context, _ arguments) string {
	var form GoalForm
	if !d.store.Read(ctx, KeyGoalForm, &form) {
		return "No Harada goal set up yet. Let's start by defining your north star goal!"
	}

	var habits []Habit
	d.store.Read(ctx, KeyHabits, &habits)
	habitLog := HabitLog{}
	d.store.Read(ctx, KeyHabitLog, &habitLog)

	now := d.now()
	todayLog := habitLog[now.Format(dateLayout)]

	active := activeHabits(habits)
	habitsDone := 0
	for _, h := range active {
		if todayLog[h.ID] {
			habitsDone++
		}
	}

	streak := computeStreak(habitLog, active, now)

	chartDone, chartTotal := 0, 0
	var goalSummaries []string
	var chart Chart
	if d.store.Read(ctx, KeyChart, &chart) {
		for _, goal := range chart.SupportingGoals {
			if goal.Title == "" {
				continue
			}
			done, total := goalTotals(goal)
			chartDone += done
			chartTotal += total
			goalSummaries = append(goalSummaries, fmt.Sprintf("  Goal %d '%s': %d/%d (%d%%)",
				goal.ID, goal.Title, done, total, roundPct(done, total)))
		}
	}

	daysInfo := ""
	if deadline, ok := parseDateish(form.Deadline); ok {
		if left := wholeDays(deadline.Sub(now)); left > 0 {
			daysInfo = fmt.Sprintf("%d days remaining to deadline. ", left)
		}
	}
	if created, ok := parseDateish(form.CreatedAt); ok {
		daysInfo += fmt.Sprintf("Day %d of your journey.", wholeDays(now.Sub(created)))
	}

	journalCount := len(d.store.List(ctx, journalPrefix))

	parts := []string{
		fmt.Sprintf("North star: %s.", form.NorthStar),
		daysInfo,
		fmt.Sprintf("Today's habits: %d/%d done.", habitsDone, len(active)),
	}
	if streak > 0 {
		parts = append(parts, fmt.Sprintf("Current streak: %d days.", streak))
	}
	if chartTotal > 0 {
		parts = append(parts, fmt.Sprintf("OW64 progress: %d/%d actions completed (%d%%).",
			chartDone, chartTotal, roundPct(chartDone, chartTotal)))
	}
	if len(goalSummaries) > 0 {
		parts = append(parts, "By goal:\n"+strings.Join(goalSummaries, "\n"))
	}
	if journalCount > 0 {
		parts = append(parts, fmt.Sprintf("Journal entries: %d total.", journalCount))
	}
	if form.Affirmation != "" {
		parts = append(parts, "Your affirmation: "+form.Affirmation)
	}

	return strings.Join(parts, "\n")
}

// averageOver reads up to averageLookbackDays of journal entries ending
// today and averages the values pick extracts, skipping zeroes. Returns
// false when no entry contributes.
func averageOver(ctx context.Context, st storex.Store, today time.Time, pick func(JournalEntry) int) (float64, bool) {
	sum, count := 0, 0
	for i := 0; i < averageLookbackDays; i++ {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		var entry JournalEntry
		if !st.Read(ctx, journalKey(date), &entry) {
			continue
		}
		if v := pick(entry); v != 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10, true
}

package harada

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	storex "github.com/haradakit/companion/agent/store"
)

const maxOverlayMessages = 40

// OverlayMessage is one line of the conversation feed shown on the
// dashboard overlay.
type OverlayMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// OverlayState is the full snapshot consumed by the desktop overlay. It is
// rebuilt from the stored documents after every exchange.
type OverlayState struct {
	Timestamp    string           `json:"timestamp"`
	Conversation []OverlayMessage `json:"conversation"`
	Dashboard    Dashboard        `json:"dashboard"`
}

// Dashboard carries the derived metrics for the overlay panel. AvgMood and
// AvgEnergy are pointers so an empty journal renders as null rather than 0.
type Dashboard struct {
	NorthStar      string         `json:"northStar"`
	Affirmation    string         `json:"affirmation"`
	DaysSinceStart int            `json:"daysSinceStart"`
	DaysRemaining  int            `json:"daysRemaining"`
	Habits         []HabitStatus  `json:"habits"`
	HabitsDone     int            `json:"habitsCompleted"`
	HabitsTotal    int            `json:"habitsTotal"`
	Streak         int            `json:"streak"`
	OW64Completion int            `json:"ow64Completion"`
	OW64Done       int            `json:"ow64Done"`
	OW64Total      int            `json:"ow64Total"`
	GoalProgress   []GoalProgress `json:"goalProgress"`
	AvgMood        *float64       `json:"avgMood"`
	AvgEnergy      *float64       `json:"avgEnergy"`
}

// HabitStatus is one habit row on the dashboard.
type HabitStatus struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// GoalProgress is one titled chart goal and its completion percentage.
type GoalProgress struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Pct   int    `json:"pct"`
}

// Projector derives the overlay snapshot from the stored documents and
// persists it back under its own key.
type Projector struct {
	store storex.Store
	now   func() time.Time
}

// NewProjector builds a Projector over st. now may be nil, in which case
// time.Now is used.
func NewProjector(st storex.Store, now func() time.Time) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{store: st, now: now}
}

// Snapshot computes the current overlay state without persisting it. The
// given conversation feed is embedded as-is.
func (p *Projector) Snapshot(ctx context.Context, conversation []OverlayMessage) OverlayState {
	var form GoalForm
	hasForm := p.store.Read(ctx, KeyGoalForm, &form)

	var habits []Habit
	p.store.Read(ctx, KeyHabits, &habits)
	habitLog := HabitLog{}
	p.store.Read(ctx, KeyHabitLog, &habitLog)

	now := p.now()
	todayLog := habitLog[now.Format(dateLayout)]

	active := activeHabits(habits)
	statuses := make([]HabitStatus, 0, len(active))
	habitsDone := 0
	for _, h := range active {
		done := todayLog[h.ID]
		if done {
			habitsDone++
		}
		statuses = append(statuses, HabitStatus{Name: h.Name, Done: done})
	}

	chartDone, chartTotal := 0, 0
	var goalProgress []GoalProgress
	var chart Chart
	if p.store.Read(ctx, KeyChart, &chart) {
		for _, goal := range chart.SupportingGoals {
			done, total := goalTotals(goal)
			chartDone += done
			chartTotal += total
			if goal.Title != "" {
				goalProgress = append(goalProgress, GoalProgress{
					ID:    goal.ID,
					Title: goal.Title,
					Pct:   roundPct(done, total),
				})
			}
		}
	}

	daysSinceStart := 0
	daysRemaining := -1
	if hasForm {
		if created, ok := parseDateish(form.CreatedAt); ok {
			daysSinceStart = wholeDays(now.Sub(created))
		}
		if deadline, ok := parseDateish(form.Deadline); ok {
			daysRemaining = wholeDays(deadline.Sub(now))
		}
	}

	dash := Dashboard{
		NorthStar:      form.NorthStar,
		Affirmation:    form.Affirmation,
		DaysSinceStart: daysSinceStart,
		DaysRemaining:  daysRemaining,
		Habits:         statuses,
		HabitsDone:     habitsDone,
		HabitsTotal:    len(active),
		Streak:         computeStreak(habitLog, active, now),
		OW64Completion: roundPct(chartDone, chartTotal),
		OW64Done:       chartDone,
		OW64Total:      chartTotal,
		GoalProgress:   goalProgress,
	}
	if avg, ok := averageOver(ctx, p.store, now, func(e JournalEntry) int { return e.Mood }); ok {
		dash.AvgMood = &avg
	}
	if avg, ok := averageOver(ctx, p.store, now, func(e JournalEntry) int { return e.Energy }); ok {
		dash.AvgEnergy = &avg
	}

	if conversation == nil {
		conversation = []OverlayMessage{}
	}
	return OverlayState{
		Timestamp:    now.Format(time.RFC3339),
		Conversation: conversation,
		Dashboard:    dash,
	}
}

// Refresh appends the latest exchange to the persisted overlay's
// conversation feed, recomputes the dashboard, and writes the snapshot
// back. The feed keeps at most the newest 40 entries. A missing or
// unreadable prior snapshot just means the feed starts fresh.
func (p *Projector) Refresh(ctx context.Context, userText, assistantText string) error {
	var prev OverlayState
	feed := []OverlayMessage{}
	if p.store.Read(ctx, KeyOverlay, &prev) {
		feed = prev.Conversation
	}

	if userText != "" {
		feed = append(feed, OverlayMessage{Role: "user", Text: userText})
	}
	if assistantText != "" {
		feed = append(feed, OverlayMessage{Role: "assistant", Text: assistantText})
	}
	if len(feed) > maxOverlayMessages {
		feed = feed[len(feed)-maxOverlayMessages:]
	}

	state := p.Snapshot(ctx, feed)
	if err := p.store.Write(ctx, KeyOverlay, state); err != nil {
		return fmt.Errorf("persist overlay snapshot: %w", err)
	}
	log.Debug().Int("conversation", len(feed)).Msg("overlay snapshot updated")
	return nil
}

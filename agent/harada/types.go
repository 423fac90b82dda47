// Package harada implements the goal-tracking tool layer of the companion:
// the fixed tool registry the chat provider can call, the handlers that
// read and mutate the document store, and the derived-state projections
// (streaks, chart completion, rolling mood/energy) consumers display.
package harada

import "fmt"

// Document keys in the store.
const (
	KeyGoalForm = "goal-form"
	KeyChart    = "ow64"
	KeyHabits   = "habits"
	KeyHabitLog = "habit-log"
	KeyOverlay  = "overlay"

	journalPrefix = "journal"
)

func journalKey(date string) string {
	return journalPrefix + "/" + date
}

const (
	chartGoals          = 8
	actionsPerGoal      = 8
	streakLookbackDays  = 365
	averageLookbackDays = 30
)

// GoalForm is the single long-term goal record. CreatedAt is set on the
// first write and never changes afterwards.
type GoalForm struct {
	NorthStar     string   `json:"northStar"`
	Purpose       string   `json:"purpose"`
	Deadline      string   `json:"deadline"`
	CurrentState  string   `json:"currentState"`
	GapAnalysis   string   `json:"gapAnalysis"`
	Obstacles     []string `json:"obstacles"`
	SupportNeeded []string `json:"supportNeeded"`
	Affirmation   string   `json:"affirmation"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// Chart is the 8-goals-by-8-actions grid derived from the north star.
// Slot counts are fixed regardless of how many slots are populated.
type Chart struct {
	NorthStar       string           `json:"northStar"`
	SupportingGoals []SupportingGoal `json:"supportingGoals"`
}

type SupportingGoal struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Actions []Action `json:"actions"`
}

type Action struct {
	ID          string `json:"id"`
	GoalID      int    `json:"goalId"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
	IsHabit     bool   `json:"isHabit"`
}

// newChart builds an empty chart with stable 1-based goal ids and
// composite action ids of the form "{goal}-{action}".
func newChart(northStar string) *Chart {
	chart := &Chart{
		NorthStar:       northStar,
		SupportingGoals: make([]SupportingGoal, 0, chartGoals),
	}
	for i := 1; i <= chartGoals; i++ {
		goal := SupportingGoal{
			ID:      i,
			Actions: make([]Action, 0, actionsPerGoal),
		}
		for j := 1; j <= actionsPerGoal; j++ {
			goal.Actions = append(goal.Actions, Action{
				ID:     fmt.Sprintf("%d-%d", i, j),
				GoalID: i,
			})
		}
		chart.SupportingGoals = append(chart.SupportingGoals, goal)
	}
	return chart
}

// Habit is one tracked habit. Removal deactivates; records are never
// deleted.
type Habit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// HabitLog maps calendar date (YYYY-MM-DD) to habit id to completion.
// Sparse: an absent date or habit id means not done.
type HabitLog map[string]map[string]bool

// JournalEntry is the single journal record for one calendar date.
// Mood and energy are nominally 1-5 but the range is not enforced.
type JournalEntry struct {
	Date          string   `json:"date"`
	WentWell      []string `json:"wentWell"`
	DidntGoWell   []string `json:"didntGoWell"`
	Learnings     []string `json:"learnings"`
	TomorrowFocus []string `json:"tomorrowFocus"`
	Mood          int      `json:"mood"`
	Energy        int      `json:"energy"`
	Notes         string   `json:"notes"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

func activeHabits(habits []Habit) []Habit {
	var active []Habit
	for _, h := range habits {
		if h.Active {
			active = append(active, h)
		}
	}
	return active
}

package harada

import (
	"context"
	"strings"
	"testing"
)

func TestExecuteUnknownTool(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	got := d.Execute(context.Background(), "launch_rocket", map[string]any{})
	if got != "Unknown tool: launch_rocket" {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestExecuteMissingRequiredArgument(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	got := d.Execute(context.Background(), "add_habit", map[string]any{})
	want := "Tool error (add_habit): name is required"
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}
}

func TestExecuteStoreWriteFailure(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	st.writeErr = errWriteFailed
	d := newTestDispatcher(st)

	got := d.Execute(context.Background(), "add_habit", map[string]any{"name": "Run"})
	if !strings.HasPrefix(got, "Tool error (add_habit):") {
		t.Fatalf("Execute() = %q, want tool error", got)
	}
	if !strings.Contains(got, "write failed") {
		t.Fatalf("Execute() = %q, want underlying cause in message", got)
	}
}

func TestAddHabitUniqueIDs(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	d.Execute(ctx, "add_habit", map[string]any{"name": "Run"})
	d.Execute(ctx, "add_habit", map[string]any{"name": "Read"})

	var habits []Habit
	if !st.Read(ctx, KeyHabits, &habits) {
		t.Fatal("habits document not written")
	}
	if len(habits) != 2 {
		t.Fatalf("len(habits) = %d, want 2", len(habits))
	}
	if habits[0].ID == habits[1].ID {
		t.Fatalf("habit ids collide: %q", habits[0].ID)
	}
	for _, h := range habits {
		if !strings.HasPrefix(h.ID, "habit-custom-") {
			t.Fatalf("habit id = %q, want habit-custom- prefix", h.ID)
		}
		if !h.Active {
			t.Fatalf("habit %q not active", h.Name)
		}
	}
}

func TestAddHabitDefaultsFrequency(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	got := d.Execute(context.Background(), "add_habit", map[string]any{"name": "Run"})
	want := "Added new habit: 'Run' (daily). You now have 1 active habits."
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}
}

func TestListHabitsEmpty(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	got := d.Execute(context.Background(), "list_habits", map[string]any{})
	if got != "You don't have any habits set up yet. Would you like to create some?" {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestCheckHabitFuzzyAndCount(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()

	d.Execute(ctx, "add_habit", map[string]any{"name": "Morning run"})
	d.Execute(ctx, "add_habit", map[string]any{"name": "Stretch routine"})

	got := d.Execute(ctx, "check_habit", map[string]any{"habit_name": "run"})
	want := "Checked off 'Morning run'! That's 1 out of 2 done today."
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}

	got = d.Execute(ctx, "check_habit", map[string]any{"habit_name": "stretch"})
	want = "Checked off 'Stretch routine'! That's all 2 habits done for today! Amazing work!"
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}
}

func TestCheckHabitNoMatchListsNames(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()
	d.Execute(ctx, "add_habit", map[string]any{"name": "Morning run"})

	got := d.Execute(ctx, "check_habit", map[string]any{"habit_name": "meditation"})
	want := "I couldn't find a habit matching 'meditation'. Your habits are: Morning run"
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}
}

func TestUncheckHabit(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	d.Execute(ctx, "add_habit", map[string]any{"name": "Morning run"})
	d.Execute(ctx, "check_habit", map[string]any{"habit_name": "run"})

	got := d.Execute(ctx, "uncheck_habit", map[string]any{"habit_name": "run"})
	if got != "Unchecked 'Morning run' for today." {
		t.Fatalf("Execute() = %q", got)
	}

	list := d.Execute(ctx, "list_habits", map[string]any{})
	if !strings.HasPrefix(list, "Today's habits (0/1 done):") {
		t.Fatalf("list_habits = %q, want 0/1 done", list)
	}
}

func TestRemoveHabitDeactivates(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	d.Execute(ctx, "add_habit", map[string]any{"name": "Morning run"})
	got := d.Execute(ctx, "remove_habit", map[string]any{"habit_name": "run"})
	if got != "Removed habit: 'Morning run'." {
		t.Fatalf("Execute() = %q", got)
	}

	// The record stays, only deactivated.
	var habits []Habit
	st.Read(ctx, KeyHabits, &habits)
	if len(habits) != 1 || habits[0].Active {
		t.Fatalf("habits = %+v, want one inactive record", habits)
	}
}

func TestSetupGoalMessageAndCreatedAt(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	got := d.Execute(ctx, "setup_goal", map[string]any{
		"north_star":  "Run a marathon",
		"deadline":    "2026-12-01",
		"affirmation": "I am a strong and capable runner",
	})
	want := "Goal form saved! North star: 'Run a marathon'. Deadline: 2026-12-01. Affirmation: 'I am a strong and capable runner'"
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}

	var first GoalForm
	st.Read(ctx, KeyGoalForm, &first)

	// A rewrite keeps the original creation timestamp.
	d.Execute(ctx, "setup_goal", map[string]any{"north_star": "Run an ultramarathon"})
	var second GoalForm
	st.Read(ctx, KeyGoalForm, &second)
	if second.CreatedAt != first.CreatedAt {
		t.Fatalf("CreatedAt = %q, want %q preserved", second.CreatedAt, first.CreatedAt)
	}
	if second.NorthStar != "Run an ultramarathon" {
		t.Fatalf("NorthStar = %q", second.NorthStar)
	}
}

func TestSetupSupportingGoalRequiresForm(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	got := d.Execute(context.Background(), "setup_supporting_goal", map[string]any{
		"goal_number": float64(1),
		"title":       "Build endurance",
	})
	if got != "Set up your north star goal first." {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestSetupSupportingGoalRange(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()
	d.Execute(ctx, "setup_goal", map[string]any{"north_star": "Run a marathon"})

	got := d.Execute(ctx, "setup_supporting_goal", map[string]any{
		"goal_number": float64(9),
		"title":       "Too far",
	})
	if got != "Goal number must be 1-8." {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestCompleteActionIdempotent(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	d.Execute(ctx, "setup_goal", map[string]any{"north_star": "Run a marathon"})
	d.Execute(ctx, "setup_supporting_goal", map[string]any{
		"goal_number": float64(1),
		"title":       "Build endurance",
		"actions":     []any{"Run 3 times a week", "Do a half marathon"},
	})

	want := "Completed action 1-1: 'Run 3 times a week'! That's 1/8 for goal 'Build endurance'."
	for i := 0; i < 2; i++ {
		got := d.Execute(ctx, "complete_action", map[string]any{
			"goal_number":   float64(1),
			"action_number": float64(1),
		})
		if got != want {
			t.Fatalf("Execute() pass %d = %q, want %q", i+1, got, want)
		}
	}

	var chart Chart
	st.Read(ctx, KeyChart, &chart)
	done, total := goalTotals(chart.SupportingGoals[0])
	if done != 1 || total != 2 {
		t.Fatalf("goalTotals() = %d/%d, want 1/2", done, total)
	}
}

func TestCompleteActionEmptySlot(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()
	d.Execute(ctx, "setup_goal", map[string]any{"north_star": "Run a marathon"})
	d.Execute(ctx, "setup_supporting_goal", map[string]any{
		"goal_number": float64(1),
		"title":       "Build endurance",
	})

	got := d.Execute(ctx, "complete_action", map[string]any{
		"goal_number":   float64(1),
		"action_number": float64(5),
	})
	if got != "Action 1-5 has no text defined." {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestGetAffirmation(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()

	got := d.Execute(ctx, "get_affirmation", map[string]any{})
	if got != "No affirmation set. Would you like to create one?" {
		t.Fatalf("Execute() = %q", got)
	}

	d.Execute(ctx, "setup_goal", map[string]any{
		"north_star":  "Run a marathon",
		"affirmation": "I am a strong and capable runner",
	})
	got = d.Execute(ctx, "get_affirmation", map[string]any{})
	if got != "I am a strong and capable runner" {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestGetGoalsListsTitledOnly(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()
	d.Execute(ctx, "setup_goal", map[string]any{"north_star": "Run a marathon"})
	d.Execute(ctx, "setup_supporting_goal", map[string]any{
		"goal_number": float64(2),
		"title":       "Nutrition",
		"actions":     []any{"Meal prep Sundays"},
	})

	got := d.Execute(ctx, "get_goals", map[string]any{})
	if !strings.Contains(got, "North star: Run a marathon") {
		t.Fatalf("get_goals = %q, missing north star", got)
	}
	if !strings.Contains(got, "2. Nutrition (0/1 actions done)") {
		t.Fatalf("get_goals = %q, missing goal summary", got)
	}
	if strings.Contains(got, "1. ") {
		t.Fatalf("get_goals = %q, untitled goal listed", got)
	}
}

package harada

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func (d *Dispatcher) listHabits(ctx context.Context, _ arguments) string {
	var habits []Habit
	d.store.Read(ctx, KeyHabits, &habits)

	active := activeHabits(habits)
	if len(active) == 0 {
		return "You don't have any habits set up yet. Would you like to create some?"
	}

	habitLog := HabitLog{}
	d.store.Read(ctx, KeyHabitLog, &habitLog)
	todayLog := habitLog[d.today()]

	var lines []string
	completed := 0
	for _, h := range active {
		mark := "not done"
		if todayLog[h.ID] {
			completed++
			mark = "done"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Name, mark))
	}

	header := fmt.Sprintf("Today's habits (%d/%d done):\n", completed, len(active))
	return header + strings.Join(lines, "\n")
}

func (d *Dispatcher) checkHabit(ctx context.Context, args arguments) string {
	habitName := args.text("habit_name")

	var habits []Habit
	d.store.Read(ctx, KeyHabits, &habits)
	active := activeHabits(habits)
	if len(active) == 0 {
		return "No habits set up yet."
	}

	match, score := fuzzyMatch(habitName, active)
	if match == nil || score < minMatchScore {
		names := make([]string, 0, len(active))
		for _, h := range active {
			names = append(names, h.Name)
		}
		return fmt.Sprintf("I couldn't find a habit matching '%s'. Your habits are: %s",
			habitName, strings.Join(names, ", "))
	}

	habitLog := HabitLog{}
	d.store.Read(ctx, KeyHabitLog, &habitLog)
	today := d.today()
	if habitLog[today] == nil {
		habitLog[today] = map[string]bool{}
	}
	habitLog[today][match.ID] = true
	d.mustWrite(ctx, KeyHabitLog, habitLog)

	completed := 0
	for _, h := range active {
		if habitLog[today][h.ID] {
			completed++
		}
	}
	total := len(active)

	if completed == total {
		return fmt.Sprintf("Checked off '%s'! That's all %d habits done for today! Amazing work!", match.Name, total)
	}
	return fmt.Sprintf("Checked off '%s'! That's %d out of %d done today.", match.Name, completed, total)
}

func (d *Dispatcher) uncheckHabit(ctx context.Context, args arguments) string {
	habitName := args.text("habit_name")

	var habits []Habit
	d.store.Read(ctx, KeyHabits, &habits)
	active := activeHabits(habits)

	match, score := fuzzyMatch(habitName, active)
	if match == nil || score < minMatchScore {
		return fmt.Sprintf("I couldn't find a habit matching '%s'.", habitName)
	}

	habitLog := HabitLog{}
	d.store.Read(ctx, KeyHabitLog, &habitLog)
	today := d.today()
	if _, ok := habitLog[today][match.ID]; ok {
		habitLog[today][match.ID] = false
		d.mustWrite(ctx, KeyHabitLog, habitLog)
	}

	return fmt.Sprintf("Unchecked '%s' for today.", match.Name)
}

func (d *Dispatcher) addHabit(ctx context.Context, args arguments) string {
	name := args.text("name")
	frequency := args.textOr("frequency", "daily")

	var habits []Habit
	d.store.Read(ctx, KeyHabits, &habits)

	habits = append(habits, Habit{
		ID:        "habit-custom-" + uuid.NewString()[:8],
		Name:      name,
		Frequency: frequency,
		Active:    true,
		CreatedAt: d.timestamp(),
	})
	d.mustWrite(ctx, KeyHabits, habits)

	return fmt.Sprintf("Added new habit: '%s' (%s). You now have %d active habits.",
		name, frequency, len(activeHabits(habits)))
}

func (d *Dispatcher) removeHabit(ctx context.Context, args arguments) string {
	habitName := args.text("habit_name")

	var habits []Habit
	d.store.Read(ctx, KeyHabits, &habits)
	active := activeHabits(habits)

	match, score := fuzzyMatch(habitName, active)
	if match == nil || score < minMatchScore {
		return fmt.Sprintf("I couldn't find a habit matching '%s'.", habitName)
	}

	for i := range habits {
		if habits[i].ID == match.ID {
			habits[i].Active = false
		}
	}
	d.mustWrite(ctx, KeyHabits, habits)

	return fmt.Sprintf("Removed habit: '%s'.", match.Name)
}

package harada

import (
	"context"
	"fmt"
	"strings"
)

func (d *Dispatcher) setupGoal(ctx context.Context, args arguments) string {
	northStar := args.text("north_star")

	var existing GoalForm
	hasExisting := d.store.Read(ctx, KeyGoalForm, &existing)

	now := d.timestamp()
	form := GoalForm{
		NorthStar:     northStar,
		Purpose:       args.textOr("purpose", ""),
		Deadline:      args.textOr("deadline", ""),
		CurrentState:  args.textOr("current_state", ""),
		GapAnalysis:   args.textOr("gap_analysis", ""),
		Obstacles:     args.listOrEmpty("obstacles"),
		SupportNeeded: args.listOrEmpty("support_needed"),
		Affirmation:   args.textOr("affirmation", ""),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if hasExisting && existing.CreatedAt != "" {
		form.CreatedAt = existing.CreatedAt
	}
	d.mustWrite(ctx, KeyGoalForm, form)

	var b strings.Builder
	fmt.Fprintf(&b, "Goal form saved! North star: '%s'. ", northStar)
	if form.Deadline != "" {
		fmt.Fprintf(&b, "Deadline: %s. ", form.Deadline)
	}
	if form.Affirmation != "" {
		fmt.Fprintf(&b, "Affirmation: '%s'", form.Affirmation)
	}
	return strings.TrimRight(b.String(), " ")
}

func (d *Dispatcher) setupSupportingGoal(ctx context.Context, args arguments) string {
	goalNumber := args.integer("goal_number")
	title := args.text("title")

	var form GoalForm
	if !d.store.Read(ctx, KeyGoalForm, &form) {
		return "Set up your north star goal first."
	}

	var chart Chart
	if !d.store.Read(ctx, KeyChart, &chart) {
		chart = *newChart(form.NorthStar)
	}

	if goalNumber < 1 || goalNumber > chartGoals {
		return "Goal number must be 1-8."
	}

	goal := &chart.SupportingGoals[goalNumber-1]
	goal.Title = title

	actions, _ := args.listIfPresent("actions")
	if len(actions) > actionsPerGoal {
		actions = actions[:actionsPerGoal]
	}
	for idx, text := range actions {
		goal.Actions[idx].Text = text
	}

	d.mustWrite(ctx, KeyChart, chart)

	if len(actions) > 0 {
		return fmt.Sprintf("Supporting goal %d set: '%s' with %d actions.", goalNumber, title, len(actions))
	}
	return fmt.Sprintf("Supporting goal %d set: '%s'.", goalNumber, title)
}

func (d *Dispatcher) completeAction(ctx context.Context, args arguments) string {
	goalNumber := args.integer("goal_number")
	actionNumber := args.integer("action_number")

	var chart Chart
	if !d.store.Read(ctx, KeyChart, &chart) {
		return "No OW64 chart set up."
	}

	if goalNumber < 1 || goalNumber > chartGoals {
		return "Goal number must be 1-8."
	}
	if actionNumber < 1 || actionNumber > actionsPerGoal {
		return "Action number must be 1-8."
	}

	goal := &chart.SupportingGoals[goalNumber-1]
	action := &goal.Actions[actionNumber-1]
	if action.Text == "" {
		return fmt.Sprintf("Action %d-%d has no text defined.", goalNumber, actionNumber)
	}

	action.Completed = true
	action.CompletedAt = d.timestamp()
	d.mustWrite(ctx, KeyChart, chart)

	done := 0
	for _, a := range goal.Actions {
		if a.Completed {
			done++
		}
	}
	return fmt.Sprintf("Completed action %d-%d: '%s'! That's %d/%d for goal '%s'.",
		goalNumber, actionNumber, action.Text, done, actionsPerGoal, goal.Title)
}

func (d *Dispatcher) getGoals(ctx context.Context, _ arguments) string {
	var form GoalForm
	if !d.store.Read(ctx, KeyGoalForm, &form) {
		return "No goal form set up yet. Let's define your north star!"
	}

	parts := []string{
		fmt.Sprintf("North star: %s", form.NorthStar),
		fmt.Sprintf("Purpose: %s", orNotSet(form.Purpose)),
		fmt.Sprintf("Deadline: %s", orNotSet(form.Deadline)),
		fmt.Sprintf("Affirmation: %s", orNotSet(form.Affirmation)),
	}

	var chart Chart
	if d.store.Read(ctx, KeyChart, &chart) && len(chart.SupportingGoals) > 0 {
		parts = append(parts, "\nSupporting goals:")
		for _, goal := range chart.SupportingGoals {
			if goal.Title == "" {
				continue
			}
			done, total := goalTotals(goal)
			parts = append(parts, fmt.Sprintf("  %d. %s (%d/%d actions done)", goal.ID, goal.Title, done, total))
		}
	}

	return strings.Join(parts, "\n")
}

func (d *Dispatcher) getAffirmation(ctx context.Context, _ arguments) string {
	var form GoalForm
	if !d.store.Read(ctx, KeyGoalForm, &form) || form.Affirmation == "" {
		return "No affirmation set. Would you like to create one?"
	}
	return form.Affirmation
}

func orNotSet(v string) string {
	if v == "" {
		return "Not set"
	}
	return v
}

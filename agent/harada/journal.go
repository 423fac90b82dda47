package harada

import (
	"context"
	"fmt"
	"strings"
)

var (
	moodLabels   = map[int]string{1: "rough", 2: "meh", 3: "okay", 4: "good", 5: "great"}
	energyLabels = map[int]string{1: "drained", 2: "low", 3: "moderate", 4: "high", 5: "energized"}
)

func labelFor(labels map[int]string, value int, fallback string) string {
	if label, ok := labels[value]; ok {
		return label
	}
	return fallback
}

// writeJournal merges into today's entry: a field passed explicitly
// (including an empty list) overwrites, an omitted field keeps its
// previous value. Mood and energy default to 3 only when no prior entry
// exists. CreatedAt is set once.
func (d *Dispatcher) writeJournal(ctx context.Context, args arguments) string {
	today := d.today()
	now := d.timestamp()

	entry := JournalEntry{
		Mood:      3,
		Energy:    3,
		CreatedAt: now,
	}
	d.store.Read(ctx, journalKey(today), &entry)
	entry.Date = today
	entry.UpdatedAt = now
	if entry.CreatedAt == "" {
		entry.CreatedAt = now
	}

	if v, ok := args.listIfPresent("went_well"); ok {
		entry.WentWell = v
	}
	if v, ok := args.listIfPresent("didnt_go_well"); ok {
		entry.DidntGoWell = v
	}
	if v, ok := args.listIfPresent("learnings"); ok {
		entry.Learnings = v
	}
	if v, ok := args.listIfPresent("tomorrow_focus"); ok {
		entry.TomorrowFocus = v
	}
	if v, ok := args.integerIfPresent("mood"); ok {
		entry.Mood = v
	}
	if v, ok := args.integerIfPresent("energy"); ok {
		entry.Energy = v
	}
	if v, ok := args.textIfPresent("notes"); ok {
		entry.Notes = v
	}

	d.mustWrite(ctx, journalKey(today), entry)

	return fmt.Sprintf(
		"Journal saved for %s. Mood: %s (%d/5). Energy: %s (%d/5). %d wins, %d challenges, %d learnings noted.",
		today,
		labelFor(moodLabels, entry.Mood, "okay"), entry.Mood,
		labelFor(energyLabels, entry.Energy, "moderate"), entry.Energy,
		len(entry.WentWell), len(entry.DidntGoWell), len(entry.Learnings),
	)
}

func (d *Dispatcher) readJournal(ctx context.Context, args arguments) string {
	date := args.textOr("date", d.today())

	var entry JournalEntry
	if !d.store.Read(ctx, journalKey(date), &entry) {
		return fmt.Sprintf("No journal entry for %s.", date)
	}

	parts := []string{fmt.Sprintf("Journal for %s:", date)}
	if len(entry.WentWell) > 0 {
		parts = append(parts, "What went well: "+strings.Join(entry.WentWell, "; "))
	}
	if len(entry.DidntGoWell) > 0 {
		parts = append(parts, "Challenges: "+strings.Join(entry.DidntGoWell, "; "))
	}
	if len(entry.Learnings) > 0 {
		parts = append(parts, "Learnings: "+strings.Join(entry.Learnings, "; "))
	}
	if len(entry.TomorrowFocus) > 0 {
		parts = append(parts, "Tomorrow's focus: "+strings.Join(entry.TomorrowFocus, "; "))
	}
	parts = append(parts, fmt.Sprintf("Mood: %d/5, Energy: %d/5", entry.Mood, entry.Energy))
	if entry.Notes != "" {
		parts = append(parts, "Notes: "+entry.Notes)
	}

	return strings.Join(parts, "\n")
}

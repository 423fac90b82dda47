package harada

import (
	"context"
	"testing"
)

func TestWriteJournalDefaults(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	got := d.Execute(ctx, "write_journal", map[string]any{
		"went_well": []any{"Finished the long run"},
	})
	want := "Journal saved for 2026-03-14. Mood: okay (3/5). Energy: moderate (3/5). 1 wins, 0 challenges, 0 learnings noted."
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}

	var entry JournalEntry
	if !st.Read(ctx, journalKey("2026-03-14"), &entry) {
		t.Fatal("journal entry not written")
	}
	if entry.Mood != 3 || entry.Energy != 3 {
		t.Fatalf("entry mood/energy = %d/%d, want 3/3", entry.Mood, entry.Energy)
	}
	if entry.CreatedAt == "" {
		t.Fatal("entry CreatedAt empty")
	}
}

func TestWriteJournalMergesDisjointFields(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	d.Execute(ctx, "write_journal", map[string]any{
		"went_well": []any{"Morning run done"},
		"mood":      float64(4),
	})

	var first JournalEntry
	st.Read(ctx, journalKey("2026-03-14"), &first)

	d.Execute(ctx, "write_journal", map[string]any{
		"learnings": []any{"Pace myself on hills"},
		"energy":    float64(2),
	})

	var merged JournalEntry
	st.Read(ctx, journalKey("2026-03-14"), &merged)

	if len(merged.WentWell) != 1 || merged.WentWell[0] != "Morning run done" {
		t.Fatalf("WentWell = %v, want preserved", merged.WentWell)
	}
	if len(merged.Learnings) != 1 || merged.Learnings[0] != "Pace myself on hills" {
		t.Fatalf("Learnings = %v", merged.Learnings)
	}
	if merged.Mood != 4 {
		t.Fatalf("Mood = %d, want 4 preserved", merged.Mood)
	}
	if merged.Energy != 2 {
		t.Fatalf("Energy = %d, want 2 overwritten", merged.Energy)
	}
	if merged.CreatedAt != first.CreatedAt {
		t.Fatalf("CreatedAt = %q, want %q preserved", merged.CreatedAt, first.CreatedAt)
	}
}

func TestWriteJournalExplicitEmptyListOverwrites(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	d := newTestDispatcher(st)
	ctx := context.Background()

	d.Execute(ctx, "write_journal", map[string]any{"went_well": []any{"A good day"}})
	d.Execute(ctx, "write_journal", map[string]any{"went_well": []any{}})

	var entry JournalEntry
	st.Read(ctx, journalKey("2026-03-14"), &entry)
	if len(entry.WentWell) != 0 {
		t.Fatalf("WentWell = %v, want cleared", entry.WentWell)
	}
}

func TestReadJournalMissing(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	got := d.Execute(context.Background(), "read_journal", map[string]any{"date": "2026-01-01"})
	if got != "No journal entry for 2026-01-01." {
		t.Fatalf("Execute() = %q", got)
	}
}

func TestReadJournalFormatsSections(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMemStore())
	ctx := context.Background()

	d.Execute(ctx, "write_journal", map[string]any{
		"went_well":     []any{"Long run", "Good sleep"},
		"didnt_go_well": []any{"Skipped stretching"},
		"mood":          float64(5),
		"notes":         "Taper week starts Monday",
	})

	got := d.Execute(ctx, "read_journal", map[string]any{})
	want := "Journal for 2026-03-14:\n" +
		"What went well: Long run; Good sleep\n" +
		"Challenges: Skipped stretching\n" +
		"Mood: 5/5, Energy: 3/5\n" +
		"Notes: Taper week starts Monday"
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}
}

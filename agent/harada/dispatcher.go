package harada

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/haradakit/companion/agent/contract"
	storex "github.com/haradakit/companion/agent/store"
)

// Dispatcher is the fixed registry of goal-tracking tools. It is the only
// writer of the document store. Execute never fails hard: every problem
// comes back as a descriptive string so the dialogue can recover.
type Dispatcher struct {
	store    storex.Store
	now      func() time.Time
	handlers map[string]handlerFunc
}

type handlerFunc func(ctx context.Context, args arguments) string

func NewDispatcher(st storex.Store) *Dispatcher {
	d := &Dispatcher{
		store: st,
		now:   time.Now,
	}
	d.handlers = map[string]handlerFunc{
		"list_habits":           d.listHabits,
		"check_habit":           d.checkHabit,
		"uncheck_habit":         d.uncheckHabit,
		"add_habit":             d.addHabit,
		"remove_habit":          d.removeHabit,
		"get_progress":          d.getProgress,
		"get_goals":             d.getGoals,
		"get_affirmation":       d.getAffirmation,
		"setup_goal":            d.setupGoal,
		"setup_supporting_goal": d.setupSupportingGoal,
		"complete_action":       d.completeAction,
		"write_journal":         d.writeJournal,
		"read_journal":          d.readJournal,
	}
	return d
}

var _ contractx.ToolExecutor = (*Dispatcher)(nil)

// Execute runs a tool by name. An unknown name and a handler fault both
// become string results, never errors or panics to the caller.
func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) (result string) {
	handler, ok := d.handlers[name]
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("tool", name).Interface("cause", r).Msg("tool handler failed")
			result = fmt.Sprintf("Tool error (%s): %v", name, r)
		}
	}()

	log.Debug().Str("tool", name).Msg("executing tool")
	return handler(ctx, arguments(args))
}

func (d *Dispatcher) today() string {
	return d.now().Format("2006-01-02")
}

func (d *Dispatcher) timestamp() string {
	return d.now().Format(time.RFC3339)
}

// mustWrite surfaces store write failures through the recover path in
// Execute, keeping handler bodies linear.
func (d *Dispatcher) mustWrite(ctx context.Context, key string, doc any) {
	if err := d.store.Write(ctx, key, doc); err != nil {
		panic(err)
	}
}

// arguments wraps the decoded tool-call argument object. Providers drift:
// unknown keys are ignored, numbers may arrive as float64 or string, and a
// missing key is distinct from an explicitly empty value.
type arguments map[string]any

// text returns a required string argument, faulting when absent so
// Execute reports it as a tool error.
func (a arguments) text(key string) string {
	v, ok := a.textIfPresent(key)
	if !ok {
		panic(fmt.Sprintf("%s is required", key))
	}
	return v
}

func (a arguments) textIfPresent(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (a arguments) textOr(key, fallback string) string {
	if v, ok := a.textIfPresent(key); ok && v != "" {
		return v
	}
	return fallback
}

// integer returns a required numeric argument, accepting the float64 that
// encoding/json produces for JSON numbers.
func (a arguments) integer(key string) int {
	v, ok := a.integerIfPresent(key)
	if !ok {
		panic(fmt.Sprintf("%s is required", key))
	}
	return v
}

func (a arguments) integerIfPresent(key string) (int, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func (a arguments) listIfPresent(key string) ([]string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			items = append(items, s)
		}
	}
	return items, true
}

func (a arguments) listOrEmpty(key string) []string {
	if items, ok := a.listIfPresent(key); ok {
		return items
	}
	return []string{}
}

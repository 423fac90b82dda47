package harada

import contractx "github.com/haradakit/companion/agent/contract"

// Tools advertises the dispatcher's registry to the chat provider.
// Declaration order is stable so request payloads stay reproducible.
func Tools() []contractx.ToolDecl {
	return []contractx.ToolDecl{
		{
			Name:        "list_habits",
			Description: "List today's habits with their completion status",
		},
		{
			Name:        "check_habit",
			Description: "Mark a habit as done for today. Uses fuzzy name matching.",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"habit_name": {Type: "string", Description: "The name (or partial name) of the habit to check off"},
				},
				Required: []string{"habit_name"},
			},
		},
		{
			Name:        "uncheck_habit",
			Description: "Undo a habit check for today",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"habit_name": {Type: "string", Description: "The name of the habit to uncheck"},
				},
				Required: []string{"habit_name"},
			},
		},
		{
			Name:        "add_habit",
			Description: "Add a new habit to track daily",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"name":      {Type: "string", Description: "Name of the new habit"},
					"frequency": {Type: "string", Enum: []string{"daily", "weekday", "weekly"}, Description: "How often (default: daily)"},
				},
				Required: []string{"name"},
			},
		},
		{
			Name:        "remove_habit",
			Description: "Remove/deactivate a habit",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"habit_name": {Type: "string", Description: "Name of habit to remove"},
				},
				Required: []string{"habit_name"},
			},
		},
		{
			Name:        "get_progress",
			Description: "Get a full progress snapshot: north star, habits, streaks, OW64 completion, journal stats",
		},
		{
			Name:        "get_goals",
			Description: "Get the north star goal and all supporting goals from the OW64 chart",
		},
		{
			Name:        "get_affirmation",
			Description: "Get the user's daily affirmation statement",
		},
		{
			Name:        "setup_goal",
			Description: "Create or update the north star goal form. Call this when the user defines their main goal.",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"north_star":     {Type: "string", Description: "The ultimate north star goal"},
					"purpose":        {Type: "string", Description: "Why this goal matters (deep motivation)"},
					"deadline":       {Type: "string", Description: "Target date YYYY-MM-DD"},
					"current_state":  {Type: "string", Description: "Where they are now"},
					"gap_analysis":   {Type: "string", Description: "Gap between current and goal state"},
					"obstacles":      {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Expected challenges"},
					"support_needed": {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Resources/people needed"},
					"affirmation":    {Type: "string", Description: "Daily affirmation in present tense"},
				},
				Required: []string{"north_star"},
			},
		},
		{
			Name:        "setup_supporting_goal",
			Description: "Set a supporting goal (1-8) in the OW64 chart with its actions",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"goal_number": {Type: "integer", Description: "Goal number 1-8"},
					"title":       {Type: "string", Description: "Title of the supporting goal"},
					"actions":     {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Up to 8 action items for this goal"},
				},
				Required: []string{"goal_number", "title"},
			},
		},
		{
			Name:        "complete_action",
			Description: "Mark an OW64 action as completed",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"goal_number":   {Type: "integer", Description: "Supporting goal number 1-8"},
					"action_number": {Type: "integer", Description: "Action number 1-8 within the goal"},
				},
				Required: []string{"goal_number", "action_number"},
			},
		},
		{
			Name:        "write_journal",
			Description: "Write or update today's journal entry",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"went_well":      {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Things that went well"},
					"didnt_go_well":  {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Things that didn't go well"},
					"learnings":      {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Key learnings"},
					"tomorrow_focus": {Type: "array", Items: &contractx.ParamSpec{Type: "string"}, Description: "Focus areas for tomorrow"},
					"mood":           {Type: "integer", Description: "Mood 1-5 (1=terrible, 5=excellent)"},
					"energy":         {Type: "integer", Description: "Energy 1-5 (1=drained, 5=energized)"},
					"notes":          {Type: "string", Description: "Additional notes"},
				},
			},
		},
		{
			Name:        "read_journal",
			Description: "Read a journal entry (defaults to today)",
			Parameters: contractx.ParamSchema{
				Properties: map[string]contractx.ParamSpec{
					"date": {Type: "string", Description: "Date to read (YYYY-MM-DD), defaults to today"},
				},
			},
		},
	}
}

// Package roster supplies the assignees and tasks that get evaluated.
package roster

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"gopkg.in/yaml.v3"
)

// taskEntry is a task plus the periods it belongs to. No periods means every period.
type taskEntry struct {
	schema.Task `yaml:",inline"`
	Periods     []string `yaml:"periods,omitempty"`
}

// fileFormat is the layout of a roster YAML file.
type fileFormat struct {
	Assignees []schema.Assignee `yaml:"assignees"`
	Tasks     []taskEntry       `yaml:"tasks"`
}

// Roster is an immutable, ordered list of assignees and tasks.
type Roster struct {
	assignees []schema.Assignee
	tasks     []taskEntry
}

var _ contract.RosterSource = &Roster{} // Compile-time check

// Default returns the built-in sample roster.
func Default() *Roster {
	return &Roster{
		assignees: []schema.Assignee{
			{ID: "user1", Name: "Kim Cheolsu", Department: "Planning team"},
			{ID: "user2", Name: "Lee Younghee", Department: "Development team"},
		},
		tasks: []taskEntry{
			{Task: schema.Task{ID: "t1", AssigneeID: "user1", Name: "2025 new service planning", Type: schema.PlanningTask}},
			{Task: schema.Task{ID: "t2", AssigneeID: "user1", Name: "Operations process improvement", Type: schema.PlanningTask}},
			{Task: schema.Task{ID: "t3", AssigneeID: "user2", Name: "Backend API refactoring", Type: schema.DevelopmentTask}},
			{Task: schema.Task{ID: "t4", AssigneeID: "user2", Name: "Payment system integration", Type: schema.DevelopmentTask}},
		},
	}
}

// Load reads a roster from a YAML file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load roster %q: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse roster %q: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates roster YAML.
func Parse(data []byte) (*Roster, error) {
	var raw fileFormat
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	assigneeIDs := make(map[string]struct{}, len(raw.Assignees))
	for _, a := range raw.Assignees {
		if strings.TrimSpace(a.ID) == "" {
			return nil, fmt.Errorf("assignee %q has no id", a.Name)
		}
		if _, dup := assigneeIDs[a.ID]; dup {
			return nil, fmt.Errorf("duplicate assignee id %q", a.ID)
		}
		assigneeIDs[a.ID] = struct{}{}
	}

	taskIDs := make(map[string]struct{}, len(raw.Tasks))
	for i, t := range raw.Tasks {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("task %q has no id", t.Name)
		}
		if _, dup := taskIDs[t.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %q", t.ID)
		}
		taskIDs[t.ID] = struct{}{}
		if _, ok := assigneeIDs[t.AssigneeID]; !ok {
			return nil, fmt.Errorf("task %s: %w %q", t.ID, contract.ErrUnknownAssignee, t.AssigneeID)
		}
		tt := schema.TaskType(strings.ToUpper(string(t.Type)))
		if tt == "" {
			tt = schema.DevelopmentTask
		}
		if _, ok := schema.ValidTaskTypes[tt]; !ok {
			return nil, fmt.Errorf("task %s: invalid type %q. must be PLANNING, DEVELOPMENT", t.ID, t.Type)
		}
		raw.Tasks[i].Type = tt
	}

	return &Roster{assignees: raw.Assignees, tasks: raw.Tasks}, nil
}

// Marshal renders the roster as YAML in the format Parse reads.
func (r *Roster) Marshal() ([]byte, error) {
	return yaml.Marshal(fileFormat{Assignees: r.assignees, Tasks: r.tasks})
}

// Assignees returns every assignee in declaration order.
func (r *Roster) Assignees() []schema.Assignee {
	return slices.Clone(r.assignees)
}

// Tasks returns the tasks active in period, in declaration order.
func (r *Roster) Tasks(period string) []schema.Task {
	var tasks []schema.Task
	for _, t := range r.tasks {
		if len(t.Periods) == 0 || slices.Contains(t.Periods, period) {
			tasks = append(tasks, t.Task)
		}
	}
	return tasks
}

// TasksFor filters the tasks of one assignee in a period, keeping declaration order.
func TasksFor(src contract.RosterSource, period, assigneeID string) []schema.Task {
	var tasks []schema.Task
	for _, t := range src.Tasks(period) {
		if t.AssigneeID == assigneeID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// FindTask looks up a task active in period.
func FindTask(src contract.RosterSource, period, taskID string) (schema.Task, error) {
	for _, t := range src.Tasks(period) {
		if t.ID == taskID {
			return t, nil
		}
	}
	return schema.Task{}, fmt.Errorf("%w %q in period %s", contract.ErrUnknownTask, taskID, period)
}

// FindAssignee looks up an assignee by id.
func FindAssignee(src contract.RosterSource, assigneeID string) (schema.Assignee, error) {
	for _, a := range src.Assignees() {
		if a.ID == assigneeID {
			return a, nil
		}
	}
	return schema.Assignee{}, fmt.Errorf("%w %q", contract.ErrUnknownAssignee, assigneeID)
}

// Open returns the roster at path, or the built-in sample when path is empty.
func Open(path string) (*Roster, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

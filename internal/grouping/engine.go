// Package grouping builds the dashboard view model: an owner's tasks
// grouped by priority, then by status, in a fixed display order.
package grouping

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"taskhero.com/taskhero/internal/constants"
	model "taskhero.com/taskhero/internal/models"
)

const Unspecified = "UNSPECIFIED"

// Config fixes the canonical orders used by an Engine.
type Config struct {
	PriorityOrder []string
	StatusOrder   []string
	// Unspecified keys the bucket for missing or unknown values.
	Unspecified string
}

func DefaultConfig() Config {
	return Config{
		PriorityOrder: []string{
			string(constants.PriorityHigh),
			string(constants.PriorityMedium),
			string(constants.PriorityLow),
		},
		StatusOrder: []string{
			string(constants.StatusTodo),
			string(constants.StatusInProgress),
			string(constants.StatusCompleted),
			string(constants.StatusCancelled),
		},
		Unspecified: Unspecified,
	}
}

type StatusGroup struct {
	Status string       `json:"status"`
	Label  string       `json:"label"`
	Tasks  []model.Task `json:"tasks"`
}

type PriorityGroup struct {
	Priority string        `json:"priority"`
	Label    string        `json:"label"`
	Statuses []StatusGroup `json:"statuses"`
}

type GroupedView []PriorityGroup

// Len returns the number of tasks across all groups.
func (v GroupedView) Len() int {
	n := 0
	for _, pg := range v {
		for _, sg := range pg.Statuses {
			n += len(sg.Tasks)
		}
	}
	return n
}

type Engine struct {
	priorities  []string
	statuses    []string
	unspecified string
	// statusOrder is statuses followed by unspecified.
	statusOrder []string
}

func New(cfg Config) *Engine {
	unspecified := normalize(cfg.Unspecified)
	if unspecified == "" {
		unspecified = Unspecified
	}

	statuses := normalizeAll(cfg.StatusOrder)
	statusOrder := make([]string, 0, len(statuses)+1)
	statusOrder = append(statusOrder, statuses...)

	return &Engine{
		priorities:  normalizeAll(cfg.PriorityOrder),
		statuses:    statuses,
		unspecified: unspecified,
		statusOrder: append(statusOrder, unspecified),
	}
}

// Group is deterministic in the order of tasks and never modifies it.
// Tasks keep their input order inside each status group.
func (e *Engine) Group(tasks []model.Task) GroupedView {
	byPriority := make(map[string][]model.Task)
	var extra []string

	for _, t := range tasks {
		p := normalize(string(t.Priority))
		if p == e.unspecified {
			p = ""
		}
		if p != "" && !contains(e.priorities, p) {
			if _, seen := byPriority[p]; !seen {
				extra = append(extra, p)
			}
		}
		byPriority[p] = append(byPriority[p], t)
	}
	sort.Strings(extra)

	view := GroupedView{}

	for _, p := range e.priorities {
		view = e.appendGroup(view, p, byPriority[p])
	}
	for _, p := range extra {
		view = e.appendGroup(view, p, byPriority[p])
	}
	return e.appendGroup(view, e.unspecified, byPriority[""])
}

func (e *Engine) appendGroup(view GroupedView, priority string, tasks []model.Task) GroupedView {
	if len(tasks) == 0 {
		return view
	}

	return append(view, PriorityGroup{
		Priority: priority,
		Label:    Label(priority),
		Statuses: e.splitByStatus(tasks),
	})
}

func (e *Engine) splitByStatus(tasks []model.Task) []StatusGroup {
	byStatus := make(map[string][]model.Task, len(e.statuses)+1)
	for _, t := range tasks {
		s := normalize(string(t.Status))
		if !contains(e.statuses, s) {
			s = e.unspecified
		}
		byStatus[s] = append(byStatus[s], t)
	}

	groups := make([]StatusGroup, 0, len(byStatus))
	for _, s := range e.statusOrder {
		if len(byStatus[s]) == 0 {
			continue
		}
		groups = append(groups, StatusGroup{
			Status: s,
			Label:  Label(s),
			Tasks:  byStatus[s],
		})
	}
	return groups
}

// Label turns a code such as IN_PROGRESS into "In Progress".
func Label(code string) string {
	words := strings.Fields(strings.ReplaceAll(code, "_", " "))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

func normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" && !contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

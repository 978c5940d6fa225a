// Package query holds the read side: pure projections over a store
// snapshot. Queries never mutate and never fail; missing data comes back
// as an empty result.
package query

import (
	"strings"
	"time"

	"planbord/internal/domain"
	"planbord/internal/store"
)

func weekdayOf(date string) (int, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// searchLimit caps SearchAll results; the picker UI shows at most a
// screenful.
const searchLimit = 20

// TaskView is a task decorated with its owning project, for calendar and
// list rendering.
type TaskView struct {
	domain.Task
	ProjectName string `json:"project_name"`
	ProjectType string `json:"project_type"`
}

// TasksByDate returns every task whose [start_date, end_date] interval
// contains the given day, both ends inclusive. Day strings compare
// correctly as text.
func TasksByDate(st store.State, date string) []TaskView {
	var out []TaskView
	for _, p := range st.Projects {
		for _, t := range p.Tasks {
			if t.StartDate == "" || t.EndDate == "" {
				continue
			}
			if t.StartDate <= date && date <= t.EndDate {
				out = append(out, TaskView{Task: t, ProjectName: p.Name, ProjectType: p.Type})
			}
		}
	}
	return out
}

// UnscheduledTasks returns every task still in status new, across all
// projects.
func UnscheduledTasks(st store.State) []TaskView {
	var out []TaskView
	for _, p := range st.Projects {
		for _, t := range p.Tasks {
			if t.Status == domain.TaskStatusNew {
				out = append(out, TaskView{Task: t, ProjectName: p.Name, ProjectType: p.Type})
			}
		}
	}
	return out
}

// TasksForUser returns every task whose assignee list contains userID.
func TasksForUser(st store.State, userID string) []TaskView {
	var out []TaskView
	for _, p := range st.Projects {
		for _, t := range p.Tasks {
			for _, id := range t.AssignedTo {
				if id == userID {
					out = append(out, TaskView{Task: t, ProjectName: p.Name, ProjectType: p.Type})
					break
				}
			}
		}
	}
	return out
}

// AllTasks flattens every project's tasks into one decorated list.
func AllTasks(st store.State) []TaskView {
	var out []TaskView
	for _, p := range st.Projects {
		for _, t := range p.Tasks {
			out = append(out, TaskView{Task: t, ProjectName: p.Name, ProjectType: p.Type})
		}
	}
	return out
}

// ProjectsForClient returns the projects attached to one client.
func ProjectsForClient(st store.State, clientID string) []domain.Project {
	var out []domain.Project
	for _, p := range st.Projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// SearchResult is one SearchAll hit.
type SearchResult struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Extra string `json:"extra,omitempty"`
}

// SearchAll does a case-insensitive substring match over projects, their
// tasks, users and clients, in that order, capped at 20 hits. No ranking;
// store order decides.
func SearchAll(st store.State, q string) []SearchResult {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	matches := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
	var out []SearchResult
	add := func(r SearchResult) bool {
		out = append(out, r)
		return len(out) >= searchLimit
	}
	for _, p := range st.Projects {
		if matches(p.Name, p.Description) {
			if add(SearchResult{Kind: "project", ID: p.ID, Title: p.Name, Extra: ProjectTypeLabel(st, p.Type)}) {
				return out
			}
		}
		for _, t := range p.Tasks {
			if matches(t.Title, t.Description) {
				if add(SearchResult{Kind: "task", ID: t.ID, Title: t.Title, Extra: p.Name}) {
					return out
				}
			}
		}
	}
	for _, u := range st.Users {
		if matches(u.Name, u.Email) {
			if add(SearchResult{Kind: "user", ID: u.ID, Title: u.Name, Extra: u.Role}) {
				return out
			}
		}
	}
	for _, c := range st.Clients {
		if matches(c.Name, c.ContactPerson) {
			if add(SearchResult{Kind: "client", ID: c.ID, Title: c.Name, Extra: c.ContactPerson}) {
				return out
			}
		}
	}
	return out
}

// UsersByRole filters the roster; empty role means everyone.
func UsersByRole(st store.State, role string) []domain.User {
	if role == "" {
		return st.Users
	}
	var out []domain.User
	for _, u := range st.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// AvailableUsers returns users whose weekly availability marks the given
// day available. Users without an availability record count as available.
func AvailableUsers(st store.State, date string) []domain.User {
	wd, ok := weekdayOf(date)
	var out []domain.User
	for _, u := range st.Users {
		if u.Availability == nil || !ok {
			out = append(out, u)
			continue
		}
		if u.Availability.ByWeekday(wd).Available {
			out = append(out, u)
		}
	}
	return out
}

// ReservationsForResource returns all reservations on one resource, any
// date.
func ReservationsForResource(st store.State, resourceID string) []domain.ResourceReservation {
	var out []domain.ResourceReservation
	for _, r := range st.Reservations {
		if r.ResourceID == resourceID {
			out = append(out, r)
		}
	}
	return out
}

// ReservationsForDate returns all reservations on one calendar day across
// all resources.
func ReservationsForDate(st store.State, date string) []domain.ResourceReservation {
	var out []domain.ResourceReservation
	for _, r := range st.Reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// TypeConfig looks up the blueprint for a project type key.
func TypeConfig(st store.State, key string) (domain.ProjectTypeConfig, bool) {
	c, ok := st.ProjectTypeConfigs[key]
	return c, ok
}

// ProjectTypeLabel resolves the configured display name for a type key,
// falling back to the fixed labels.
func ProjectTypeLabel(st store.State, key string) string {
	if c, ok := st.ProjectTypeConfigs[key]; ok && c.Name != "" {
		return c.Name
	}
	return domain.ProjectTypeName(key)
}

// ProjectColor resolves the configured color for a project's type, falling
// back to the fixed palette.
func ProjectColor(st store.State, p domain.Project) string {
	if c, ok := st.ProjectTypeConfigs[p.Type]; ok && c.Color != "" {
		return c.Color
	}
	return domain.ProjectTypeColor(p.Type)
}

package store

import (
	"errors"

	"planbord/internal/domain"
)

// ErrNotFound is returned for any lookup or mutation keyed on an id that
// is not present.
var ErrNotFound = errors.New("not found")

// State is a deep copy of the store's contents at one point in time. The
// query layer and tests read State values; mutating one never touches the
// store it came from.
type State struct {
	Projects           []domain.Project
	Users              []domain.User
	Clients            []domain.Client
	Resources          []domain.Resource
	Reservations       []domain.ResourceReservation
	ProjectTypeConfigs map[string]domain.ProjectTypeConfig
}

// Store owns all entity collections. Only the engine mutates it; everything
// else reads through Snapshot or the copying getters. Single-writer by
// design: commands run to completion one at a time.
type Store struct {
	projects     []domain.Project
	users        []domain.User
	clients      []domain.Client
	resources    []domain.Resource
	reservations []domain.ResourceReservation
	typeConfigs  map[string]domain.ProjectTypeConfig
}

func New() *Store {
	return &Store{typeConfigs: map[string]domain.ProjectTypeConfig{}}
}

// Snapshot returns a deep copy of the full state.
func (s *Store) Snapshot() State {
	st := State{
		Projects:           make([]domain.Project, 0, len(s.projects)),
		Users:              make([]domain.User, 0, len(s.users)),
		Clients:            append([]domain.Client(nil), s.clients...),
		Resources:          append([]domain.Resource(nil), s.resources...),
		Reservations:       append([]domain.ResourceReservation(nil), s.reservations...),
		ProjectTypeConfigs: make(map[string]domain.ProjectTypeConfig, len(s.typeConfigs)),
	}
	for _, p := range s.projects {
		st.Projects = append(st.Projects, copyProject(p))
	}
	for _, u := range s.users {
		st.Users = append(st.Users, copyUser(u))
	}
	for k, c := range s.typeConfigs {
		st.ProjectTypeConfigs[k] = copyTypeConfig(c)
	}
	return st
}

// --- projects and tasks ---

func (s *Store) GetProject(id string) (domain.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return copyProject(p), nil
		}
	}
	return domain.Project{}, ErrNotFound
}

func (s *Store) ListProjects() []domain.Project {
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, copyProject(p))
	}
	return out
}

func (s *Store) InsertProject(p domain.Project) {
	s.projects = append(s.projects, copyProject(p))
}

// ReplaceProject swaps the stored project (tasks included) for the one
// given, keyed by id.
func (s *Store) ReplaceProject(p domain.Project) error {
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = copyProject(p)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteProject removes the project and, because tasks are nested, every
// task it owns. Reservations referencing those tasks are left in place;
// deleting them is a separate explicit action.
func (s *Store) DeleteProject(id string) error {
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// GetTask looks a task up inside the given project.
func (s *Store) GetTask(projectID, taskID string) (domain.Task, error) {
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		for _, t := range s.projects[i].Tasks {
			if t.ID == taskID {
				return copyTask(t), nil
			}
		}
	}
	return domain.Task{}, ErrNotFound
}

// FindTask scans every project for a task id. Fallback path for callers
// holding a stale project id.
func (s *Store) FindTask(taskID string) (domain.Task, string, error) {
	for i := range s.projects {
		for _, t := range s.projects[i].Tasks {
			if t.ID == taskID {
				return copyTask(t), s.projects[i].ID, nil
			}
		}
	}
	return domain.Task{}, "", ErrNotFound
}

func (s *Store) InsertTask(projectID string, t domain.Task) error {
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].Tasks = append(s.projects[i].Tasks, copyTask(t))
			return nil
		}
	}
	return ErrNotFound
}

// ReplaceTask swaps the stored task for the one given, first inside the
// named project, then anywhere if the project id does not match.
func (s *Store) ReplaceTask(projectID string, t domain.Task) error {
	if s.replaceTaskIn(projectID, t) {
		return nil
	}
	for i := range s.projects {
		if s.replaceTaskIn(s.projects[i].ID, t) {
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) replaceTaskIn(projectID string, t domain.Task) bool {
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		for j := range s.projects[i].Tasks {
			if s.projects[i].Tasks[j].ID == t.ID {
				s.projects[i].Tasks[j] = copyTask(t)
				return true
			}
		}
	}
	return false
}

func (s *Store) DeleteTask(projectID, taskID string) error {
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			continue
		}
		for j := range s.projects[i].Tasks {
			if s.projects[i].Tasks[j].ID == taskID {
				s.projects[i].Tasks = append(s.projects[i].Tasks[:j], s.projects[i].Tasks[j+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}

// --- users ---

func (s *Store) GetUser(id string) (domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *Store) ListUsers() []domain.User {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, copyUser(u))
	}
	return out
}

func (s *Store) InsertUser(u domain.User) {
	s.users = append(s.users, copyUser(u))
}

func (s *Store) ReplaceUser(u domain.User) error {
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = copyUser(u)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteUser(id string) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- clients ---

func (s *Store) GetClient(id string) (domain.Client, error) {
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Client{}, ErrNotFound
}

func (s *Store) ListClients() []domain.Client {
	return append([]domain.Client(nil), s.clients...)
}

func (s *Store) InsertClient(c domain.Client) {
	s.clients = append(s.clients, c)
}

func (s *Store) ReplaceClient(c domain.Client) error {
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = c
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteClient(id string) error {
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- resources ---

func (s *Store) GetResource(id string) (domain.Resource, error) {
	for _, r := range s.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Resource{}, ErrNotFound
}

func (s *Store) ListResources() []domain.Resource {
	return append([]domain.Resource(nil), s.resources...)
}

func (s *Store) InsertResource(r domain.Resource) {
	s.resources = append(s.resources, r)
}

func (s *Store) ReplaceResource(r domain.Resource) error {
	for i := range s.resources {
		if s.resources[i].ID == r.ID {
			s.resources[i] = r
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteResource(id string) error {
	for i := range s.resources {
		if s.resources[i].ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- reservations ---

func (s *Store) GetReservation(id string) (domain.ResourceReservation, error) {
	for _, r := range s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.ResourceReservation{}, ErrNotFound
}

func (s *Store) ListReservations() []domain.ResourceReservation {
	return append([]domain.ResourceReservation(nil), s.reservations...)
}

// ReservationsFor returns reservations on one resource and calendar day,
// the set the conflict detector scans.
func (s *Store) ReservationsFor(resourceID, date string) []domain.ResourceReservation {
	var out []domain.ResourceReservation
	for _, r := range s.reservations {
		if r.ResourceID == resourceID && r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) InsertReservation(r domain.ResourceReservation) {
	s.reservations = append(s.reservations, r)
}

func (s *Store) DeleteReservation(id string) error {
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- project type configs ---

func (s *Store) GetTypeConfig(key string) (domain.ProjectTypeConfig, error) {
	c, ok := s.typeConfigs[key]
	if !ok {
		return domain.ProjectTypeConfig{}, ErrNotFound
	}
	return copyTypeConfig(c), nil
}

func (s *Store) ListTypeConfigs() map[string]domain.ProjectTypeConfig {
	out := make(map[string]domain.ProjectTypeConfig, len(s.typeConfigs))
	for k, c := range s.typeConfigs {
		out[k] = copyTypeConfig(c)
	}
	return out
}

// PutTypeConfig stores the config under its own key.
func (s *Store) PutTypeConfig(c domain.ProjectTypeConfig) {
	s.typeConfigs[c.Key] = copyTypeConfig(c)
}

// --- copy helpers ---

func copyTask(t domain.Task) domain.Task {
	out := t
	if t.Duration != nil {
		d := *t.Duration
		out.Duration = &d
	}
	out.AssignedTo = append([]string(nil), t.AssignedTo...)
	out.DependsOn = append([]string(nil), t.DependsOn...)
	return out
}

func copyProject(p domain.Project) domain.Project {
	out := p
	out.Tasks = make([]domain.Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		out.Tasks = append(out.Tasks, copyTask(t))
	}
	return out
}

func copyUser(u domain.User) domain.User {
	out := u
	out.Skills = append([]string(nil), u.Skills...)
	if u.Availability != nil {
		a := *u.Availability
		out.Availability = &a
	}
	return out
}

func copyTypeConfig(c domain.ProjectTypeConfig) domain.ProjectTypeConfig {
	out := c
	out.TaskTemplates = make([]domain.TaskTemplate, 0, len(c.TaskTemplates))
	for _, t := range c.TaskTemplates {
		ct := t
		if t.Duration != nil {
			d := *t.Duration
			ct.Duration = &d
		}
		ct.Dependencies = append([]int(nil), t.Dependencies...)
		out.TaskTemplates = append(out.TaskTemplates, ct)
	}
	return out
}

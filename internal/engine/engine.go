// Package engine applies planning commands to the store. Every mutation
// goes through here; reads go through internal/query. Commands validate,
// mutate, then journal an event.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"planbord/internal/config"
	"planbord/internal/domain"
	"planbord/internal/events"
	"planbord/internal/store"
)

type Engine struct {
	Store  *store.Store
	Events *events.Log
	Config *config.Config
	Now    func() time.Time
}

func New(st *store.Store, cfg *config.Config) Engine {
	return Engine{
		Store:  st,
		Events: events.NewLog(),
		Config: cfg,
		Now:    time.Now,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Engine) newID() string {
	return uuid.NewString()
}

func (e Engine) append(evtType, entityKind, entityID string, payload events.Payload) {
	if e.Events != nil {
		e.Events.Append(evtType, entityKind, entityID, payload)
	}
}

// validDate accepts calendar dates as YYYY-MM-DD. All scheduling math
// compares these strings lexically, which only works if the format is
// enforced at the boundary.
func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return nil
}

// validClock accepts wall-clock times as HH:MM, zero-padded.
func validClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return nil
}

// --- projects ---

type ProjectCreateOptions struct {
	ID          string
	Name        string
	Type        string
	Description string
	ClientID    string
	StartDate   string
	EndDate     string
	Deadline    string
}

// CreateProject creates the project and instantiates one task per template
// of its type. Template dependencies are positional; they are resolved to
// the ids of the freshly created tasks.
func (e Engine) CreateProject(opts ProjectCreateOptions) (domain.Project, error) {
	if opts.Name == "" {
		return domain.Project{}, errors.New("name is required")
	}
	if !domain.ValidProjectType(opts.Type) {
		return domain.Project{}, fmt.Errorf("invalid project type %q", opts.Type)
	}
	for _, d := range []string{opts.StartDate, opts.EndDate, opts.Deadline} {
		if d != "" {
			if err := validDate(d); err != nil {
				return domain.Project{}, err
			}
		}
	}
	clientName := ""
	if opts.ClientID != "" {
		c, err := e.Store.GetClient(opts.ClientID)
		if err != nil {
			return domain.Project{}, fmt.Errorf("client %s: %w", opts.ClientID, err)
		}
		clientName = c.Name
	}
	id := opts.ID
	if id == "" {
		id = e.newID()
	}
	p := domain.Project{
		ID:          id,
		Name:        opts.Name,
		Type:        opts.Type,
		Status:      domain.ProjectStatusNew,
		Description: opts.Description,
		ClientID:    opts.ClientID,
		ClientName:  clientName,
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
		Deadline:    opts.Deadline,
		CreatedAt:   e.now().UTC().Format(time.RFC3339),
	}
	if cfg, err := e.Store.GetTypeConfig(opts.Type); err == nil {
		p.Tasks = e.instantiateTemplates(p.ID, cfg.TaskTemplates)
	}
	e.Store.InsertProject(p)
	e.append("project.created", "project", p.ID, events.Payload{"name": p.Name, "type": p.Type, "tasks": len(p.Tasks)})
	return p, nil
}

// instantiateTemplates turns templates into concrete tasks, mapping each
// positional dependency to the id of the task created for that position.
func (e Engine) instantiateTemplates(projectID string, tmpls []domain.TaskTemplate) []domain.Task {
	ids := make([]string, len(tmpls))
	for i := range tmpls {
		ids[i] = e.newID()
	}
	tasks := make([]domain.Task, 0, len(tmpls))
	for i, tmpl := range tmpls {
		t := domain.Task{
			ID:           ids[i],
			ProjectID:    projectID,
			Title:        tmpl.Title,
			Description:  tmpl.Description,
			Status:       domain.TaskStatusNew,
			ResourceType: tmpl.ResourceType,
		}
		if tmpl.Duration != nil {
			d := *tmpl.Duration
			t.Duration = &d
		}
		for _, dep := range tmpl.Dependencies {
			if dep >= 0 && dep < len(ids) {
				t.DependsOn = append(t.DependsOn, ids[dep])
			}
		}
		tasks = append(tasks, t)
	}
	return tasks
}

type ProjectUpdateOptions struct {
	ID          string
	Name        *string
	Status      *string
	Description *string
	ClientID    *string
	StartDate   *string
	EndDate     *string
	Deadline    *string
}

// UpdateProject applies a partial update. The project type is fixed at
// creation; changing it would orphan the instantiated tasks.
func (e Engine) UpdateProject(opts ProjectUpdateOptions) (domain.Project, error) {
	p, err := e.Store.GetProject(opts.ID)
	if err != nil {
		return p, fmt.Errorf("project %s: %w", opts.ID, err)
	}
	if opts.Name != nil {
		if *opts.Name == "" {
			return p, errors.New("name is required")
		}
		p.Name = *opts.Name
	}
	if opts.Status != nil {
		if !domain.ValidProjectStatus(*opts.Status) {
			return p, fmt.Errorf("invalid project status %q", *opts.Status)
		}
		p.Status = *opts.Status
	}
	if opts.Description != nil {
		p.Description = *opts.Description
	}
	if opts.ClientID != nil {
		if *opts.ClientID == "" {
			p.ClientID, p.ClientName = "", ""
		} else {
			c, err := e.Store.GetClient(*opts.ClientID)
			if err != nil {
				return p, fmt.Errorf("client %s: %w", *opts.ClientID, err)
			}
			p.ClientID, p.ClientName = c.ID, c.Name
		}
	}
	for _, f := range []struct {
		val *string
		dst *string
	}{
		{opts.StartDate, &p.StartDate},
		{opts.EndDate, &p.EndDate},
		{opts.Deadline, &p.Deadline},
	} {
		if f.val == nil {
			continue
		}
		if *f.val != "" {
			if err := validDate(*f.val); err != nil {
				return p, err
			}
		}
		*f.dst = *f.val
	}
	if err := e.Store.ReplaceProject(p); err != nil {
		return p, err
	}
	e.append("project.updated", "project", p.ID, events.Payload{"name": p.Name, "status": p.Status})
	return p, nil
}

// DeleteProject removes the project and all its tasks. Reservations are
// kept; they belong to resources, not projects.
func (e Engine) DeleteProject(id string) error {
	if err := e.Store.DeleteProject(id); err != nil {
		return fmt.Errorf("project %s: %w", id, err)
	}
	e.append("project.deleted", "project", id, nil)
	return nil
}

// --- tasks ---

type TaskCreateOptions struct {
	ID           string
	ProjectID    string
	Title        string
	Description  string
	Duration     *domain.Duration
	ResourceType string
	DependsOn    []string
	AssignedTo   []string
	StartDate    string
	EndDate      string
}

func (e Engine) CreateTask(opts TaskCreateOptions) (domain.Task, error) {
	if opts.Title == "" {
		return domain.Task{}, errors.New("title is required")
	}
	if opts.ProjectID == "" {
		return domain.Task{}, errors.New("project is required")
	}
	if opts.ResourceType != "" && !domain.ValidResourceType(opts.ResourceType) {
		return domain.Task{}, fmt.Errorf("invalid resource type %q", opts.ResourceType)
	}
	if _, err := e.Store.GetProject(opts.ProjectID); err != nil {
		return domain.Task{}, fmt.Errorf("project %s: %w", opts.ProjectID, err)
	}
	for _, d := range []string{opts.StartDate, opts.EndDate} {
		if d != "" {
			if err := validDate(d); err != nil {
				return domain.Task{}, err
			}
		}
	}
	id := opts.ID
	if id == "" {
		id = e.newID()
	}
	t := domain.Task{
		ID:           id,
		ProjectID:    opts.ProjectID,
		Title:        opts.Title,
		Description:  opts.Description,
		Status:       domain.TaskStatusNew,
		Duration:     opts.Duration,
		ResourceType: opts.ResourceType,
		DependsOn:    opts.DependsOn,
		AssignedTo:   opts.AssignedTo,
		StartDate:    opts.StartDate,
		EndDate:      opts.EndDate,
	}
	if t.StartDate != "" && t.EndDate != "" {
		t.Status = domain.TaskStatusScheduled
	}
	if err := e.Store.InsertTask(opts.ProjectID, t); err != nil {
		return domain.Task{}, err
	}
	e.append("task.created", "task", t.ID, events.Payload{"project_id": opts.ProjectID, "title": t.Title})
	return t, nil
}

type TaskUpdateOptions struct {
	ProjectID    string
	TaskID       string
	Title        *string
	Description  *string
	Status       *string
	Duration     *domain.Duration
	ResourceType *string
	DependsOn    *[]string
	StartDate    *string
	EndDate      *string
}

func (e Engine) UpdateTask(opts TaskUpdateOptions) (domain.Task, error) {
	t, projectID, err := e.resolveTask(opts.ProjectID, opts.TaskID)
	if err != nil {
		return t, err
	}
	if opts.Title != nil {
		if *opts.Title == "" {
			return t, errors.New("title is required")
		}
		t.Title = *opts.Title
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.Status != nil {
		if !domain.ValidTaskStatus(*opts.Status) {
			return t, fmt.Errorf("invalid task status %q", *opts.Status)
		}
		t.Status = *opts.Status
	}
	if opts.Duration != nil {
		t.Duration = opts.Duration
	}
	if opts.ResourceType != nil {
		if *opts.ResourceType != "" && !domain.ValidResourceType(*opts.ResourceType) {
			return t, fmt.Errorf("invalid resource type %q", *opts.ResourceType)
		}
		t.ResourceType = *opts.ResourceType
	}
	if opts.DependsOn != nil {
		t.DependsOn = append([]string(nil), (*opts.DependsOn)...)
	}
	for _, f := range []struct {
		val *string
		dst *string
	}{
		{opts.StartDate, &t.StartDate},
		{opts.EndDate, &t.EndDate},
	} {
		if f.val == nil {
			continue
		}
		if *f.val != "" {
			if err := validDate(*f.val); err != nil {
				return t, err
			}
		}
		*f.dst = *f.val
	}
	if t.StartDate != "" && t.EndDate != "" && t.EndDate < t.StartDate {
		return t, fmt.Errorf("invalid range: end date %s before start date %s", t.EndDate, t.StartDate)
	}
	if err := e.Store.ReplaceTask(projectID, t); err != nil {
		return t, err
	}
	e.append("task.updated", "task", t.ID, events.Payload{"project_id": projectID, "status": t.Status})
	return t, nil
}

func (e Engine) DeleteTask(projectID, taskID string) error {
	if err := e.Store.DeleteTask(projectID, taskID); err != nil {
		// stale project id; find the task wherever it lives
		_, realProject, ferr := e.Store.FindTask(taskID)
		if ferr != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		if err := e.Store.DeleteTask(realProject, taskID); err != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		projectID = realProject
	}
	e.append("task.deleted", "task", taskID, events.Payload{"project_id": projectID})
	return nil
}

// resolveTask finds a task by the project id the caller claims, falling
// back to a scan across all projects when the claim is stale.
func (e Engine) resolveTask(projectID, taskID string) (domain.Task, string, error) {
	if projectID != "" {
		if t, err := e.Store.GetTask(projectID, taskID); err == nil {
			t.ProjectID = projectID
			return t, projectID, nil
		}
	}
	t, realProject, err := e.Store.FindTask(taskID)
	if err != nil {
		return domain.Task{}, "", fmt.Errorf("task %s: %w", taskID, err)
	}
	t.ProjectID = realProject
	return t, realProject, nil
}

// MoveTask places a task on the calendar. It sets the two dates, promotes
// status from new to scheduled, and touches nothing else: assignments and
// dependencies survive every move.
func (e Engine) MoveTask(projectID, taskID, startDate, endDate string) (domain.Task, error) {
	if err := validDate(startDate); err != nil {
		return domain.Task{}, err
	}
	if err := validDate(endDate); err != nil {
		return domain.Task{}, err
	}
	if endDate < startDate {
		return domain.Task{}, fmt.Errorf("invalid range: end date %s before start date %s", endDate, startDate)
	}
	t, realProject, err := e.resolveTask(projectID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	t.StartDate = startDate
	t.EndDate = endDate
	if t.Status == domain.TaskStatusNew {
		t.Status = domain.TaskStatusScheduled
	}
	if err := e.Store.ReplaceTask(realProject, t); err != nil {
		return t, err
	}
	e.append("task.moved", "task", t.ID, events.Payload{"project_id": realProject, "start_date": startDate, "end_date": endDate})
	return t, nil
}

// AssignTask replaces the full assignee list. Ids are not checked against
// the user roster; a removed employee's id may linger on old tasks.
func (e Engine) AssignTask(projectID, taskID string, assignedTo []string) (domain.Task, error) {
	t, realProject, err := e.resolveTask(projectID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	t.AssignedTo = append([]string(nil), assignedTo...)
	if err := e.Store.ReplaceTask(realProject, t); err != nil {
		return t, err
	}
	e.append("task.assigned", "task", t.ID, events.Payload{"project_id": realProject, "assigned_to": t.AssignedTo})
	return t, nil
}

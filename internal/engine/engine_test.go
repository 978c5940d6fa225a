package engine_test

import (
	"errors"
	"testing"
	"time"

	"planbord/internal/config"
	"planbord/internal/domain"
	"planbord/internal/engine"
	"planbord/internal/query"
	"planbord/internal/seed"
	"planbord/internal/store"
)

type testEnv struct {
	Engine engine.Engine
	Store  *store.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	st := store.New()
	for _, c := range seed.DefaultTypeConfigs() {
		st.PutTypeConfig(c)
	}
	eng := engine.New(st, config.Default())
	eng.Now = func() time.Time { return time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC) }
	return testEnv{Engine: eng, Store: st}
}

func mustProject(t *testing.T, env testEnv, typ string) domain.Project {
	t.Helper()
	p, err := env.Engine.CreateProject(engine.ProjectCreateOptions{Name: "Fit-out", Type: typ})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestCreateProjectInstantiatesTemplates(t *testing.T) {
	env := newTestEnv(t)
	// Chain a couple of templates so instantiation has indices to resolve.
	if _, err := env.Engine.AddTemplateDependency(domain.TypePaint, 1, 0); err != nil {
		t.Fatalf("add template dep: %v", err)
	}
	if _, err := env.Engine.AddTemplateDependency(domain.TypePaint, 3, 2); err != nil {
		t.Fatalf("add template dep: %v", err)
	}
	p := mustProject(t, env, domain.TypePaint)

	if len(p.Tasks) != 7 {
		t.Fatalf("paint project has %d tasks, want 7", len(p.Tasks))
	}
	for i, task := range p.Tasks {
		if task.ID == "" {
			t.Fatalf("task %d has no id", i)
		}
		if task.ProjectID != p.ID {
			t.Fatalf("task %d project id = %q, want %q", i, task.ProjectID, p.ID)
		}
		if task.Status != domain.TaskStatusNew {
			t.Fatalf("task %d status = %q, want new", i, task.Status)
		}
	}
	// Positional template dependencies come out as ids of sibling tasks.
	if len(p.Tasks[1].DependsOn) != 1 || p.Tasks[1].DependsOn[0] != p.Tasks[0].ID {
		t.Fatalf("task 1 depends on %v, want [%s]", p.Tasks[1].DependsOn, p.Tasks[0].ID)
	}
	if len(p.Tasks[3].DependsOn) != 1 || p.Tasks[3].DependsOn[0] != p.Tasks[2].ID {
		t.Fatalf("task 3 depends on %v, want [%s]", p.Tasks[3].DependsOn, p.Tasks[2].ID)
	}
}

func TestCreateProjectRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Engine.CreateProject(engine.ProjectCreateOptions{Name: "x", Type: "welding"}); err == nil {
		t.Fatalf("expected invalid type error")
	}
	if _, err := env.Engine.CreateProject(engine.ProjectCreateOptions{Type: domain.TypeRepair}); err == nil {
		t.Fatalf("expected name required error")
	}
}

func TestMoveTaskSetsDatesAndPromotes(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]

	moved, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-02", "2025-07-03")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.StartDate != "2025-07-02" || moved.EndDate != "2025-07-03" {
		t.Fatalf("dates = %q..%q", moved.StartDate, moved.EndDate)
	}
	if moved.Status != domain.TaskStatusScheduled {
		t.Fatalf("status = %q, want scheduled", moved.Status)
	}
	// No other field and no other task changes.
	if moved.Title != task.Title || len(moved.AssignedTo) != len(task.AssignedTo) {
		t.Fatalf("move touched fields beyond dates and status")
	}
	after, err := env.Store.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	for i, other := range after.Tasks {
		if other.ID == task.ID {
			continue
		}
		if other.StartDate != p.Tasks[i].StartDate || other.Status != p.Tasks[i].Status {
			t.Fatalf("sibling task %s changed by move", other.ID)
		}
	}
}

func TestMoveTaskKeepsNonNewStatus(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]
	status := domain.TaskStatusInProgress
	if _, err := env.Engine.UpdateTask(engine.TaskUpdateOptions{ProjectID: p.ID, TaskID: task.ID, Status: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}

	moved, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-05", "2025-07-05")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Status != domain.TaskStatusInProgress {
		t.Fatalf("status = %q, want in-progress", moved.Status)
	}
}

func TestMoveTaskIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]

	first, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-02", "2025-07-04")
	if err != nil {
		t.Fatalf("first move: %v", err)
	}
	second, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-02", "2025-07-04")
	if err != nil {
		t.Fatalf("second move: %v", err)
	}
	if first.StartDate != second.StartDate || first.EndDate != second.EndDate || first.Status != second.Status {
		t.Fatalf("re-issuing the same move changed the task: %+v vs %+v", first, second)
	}
}

func TestMoveTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]

	if _, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-10", "2025-07-09"); err == nil {
		t.Fatalf("expected end-before-start error")
	}
	if _, err := env.Engine.MoveTask(p.ID, task.ID, "not-a-date", "2025-07-09"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := env.Engine.MoveTask(p.ID, "missing", "2025-07-02", "2025-07-02"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateTaskRejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]

	start := "2025-07-10"
	end := "2025-07-08"
	if _, err := env.Engine.UpdateTask(engine.TaskUpdateOptions{ProjectID: p.ID, TaskID: task.ID, StartDate: &start, EndDate: &end}); err == nil {
		t.Fatalf("expected end-before-start error")
	}

	// A single-field update is checked against the stored counterpart.
	if _, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-02", "2025-07-04"); err != nil {
		t.Fatalf("move: %v", err)
	}
	bad := "2025-07-01"
	if _, err := env.Engine.UpdateTask(engine.TaskUpdateOptions{ProjectID: p.ID, TaskID: task.ID, EndDate: &bad}); err == nil {
		t.Fatalf("expected end-before-start error against stored start")
	}
	later := "2025-07-09"
	got, err := env.Engine.UpdateTask(engine.TaskUpdateOptions{ProjectID: p.ID, TaskID: task.ID, EndDate: &later})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.StartDate != "2025-07-02" || got.EndDate != "2025-07-09" {
		t.Fatalf("dates = %s..%s", got.StartDate, got.EndDate)
	}
}

func TestMoveTaskFindsTaskInOtherProject(t *testing.T) {
	env := newTestEnv(t)
	a := mustProject(t, env, domain.TypeRepair)
	b := mustProject(t, env, domain.TypePaint)

	// Wrong project id in the call; the task still resolves by scanning.
	moved, err := env.Engine.MoveTask(a.ID, b.Tasks[0].ID, "2025-07-02", "2025-07-02")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.ProjectID != b.ID {
		t.Fatalf("resolved project = %q, want %q", moved.ProjectID, b.ID)
	}
}

func TestAssignTaskReplacesAssignees(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]

	got, err := env.Engine.AssignTask(p.ID, task.ID, []string{"u1", "u2"})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(got.AssignedTo) != 2 {
		t.Fatalf("assigned = %v", got.AssignedTo)
	}
	// Wholesale replace, not merge. Unknown ids are accepted.
	got, err = env.Engine.AssignTask(p.ID, task.ID, []string{"ghost"})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if len(got.AssignedTo) != 1 || got.AssignedTo[0] != "ghost" {
		t.Fatalf("assigned = %v, want [ghost]", got.AssignedTo)
	}
	got, err = env.Engine.AssignTask(p.ID, task.ID, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(got.AssignedTo) != 0 {
		t.Fatalf("assigned = %v, want empty", got.AssignedTo)
	}
}

func TestDeleteProjectRemovesTasks(t *testing.T) {
	env := newTestEnv(t)
	p := mustProject(t, env, domain.TypeRepair)
	task := p.Tasks[0]
	if _, err := env.Engine.MoveTask(p.ID, task.ID, "2025-07-02", "2025-07-02"); err != nil {
		t.Fatalf("move: %v", err)
	}

	if err := env.Engine.DeleteProject(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := env.Store.FindTask(task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("task survived project deletion: %v", err)
	}
	// Deleted project's tasks vanish from every selector.
	snap := env.Store.Snapshot()
	if got := query.TasksByDate(snap, "2025-07-02"); len(got) != 0 {
		t.Fatalf("calendar still lists %d task(s)", len(got))
	}
	if got := query.UnscheduledTasks(snap); len(got) != 0 {
		t.Fatalf("unscheduled still lists %d task(s)", len(got))
	}
}

func TestUpdateClientRefreshesProjectName(t *testing.T) {
	env := newTestEnv(t)
	c, err := env.Engine.CreateClient(engine.ClientOptions{Name: "Delhaize", Type: domain.ClientCustomer})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	p, err := env.Engine.CreateProject(engine.ProjectCreateOptions{Name: "Fleet", Type: domain.TypeRepair, ClientID: c.ID})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if p.ClientName != "Delhaize" {
		t.Fatalf("client name = %q", p.ClientName)
	}

	name := "Delhaize Group"
	if _, err := env.Engine.UpdateClient(engine.ClientUpdateOptions{ID: c.ID, Name: &name}); err != nil {
		t.Fatalf("update client: %v", err)
	}
	after, err := env.Store.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.ClientName != "Delhaize Group" {
		t.Fatalf("project client name = %q, want refreshed", after.ClientName)
	}

	// Deleting the client keeps the denormalized name on the project.
	if err := env.Engine.DeleteClient(c.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	after, err = env.Store.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.ClientID != c.ID || after.ClientName != "Delhaize Group" {
		t.Fatalf("project lost client trace: %+v", after)
	}
}

func TestResourceCapacityValidation(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Engine.CreateResource(engine.ResourceOptions{Name: "Booth", Type: domain.ResourcePaintBooth, Capacity: 0}); err == nil {
		t.Fatalf("expected capacity error")
	}
	r, err := env.Engine.CreateResource(engine.ResourceOptions{Name: "Booth", Type: domain.ResourcePaintBooth, Capacity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zero := 0
	if _, err := env.Engine.UpdateResource(engine.ResourceUpdateOptions{ID: r.ID, Capacity: &zero}); err == nil {
		t.Fatalf("expected capacity error on update")
	}
}

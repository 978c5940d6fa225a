package query_test

import (
	"fmt"
	"testing"

	"planbord/internal/domain"
	"planbord/internal/query"
	"planbord/internal/store"
)

func fixtureState() store.State {
	st := store.New()
	st.InsertProject(domain.Project{
		ID: "p1", Name: "Ambulance fit-out", Type: domain.TypeMedical, Status: domain.ProjectStatusActive,
		Tasks: []domain.Task{
			{ID: "t1", ProjectID: "p1", Title: "Room layout", Status: domain.TaskStatusScheduled, StartDate: "2025-07-01", EndDate: "2025-07-03", AssignedTo: []string{"u1"}},
			{ID: "t2", ProjectID: "p1", Title: "Electrical systems", Status: domain.TaskStatusNew},
			{ID: "t3", ProjectID: "p1", Title: "Certification", Status: domain.TaskStatusScheduled, StartDate: "2025-07-03", EndDate: "2025-07-05"},
		},
	})
	st.InsertProject(domain.Project{
		ID: "p2", Name: "Bpost repair", Type: domain.TypeRepair, ClientID: "c1", Status: domain.ProjectStatusActive,
		Tasks: []domain.Task{
			{ID: "t4", ProjectID: "p2", Title: "Damage assessment", Status: domain.TaskStatusScheduled, StartDate: "2025-07-04", EndDate: "2025-07-04", AssignedTo: []string{"u1", "u2"}},
		},
	})
	st.InsertUser(domain.User{ID: "u1", Name: "Jan Vermeulen", Role: domain.RolePlanner})
	st.InsertUser(domain.User{ID: "u2", Name: "Marie Janssens", Role: domain.RoleMechanic, Availability: &domain.WeeklyAvailability{
		Monday:  domain.DayAvailability{Available: true, StartTime: "08:00", EndTime: "17:00"},
		Tuesday: domain.DayAvailability{Available: true, StartTime: "08:00", EndTime: "17:00"},
	}})
	st.InsertClient(domain.Client{ID: "c1", Name: "Bpost", ContactPerson: "An Willems", Type: domain.ClientCustomer})
	st.InsertResource(domain.Resource{ID: "r1", Name: "Paint booth 1", Type: domain.ResourcePaintBooth, Capacity: 1})
	st.InsertReservation(domain.ResourceReservation{ID: "res1", ResourceID: "r1", Date: "2025-07-01", StartTime: "08:00", EndTime: "12:00"})
	st.InsertReservation(domain.ResourceReservation{ID: "res2", ResourceID: "r1", Date: "2025-07-02", StartTime: "08:00", EndTime: "12:00"})
	return st.Snapshot()
}

func taskIDs(views []query.TaskView) []string {
	var out []string
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestTasksByDateIsInclusive(t *testing.T) {
	st := fixtureState()
	cases := []struct {
		date string
		want []string
	}{
		{"2025-06-30", nil},
		{"2025-07-01", []string{"t1"}},
		{"2025-07-03", []string{"t1", "t3"}},
		{"2025-07-05", []string{"t3"}},
		{"2025-07-06", nil},
	}
	for _, c := range cases {
		got := taskIDs(query.TasksByDate(st, c.date))
		if len(got) != len(c.want) {
			t.Fatalf("TasksByDate(%s) = %v, want %v", c.date, got, c.want)
		}
		for _, id := range c.want {
			if !contains(got, id) {
				t.Fatalf("TasksByDate(%s) = %v, missing %s", c.date, got, id)
			}
		}
	}
}

func TestTasksByDateCarriesProjectContext(t *testing.T) {
	st := fixtureState()
	views := query.TasksByDate(st, "2025-07-01")
	if len(views) != 1 {
		t.Fatalf("got %d views", len(views))
	}
	if views[0].ProjectName != "Ambulance fit-out" || views[0].ProjectType != domain.TypeMedical {
		t.Fatalf("view = %+v", views[0])
	}
}

func TestUnscheduledTasks(t *testing.T) {
	st := fixtureState()
	got := taskIDs(query.UnscheduledTasks(st))
	if len(got) != 1 || got[0] != "t2" {
		t.Fatalf("unscheduled = %v, want [t2]", got)
	}
}

func TestTasksForUser(t *testing.T) {
	st := fixtureState()
	got := taskIDs(query.TasksForUser(st, "u1"))
	if len(got) != 2 || !contains(got, "t1") || !contains(got, "t4") {
		t.Fatalf("tasks for u1 = %v", got)
	}
	if got := query.TasksForUser(st, "nobody"); len(got) != 0 {
		t.Fatalf("tasks for unknown user = %v", got)
	}
}

func TestProjectsForClient(t *testing.T) {
	st := fixtureState()
	got := query.ProjectsForClient(st, "c1")
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("projects for c1 = %v", got)
	}
}

func TestSearchAllMatchesAndOrders(t *testing.T) {
	st := fixtureState()
	got := query.SearchAll(st, "JAN")
	// "Jan Vermeulen" and "Marie Janssens" both contain "jan".
	if len(got) != 2 || got[0].Kind != "user" || got[1].Kind != "user" {
		t.Fatalf("search jan = %+v", got)
	}

	got = query.SearchAll(st, "assessment")
	if len(got) != 1 || got[0].Kind != "task" || got[0].ID != "t4" {
		t.Fatalf("search assessment = %+v", got)
	}
	if got[0].Extra != "Bpost repair" {
		t.Fatalf("task hit should name its project, got %q", got[0].Extra)
	}

	if got := query.SearchAll(st, "  "); got != nil {
		t.Fatalf("blank query = %+v, want nil", got)
	}
	if got := query.SearchAll(st, "zzz"); len(got) != 0 {
		t.Fatalf("no-hit query = %+v", got)
	}
}

func TestSearchAllUsesConfiguredTypeName(t *testing.T) {
	st := fixtureState()
	got := query.SearchAll(st, "ambulance")
	if len(got) != 1 || got[0].Kind != "project" {
		t.Fatalf("search ambulance = %+v", got)
	}
	if got[0].Extra != domain.ProjectTypeName(domain.TypeMedical) {
		t.Fatalf("project hit subtitle = %q", got[0].Extra)
	}

	st.ProjectTypeConfigs = map[string]domain.ProjectTypeConfig{
		domain.TypeMedical: {Key: domain.TypeMedical, Name: "Ambulance conversions", Color: "#dc2626"},
	}
	got = query.SearchAll(st, "ambulance fit")
	if len(got) != 1 || got[0].Extra != "Ambulance conversions" {
		t.Fatalf("project hit after rename = %+v", got)
	}
}

func TestSearchAllCapsResults(t *testing.T) {
	st := store.New()
	for i := 0; i < 30; i++ {
		st.InsertUser(domain.User{ID: fmt.Sprintf("u%d", i), Name: fmt.Sprintf("Mechanic %d", i), Role: domain.RoleMechanic})
	}
	got := query.SearchAll(st.Snapshot(), "mechanic")
	if len(got) != 20 {
		t.Fatalf("search returned %d hits, want cap of 20", len(got))
	}
}

func TestAvailableUsers(t *testing.T) {
	st := fixtureState()
	// 2025-07-02 is a Wednesday; u2 has no Wednesday entry so is out.
	got := query.AvailableUsers(st, "2025-07-02")
	if len(got) != 1 || got[0].ID != "u1" {
		t.Fatalf("available wednesday = %v", got)
	}
	// Monday both are in.
	got = query.AvailableUsers(st, "2025-06-30")
	if len(got) != 2 {
		t.Fatalf("available monday = %v", got)
	}
	// Unparsable date falls back to everyone.
	got = query.AvailableUsers(st, "someday")
	if len(got) != 2 {
		t.Fatalf("available on bad date = %v", got)
	}
}

func TestReservationQueries(t *testing.T) {
	st := fixtureState()
	if got := query.ReservationsForResource(st, "r1"); len(got) != 2 {
		t.Fatalf("reservations for r1 = %v", got)
	}
	if got := query.ReservationsForDate(st, "2025-07-01"); len(got) != 1 || got[0].ID != "res1" {
		t.Fatalf("reservations on 2025-07-01 = %v", got)
	}
	if got := query.ReservationsForDate(st, "2025-08-01"); len(got) != 0 {
		t.Fatalf("reservations on empty day = %v", got)
	}
}

func TestProjectColorFallsBack(t *testing.T) {
	st := fixtureState()
	p := domain.Project{Type: domain.TypeRepair}
	if got := query.ProjectColor(st, p); got != domain.ProjectTypeColor(domain.TypeRepair) {
		t.Fatalf("color = %q", got)
	}
	custom := domain.ProjectTypeConfig{Key: domain.TypeRepair, Name: "Repair", Color: "#abcdef"}
	st.ProjectTypeConfigs = map[string]domain.ProjectTypeConfig{domain.TypeRepair: custom}
	if got := query.ProjectColor(st, p); got != "#abcdef" {
		t.Fatalf("color = %q, want configured", got)
	}
}

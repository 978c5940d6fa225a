package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"planbord/internal/domain"
	"planbord/internal/engine"
	"planbord/internal/events"
	"planbord/internal/query"
)

func registerQueries(api huma.API, e engine.Engine) {
	type taskViews struct {
		Body []query.TaskView `json:"body"`
	}

	huma.Register(api, huma.Operation{
		OperationID: "tasks-by-date",
		Method:      http.MethodGet,
		Path:        "/calendar/{date}",
		Summary:     "Tasks scheduled on a day",
		Description: "Every task whose start/end interval contains the day, inclusive on both ends.",
	}, func(ctx context.Context, input *struct {
		Date string `path:"date"`
	}) (*taskViews, error) {
		return &taskViews{Body: query.TasksByDate(e.Store.Snapshot(), input.Date)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "all-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "All tasks across projects",
	}, func(ctx context.Context, _ *struct{}) (*taskViews, error) {
		return &taskViews{Body: query.AllTasks(e.Store.Snapshot())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "unscheduled-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/unscheduled",
		Summary:     "Tasks still in status new",
	}, func(ctx context.Context, _ *struct{}) (*taskViews, error) {
		return &taskViews{Body: query.UnscheduledTasks(e.Store.Snapshot())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "user-tasks",
		Method:      http.MethodGet,
		Path:        "/users/{id}/tasks",
		Summary:     "Tasks assigned to an employee",
	}, func(ctx context.Context, input *IDPath) (*taskViews, error) {
		return &taskViews{Body: query.TasksForUser(e.Store.Snapshot(), input.ID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "available-users",
		Method:      http.MethodGet,
		Path:        "/users/available/{date}",
		Summary:     "Employees available on a day",
	}, func(ctx context.Context, input *struct {
		Date string `path:"date"`
	}) (*struct {
		Body []domain.User `json:"body"`
	}, error) {
		return &struct {
			Body []domain.User `json:"body"`
		}{Body: query.AvailableUsers(e.Store.Snapshot(), input.Date)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search projects, tasks, users and clients",
	}, func(ctx context.Context, input *struct {
		Q string `query:"q"`
	}) (*struct {
		Body []query.SearchResult `json:"body"`
	}, error) {
		return &struct {
			Body []query.SearchResult `json:"body"`
		}{Body: query.SearchAll(e.Store.Snapshot(), input.Q)}, nil
	})
}

func registerEvents(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "Tail the command journal",
	}, func(ctx context.Context, input *struct {
		Limit int    `query:"limit" minimum:"0"`
		Kind  string `query:"kind"`
	}) (*struct {
		Body []events.Event `json:"body"`
	}, error) {
		return &struct {
			Body []events.Event `json:"body"`
		}{Body: e.Events.Tail(input.Limit, input.Kind)}, nil
	})
}

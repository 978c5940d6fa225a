package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"planbord/internal/domain"
	"planbord/internal/engine"
	"planbord/internal/query"
)

var commandErrors = []int{
	http.StatusBadRequest,
	http.StatusNotFound,
	http.StatusConflict,
	http.StatusUnprocessableEntity,
	http.StatusInternalServerError,
}

type IDPath struct {
	ID string `path:"id"`
}

type TaskPath struct {
	ProjectID string `path:"project_id"`
	TaskID    string `path:"task_id"`
}

func registerProjects(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-project",
		Method:        http.MethodPost,
		Path:          "/projects",
		Summary:       "Create project",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		Body CreateProjectRequest `json:"body"`
	}) (*struct {
		Body domain.Project `json:"body"`
	}, error) {
		p, err := e.CreateProject(engine.ProjectCreateOptions{
			ID:          input.Body.ID,
			Name:        input.Body.Name,
			Type:        input.Body.Type,
			Description: input.Body.Description,
			ClientID:    input.Body.ClientID,
			StartDate:   input.Body.StartDate,
			EndDate:     input.Body.EndDate,
			Deadline:    input.Body.Deadline,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Project `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Project `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Project `json:"body"`
		}{Body: e.Store.ListProjects()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get project",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *IDPath) (*struct {
		Body domain.Project `json:"body"`
	}, error) {
		p, err := e.Store.GetProject(input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Project `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPatch,
		Path:        "/projects/{id}",
		Summary:     "Update project",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		IDPath
		Body UpdateProjectRequest `json:"body"`
	}) (*struct {
		Body domain.Project `json:"body"`
	}, error) {
		p, err := e.UpdateProject(engine.ProjectUpdateOptions{
			ID:          input.ID,
			Name:        input.Body.Name,
			Status:      input.Body.Status,
			Description: input.Body.Description,
			ClientID:    input.Body.ClientID,
			StartDate:   input.Body.StartDate,
			EndDate:     input.Body.EndDate,
			Deadline:    input.Body.Deadline,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Project `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete project and its tasks",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *IDPath) (*deletedResponse, error) {
		if err := e.DeleteProject(input.ID); err != nil {
			return nil, handleError(err)
		}
		return deletedOK(), nil
	})
}

func registerTasks(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-task",
		Method:        http.MethodPost,
		Path:          "/projects/{project_id}/tasks",
		Summary:       "Create task",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		ProjectID string            `path:"project_id"`
		Body      CreateTaskRequest `json:"body"`
	}) (*struct {
		Body domain.Task `json:"body"`
	}, error) {
		t, err := e.CreateTask(engine.TaskCreateOptions{
			ID:           input.Body.ID,
			ProjectID:    input.ProjectID,
			Title:        input.Body.Title,
			Description:  input.Body.Description,
			Duration:     input.Body.Duration,
			ResourceType: input.Body.ResourceType,
			DependsOn:    input.Body.DependsOn,
			AssignedTo:   input.Body.AssignedTo,
			StartDate:    input.Body.StartDate,
			EndDate:      input.Body.EndDate,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Task `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/projects/{project_id}/tasks/{task_id}",
		Summary:     "Get task",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *TaskPath) (*struct {
		Body domain.Task `json:"body"`
	}, error) {
		t, err := e.Store.GetTask(input.ProjectID, input.TaskID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Task `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPatch,
		Path:        "/projects/{project_id}/tasks/{task_id}",
		Summary:     "Update task",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		TaskPath
		Body UpdateTaskRequest `json:"body"`
	}) (*struct {
		Body domain.Task `json:"body"`
	}, error) {
		t, err := e.UpdateTask(engine.TaskUpdateOptions{
			ProjectID:    input.ProjectID,
			TaskID:       input.TaskID,
			Title:        input.Body.Title,
			Description:  input.Body.Description,
			Status:       input.Body.Status,
			Duration:     input.Body.Duration,
			ResourceType: input.Body.ResourceType,
			DependsOn:    input.Body.DependsOn,
			StartDate:    input.Body.StartDate,
			EndDate:      input.Body.EndDate,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Task `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/projects/{project_id}/tasks/{task_id}",
		Summary:     "Delete task",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *TaskPath) (*deletedResponse, error) {
		if err := e.DeleteTask(input.ProjectID, input.TaskID); err != nil {
			return nil, handleError(err)
		}
		return deletedOK(), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPost,
		Path:        "/projects/{project_id}/tasks/{task_id}/move",
		Summary:     "Place task on the calendar",
		Description: "Sets start and end date and promotes status new to scheduled. Nothing else changes.",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		TaskPath
		Body MoveTaskRequest `json:"body"`
	}) (*struct {
		Body domain.Task `json:"body"`
	}, error) {
		t, err := e.MoveTask(input.ProjectID, input.TaskID, input.Body.StartDate, input.Body.EndDate)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Task `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-task",
		Method:      http.MethodPost,
		Path:        "/projects/{project_id}/tasks/{task_id}/assign",
		Summary:     "Replace task assignees",
		Description: "Replaces the whole assignee list. Unknown user ids are accepted.",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		TaskPath
		Body AssignTaskRequest `json:"body"`
	}) (*struct {
		Body domain.Task `json:"body"`
	}, error) {
		t, err := e.AssignTask(input.ProjectID, input.TaskID, input.Body.UserIDs)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Task `json:"body"`
		}{Body: t}, nil
	})
}

func registerUsers(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/users",
		Summary:       "Create employee",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		Body CreateUserRequest `json:"body"`
	}) (*struct {
		Body domain.User `json:"body"`
	}, error) {
		u, err := e.CreateUser(engine.UserOptions{
			ID:           input.Body.ID,
			Name:         input.Body.Name,
			Email:        input.Body.Email,
			Role:         input.Body.Role,
			Skills:       input.Body.Skills,
			Availability: input.Body.Availability,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.User `json:"body"`
		}{Body: u}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List employees",
	}, func(ctx context.Context, input *struct {
		Role string `query:"role" enum:",planner,mechanic,warehouse,admin"`
	}) (*struct {
		Body []domain.User `json:"body"`
	}, error) {
		return &struct {
			Body []domain.User `json:"body"`
		}{Body: query.UsersByRole(e.Store.Snapshot(), input.Role)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPatch,
		Path:        "/users/{id}",
		Summary:     "Update employee",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		IDPath
		Body UpdateUserRequest `json:"body"`
	}) (*struct {
		Body domain.User `json:"body"`
	}, error) {
		u, err := e.UpdateUser(engine.UserUpdateOptions{
			ID:           input.ID,
			Name:         input.Body.Name,
			Email:        input.Body.Email,
			Role:         input.Body.Role,
			Skills:       input.Body.Skills,
			Availability: input.Body.Availability,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.User `json:"body"`
		}{Body: u}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Summary:     "Delete employee",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *IDPath) (*deletedResponse, error) {
		if err := e.DeleteUser(input.ID); err != nil {
			return nil, handleError(err)
		}
		return deletedOK(), nil
	})
}

func registerClients(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-client",
		Method:        http.MethodPost,
		Path:          "/clients",
		Summary:       "Create client",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		Body CreateClientRequest `json:"body"`
	}) (*struct {
		Body domain.Client `json:"body"`
	}, error) {
		c, err := e.CreateClient(engine.ClientOptions{
			ID:            input.Body.ID,
			Name:          input.Body.Name,
			ContactPerson: input.Body.ContactPerson,
			Email:         input.Body.Email,
			Phone:         input.Body.Phone,
			Address:       input.Body.Address,
			Notes:         input.Body.Notes,
			Type:          input.Body.Type,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Client `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-clients",
		Method:      http.MethodGet,
		Path:        "/clients",
		Summary:     "List clients",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Client `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Client `json:"body"`
		}{Body: e.Store.ListClients()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-client",
		Method:      http.MethodPatch,
		Path:        "/clients/{id}",
		Summary:     "Update client",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		IDPath
		Body UpdateClientRequest `json:"body"`
	}) (*struct {
		Body domain.Client `json:"body"`
	}, error) {
		c, err := e.UpdateClient(engine.ClientUpdateOptions{
			ID:            input.ID,
			Name:          input.Body.Name,
			ContactPerson: input.Body.ContactPerson,
			Email:         input.Body.Email,
			Phone:         input.Body.Phone,
			Address:       input.Body.Address,
			Notes:         input.Body.Notes,
			Type:          input.Body.Type,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Client `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-client",
		Method:      http.MethodDelete,
		Path:        "/clients/{id}",
		Summary:     "Delete client",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *IDPath) (*deletedResponse, error) {
		if err := e.DeleteClient(input.ID); err != nil {
			return nil, handleError(err)
		}
		return deletedOK(), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "client-projects",
		Method:      http.MethodGet,
		Path:        "/clients/{id}/projects",
		Summary:     "Projects for a client",
	}, func(ctx context.Context, input *IDPath) (*struct {
		Body []domain.Project `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Project `json:"body"`
		}{Body: query.ProjectsForClient(e.Store.Snapshot(), input.ID)}, nil
	})
}

func registerResources(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-resource",
		Method:        http.MethodPost,
		Path:          "/resources",
		Summary:       "Create resource",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		Body CreateResourceRequest `json:"body"`
	}) (*struct {
		Body domain.Resource `json:"body"`
	}, error) {
		r, err := e.CreateResource(engine.ResourceOptions{
			ID:       input.Body.ID,
			Name:     input.Body.Name,
			Type:     input.Body.Type,
			Capacity: input.Body.Capacity,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Resource `json:"body"`
		}{Body: r}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-resources",
		Method:      http.MethodGet,
		Path:        "/resources",
		Summary:     "List resources",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Resource `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Resource `json:"body"`
		}{Body: e.Store.ListResources()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-resource",
		Method:      http.MethodPatch,
		Path:        "/resources/{id}",
		Summary:     "Update resource",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		IDPath
		Body UpdateResourceRequest `json:"body"`
	}) (*struct {
		Body domain.Resource `json:"body"`
	}, error) {
		r, err := e.UpdateResource(engine.ResourceUpdateOptions{
			ID:       input.ID,
			Name:     input.Body.Name,
			Type:     input.Body.Type,
			Capacity: input.Body.Capacity,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Resource `json:"body"`
		}{Body: r}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-resource",
		Method:      http.MethodDelete,
		Path:        "/resources/{id}",
		Summary:     "Delete resource",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *IDPath) (*deletedResponse, error) {
		if err := e.DeleteResource(input.ID); err != nil {
			return nil, handleError(err)
		}
		return deletedOK(), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resource-reservations",
		Method:      http.MethodGet,
		Path:        "/resources/{id}/reservations",
		Summary:     "Reservations on a resource",
	}, func(ctx context.Context, input *IDPath) (*struct {
		Body []domain.ResourceReservation `json:"body"`
	}, error) {
		return &struct {
			Body []domain.ResourceReservation `json:"body"`
		}{Body: query.ReservationsForResource(e.Store.Snapshot(), input.ID)}, nil
	})
}

func registerReservations(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-reservation",
		Method:        http.MethodPost,
		Path:          "/reservations",
		Summary:       "Reserve a resource",
		Description:   "Overlap on the same resource and day is reported via the conflict flag. Under the warn policy the reservation is created anyway; under reject it is refused with 409.",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		Body CreateReservationRequest `json:"body"`
	}) (*struct {
		Body ReservationResponse `json:"body"`
	}, error) {
		res, err := e.AddReservation(engine.ReservationOptions{
			ID:         input.Body.ID,
			ResourceID: input.Body.ResourceID,
			TaskID:     input.Body.TaskID,
			ProjectID:  input.Body.ProjectID,
			Date:       input.Body.Date,
			StartTime:  input.Body.StartTime,
			EndTime:    input.Body.EndTime,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body ReservationResponse `json:"body"`
		}{Body: ReservationResponse{
			Reservation: res.Reservation,
			Conflict:    res.Conflict,
			Overlaps:    res.Overlaps,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-reservations",
		Method:      http.MethodGet,
		Path:        "/reservations",
		Summary:     "List reservations",
	}, func(ctx context.Context, input *struct {
		Date string `query:"date"`
	}) (*struct {
		Body []domain.ResourceReservation `json:"body"`
	}, error) {
		if input.Date != "" {
			return &struct {
				Body []domain.ResourceReservation `json:"body"`
			}{Body: query.ReservationsForDate(e.Store.Snapshot(), input.Date)}, nil
		}
		return &struct {
			Body []domain.ResourceReservation `json:"body"`
		}{Body: e.Store.ListReservations()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-reservation",
		Method:      http.MethodDelete,
		Path:        "/reservations/{id}",
		Summary:     "Delete reservation",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *IDPath) (*deletedResponse, error) {
		if err := e.DeleteReservation(input.ID); err != nil {
			return nil, handleError(err)
		}
		return deletedOK(), nil
	})
}

func registerTypeConfigs(api huma.API, e engine.Engine) {
	type KeyPath struct {
		Key string `path:"key"`
	}
	type TemplatePath struct {
		Key   string `path:"key"`
		Index int    `path:"index"`
	}
	configOut := func(c domain.ProjectTypeConfig) *struct {
		Body domain.ProjectTypeConfig `json:"body"`
	} {
		return &struct {
			Body domain.ProjectTypeConfig `json:"body"`
		}{Body: c}
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-type-configs",
		Method:      http.MethodGet,
		Path:        "/types",
		Summary:     "List project type configs",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.ProjectTypeConfig `json:"body"`
	}, error) {
		cfgs := e.Store.ListTypeConfigs()
		out := make([]domain.ProjectTypeConfig, 0, len(cfgs))
		for _, key := range domain.ProjectTypeKeys {
			if c, ok := cfgs[key]; ok {
				out = append(out, c)
			}
		}
		return &struct {
			Body []domain.ProjectTypeConfig `json:"body"`
		}{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-type-config",
		Method:      http.MethodGet,
		Path:        "/types/{key}",
		Summary:     "Get project type config",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *KeyPath) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.Store.GetTypeConfig(input.Key)
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-type-config",
		Method:      http.MethodPatch,
		Path:        "/types/{key}",
		Summary:     "Update type name and color",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		KeyPath
		Body UpdateTypeConfigRequest `json:"body"`
	}) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.UpdateTypeConfig(input.Key, input.Body.Name, input.Body.Color)
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-template",
		Method:        http.MethodPost,
		Path:          "/types/{key}/templates",
		Summary:       "Append task template",
		DefaultStatus: http.StatusCreated,
		Errors:        commandErrors,
	}, func(ctx context.Context, input *struct {
		KeyPath
		Body AddTemplateRequest `json:"body"`
	}) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.AddTemplate(input.Key, domain.TaskTemplate{
			Title:        input.Body.Title,
			Description:  input.Body.Description,
			Duration:     input.Body.Duration,
			ResourceType: input.Body.ResourceType,
			Dependencies: input.Body.Dependencies,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-template",
		Method:      http.MethodDelete,
		Path:        "/types/{key}/templates/{index}",
		Summary:     "Remove task template",
		Description: "Dependencies on the removed position are dropped; later positions shift down.",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *TemplatePath) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.RemoveTemplate(input.Key, input.Index)
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-template",
		Method:      http.MethodPost,
		Path:        "/types/{key}/templates/reorder",
		Summary:     "Move a template to a new position",
		Description: "All dependency indices are remapped so they keep pointing at the same templates.",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		KeyPath
		Body ReorderTemplateRequest `json:"body"`
	}) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.ReorderTemplate(input.Key, input.Body.From, input.Body.To)
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-template-dependency",
		Method:      http.MethodPost,
		Path:        "/types/{key}/templates/{index}/dependencies",
		Summary:     "Add template dependency",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		TemplatePath
		Body AddTemplateDependencyRequest `json:"body"`
	}) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.AddTemplateDependency(input.Key, input.Index, input.Body.Dependency)
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-template-dependency",
		Method:      http.MethodDelete,
		Path:        "/types/{key}/templates/{index}/dependencies/{dependency}",
		Summary:     "Remove template dependency",
		Errors:      commandErrors,
	}, func(ctx context.Context, input *struct {
		TemplatePath
		Dependency int `path:"dependency"`
	}) (*struct {
		Body domain.ProjectTypeConfig `json:"body"`
	}, error) {
		c, err := e.RemoveTemplateDependency(input.Key, input.Index, input.Dependency)
		if err != nil {
			return nil, handleError(err)
		}
		return configOut(c), nil
	})
}

package server

import (
	"planbord/internal/domain"
)

// Request payloads

type CreateProjectRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type" enum:"cabinet-build,repair,paint,custom,mobile-workshop,medical,broadcast,defense"`
	Description string `json:"description,omitempty"`
	ClientID    string `json:"client_id,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Status      *string `json:"status,omitempty" enum:"new,active,done"`
	Description *string `json:"description,omitempty"`
	ClientID    *string `json:"client_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

type CreateTaskRequest struct {
	ID           string           `json:"id,omitempty"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Duration     *domain.Duration `json:"duration,omitempty"`
	ResourceType string           `json:"resource_type,omitempty"`
	DependsOn    []string         `json:"depends_on,omitempty"`
	AssignedTo   []string         `json:"assigned_to,omitempty"`
	StartDate    string           `json:"start_date,omitempty"`
	EndDate      string           `json:"end_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Status       *string          `json:"status,omitempty" enum:"new,scheduled,in-progress,done"`
	Duration     *domain.Duration `json:"duration,omitempty"`
	ResourceType *string          `json:"resource_type,omitempty"`
	DependsOn    *[]string        `json:"depends_on,omitempty"`
	StartDate    *string          `json:"start_date,omitempty"`
	EndDate      *string          `json:"end_date,omitempty"`
}

type MoveTaskRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AssignTaskRequest struct {
	UserIDs []string `json:"user_ids"`
}

type CreateUserRequest struct {
	ID           string                     `json:"id,omitempty"`
	Name         string                     `json:"name"`
	Email        string                     `json:"email,omitempty"`
	Role         string                     `json:"role" enum:"planner,mechanic,warehouse,admin"`
	Skills       []string                   `json:"skills,omitempty"`
	Availability *domain.WeeklyAvailability `json:"availability,omitempty"`
}

type UpdateUserRequest struct {
	Name         *string                    `json:"name,omitempty"`
	Email        *string                    `json:"email,omitempty"`
	Role         *string                    `json:"role,omitempty" enum:"planner,mechanic,warehouse,admin"`
	Skills       *[]string                  `json:"skills,omitempty"`
	Availability *domain.WeeklyAvailability `json:"availability,omitempty"`
}

type CreateClientRequest struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Type          string `json:"type" enum:"customer,prospect"`
}

type UpdateClientRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Type          *string `json:"type,omitempty" enum:"customer,prospect"`
}

type CreateResourceRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Type     string `json:"type" enum:"paint-booth,workshop,repair-bay,warehouse"`
	Capacity int    `json:"capacity" minimum:"1"`
}

type UpdateResourceRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty" enum:"paint-booth,workshop,repair-bay,warehouse"`
	Capacity *int    `json:"capacity,omitempty" minimum:"1"`
}

type CreateReservationRequest struct {
	ID         string `json:"id,omitempty"`
	ResourceID string `json:"resource_id"`
	TaskID     string `json:"task_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type UpdateTypeConfigRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type AddTemplateRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Duration     *domain.Duration `json:"duration,omitempty"`
	ResourceType string           `json:"resource_type,omitempty"`
	Dependencies []int            `json:"dependencies,omitempty"`
}

type ReorderTemplateRequest struct {
	From int `json:"from" minimum:"0"`
	To   int `json:"to" minimum:"0"`
}

type AddTemplateDependencyRequest struct {
	Dependency int `json:"dependency" minimum:"0"`
}

// Response payloads

type ReservationResponse struct {
	Reservation domain.ResourceReservation   `json:"reservation"`
	Conflict    bool                         `json:"conflict"`
	Overlaps    []domain.ResourceReservation `json:"overlaps,omitempty"`
}

type deletedResponse struct {
	Body struct {
		Deleted bool `json:"deleted"`
	} `json:"body"`
}

func deletedOK() *deletedResponse {
	var out deletedResponse
	out.Body.Deleted = true
	return &out
}

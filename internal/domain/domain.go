package domain

// Project type keys are fixed; configs are editable but keys never change.
const (
	TypeCabinetBuild   = "cabinet-build"
	TypeRepair         = "repair"
	TypePaint          = "paint"
	TypeCustom         = "custom"
	TypeMobileWorkshop = "mobile-workshop"
	TypeMedical        = "medical"
	TypeBroadcast      = "broadcast"
	TypeDefense        = "defense"
)

// ProjectTypeKeys lists all valid type keys in display order.
var ProjectTypeKeys = []string{
	TypeCabinetBuild,
	TypeRepair,
	TypePaint,
	TypeCustom,
	TypeMobileWorkshop,
	TypeMedical,
	TypeBroadcast,
	TypeDefense,
}

const (
	TaskStatusNew        = "new"
	TaskStatusScheduled  = "scheduled"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

var TaskStatuses = []string{TaskStatusNew, TaskStatusScheduled, TaskStatusInProgress, TaskStatusDone}

const (
	ProjectStatusNew    = "new"
	ProjectStatusActive = "active"
	ProjectStatusDone   = "done"
)

var ProjectStatuses = []string{ProjectStatusNew, ProjectStatusActive, ProjectStatusDone}

const (
	RolePlanner   = "planner"
	RoleMechanic  = "mechanic"
	RoleWarehouse = "warehouse"
	RoleAdmin     = "admin"
)

var EmployeeRoles = []string{RolePlanner, RoleMechanic, RoleWarehouse, RoleAdmin}

const (
	ResourcePaintBooth = "paint-booth"
	ResourceWorkshop   = "workshop"
	ResourceRepairBay  = "repair-bay"
	ResourceWarehouse  = "warehouse"
)

var ResourceTypes = []string{ResourcePaintBooth, ResourceWorkshop, ResourceRepairBay, ResourceWarehouse}

const (
	ClientCustomer = "customer"
	ClientProspect = "prospect"
)

var ClientTypes = []string{ClientCustomer, ClientProspect}

// Duration is an estimate attached to tasks and templates.
type Duration struct {
	Value int    `json:"value" yaml:"value"`
	Unit  string `json:"unit" yaml:"unit" enum:"minutes,hours,days"`
}

// Task dates are calendar-day strings (YYYY-MM-DD); empty until scheduled.
type Task struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	ProjectID    string    `json:"project_id" yaml:"project_id"`
	StartDate    string    `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Status       string    `json:"status" yaml:"status" enum:"new,scheduled,in-progress,done"`
	Duration     *Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	AssignedTo   []string  `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	DependsOn    []string  `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	ResourceType string    `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
}

// Project owns its tasks for their whole lifetime; deleting a project
// deletes them with it. StartDate/EndDate are a planning envelope and are
// not derived from the tasks.
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Tasks       []Task `json:"tasks" yaml:"tasks"`
	ClientID    string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientName  string `json:"client_name,omitempty" yaml:"client_name,omitempty"`
	Deadline    string `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Status      string `json:"status" yaml:"status" enum:"new,active,done"`
	StartDate   string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

type Client struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	ContactPerson string `json:"contact_person,omitempty" yaml:"contact_person,omitempty"`
	Email         string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone         string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address       string `json:"address,omitempty" yaml:"address,omitempty"`
	Notes         string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Type          string `json:"type" yaml:"type" enum:"customer,prospect"`
}

// Resource capacity is informational: reservations are never counted
// against it. A capacity check would slot into Engine.AddReservation next
// to the overlap scan if that ever changes.
type Resource struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type" enum:"paint-booth,workshop,repair-bay,warehouse"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// ResourceReservation books a resource for a task on one calendar day.
// StartTime/EndTime are HH:MM wall clock on that day; overnight spans are
// not representable.
type ResourceReservation struct {
	ID         string `json:"id" yaml:"id"`
	ResourceID string `json:"resource_id" yaml:"resource_id"`
	TaskID     string `json:"task_id" yaml:"task_id"`
	ProjectID  string `json:"project_id" yaml:"project_id"`
	Date       string `json:"date" yaml:"date"`
	StartTime  string `json:"start_time" yaml:"start_time"`
	EndTime    string `json:"end_time" yaml:"end_time"`
}

type DayAvailability struct {
	Available bool   `json:"available" yaml:"available"`
	StartTime string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
}

// WeeklyAvailability covers Monday through Sunday.
type WeeklyAvailability struct {
	Monday    DayAvailability `json:"monday" yaml:"monday"`
	Tuesday   DayAvailability `json:"tuesday" yaml:"tuesday"`
	Wednesday DayAvailability `json:"wednesday" yaml:"wednesday"`
	Thursday  DayAvailability `json:"thursday" yaml:"thursday"`
	Friday    DayAvailability `json:"friday" yaml:"friday"`
	Saturday  DayAvailability `json:"saturday" yaml:"saturday"`
	Sunday    DayAvailability `json:"sunday" yaml:"sunday"`
}

// ByWeekday returns the entry for a Go weekday (Sunday == 0).
func (w WeeklyAvailability) ByWeekday(weekday int) DayAvailability {
	switch weekday {
	case 0:
		return w.Sunday
	case 1:
		return w.Monday
	case 2:
		return w.Tuesday
	case 3:
		return w.Wednesday
	case 4:
		return w.Thursday
	case 5:
		return w.Friday
	default:
		return w.Saturday
	}
}

type User struct {
	ID           string              `json:"id" yaml:"id"`
	Name         string              `json:"name" yaml:"name"`
	Email        string              `json:"email,omitempty" yaml:"email,omitempty"`
	Role         string              `json:"role" yaml:"role" enum:"planner,mechanic,warehouse,admin"`
	Skills       []string            `json:"skills,omitempty" yaml:"skills,omitempty"`
	Availability *WeeklyAvailability `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// TaskTemplate dependencies are positions in the owning config's ordered
// template list, not ids. Structural edits to the list must remap them; see
// the templates package.
type TaskTemplate struct {
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Duration     *Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	ResourceType string    `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
	Dependencies []int     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ProjectTypeConfig is the per-type blueprint: display name, color and the
// template list instantiated into tasks when a project of that type is
// created. Exactly one config exists per type key.
type ProjectTypeConfig struct {
	Key           string         `json:"key" yaml:"key"`
	Name          string         `json:"name" yaml:"name"`
	Color         string         `json:"color" yaml:"color"`
	TaskTemplates []TaskTemplate `json:"task_templates" yaml:"task_templates"`
}

// ValidProjectType reports whether key is one of the eight fixed keys.
func ValidProjectType(key string) bool {
	for _, k := range ProjectTypeKeys {
		if k == key {
			return true
		}
	}
	return false
}

func validOneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidTaskStatus(s string) bool    { return validOneOf(s, TaskStatuses) }
func ValidProjectStatus(s string) bool { return validOneOf(s, ProjectStatuses) }
func ValidEmployeeRole(s string) bool  { return validOneOf(s, EmployeeRoles) }
func ValidResourceType(s string) bool  { return validOneOf(s, ResourceTypes) }
func ValidClientType(s string) bool    { return validOneOf(s, ClientTypes) }

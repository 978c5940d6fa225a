// Package seed loads a starting dataset into the store: either the
// built-in demo workshop or a YAML file in the same shape.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"planbord/internal/domain"
	"planbord/internal/store"
)

// Dataset is the loadable shape. Every section is optional; type configs
// missing from the file fall back to the defaults so project creation
// always has a blueprint per type key.
type Dataset struct {
	Users        []domain.User                `yaml:"users"`
	Clients      []domain.Client              `yaml:"clients"`
	Resources    []domain.Resource            `yaml:"resources"`
	Projects     []domain.Project             `yaml:"projects"`
	Reservations []domain.ResourceReservation `yaml:"reservations"`
	TypeConfigs  []domain.ProjectTypeConfig   `yaml:"type_configs"`
}

// FromFile reads a dataset from YAML.
func FromFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}
	return &d, nil
}

// Apply loads the dataset into the store. Defaults fill any type config
// the dataset does not carry.
func (d *Dataset) Apply(st *store.Store) {
	for _, c := range DefaultTypeConfigs() {
		st.PutTypeConfig(c)
	}
	for _, c := range d.TypeConfigs {
		st.PutTypeConfig(c)
	}
	for _, u := range d.Users {
		st.InsertUser(u)
	}
	for _, c := range d.Clients {
		st.InsertClient(c)
	}
	for _, r := range d.Resources {
		st.InsertResource(r)
	}
	for _, p := range d.Projects {
		st.InsertProject(p)
	}
	for _, r := range d.Reservations {
		st.InsertReservation(r)
	}
}

// DefaultTemplates returns the stock template list for one project type.
// Durations grow by 15 minutes per position from a per-type base.
func DefaultTemplates(key string) []domain.TaskTemplate {
	type step struct{ title, desc string }
	var steps []step
	base := 60
	switch key {
	case domain.TypeCabinetBuild:
		base = 60
		steps = []step{
			{"Take measurements", "Establish the exact dimensions of the body"},
			{"Order materials", "Order the materials needed for the cabinet build"},
			{"Base construction", "Build up the base structure of the body"},
			{"Insulation and panelling", "Install insulation and panelling"},
			{"Electrical", "Install wiring and electrical systems"},
			{"Finishing", "Finishing details and final assembly"},
			{"Quality check", "Final inspection of the body"},
		}
	case domain.TypeRepair:
		base = 45
		steps = []step{
			{"Damage assessment", "Establish the extent of the damage"},
			{"Draft quote", "Prepare cost estimate and work plan"},
			{"Order parts", "Order the required parts"},
			{"Carry out repair", "Execute the repair work"},
			{"Test", "Test operation after the repairs"},
		}
	case domain.TypePaint:
		base = 90
		steps = []step{
			{"Surface preparation", "Sand and prepare the surface"},
			{"Masking", "Tape off and protect components"},
			{"Apply primer", "Apply the primer coat"},
			{"Spray base coat", "Apply the base coat"},
			{"Spray clear coat", "Apply the clear coat"},
			{"Drying", "Respect the drying time"},
			{"Polishing", "Polish the surface"},
		}
	case domain.TypeCustom:
		base = 120
		steps = []step{
			{"Client meeting", "Discuss wishes and requirements with the client"},
			{"Create design", "Produce technical drawings"},
			{"Material research", "Select suitable materials"},
			{"Prototype", "Build and test a prototype"},
			{"Production", "Produce the custom work"},
			{"Finishing", "Apply the finishing touches"},
			{"Client delivery", "Present the end result to the client"},
		}
	case domain.TypeMobileWorkshop:
		base = 240
		steps = []step{
			{"Design mobile workshop", "Design the layout of the mobile workshop"},
			{"Base installation", "Install the base components"},
			{"Electrical and lighting", "Install the electrical system"},
			{"Tool mounting", "Install tools and workbenches"},
			{"Storage systems", "Install storage systems and cabinets"},
			{"Test", "Test functionality"},
		}
	case domain.TypeMedical:
		base = 180
		steps = []step{
			{"Define specifications", "Establish medical requirements and specifications"},
			{"Room layout", "Design the layout of the medical space"},
			{"Electrical systems", "Install dedicated medical electrical systems"},
			{"Medical equipment", "Mount the medical equipment"},
			{"Sterilisation requirements", "Install sterilisation equipment"},
			{"Certification", "Obtain the required medical certifications"},
		}
	case domain.TypeBroadcast:
		base = 300
		steps = []step{
			{"Technical requirements", "Establish broadcast requirements"},
			{"Cable trays", "Install cable trays and routing"},
			{"Electronics installation", "Mount the broadcast equipment"},
			{"Control room", "Fit out the control room"},
			{"Signal tests", "Test the broadcast signals"},
			{"Acoustics", "Carry out acoustic treatments"},
		}
	case domain.TypeDefense:
		base = 480
		steps = []step{
			{"Define security requirements", "Establish security and tactical requirements"},
			{"Special materials", "Order special high-security materials"},
			{"Armoured components", "Install armoured components"},
			{"Communication systems", "Install military communication systems"},
			{"Terrain test", "Test under varied terrain conditions"},
			{"Safety inspection", "Safety inspection by specialists"},
		}
	default:
		steps = []step{
			{"Project planning", "Plan and prepare the project"},
			{"Execution", "Carry out the work"},
			{"Wrap-up", "Close out and evaluate the project"},
		}
	}
	out := make([]domain.TaskTemplate, 0, len(steps))
	for i, s := range steps {
		out = append(out, domain.TaskTemplate{
			Title:       s.title,
			Description: s.desc,
			Duration:    &domain.Duration{Value: base + i*15, Unit: "minutes"},
		})
	}
	return out
}

// DefaultTypeConfigs builds one config per fixed type key.
func DefaultTypeConfigs() []domain.ProjectTypeConfig {
	out := make([]domain.ProjectTypeConfig, 0, len(domain.ProjectTypeKeys))
	for _, key := range domain.ProjectTypeKeys {
		out = append(out, domain.ProjectTypeConfig{
			Key:           key,
			Name:          domain.ProjectTypeName(key),
			Color:         domain.ProjectTypeColor(key),
			TaskTemplates: DefaultTemplates(key),
		})
	}
	return out
}

func workweek() *domain.WeeklyAvailability {
	day := domain.DayAvailability{Available: true, StartTime: "08:00", EndTime: "17:00"}
	return &domain.WeeklyAvailability{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day,
	}
}

// Demo builds the built-in dataset: a small Belgian vehicle-fitting shop
// with a handful of running projects. Task dates are laid out relative to
// now so the calendar views have content near today.
func Demo(now time.Time) *Dataset {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}

	marieAvail := workweek()
	marieAvail.Wednesday = domain.DayAvailability{}
	elsAvail := workweek()
	elsAvail.Friday = domain.DayAvailability{Available: true, StartTime: "08:00", EndTime: "12:00"}

	users := []domain.User{
		{ID: "1", Name: "Jan Vermeulen", Email: "jan.vermeulen@moeyersons.be", Role: domain.RolePlanner,
			Skills: []string{"Planning", "Cabinet build", "Project management"}, Availability: workweek()},
		{ID: "2", Name: "Luc Peeters", Email: "luc.peeters@moeyersons.be", Role: domain.RoleMechanic,
			Skills: []string{"Electrical", "Cabinet build", "Repair"}, Availability: workweek()},
		{ID: "3", Name: "Marie Janssens", Email: "marie.janssens@moeyersons.be", Role: domain.RoleAdmin,
			Skills: []string{"Administration", "Client contact"}, Availability: marieAvail},
		{ID: "4", Name: "Steven Maertens", Email: "steven.maertens@moeyersons.be", Role: domain.RoleMechanic,
			Skills: []string{"Paintwork", "Finishing"}, Availability: workweek()},
		{ID: "5", Name: "Els De Smet", Email: "els.desmet@moeyersons.be", Role: domain.RoleMechanic,
			Skills: []string{"Design", "Technical drawings", "Custom work"}, Availability: elsAvail},
	}

	clients := []domain.Client{
		{ID: "c1", Name: "Delhaize Group", ContactPerson: "Marc Van den Berg", Email: "marc.vandenberg@delhaize.be",
			Phone: "+32 2 412 21 11", Address: "Brusselsesteenweg 347, 1730 Asse",
			Notes: "Major client, several refrigerated trucks per year", Type: domain.ClientCustomer},
		{ID: "c2", Name: "Bpost", ContactPerson: "Sofie Claes", Email: "sofie.claes@bpost.be",
			Phone: "+32 2 201 23 45", Address: "Muntcentrum, 1000 Brussel",
			Notes: "Repair contract for the delivery van fleet", Type: domain.ClientCustomer},
		{ID: "c3", Name: "Transuniverse Forwarding", ContactPerson: "Peter Willems", Email: "peter.willems@transuniverse.be",
			Phone: "+32 9 321 45 67", Address: "Transportzone 8, 9052 Zwijnaarde", Type: domain.ClientCustomer},
		{ID: "c4", Name: "Infrabel", ContactPerson: "Anne Dubois", Email: "anne.dubois@infrabel.be",
			Phone: "+32 2 525 22 11", Address: "Fonsnylaan 48, 1060 Brussel",
			Notes: "Mobile workshops for rail maintenance", Type: domain.ClientCustomer},
		{ID: "c5", Name: "VRT", ContactPerson: "Thomas De Ridder", Email: "thomas.deridder@vrt.be",
			Phone: "+32 2 741 31 11", Address: "Auguste Reyerslaan 52, 1043 Brussel",
			Notes: "Broadcast van projects, strict technical requirements", Type: domain.ClientProspect},
	}

	resources := []domain.Resource{
		{ID: "r1", Name: "Paint booth 1", Type: domain.ResourcePaintBooth, Capacity: 1},
		{ID: "r2", Name: "Paint booth 2", Type: domain.ResourcePaintBooth, Capacity: 1},
		{ID: "r3", Name: "Workshop A", Type: domain.ResourceWorkshop, Capacity: 3},
		{ID: "r4", Name: "Workshop B", Type: domain.ResourceWorkshop, Capacity: 2},
		{ID: "r5", Name: "Repair hall", Type: domain.ResourceRepairBay, Capacity: 4},
		{ID: "r6", Name: "Central warehouse", Type: domain.ResourceWarehouse, Capacity: 1},
	}

	// instantiate demo tasks from the stock templates with a spread of
	// dates, statuses and assignments
	demoTasks := func(projectID, typeKey string, stride, span int, status func(i int) string, assign func(i int) []string) []domain.Task {
		tmpls := DefaultTemplates(typeKey)
		out := make([]domain.Task, 0, len(tmpls))
		for i, tmpl := range tmpls {
			t := domain.Task{
				ID:          fmt.Sprintf("%s-%d", projectID, i),
				ProjectID:   projectID,
				Title:       tmpl.Title,
				Description: tmpl.Description,
				StartDate:   day(i * stride),
				EndDate:     day(i*stride + span),
				Status:      status(i),
				Duration:    tmpl.Duration,
			}
			if assign != nil {
				t.AssignedTo = assign(i)
			}
			out = append(out, t)
		}
		return out
	}
	always := func(s string) func(int) string { return func(int) string { return s } }

	projects := []domain.Project{
		{
			ID: "1", Name: "Refrigerated truck for Delhaize", Type: domain.TypeCabinetBuild,
			Description: "Cabinet build with cooling system for the Delhaize distribution centre in Ninove",
			ClientID:    "c1", ClientName: "Delhaize Group",
			Deadline: "2025-07-15", Status: domain.ProjectStatusActive,
			StartDate: "2025-05-10", EndDate: "2025-07-15",
			Tasks: demoTasks("1", domain.TypeCabinetBuild, 3, 2,
				func(i int) string {
					switch i {
					case 0:
						return domain.TaskStatusDone
					case 1:
						return domain.TaskStatusInProgress
					default:
						return domain.TaskStatusScheduled
					}
				},
				func(i int) []string {
					if i < 3 {
						return []string{"2"}
					}
					return nil
				}),
		},
		{
			ID: "2", Name: "Bpost delivery van repair", Type: domain.TypeRepair,
			Description: "Repair of the damaged cargo area of a Bpost delivery van",
			ClientID:    "c2", ClientName: "Bpost",
			Deadline: "2025-06-02", Status: domain.ProjectStatusActive,
			StartDate: "2025-05-15", EndDate: "2025-06-02",
			Tasks: demoTasks("2", domain.TypeRepair, 1, 1,
				func(i int) string {
					switch i {
					case 0:
						return domain.TaskStatusDone
					case 1:
						return domain.TaskStatusInProgress
					default:
						return domain.TaskStatusNew
					}
				},
				func(i int) []string {
					if i < 2 {
						return []string{"4"}
					}
					return nil
				}),
		},
		{
			ID: "3", Name: "Transuniverse trailer respray", Type: domain.TypePaint,
			Description: "Full respray of a Transuniverse trailer in company colours",
			ClientID:    "c3", ClientName: "Transuniverse Forwarding",
			Deadline: "2025-06-20", Status: domain.ProjectStatusNew,
			StartDate: "2025-06-01", EndDate: "2025-06-20",
			Tasks:     demoTasks("3", domain.TypePaint, 2, 1, always(domain.TaskStatusNew), nil),
		},
		{
			ID: "4", Name: "Infrabel mobile workshop", Type: domain.TypeMobileWorkshop,
			Description: "Build of a mobile workshop for Infrabel rail maintenance",
			ClientID:    "c4", ClientName: "Infrabel",
			Deadline: "2025-08-30", Status: domain.ProjectStatusNew,
			StartDate: "2025-07-15", EndDate: "2025-08-30",
			Tasks:     demoTasks("4", domain.TypeMobileWorkshop, 4, 3, always(domain.TaskStatusNew), nil),
		},
		{
			ID: "5", Name: "VRT news broadcast van", Type: domain.TypeBroadcast,
			Description: "Conversion of a delivery van into a mobile news studio for VRT",
			ClientID:    "c5", ClientName: "VRT",
			Deadline: "2025-09-15", Status: domain.ProjectStatusNew,
			StartDate: "2025-08-01", EndDate: "2025-09-15",
			Tasks:     demoTasks("5", domain.TypeBroadcast, 5, 4, always(domain.TaskStatusNew), nil),
		},
	}

	reservations := []domain.ResourceReservation{
		{ID: "res1", ResourceID: "r1", TaskID: "3-0", ProjectID: "3", Date: day(1), StartTime: "08:00", EndTime: "17:00"},
		{ID: "res2", ResourceID: "r3", TaskID: "1-2", ProjectID: "1", Date: day(2), StartTime: "08:00", EndTime: "12:00"},
	}

	return &Dataset{
		Users:        users,
		Clients:      clients,
		Resources:    resources,
		Projects:     projects,
		Reservations: reservations,
	}
}

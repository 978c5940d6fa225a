package engine

import (
	"errors"
	"fmt"

	"planbord/internal/domain"
	"planbord/internal/events"
)

// --- users ---

type UserOptions struct {
	ID           string
	Name         string
	Email        string
	Role         string
	Skills       []string
	Availability *domain.WeeklyAvailability
}

func (e Engine) CreateUser(opts UserOptions) (domain.User, error) {
	if opts.Name == "" {
		return domain.User{}, errors.New("name is required")
	}
	if !domain.ValidEmployeeRole(opts.Role) {
		return domain.User{}, fmt.Errorf("invalid role %q", opts.Role)
	}
	id := opts.ID
	if id == "" {
		id = e.newID()
	}
	u := domain.User{
		ID:           id,
		Name:         opts.Name,
		Email:        opts.Email,
		Role:         opts.Role,
		Skills:       opts.Skills,
		Availability: opts.Availability,
	}
	e.Store.InsertUser(u)
	e.append("user.created", "user", u.ID, events.Payload{"name": u.Name, "role": u.Role})
	return u, nil
}

type UserUpdateOptions struct {
	ID           string
	Name         *string
	Email        *string
	Role         *string
	Skills       *[]string
	Availability *domain.WeeklyAvailability
}

func (e Engine) UpdateUser(opts UserUpdateOptions) (domain.User, error) {
	u, err := e.Store.GetUser(opts.ID)
	if err != nil {
		return u, fmt.Errorf("user %s: %w", opts.ID, err)
	}
	if opts.Name != nil {
		if *opts.Name == "" {
			return u, errors.New("name is required")
		}
		u.Name = *opts.Name
	}
	if opts.Email != nil {
		u.Email = *opts.Email
	}
	if opts.Role != nil {
		if !domain.ValidEmployeeRole(*opts.Role) {
			return u, fmt.Errorf("invalid role %q", *opts.Role)
		}
		u.Role = *opts.Role
	}
	if opts.Skills != nil {
		u.Skills = append([]string(nil), (*opts.Skills)...)
	}
	if opts.Availability != nil {
		u.Availability = opts.Availability
	}
	if err := e.Store.ReplaceUser(u); err != nil {
		return u, err
	}
	e.append("user.updated", "user", u.ID, events.Payload{"name": u.Name, "role": u.Role})
	return u, nil
}

// DeleteUser removes the user from the roster. Task assignments keep the
// id; assignment ids are never checked against the roster.
func (e Engine) DeleteUser(id string) error {
	if err := e.Store.DeleteUser(id); err != nil {
		return fmt.Errorf("user %s: %w", id, err)
	}
	e.append("user.deleted", "user", id, nil)
	return nil
}

// --- clients ---

type ClientOptions struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Notes         string
	Type          string
}

func (e Engine) CreateClient(opts ClientOptions) (domain.Client, error) {
	if opts.Name == "" {
		return domain.Client{}, errors.New("name is required")
	}
	if !domain.ValidClientType(opts.Type) {
		return domain.Client{}, fmt.Errorf("invalid client type %q", opts.Type)
	}
	id := opts.ID
	if id == "" {
		id = e.newID()
	}
	c := domain.Client{
		ID:            id,
		Name:          opts.Name,
		ContactPerson: opts.ContactPerson,
		Email:         opts.Email,
		Phone:         opts.Phone,
		Address:       opts.Address,
		Notes:         opts.Notes,
		Type:          opts.Type,
	}
	e.Store.InsertClient(c)
	e.append("client.created", "client", c.ID, events.Payload{"name": c.Name, "type": c.Type})
	return c, nil
}

type ClientUpdateOptions struct {
	ID            string
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Notes         *string
	Type          *string
}

// UpdateClient applies a partial update. The client name denormalized onto
// projects is refreshed so boards keep showing the current name.
func (e Engine) UpdateClient(opts ClientUpdateOptions) (domain.Client, error) {
	c, err := e.Store.GetClient(opts.ID)
	if err != nil {
		return c, fmt.Errorf("client %s: %w", opts.ID, err)
	}
	if opts.Name != nil {
		if *opts.Name == "" {
			return c, errors.New("name is required")
		}
		c.Name = *opts.Name
	}
	if opts.ContactPerson != nil {
		c.ContactPerson = *opts.ContactPerson
	}
	if opts.Email != nil {
		c.Email = *opts.Email
	}
	if opts.Phone != nil {
		c.Phone = *opts.Phone
	}
	if opts.Address != nil {
		c.Address = *opts.Address
	}
	if opts.Notes != nil {
		c.Notes = *opts.Notes
	}
	if opts.Type != nil {
		if !domain.ValidClientType(*opts.Type) {
			return c, fmt.Errorf("invalid client type %q", *opts.Type)
		}
		c.Type = *opts.Type
	}
	if err := e.Store.ReplaceClient(c); err != nil {
		return c, err
	}
	if opts.Name != nil {
		for _, p := range e.Store.ListProjects() {
			if p.ClientID == c.ID && p.ClientName != c.Name {
				p.ClientName = c.Name
				if err := e.Store.ReplaceProject(p); err != nil {
					return c, err
				}
			}
		}
	}
	e.append("client.updated", "client", c.ID, events.Payload{"name": c.Name})
	return c, nil
}

// DeleteClient removes the client. Projects keep their client_id and the
// last known name.
func (e Engine) DeleteClient(id string) error {
	if err := e.Store.DeleteClient(id); err != nil {
		return fmt.Errorf("client %s: %w", id, err)
	}
	e.append("client.deleted", "client", id, nil)
	return nil
}

// --- resources ---

type ResourceOptions struct {
	ID       string
	Name     string
	Type     string
	Capacity int
}

func (e Engine) CreateResource(opts ResourceOptions) (domain.Resource, error) {
	if opts.Name == "" {
		return domain.Resource{}, errors.New("name is required")
	}
	if !domain.ValidResourceType(opts.Type) {
		return domain.Resource{}, fmt.Errorf("invalid resource type %q", opts.Type)
	}
	if opts.Capacity < 1 {
		return domain.Resource{}, errors.New("invalid capacity, must be >= 1")
	}
	id := opts.ID
	if id == "" {
		id = e.newID()
	}
	r := domain.Resource{ID: id, Name: opts.Name, Type: opts.Type, Capacity: opts.Capacity}
	e.Store.InsertResource(r)
	e.append("resource.created", "resource", r.ID, events.Payload{"name": r.Name, "type": r.Type})
	return r, nil
}

type ResourceUpdateOptions struct {
	ID       string
	Name     *string
	Type     *string
	Capacity *int
}

func (e Engine) UpdateResource(opts ResourceUpdateOptions) (domain.Resource, error) {
	r, err := e.Store.GetResource(opts.ID)
	if err != nil {
		return r, fmt.Errorf("resource %s: %w", opts.ID, err)
	}
	if opts.Name != nil {
		if *opts.Name == "" {
			return r, errors.New("name is required")
		}
		r.Name = *opts.Name
	}
	if opts.Type != nil {
		if !domain.ValidResourceType(*opts.Type) {
			return r, fmt.Errorf("invalid resource type %q", *opts.Type)
		}
		r.Type = *opts.Type
	}
	if opts.Capacity != nil {
		if *opts.Capacity < 1 {
			return r, errors.New("invalid capacity, must be >= 1")
		}
		r.Capacity = *opts.Capacity
	}
	if err := e.Store.ReplaceResource(r); err != nil {
		return r, err
	}
	e.append("resource.updated", "resource", r.ID, events.Payload{"name": r.Name})
	return r, nil
}

// DeleteResource removes the resource by id. Existing reservations keep
// their resource_id; only project deletion cascades.
func (e Engine) DeleteResource(id string) error {
	if err := e.Store.DeleteResource(id); err != nil {
		return fmt.Errorf("resource %s: %w", id, err)
	}
	e.append("resource.deleted", "resource", id, nil)
	return nil
}

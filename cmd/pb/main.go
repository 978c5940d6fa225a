package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"planbord/internal/app"
	"planbord/internal/config"
	"planbord/internal/domain"
	"planbord/internal/engine"
	"planbord/internal/query"
	"planbord/internal/seed"
	"planbord/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "pb",
	Short: "Planbord CLI",
	Long: `Planbord schedules vehicle-fitting work: projects of a fixed type each
carry tasks instantiated from that type's templates, tasks are placed on
the calendar and assigned to employees, and resources (paint booths,
workshops) are reserved per day with advisory conflict detection.

State lives in memory for the lifetime of the process. One-shot commands
operate on the seed dataset; run 'pb serve' for a long-lived instance.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PLANBORD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory holding planbord.yml")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(clientCmd())
	rootCmd.AddCommand(resourceCmd())
	rootCmd.AddCommand(reservationCmd())
	rootCmd.AddCommand(typesCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(unscheduledCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(serveCmd())
}

// withApp bootstraps config, store and seed data for a one-shot command.
func withApp(fn func(a *app.App) error) error {
	a, err := app.Bootstrap(viper.GetString("workspace"))
	if err != nil {
		return err
	}
	return fn(a)
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{Use: "config", Short: "Manage planbord.yml"}
	cfg.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default planbord.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault()), 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	})
	cfg.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadOptional(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	})
	return cfg
}

// strFlag returns a pointer only when the flag was set, so untouched
// fields stay untouched in partial updates.
func strFlag(cmd *cobra.Command, name string, v *string) *string {
	if cmd.Flags().Changed(name) {
		return v
	}
	return nil
}

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Manage projects"}
	prj.AddCommand(projectListCmd())
	prj.AddCommand(projectShowCmd())
	prj.AddCommand(projectAddCmd())
	prj.AddCommand(projectUpdateCmd())
	prj.AddCommand(projectDeleteCmd())
	return prj
}

func projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := a.Store.ListProjects()
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Type", "Status", "Client", "Deadline", "Tasks"})
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.Name, domain.ProjectTypeName(p.Type), p.Status, p.ClientName, p.Deadline, len(p.Tasks)})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func projectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				p, err := a.Store.GetProject(args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(p)
				}
				fmt.Printf("%s  %s (%s, %s)\n", p.ID, p.Name, domain.ProjectTypeName(p.Type), p.Status)
				if p.ClientName != "" {
					fmt.Printf("client: %s  deadline: %s\n", p.ClientName, p.Deadline)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Status", "Start", "End", "Assigned"})
				for _, t := range p.Tasks {
					tw.AppendRow(table.Row{t.ID, t.Title, t.Status, t.StartDate, t.EndDate, strings.Join(t.AssignedTo, ",")})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func projectAddCmd() *cobra.Command {
	var opts engine.ProjectCreateOptions
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project and instantiate its type's templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				p, err := a.Engine.CreateProject(opts)
				if err != nil {
					return err
				}
				return printJSON(p)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "project name")
	cmd.Flags().StringVar(&opts.Type, "type", "", "project type key")
	cmd.Flags().StringVar(&opts.Description, "description", "", "description")
	cmd.Flags().StringVar(&opts.ClientID, "client", "", "client id")
	cmd.Flags().StringVar(&opts.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func projectUpdateCmd() *cobra.Command {
	var name, status, description, clientID, start, end, deadline string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				p, err := a.Engine.UpdateProject(engine.ProjectUpdateOptions{
					ID:          args[0],
					Name:        strFlag(cmd, "name", &name),
					Status:      strFlag(cmd, "status", &status),
					Description: strFlag(cmd, "description", &description),
					ClientID:    strFlag(cmd, "client", &clientID),
					StartDate:   strFlag(cmd, "start", &start),
					EndDate:     strFlag(cmd, "end", &end),
					Deadline:    strFlag(cmd, "deadline", &deadline),
				})
				if err != nil {
					return err
				}
				return printJSON(p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&status, "status", "", "project status")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&clientID, "client", "", "client id")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.Engine.DeleteProject(args[0])
			})
		},
	}
}

func taskCmd() *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage tasks"}
	task.AddCommand(taskListCmd())
	task.AddCommand(taskMoveCmd())
	task.AddCommand(taskAssignCmd())
	task.AddCommand(taskAddCmd())
	task.AddCommand(taskUpdateCmd())
	task.AddCommand(taskDeleteCmd())
	return task
}

func taskListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks across projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := query.AllTasks(a.Store.Snapshot())
				if status != "" {
					var filtered []query.TaskView
					for _, t := range items {
						if t.Status == status {
							filtered = append(filtered, t)
						}
					}
					items = filtered
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Project", "Status", "Start", "End"})
				for _, t := range items {
					tw.AppendRow(table.Row{t.ID, t.Title, t.ProjectName, t.Status, t.StartDate, t.EndDate})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	return cmd
}

func taskMoveCmd() *cobra.Command {
	var projectID, start, end string
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Place a task on the calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				t, err := a.Engine.MoveTask(projectID, args[0], start, end)
				if err != nil {
					return err
				}
				return printJSON(t)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "owning project id")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func taskAssignCmd() *cobra.Command {
	var projectID string
	var users []string
	cmd := &cobra.Command{
		Use:   "assign <task-id>",
		Short: "Replace a task's assignee list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				t, err := a.Engine.AssignTask(projectID, args[0], users)
				if err != nil {
					return err
				}
				return printJSON(t)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "owning project id")
	cmd.Flags().StringSliceVar(&users, "user", nil, "employee id (repeatable, empty clears)")
	return cmd
}

func taskAddCmd() *cobra.Command {
	var opts engine.TaskCreateOptions
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task inside a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				t, err := a.Engine.CreateTask(opts)
				if err != nil {
					return err
				}
				return printJSON(t)
			})
		},
	}
	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "owning project id")
	cmd.Flags().StringVar(&opts.Title, "title", "", "task title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "description")
	cmd.Flags().StringVar(&opts.ResourceType, "resource-type", "", "resource type hint")
	cmd.Flags().StringVar(&opts.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&opts.AssignedTo, "user", nil, "assigned employee id (repeatable)")
	cmd.Flags().StringSliceVar(&opts.DependsOn, "depends-on", nil, "depended-upon task id (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func taskUpdateCmd() *cobra.Command {
	var projectID, title, description, status, start, end string
	var dependsOn []string
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				opts := engine.TaskUpdateOptions{
					ProjectID:   projectID,
					TaskID:      args[0],
					Title:       strFlag(cmd, "title", &title),
					Description: strFlag(cmd, "description", &description),
					Status:      strFlag(cmd, "status", &status),
					StartDate:   strFlag(cmd, "start", &start),
					EndDate:     strFlag(cmd, "end", &end),
				}
				if cmd.Flags().Changed("depends-on") {
					opts.DependsOn = &dependsOn
				}
				t, err := a.Engine.UpdateTask(opts)
				if err != nil {
					return err
				}
				return printJSON(t)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "owning project id")
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&status, "status", "", "task status")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&dependsOn, "depends-on", nil, "depended-upon task id (repeatable, empty clears)")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.Engine.DeleteTask(projectID, args[0])
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "owning project id")
	return cmd
}

func userCmd() *cobra.Command {
	user := &cobra.Command{Use: "user", Short: "Manage employees"}
	var role string
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := query.UsersByRole(a.Store.Snapshot(), role)
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Role", "Email", "Skills"})
				for _, u := range items {
					tw.AppendRow(table.Row{u.ID, u.Name, u.Role, u.Email, strings.Join(u.Skills, ", ")})
				}
				tw.Render()
				return nil
			})
		},
	}
	list.Flags().StringVar(&role, "role", "", "role filter")
	user.AddCommand(list)

	var addOpts engine.UserOptions
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				u, err := a.Engine.CreateUser(addOpts)
				if err != nil {
					return err
				}
				return printJSON(u)
			})
		},
	}
	add.Flags().StringVar(&addOpts.Name, "name", "", "full name")
	add.Flags().StringVar(&addOpts.Email, "email", "", "email address")
	add.Flags().StringVar(&addOpts.Role, "role", "", "role (planner, mechanic, warehouse, admin)")
	add.Flags().StringSliceVar(&addOpts.Skills, "skill", nil, "skill (repeatable)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("role")
	user.AddCommand(add)

	var name, email, updRole string
	var skills []string
	update := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update employee fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				opts := engine.UserUpdateOptions{
					ID:    args[0],
					Name:  strFlag(cmd, "name", &name),
					Email: strFlag(cmd, "email", &email),
					Role:  strFlag(cmd, "role", &updRole),
				}
				if cmd.Flags().Changed("skill") {
					opts.Skills = &skills
				}
				u, err := a.Engine.UpdateUser(opts)
				if err != nil {
					return err
				}
				return printJSON(u)
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&updRole, "role", "", "role")
	update.Flags().StringSliceVar(&skills, "skill", nil, "skill (repeatable, empty clears)")
	user.AddCommand(update)

	user.AddCommand(&cobra.Command{
		Use:   "delete <user-id>",
		Short: "Remove an employee (task assignments keep the id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.Engine.DeleteUser(args[0])
			})
		},
	})

	user.AddCommand(&cobra.Command{
		Use:   "tasks <user-id>",
		Short: "Tasks assigned to an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return printJSON(query.TasksForUser(a.Store.Snapshot(), args[0]))
			})
		},
	})
	return user
}

func clientCmd() *cobra.Command {
	client := &cobra.Command{Use: "client", Short: "Manage clients"}
	client.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := a.Store.ListClients()
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Contact", "Type", "Phone"})
				for _, c := range items {
					tw.AppendRow(table.Row{c.ID, c.Name, c.ContactPerson, c.Type, c.Phone})
				}
				tw.Render()
				return nil
			})
		},
	})
	var addOpts engine.ClientOptions
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.CreateClient(addOpts)
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	add.Flags().StringVar(&addOpts.Name, "name", "", "company name")
	add.Flags().StringVar(&addOpts.ContactPerson, "contact", "", "contact person")
	add.Flags().StringVar(&addOpts.Email, "email", "", "email address")
	add.Flags().StringVar(&addOpts.Phone, "phone", "", "phone number")
	add.Flags().StringVar(&addOpts.Address, "address", "", "address")
	add.Flags().StringVar(&addOpts.Notes, "notes", "", "free-form notes")
	add.Flags().StringVar(&addOpts.Type, "type", "customer", "client type (customer, prospect)")
	_ = add.MarkFlagRequired("name")
	client.AddCommand(add)

	var name, contact, email, phone, address, notes, ctype string
	update := &cobra.Command{
		Use:   "update <client-id>",
		Short: "Update client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.UpdateClient(engine.ClientUpdateOptions{
					ID:            args[0],
					Name:          strFlag(cmd, "name", &name),
					ContactPerson: strFlag(cmd, "contact", &contact),
					Email:         strFlag(cmd, "email", &email),
					Phone:         strFlag(cmd, "phone", &phone),
					Address:       strFlag(cmd, "address", &address),
					Notes:         strFlag(cmd, "notes", &notes),
					Type:          strFlag(cmd, "type", &ctype),
				})
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "company name")
	update.Flags().StringVar(&contact, "contact", "", "contact person")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&phone, "phone", "", "phone number")
	update.Flags().StringVar(&address, "address", "", "address")
	update.Flags().StringVar(&notes, "notes", "", "free-form notes")
	update.Flags().StringVar(&ctype, "type", "", "client type")
	client.AddCommand(update)

	client.AddCommand(&cobra.Command{
		Use:   "delete <client-id>",
		Short: "Remove a client (projects keep the last known name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.Engine.DeleteClient(args[0])
			})
		},
	})

	client.AddCommand(&cobra.Command{
		Use:   "projects <client-id>",
		Short: "Projects for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return printJSON(query.ProjectsForClient(a.Store.Snapshot(), args[0]))
			})
		},
	})
	return client
}

func resourceCmd() *cobra.Command {
	res := &cobra.Command{Use: "resource", Short: "Manage resources"}
	res.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := a.Store.ListResources()
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Type", "Capacity"})
				for _, r := range items {
					tw.AppendRow(table.Row{r.ID, r.Name, domain.ResourceTypeNames[r.Type], r.Capacity})
				}
				tw.Render()
				return nil
			})
		},
	})

	var addOpts engine.ResourceOptions
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				r, err := a.Engine.CreateResource(addOpts)
				if err != nil {
					return err
				}
				return printJSON(r)
			})
		},
	}
	add.Flags().StringVar(&addOpts.Name, "name", "", "resource name")
	add.Flags().StringVar(&addOpts.Type, "type", "", "resource type (paint-booth, workshop, repair-bay, warehouse)")
	add.Flags().IntVar(&addOpts.Capacity, "capacity", 1, "capacity (informational, >= 1)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("type")
	res.AddCommand(add)

	var name, rtype string
	var capacity int
	update := &cobra.Command{
		Use:   "update <resource-id>",
		Short: "Update resource fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				opts := engine.ResourceUpdateOptions{
					ID:   args[0],
					Name: strFlag(cmd, "name", &name),
					Type: strFlag(cmd, "type", &rtype),
				}
				if cmd.Flags().Changed("capacity") {
					opts.Capacity = &capacity
				}
				r, err := a.Engine.UpdateResource(opts)
				if err != nil {
					return err
				}
				return printJSON(r)
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "resource name")
	update.Flags().StringVar(&rtype, "type", "", "resource type")
	update.Flags().IntVar(&capacity, "capacity", 1, "capacity")
	res.AddCommand(update)

	res.AddCommand(&cobra.Command{
		Use:   "delete <resource-id>",
		Short: "Remove a resource (reservations keep the id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.Engine.DeleteResource(args[0])
			})
		},
	})

	res.AddCommand(&cobra.Command{
		Use:   "reservations <resource-id>",
		Short: "Reservations on one resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return printJSON(query.ReservationsForResource(a.Store.Snapshot(), args[0]))
			})
		},
	})
	return res
}

func reservationCmd() *cobra.Command {
	res := &cobra.Command{Use: "reservation", Short: "Manage resource reservations"}
	var date string
	list := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				var items []domain.ResourceReservation
				if date != "" {
					items = query.ReservationsForDate(a.Store.Snapshot(), date)
				} else {
					items = a.Store.ListReservations()
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Resource", "Date", "From", "To", "Task"})
				for _, r := range items {
					tw.AppendRow(table.Row{r.ID, r.ResourceID, r.Date, r.StartTime, r.EndTime, r.TaskID})
				}
				tw.Render()
				return nil
			})
		},
	}
	list.Flags().StringVar(&date, "date", "", "date filter (YYYY-MM-DD)")
	res.AddCommand(list)

	var opts engine.ReservationOptions
	add := &cobra.Command{
		Use:   "add",
		Short: "Reserve a resource for a day and time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				result, err := a.Engine.AddReservation(opts)
				if err != nil {
					return err
				}
				if result.Conflict {
					fmt.Fprintf(os.Stderr, "warning: overlaps %d existing reservation(s) on %s\n", len(result.Overlaps), result.Reservation.Date)
				}
				return printJSON(result)
			})
		},
	}
	add.Flags().StringVar(&opts.ResourceID, "resource", "", "resource id")
	add.Flags().StringVar(&opts.Date, "date", "", "date (YYYY-MM-DD)")
	add.Flags().StringVar(&opts.StartTime, "from", "", "start time (HH:MM)")
	add.Flags().StringVar(&opts.EndTime, "to", "", "end time (HH:MM)")
	add.Flags().StringVar(&opts.TaskID, "task", "", "task id")
	add.Flags().StringVar(&opts.ProjectID, "project", "", "project id")
	_ = add.MarkFlagRequired("resource")
	_ = add.MarkFlagRequired("date")
	_ = add.MarkFlagRequired("from")
	_ = add.MarkFlagRequired("to")
	res.AddCommand(add)

	res.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.Engine.DeleteReservation(args[0])
			})
		},
	})
	return res
}

func typesCmd() *cobra.Command {
	types := &cobra.Command{Use: "types", Short: "Manage project type configs"}
	types.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List project types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				cfgs := a.Store.ListTypeConfigs()
				if viper.GetBool("json") {
					return printJSON(cfgs)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Key", "Name", "Color", "Templates"})
				for _, key := range domain.ProjectTypeKeys {
					if c, ok := cfgs[key]; ok {
						tw.AppendRow(table.Row{c.Key, c.Name, c.Color, len(c.TaskTemplates)})
					}
				}
				tw.Render()
				return nil
			})
		},
	})
	types.AddCommand(&cobra.Command{
		Use:   "show <key>",
		Short: "Show templates of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Store.GetTypeConfig(args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(c)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"#", "Title", "Duration", "Depends on"})
				for i, t := range c.TaskTemplates {
					dur := ""
					if t.Duration != nil {
						dur = fmt.Sprintf("%d %s", t.Duration.Value, t.Duration.Unit)
					}
					tw.AppendRow(table.Row{i, t.Title, dur, fmt.Sprint(t.Dependencies)})
				}
				tw.Render()
				return nil
			})
		},
	})

	var from, to int
	reorder := &cobra.Command{
		Use:   "reorder <key>",
		Short: "Move a template to a new position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.ReorderTemplate(args[0], from, to)
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	reorder.Flags().IntVar(&from, "from", 0, "current position")
	reorder.Flags().IntVar(&to, "to", 0, "target position")
	_ = reorder.MarkFlagRequired("from")
	_ = reorder.MarkFlagRequired("to")
	types.AddCommand(reorder)

	var name, color string
	update := &cobra.Command{
		Use:   "update <key>",
		Short: "Rename or recolor a project type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.UpdateTypeConfig(args[0], strFlag(cmd, "name", &name), strFlag(cmd, "color", &color))
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "display name")
	update.Flags().StringVar(&color, "color", "", "hex color")
	types.AddCommand(update)

	var tmpl domain.TaskTemplate
	var minutes int
	addTmpl := &cobra.Command{
		Use:   "add-template <key>",
		Short: "Append a template to a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				if cmd.Flags().Changed("minutes") {
					tmpl.Duration = &domain.Duration{Value: minutes, Unit: "minutes"}
				}
				c, err := a.Engine.AddTemplate(args[0], tmpl)
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	addTmpl.Flags().StringVar(&tmpl.Title, "title", "", "template title")
	addTmpl.Flags().StringVar(&tmpl.Description, "description", "", "description")
	addTmpl.Flags().StringVar(&tmpl.ResourceType, "resource-type", "", "resource type hint")
	addTmpl.Flags().IntVar(&minutes, "minutes", 0, "default duration in minutes")
	addTmpl.Flags().IntSliceVar(&tmpl.Dependencies, "depends-on", nil, "index of a depended-upon template (repeatable)")
	_ = addTmpl.MarkFlagRequired("title")
	types.AddCommand(addTmpl)

	var index int
	removeTmpl := &cobra.Command{
		Use:   "remove-template <key>",
		Short: "Remove a template; dependents drop the reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.RemoveTemplate(args[0], index)
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	removeTmpl.Flags().IntVar(&index, "index", 0, "template position")
	_ = removeTmpl.MarkFlagRequired("index")
	types.AddCommand(removeTmpl)

	var depIndex, dep int
	addDep := &cobra.Command{
		Use:   "add-dependency <key>",
		Short: "Make one template depend on another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.AddTemplateDependency(args[0], depIndex, dep)
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	addDep.Flags().IntVar(&depIndex, "index", 0, "dependent template position")
	addDep.Flags().IntVar(&dep, "on", 0, "depended-upon template position")
	_ = addDep.MarkFlagRequired("index")
	_ = addDep.MarkFlagRequired("on")
	types.AddCommand(addDep)

	var rmIndex, rmDep int
	removeDep := &cobra.Command{
		Use:   "remove-dependency <key>",
		Short: "Drop a template dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				c, err := a.Engine.RemoveTemplateDependency(args[0], rmIndex, rmDep)
				if err != nil {
					return err
				}
				return printJSON(c)
			})
		},
	}
	removeDep.Flags().IntVar(&rmIndex, "index", 0, "dependent template position")
	removeDep.Flags().IntVar(&rmDep, "on", 0, "depended-upon template position")
	_ = removeDep.MarkFlagRequired("index")
	_ = removeDep.MarkFlagRequired("on")
	types.AddCommand(removeDep)
	return types
}

func seedCmd() *cobra.Command {
	seedRoot := &cobra.Command{Use: "seed", Short: "Manage seed data"}
	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in demo dataset as a YAML seed file",
		Long: `Writes the demo dataset to a file that can be edited and wired up via
the seed.file config key. Dates are rendered relative to today.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(seed.Demo(time.Now()))
			if err != nil {
				return err
			}
			if out == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", out)
			return nil
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	seedRoot.AddCommand(export)
	return seedRoot
}

func calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <date>",
		Short: "Tasks scheduled on a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := query.TasksByDate(a.Store.Snapshot(), args[0])
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Project", "Status", "Start", "End"})
				for _, t := range items {
					tw.AppendRow(table.Row{t.ID, t.Title, t.ProjectName, t.Status, t.StartDate, t.EndDate})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func unscheduledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unscheduled",
		Short: "Tasks still waiting to be planned",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return printJSON(query.UnscheduledTasks(a.Store.Snapshot()))
			})
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search projects, tasks, employees and clients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				items := query.SearchAll(a.Store.Snapshot(), args[0])
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Kind", "ID", "Title", "Extra"})
				for _, r := range items {
					tw.AppendRow(table.Row{r.Kind, r.ID, r.Title, r.Extra})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func logCmd() *cobra.Command {
	log := &cobra.Command{Use: "log", Short: "Command journal"}
	var limit int
	var kind string
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Show recent events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return printJSON(a.Engine.Events.Tail(limit, kind))
			})
		},
	}
	tail.Flags().IntVar(&limit, "limit", 20, "max events (0 = all)")
	tail.Flags().StringVar(&kind, "kind", "", "entity kind filter")
	log.AddCommand(tail)
	return log
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.Config.Server.Listen
			}
			if basePath == "" {
				basePath = a.Config.Server.BasePath
			}
			handler, err := server.New(server.Config{Engine: a.Engine, BasePath: basePath})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving Planbord API on http://%s%s (OpenAPI at %s/openapi.json, Swagger UI at /docs)\n", addr, basePath, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "API base path (defaults to config)")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

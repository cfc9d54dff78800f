// Command fleetdash is the terminal front end for the fleet maintenance
// core: login/logout, ship, component and job management, gated by the same
// policy the repository enforces.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/seaward/fleetdash/internal/config"
	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/notify"
	"github.com/seaward/fleetdash/internal/repository"
	"github.com/seaward/fleetdash/internal/services"
	"github.com/seaward/fleetdash/internal/store"
)

const usage = `Usage: fleetdash <command> [flags]

Commands:
  login         --email --password
  logout
  whoami
  ships         list | add | update | delete
  components    list | add | update | delete
  jobs          list | add | update | delete
  notifications
`

// app wires the store, session service, repository and notification center
// for one CLI invocation.
type app struct {
	store  *store.Store
	auth   *services.AuthService
	repo   *repository.FleetRepository
	center *notify.Center
}

func main() {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	auth, err := services.NewAuthService(st)
	if err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	center := notify.NewCenter()
	repo, err := repository.New(st, center)
	if err != nil {
		log.Fatalf("Failed to load fleet data: %v", err)
	}

	a := &app{store: st, auth: auth, repo: repo, center: center}

	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, n := range center.Active() {
		fmt.Printf("[%s] %s\n", n.Kind, n.Message)
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "login":
		return a.login(args)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "ships":
		return a.ships(args)
	case "components":
		return a.components(args)
	case "jobs":
		return a.jobs(args)
	case "notifications":
		// Notifications live for the process only; with a fresh process per
		// invocation there is nothing retained to show.
		fmt.Println("No active notifications.")
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Login(*email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

func (a *app) logout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami() error {
	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Email, user.Role)
	return nil
}

// requireUser returns the current user or an error for unauthenticated
// invocations. Read commands need it too: reads require login, even though
// they are role-independent.
func (a *app) requireUser() (*models.User, error) {
	user := a.auth.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("not logged in; run fleetdash login first")
	}
	return user, nil
}

func (a *app) ships(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		if _, err := a.requireUser(); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tIMO\tFLAG\tSTATUS")
		for _, s := range a.repo.Ships() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.IMO, s.Flag, s.Status)
		}
		return w.Flush()

	case "add":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("ships add", pflag.ContinueOnError)
		name := flags.String("name", "", "ship name")
		imo := flags.String("imo", "", "7-digit IMO number")
		flag := flags.String("flag", "", "flag state")
		status := flags.String("status", string(models.ShipStatusActive), "Active | Under Maintenance | Inactive")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		ship, err := a.repo.AddShip(user, repository.CreateShipInput{
			Name:   *name,
			IMO:    *imo,
			Flag:   *flag,
			Status: models.ShipStatus(*status),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created ship %s\n", ship.ID)
		return nil

	case "update":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("ships update", pflag.ContinueOnError)
		id := flags.String("id", "", "ship id")
		name := flags.String("name", "", "ship name")
		imo := flags.String("imo", "", "7-digit IMO number")
		flag := flags.String("flag", "", "flag state")
		status := flags.String("status", "", "Active | Under Maintenance | Inactive")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		ship, err := a.repo.ShipByID(*id)
		if err != nil {
			return err
		}
		updated := *ship
		if flags.Changed("name") {
			updated.Name = *name
		}
		if flags.Changed("imo") {
			updated.IMO = *imo
		}
		if flags.Changed("flag") {
			updated.Flag = *flag
		}
		if flags.Changed("status") {
			updated.Status = models.ShipStatus(*status)
		}
		_, err = a.repo.UpdateShip(user, updated)
		return err

	case "delete":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("ships delete", pflag.ContinueOnError)
		id := flags.String("id", "", "ship id")
		yes := flags.Bool("yes", false, "skip the confirmation prompt")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if !*yes && !confirm("Delete this ship and all its components and jobs?") {
			fmt.Println("Aborted.")
			return nil
		}
		return a.repo.DeleteShip(user, *id)

	default:
		return fmt.Errorf("unknown ships subcommand %q", sub)
	}
}

func (a *app) components(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		if _, err := a.requireUser(); err != nil {
			return err
		}
		flags := pflag.NewFlagSet("components list", pflag.ContinueOnError)
		shipID := flags.String("ship", "", "only components on this ship")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		components := a.repo.Components()
		if *shipID != "" {
			components = a.repo.ComponentsByShip(*shipID)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSHIP\tNAME\tSERIAL\tINSTALLED\tLAST MAINTENANCE")
		for _, c := range components {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.ShipID, c.Name, c.SerialNumber, c.InstallDate, c.LastMaintenanceDate)
		}
		return w.Flush()

	case "add":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("components add", pflag.ContinueOnError)
		shipID := flags.String("ship", "", "owning ship id")
		name := flags.String("name", "", "component name")
		serial := flags.String("serial", "", "serial number")
		installed := flags.String("installed", "", "install date (YYYY-MM-DD)")
		lastMaint := flags.String("last-maintenance", "", "last maintenance date (YYYY-MM-DD)")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		component, err := a.repo.AddComponent(user, repository.CreateComponentInput{
			ShipID:              *shipID,
			Name:                *name,
			SerialNumber:        *serial,
			InstallDate:         *installed,
			LastMaintenanceDate: *lastMaint,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created component %s\n", component.ID)
		return nil

	case "update":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("components update", pflag.ContinueOnError)
		id := flags.String("id", "", "component id")
		name := flags.String("name", "", "component name")
		serial := flags.String("serial", "", "serial number")
		installed := flags.String("installed", "", "install date (YYYY-MM-DD)")
		lastMaint := flags.String("last-maintenance", "", "last maintenance date (YYYY-MM-DD)")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		component, err := a.repo.ComponentByID(*id)
		if err != nil {
			return err
		}
		updated := *component
		if flags.Changed("name") {
			updated.Name = *name
		}
		if flags.Changed("serial") {
			updated.SerialNumber = *serial
		}
		if flags.Changed("installed") {
			updated.InstallDate = *installed
		}
		if flags.Changed("last-maintenance") {
			updated.LastMaintenanceDate = *lastMaint
		}
		_, err = a.repo.UpdateComponent(user, updated)
		return err

	case "delete":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("components delete", pflag.ContinueOnError)
		id := flags.String("id", "", "component id")
		yes := flags.Bool("yes", false, "skip the confirmation prompt")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if !*yes && !confirm("Delete this component and its associated jobs?") {
			fmt.Println("Aborted.")
			return nil
		}
		return a.repo.DeleteComponent(user, *id)

	default:
		return fmt.Errorf("unknown components subcommand %q", sub)
	}
}

func (a *app) jobs(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		if _, err := a.requireUser(); err != nil {
			return err
		}
		flags := pflag.NewFlagSet("jobs list", pflag.ContinueOnError)
		shipID := flags.String("ship", "", "only jobs on this ship")
		componentID := flags.String("component", "", "only jobs on this component")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		jobs := a.repo.Jobs()
		if *componentID != "" {
			jobs = a.repo.JobsByComponent(*componentID)
		} else if *shipID != "" {
			jobs = a.repo.JobsByShip(*shipID)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSHIP\tCOMPONENT\tTYPE\tPRIORITY\tSTATUS\tENGINEER\tSCHEDULED\tDESCRIPTION")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				j.ID, j.ShipID, j.ComponentID, j.Type, j.Priority, j.Status,
				j.AssignedEngineerID, j.ScheduledDate, j.Description)
		}
		return w.Flush()

	case "add":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("jobs add", pflag.ContinueOnError)
		shipID := flags.String("ship", "", "ship id")
		componentID := flags.String("component", "", "component id")
		jobType := flags.String("type", "", "Inspection | Repair | Replacement | Scheduled Maintenance | Upgrade")
		priority := flags.String("priority", string(models.JobPriorityMedium), "High | Medium | Low")
		assignee := flags.String("engineer", "", "assigned engineer id (admins only)")
		scheduled := flags.String("scheduled", "", "scheduled date (YYYY-MM-DD)")
		description := flags.String("description", "", "work description")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		job, err := a.repo.AddJob(user, repository.CreateJobInput{
			ComponentID:        *componentID,
			ShipID:             *shipID,
			Type:               models.JobType(*jobType),
			Priority:           models.JobPriority(*priority),
			AssignedEngineerID: *assignee,
			ScheduledDate:      *scheduled,
			Description:        *description,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created job %s\n", job.ID)
		return nil

	case "update":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("jobs update", pflag.ContinueOnError)
		id := flags.String("id", "", "job id")
		status := flags.String("status", "", "Open | In Progress | Completed | Cancelled")
		priority := flags.String("priority", "", "High | Medium | Low")
		assignee := flags.String("engineer", "", "assigned engineer id (admins only)")
		scheduled := flags.String("scheduled", "", "scheduled date (YYYY-MM-DD)")
		description := flags.String("description", "", "work description")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		job, err := a.repo.JobByID(*id)
		if err != nil {
			return err
		}
		updated := *job
		if flags.Changed("status") {
			updated.Status = models.JobStatus(*status)
		}
		if flags.Changed("priority") {
			updated.Priority = models.JobPriority(*priority)
		}
		if flags.Changed("engineer") {
			updated.AssignedEngineerID = *assignee
		}
		if flags.Changed("scheduled") {
			updated.ScheduledDate = *scheduled
		}
		if flags.Changed("description") {
			updated.Description = *description
		}
		_, err = a.repo.UpdateJob(user, updated)
		return err

	case "delete":
		user, err := a.requireUser()
		if err != nil {
			return err
		}
		flags := pflag.NewFlagSet("jobs delete", pflag.ContinueOnError)
		id := flags.String("id", "", "job id")
		yes := flags.Bool("yes", false, "skip the confirmation prompt")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if !*yes && !confirm("Delete this job?") {
			fmt.Println("Aborted.")
			return nil
		}
		return a.repo.DeleteJob(user, *id)

	default:
		return fmt.Errorf("unknown jobs subcommand %q", sub)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/internal/booking"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/internal/console"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/internal/session"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/api"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/config"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/logger"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/monitoring"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/rbac"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// app bundles the wired components behind every command
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	client  *api.Client
	session *session.Manager
	toast   *console.Toast
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	log := logger.New(cfg.LogLevel)

	if cfg.Tracing.Enabled {
		shutdown, err := monitoring.SetupTracing(cfg.Tracing.ServiceName,
			cfg.Tracing.JaegerEndpoint, cfg.Tracing.SamplingRate)
		if err != nil {
			log.WithError(err).Warn("Tracing disabled")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Warn("Failed to flush traces")
				}
			}()
		}
	}

	store := session.NewFileStore(cfg.Session.TokenFile)
	manager := session.NewManager(store, log)
	client := api.NewClient(&cfg.API, manager, log)
	manager.AttachClient(client)

	a := &app{
		cfg:     cfg,
		logger:  log,
		client:  client,
		session: manager,
		toast:   console.NewToast(),
	}

	root := a.rootCommand()
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	var metricsAddr string
	root := &cobra.Command{
		Use:           "hms-console",
		Short:         "Administrative console for the hospital management system",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if metricsAddr != "" {
				go a.serveMetrics(metricsAddr)
			}
			// Restore the session before any screen renders.
			return a.session.Initialize(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "",
		"serve prometheus metrics on this address (e.g. :9464)")

	root.AddCommand(
		a.loginCommand(),
		a.registerCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.navCommand(),
		a.patientsCommand(),
		a.doctorsCommand(),
		a.appointmentsCommand(),
		a.billsCommand(),
		a.inventoryCommand(),
		a.reportsCommand(),
	)
	return root
}

// serveMetrics exposes the collected metrics for scraping while the
// console runs
func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		a.logger.WithError(err).Warn("Metrics endpoint stopped")
	}
}

// requireScreen maps the route guard's decision onto command errors,
// the console analog of the redirect.
func (a *app) requireScreen(screen rbac.Screen) error {
	switch a.session.GuardScreen(screen) {
	case session.DecisionAllow:
		return nil
	case session.DecisionRedirectLogin:
		return fmt.Errorf("not logged in, run `hms-console login` first")
	case session.DecisionRedirectHome:
		return fmt.Errorf("your role is not allowed to open the %s screen", screen)
	default:
		return fmt.Errorf("session is still initializing")
	}
}

func (a *app) loginCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword()
			if err != nil {
				return err
			}
			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Login failed. Please try again."))
				return err
			}
			a.toast.Success("Login successful")
			fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) registerCommand() *cobra.Command {
	var req types.RegistrationRequest
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword()
			if err != nil {
				return err
			}
			req.Password = password
			req.Role = types.RoleTag(role)
			if !rbac.Valid(req.Role) {
				return fmt.Errorf("unknown role %q", role)
			}
			user, err := a.session.Register(cmd.Context(), req)
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Registration failed"))
				return err
			}
			a.toast.Success("Registration successful")
			fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&role, "role", string(types.RolePatient), "account role")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credential",
		Run: func(cmd *cobra.Command, args []string) {
			a.session.Logout()
			fmt.Println("Logged out")
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.IsAuthenticated() {
				return fmt.Errorf("not logged in")
			}
			user := a.session.Identity()
			fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func (a *app) navCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List the screens your role may open",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.IsAuthenticated() {
				return fmt.Errorf("not logged in")
			}
			for _, screen := range console.Navigation(a.session.Identity()) {
				fmt.Println(screen)
			}
			return nil
		},
	}
}

func (a *app) patientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Patient directory",
	}
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenPatients); err != nil {
				return err
			}
			patients, err := a.client.ListPatients(cmd.Context(), types.DirectoryQuery{
				Search: search,
				Limit:  a.cfg.Directory.PatientPageSize,
			})
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to fetch patients"))
				return err
			}
			for _, p := range patients {
				fmt.Printf("%s\t%s\t%s\n", p.ID, p.Name, p.Phone)
			}
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "name filter")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) doctorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Doctor directory",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List active doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenDoctors); err != nil {
				return err
			}
			active := true
			doctors, err := a.client.ListDoctors(cmd.Context(), types.DirectoryQuery{
				IsActive: &active,
				Limit:    a.cfg.Directory.DoctorPageSize,
			})
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to fetch doctors"))
				return err
			}
			for _, d := range doctors {
				fmt.Printf("%s\tDr. %s - %s\n", d.ID, d.Name, d.Specialization)
			}
			return nil
		},
	}

	var date string
	slots := &cobra.Command{
		Use:   "slots <doctor-id>",
		Short: "Show a doctor's published availability for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenDoctors); err != nil {
				return err
			}
			fetched, err := a.client.AvailableSlots(cmd.Context(), args[0], date)
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to fetch slots"))
				return err
			}
			if len(fetched) == 0 {
				fmt.Println("No published schedule for this date; any time may be entered when booking")
				return nil
			}
			for _, s := range fetched {
				fmt.Printf("%s - %s\n", s.Start, s.End)
			}
			return nil
		},
	}
	slots.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	_ = slots.MarkFlagRequired("date")

	cmd.AddCommand(list, slots)
	return cmd
}

func (a *app) appointmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Appointment list and booking",
	}
	cmd.AddCommand(
		a.appointmentsListCommand(),
		a.appointmentsBookCommand(),
		a.appointmentsStatusCommand("confirm", types.StatusConfirmed, rbac.ActionConfirmAppointment),
		a.appointmentsStatusCommand("complete", types.StatusCompleted, rbac.ActionCompleteAppointment),
		a.appointmentsStatusCommand("cancel", types.StatusCancelled, rbac.ActionCancelAppointment),
		a.appointmentsDeleteCommand(),
	)
	return cmd
}

func (a *app) appointmentsListCommand() *cobra.Command {
	var status, date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenAppointments); err != nil {
				return err
			}
			filters := console.ListFilters(a.session.Identity())
			filters.Status = types.AppointmentStatus(status)
			filters.Date = date
			appointments, err := a.client.ListAppointments(cmd.Context(), filters)
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to fetch appointments"))
				return err
			}
			identity := a.session.Identity()
			for i := range appointments {
				apt := &appointments[i]
				patient, doctor := "?", "?"
				if apt.Patient != nil {
					patient = apt.Patient.Name
				}
				if apt.Doctor != nil {
					doctor = apt.Doctor.Name
				}
				actions := console.AppointmentActions(identity, apt)
				fmt.Printf("%s\t%s %s-%s\t%s with Dr. %s\t[%s]\t%s\n",
					apt.ID, apt.Date, apt.TimeSlot.Start, apt.TimeSlot.End,
					patient, doctor, apt.Status, formatActions(actions))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	cmd.Flags().StringVar(&date, "date", "", "date filter (YYYY-MM-DD)")
	return cmd
}

func (a *app) appointmentsBookCommand() *cobra.Command {
	var (
		editID   string
		patient  string
		doctor   string
		date     string
		start    string
		end      string
		aptType  string
		reason   string
		symptoms string
		notes    string
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book or edit an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenAppointments); err != nil {
				return err
			}
			identity := a.session.Identity()
			if editID == "" && !console.CanBookAppointment(identity) {
				return fmt.Errorf("your role may not book appointments from this console")
			}
			if editID != "" && !rbac.Allowed(identity.Role, rbac.ActionEditAppointment) {
				return fmt.Errorf("your role may not edit appointments")
			}

			ctx := cmd.Context()
			workflow := booking.NewWorkflow(a.client, a.logger, a.toast, a.cfg.Directory, nil)

			if editID != "" {
				apt, err := a.client.GetAppointment(ctx, editID)
				if err != nil {
					a.toast.Error(types.UserMessage(err, "Failed to load appointment"))
					return err
				}
				workflow.OpenForEdit(ctx, apt)
			} else {
				workflow.Open(ctx)
			}

			if patient != "" {
				workflow.SetPatient(patient)
			}
			if doctor != "" && workflow.SetDoctor(doctor) {
				workflow.ResolveAvailability(ctx)
			}
			if date != "" && workflow.SetDate(date) {
				workflow.ResolveAvailability(ctx)
			}
			if aptType != "" {
				workflow.SetType(types.AppointmentType(aptType))
			}
			if reason != "" {
				workflow.SetReason(reason)
			}
			if symptoms != "" {
				workflow.SetSymptoms(symptoms)
			}
			if notes != "" {
				workflow.SetNotes(notes)
			}

			if start != "" || end != "" {
				if err := workflow.SelectSlot(start, end); err != nil {
					return err
				}
			}

			fieldErrs, err := workflow.Submit(ctx)
			if len(fieldErrs) > 0 {
				for field, msg := range fieldErrs {
					fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
				}
				return fmt.Errorf("appointment not submitted")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&editID, "edit", "", "appointment ID to edit instead of booking new")
	cmd.Flags().StringVar(&patient, "patient", "", "patient ID")
	cmd.Flags().StringVar(&doctor, "doctor", "", "doctor ID")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&aptType, "type", string(types.TypeConsultation), "appointment type")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for the visit")
	cmd.Flags().StringVar(&symptoms, "symptoms", "", "comma-separated symptoms")
	cmd.Flags().StringVar(&notes, "notes", "", "additional notes")
	return cmd
}

func (a *app) appointmentsStatusCommand(verb string, to types.AppointmentStatus, action rbac.Action) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <appointment-id>",
		Short: fmt.Sprintf("Mark an appointment %s", strings.ToLower(string(to))),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenAppointments); err != nil {
				return err
			}
			identity := a.session.Identity()
			if !rbac.Allowed(identity.Role, action) {
				return fmt.Errorf("your role may not %s appointments", verb)
			}
			apt, err := a.client.GetAppointment(cmd.Context(), args[0])
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to load appointment"))
				return err
			}
			return booking.TransitionStatus(cmd.Context(), a.client, a.toast, apt, to, nil)
		},
	}
}

func (a *app) appointmentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <appointment-id>",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenAppointments); err != nil {
				return err
			}
			if !rbac.Allowed(a.session.Identity().Role, rbac.ActionDeleteAppointment) {
				return fmt.Errorf("your role may not delete appointments")
			}
			if err := a.client.DeleteAppointment(cmd.Context(), args[0]); err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to delete appointment"))
				return err
			}
			a.toast.Success("Appointment deleted successfully")
			return nil
		},
	}
}

func (a *app) billsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Billing",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenBilling); err != nil {
				return err
			}
			bills, err := a.client.ListBills(cmd.Context(), "", "", 0, 0)
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to fetch bills"))
				return err
			}
			for _, b := range bills {
				patient := "?"
				if b.Patient != nil {
					patient = b.Patient.Name
				}
				fmt.Printf("%s\t%s\t%.2f paid %.2f\t[%s]\n", b.ID, patient, b.Total, b.AmountPaid, b.Status)
			}
			return nil
		},
	}
	cmd.AddCommand(list)
	return cmd
}

func (a *app) inventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenInventory); err != nil {
				return err
			}
			items, err := a.client.ListInventory(cmd.Context(), "", 0, 0)
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to fetch inventory"))
				return err
			}
			for _, item := range items {
				low := ""
				if item.Quantity <= item.ReorderLevel {
					low = "\tLOW STOCK"
				}
				fmt.Printf("%s\t%s\t%d %s%s\n", item.ID, item.Name, item.Quantity, item.Unit, low)
			}
			return nil
		},
	}

	var quantity int
	restock := &cobra.Command{
		Use:   "restock <item-id>",
		Short: "Add stock to an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenInventory); err != nil {
				return err
			}
			if !rbac.Allowed(a.session.Identity().Role, rbac.ActionRestockItem) {
				return fmt.Errorf("your role may not restock inventory")
			}
			item, err := a.client.RestockInventoryItem(cmd.Context(), args[0], types.RestockRequest{Quantity: quantity})
			if err != nil {
				a.toast.Error(types.UserMessage(err, "Failed to restock item"))
				return err
			}
			a.toast.Success(fmt.Sprintf("%s restocked to %d %s", item.Name, item.Quantity, item.Unit))
			return nil
		},
	}
	restock.Flags().IntVar(&quantity, "quantity", 0, "quantity to add")
	_ = restock.MarkFlagRequired("quantity")

	cmd.AddCommand(list, restock)
	return cmd
}

func (a *app) reportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "Dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireScreen(rbac.ScreenReports); err != nil {
				return err
			}
			ctx := cmd.Context()

			// One typed call per statistic; nothing is inferred from
			// response shape.
			if stats, err := a.client.PatientStats(ctx); err == nil {
				fmt.Printf("Patients: %d total, %d admitted\n", stats.TotalPatients, stats.AdmittedPatients)
			}
			if stats, err := a.client.DoctorStats(ctx); err == nil {
				fmt.Printf("Doctors: %d total, %d active\n", stats.TotalDoctors, stats.ActiveDoctors)
			}
			if stats, err := a.client.AppointmentStats(ctx); err == nil {
				fmt.Printf("Appointments: %d today, %d pending\n", stats.TodaysAppointments, stats.PendingAppointments)
			}
			if stats, err := a.client.BillingStats(ctx); err == nil {
				fmt.Printf("Revenue: %.2f total, %.2f pending\n", stats.TotalRevenue, stats.PendingAmount)
			}
			if stats, err := a.client.InventoryStats(ctx); err == nil {
				fmt.Printf("Inventory: %d items, %d low on stock\n", stats.TotalItems, stats.LowStockItems)
			}
			return nil
		},
	}
}

func formatActions(actions []rbac.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	parts := make([]string, len(actions))
	for i, action := range actions {
		parts[i] = string(action)
	}
	return strings.Join(parts, ",")
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

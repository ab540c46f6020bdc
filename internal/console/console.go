// Package console is the terminal front end: a tab per table, line commands
// instead of clicks, the session carried between runs.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/config"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/logging"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/reports"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/session"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/store"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/views"

	"github.com/rs/zerolog"
)

// backendClient is everything the console asks of the API client.
type backendClient interface {
	views.BookingsAPI
	views.ServicesAPI
	views.UsersAPI
	views.ServiceTypesAPI
	views.BookingTimesAPI
	views.BonusesAPI
	views.ExpensesAPI
	views.LogsAPI
	views.AdvancesAPI

	Login(ctx context.Context, input api.LoginInput) (*api.LoginResult, error)
	Logout(ctx context.Context) error
	SelfInfo(ctx context.Context) (*models.User, error)
	SearchDoctors(ctx context.Context, term string) ([]models.User, error)
	SearchServiceTypes(ctx context.Context, term string) ([]models.ServiceType, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	BookingHoursForDate(ctx context.Context, date time.Time) ([]models.BookingTime, error)
}

// catalogReader serves the locally cached lookup lists.
type catalogReader interface {
	Catalog(ctx context.Context, kind string) ([]models.CatalogEntry, error)
}

type Console struct {
	cfg     *config.Config
	client  backendClient
	session *session.Manager
	reports *reports.Manager
	catalog catalogReader
	bus     *events.EventBus
	log     zerolog.Logger

	in  io.Reader
	out io.Writer

	tabs    []*Tab
	current *Tab

	// set when an unauthorized response clears the session mid-loop
	expired chan struct{}
}

func New(cfg *config.Config, client backendClient, sess *session.Manager, rep *reports.Manager, catalog catalogReader, bus *events.EventBus, logger *zerolog.Logger, in io.Reader, out io.Writer) *Console {
	c := &Console{
		cfg:     cfg,
		client:  client,
		session: sess,
		reports: rep,
		catalog: catalog,
		bus:     bus,
		in:      in,
		out:     out,
		expired: make(chan struct{}, 1),
	}
	c.log = logging.Component(logger, "console")
	if bus != nil {
		bus.Subscribe(events.EventSessionExpired, func(*events.Event) error {
			select {
			case c.expired <- struct{}{}:
			default:
			}
			return nil
		})
	}
	return c
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Run is the main loop. It returns when stdin closes, on "quit", or when ctx
// is cancelled.
func (c *Console) Run(ctx context.Context) error {
	if c.session.Authorized() {
		c.refreshSelf(ctx)
	}
	if c.session.Authorized() {
		c.buildTabs()
		c.printf("Welcome back, %s\n", c.session.User().FullName())
	} else {
		c.printf("Not signed in. Use: login <email> <password>\n")
	}

	scanner := bufio.NewScanner(c.in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.expired:
			c.tabs = nil
			c.current = nil
			c.printf("Session expired, sign in again.\n")
		default:
		}

		c.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := c.dispatch(ctx, line); err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				continue // the expired channel handles the message
			}
			c.printf("error: %v\n", err)
		}
	}
}

func (c *Console) prompt() {
	name := "-"
	if c.current != nil {
		name = c.current.Name
	}
	c.printf("[%s] > ", name)
}

func (c *Console) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		c.printHelp()
		return nil
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.logout(ctx)
	}

	if !c.session.Authorized() {
		return errors.New("sign in first")
	}

	switch cmd {
	case "tabs":
		for _, t := range c.tabs {
			c.printf("  %s\t%s\n", t.Name, t.Title)
		}
		return nil
	case "open":
		if len(args) != 1 {
			return errors.New("usage: open <tab>")
		}
		return c.openTab(ctx, args[0])
	case "refresh":
		if c.current == nil {
			return errors.New("no tab open")
		}
		return c.current.Refresh(ctx)
	case "page":
		if c.current == nil {
			return errors.New("no tab open")
		}
		if len(args) != 1 {
			return errors.New("usage: page <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errors.New("page must be a positive number")
		}
		if err := c.current.Page(ctx, n-1); err != nil {
			return err
		}
		return c.render(ctx)
	case "doctors":
		return c.printCatalog(ctx, store.CatalogDoctors)
	case "pricelist":
		return c.printCatalog(ctx, store.CatalogServiceTypes)
	case "export":
		return c.export(ctx, args)
	case "history":
		return c.history(ctx)
	case "preview":
		if len(args) != 1 {
			return errors.New("usage: preview <file>")
		}
		return c.preview(args[0])
	}

	if c.current == nil {
		return fmt.Errorf("unknown command: %s", cmd)
	}
	handled, err := c.current.Command(ctx, cmd, args)
	if err != nil {
		return err
	}
	if !handled {
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return c.render(ctx)
}

func (c *Console) openTab(ctx context.Context, name string) error {
	for _, t := range c.tabs {
		if t.Name == name {
			c.current = t
			if err := t.Refresh(ctx); err != nil {
				return err
			}
			return c.render(ctx)
		}
	}
	return fmt.Errorf("no such tab: %s", name)
}

func (c *Console) render(ctx context.Context) error {
	if c.current == nil {
		return nil
	}
	c.printf("%s", c.current.Render(ctx))
	return nil
}

func (c *Console) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}

	result, err := c.client.Login(ctx, api.LoginInput{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if err := c.session.Establish(ctx, result.Token, result.User); err != nil {
		return err
	}

	c.buildTabs()
	c.printf("Signed in as %s (%s)\n", result.User.FullName(), roleOf(result.User))
	return nil
}

func roleOf(u *models.User) string {
	if u == nil || u.Role == nil {
		return "unknown"
	}
	return u.Role.Name
}

// refreshSelf re-fetches the self snapshot for a restored token so the tab
// set reflects the role's current permissions. An unauthorized answer has
// already cleared the session through the client hook; any other failure
// keeps the stored snapshot.
func (c *Console) refreshSelf(ctx context.Context) {
	user, err := c.client.SelfInfo(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			// consume the expiry notification so the loop starts at login
			select {
			case <-c.expired:
			default:
			}
			return
		}
		c.log.Warn().Err(err).Msg("self info refresh failed")
		return
	}
	if err := c.session.RefreshUser(ctx, user); err != nil {
		c.log.Warn().Err(err).Msg("persist refreshed session")
	}
}

func (c *Console) logout(ctx context.Context) error {
	if !c.session.Authorized() {
		return nil
	}
	if err := c.client.Logout(ctx); err != nil {
		c.log.Warn().Err(err).Msg("server logout failed")
	}
	c.session.Clear(ctx)
	c.tabs = nil
	c.current = nil
	// consume the expiry notification Clear just produced
	select {
	case <-c.expired:
	default:
	}
	c.printf("Signed out.\n")
	return nil
}

func (c *Console) export(ctx context.Context, args []string) error {
	if c.reports == nil {
		return errors.New("exports are not configured")
	}
	if !c.reports.CanExport() {
		return errors.New("no export permission")
	}
	if len(args) == 0 {
		return errors.New("usage: export daily|general|bonus|services [dates]")
	}

	var path string
	switch args[0] {
	case "daily":
		date := time.Now()
		if len(args) > 1 {
			var err error
			if date, err = parseDate(args[1]); err != nil {
				return err
			}
		}
		path = c.reports.Daily(ctx, date)
	case "general", "bonus":
		from, to, err := parseRange(args[1:])
		if err != nil {
			return err
		}
		if args[0] == "general" {
			path = c.reports.General(ctx, from, to)
		} else {
			path = c.reports.Bonus(ctx, from, to)
		}
	case "services":
		filter := api.ServiceFilter{From: time.Now(), To: time.Now()}
		if tab := c.findTab("services"); tab != nil {
			if sv, ok := tab.view.(*views.ServicesView); ok {
				filter = sv.Filter()
			}
		}
		path = c.reports.Services(ctx, filter)
	default:
		return fmt.Errorf("unknown report kind: %s", args[0])
	}

	if path == "" {
		c.printf("Export did not complete; see the log.\n")
		return nil
	}
	c.printf("Saved %s\n", path)
	return nil
}

func (c *Console) history(ctx context.Context) error {
	if c.reports == nil {
		return errors.New("exports are not configured")
	}
	records := c.reports.History(ctx, 10)
	if len(records) == 0 {
		c.printf("No exports yet.\n")
		return nil
	}
	for _, r := range records {
		c.printf("  %s\t%s\t%s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Kind, r.FilePath)
	}
	return nil
}

func (c *Console) preview(path string) error {
	p, err := reports.OpenPreview(path)
	if err != nil {
		return err
	}
	c.printf("%s: %d rows\n", p.Sheet, p.Total)
	c.printf("%s\n", strings.Join(p.Headers, " | "))
	for _, row := range p.Rows {
		c.printf("%s\n", strings.Join(row, " | "))
	}
	return nil
}

func (c *Console) printCatalog(ctx context.Context, kind string) error {
	if c.catalog == nil {
		return errors.New("catalog is not configured")
	}
	entries, err := c.catalog.Catalog(ctx, kind)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		c.printf("Catalog is empty.\n")
		return nil
	}
	for _, e := range entries {
		c.printf("  %d\t%s\n", e.RefID, e.Name)
	}
	return nil
}

func (c *Console) findTab(name string) *Tab {
	for _, t := range c.tabs {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %s", s)
	}
	return t, nil
}

func parseRange(args []string) (from, to time.Time, err error) {
	if len(args) != 2 {
		return from, to, errors.New("need <from> <to> dates")
	}
	if from, err = parseDate(args[0]); err != nil {
		return
	}
	to, err = parseDate(args[1])
	return
}

func (c *Console) printHelp() {
	c.printf(`Commands:
  login <email> <password>   sign in
  logout                     sign out
  tabs                       list tabs your role can open
  open <tab>                 switch to a tab and load it
  refresh                    reload the current tab
  page <n>                   go to page n
  doctors | pricelist        list cached lookup catalogs
  export <kind> [dates]      download a report (daily, general, bonus, services)
  history                    recent downloads
  preview <file>             show a downloaded workbook
  quit                       leave
Tab commands (where applicable):
  dates <from> <to>          set the date range
  name <text>                filter by client name
  phone <text>               filter by phone
  status <value>             filter by status
  doctor <id>                filter by doctor
  type <id>                  filter billing by service type
  roles                      list assignable roles
  setrole <id> <role-id>     change a staff member's role
  add ...                    create a row (see the tab's usage message)
  delete <id>                delete a row
  setstatus <id> <status>    change a booking's status
  move <id> <date> <slot>    move a booking to another slot
  reject <id> <comment>      reject a billing row with a comment
  coef <value>               set the bonus coefficient
`)
}

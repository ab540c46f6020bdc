package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/forms"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/permissions"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/views"
)

// Tab is one table of the console. A tab the session's role cannot see is
// never registered at all.
type Tab struct {
	Name  string
	Title string

	view    any
	refresh func(ctx context.Context) error
	page    func(ctx context.Context, uiPage int) error
	command func(ctx context.Context, cmd string, args []string) (bool, error)
	render  func(ctx context.Context) string
}

func (t *Tab) Refresh(ctx context.Context) error { return t.refresh(ctx) }

func (t *Tab) Page(ctx context.Context, uiPage int) error {
	if t.page == nil {
		return errors.New("this tab is not paginated")
	}
	return t.page(ctx, uiPage)
}

func (t *Tab) Command(ctx context.Context, cmd string, args []string) (bool, error) {
	if t.command == nil {
		return false, nil
	}
	return t.command(ctx, cmd, args)
}

func (t *Tab) Render(ctx context.Context) string { return t.render(ctx) }

// buildTabs registers every tab the current session may open.
func (c *Console) buildTabs() {
	perms := c.session.Permissions()
	logger := &c.log
	debounce := c.cfg.Console.Debounce()
	c.tabs = nil
	c.current = nil

	if permissions.Has(perms, permissions.PermBookingView) {
		v := views.NewBookingsView(c.client, perms, c.bus, logger, debounce)
		c.tabs = append(c.tabs, c.bookingsTab(v))
	}

	// The billing table is the home tab; everyone signed in sees it.
	sv := views.NewServicesView(c.client, perms, c.bus, logger, debounce)
	c.tabs = append(c.tabs, c.servicesTab(sv))

	if permissions.Has(perms, permissions.PermUserView) {
		v := views.NewUsersView(c.client, perms, c.bus, logger)
		c.tabs = append(c.tabs, c.usersTab(v))
	}
	if permissions.Has(perms, permissions.PermServiceTypeView) {
		v := views.NewServiceTypesView(c.client, logger)
		c.tabs = append(c.tabs, c.serviceTypesTab(v))
	}
	if permissions.Has(perms, permissions.PermBookingView) {
		v := views.NewBookingTimesView(c.client, logger)
		c.tabs = append(c.tabs, c.bookingTimesTab(v))
	}
	if permissions.Has(perms, permissions.PermBonusView) {
		v := views.NewBonusesView(c.client, perms, c.bus, logger)
		c.tabs = append(c.tabs, c.bonusesTab(v))
	}
	if permissions.Has(perms, permissions.PermExpenseView) {
		v := views.NewExpensesView(c.client, c.bus, logger)
		c.tabs = append(c.tabs, c.expensesTab(v))
	}
	if permissions.Has(perms, permissions.PermLogView) {
		v := views.NewLogsView(c.client, logger)
		c.tabs = append(c.tabs, c.logsTab(v))
	}
	if permissions.Has(perms, permissions.PermAdvanceView) {
		v := views.NewAdvancesView(c.client, logger)
		c.tabs = append(c.tabs, c.advancesTab(v))
	}
}

func table(write func(w *tabwriter.Writer)) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 2, 4, 2, ' ', 0)
	write(w)
	w.Flush()
	return sb.String()
}

func pageLine(meta *models.Meta, page int) string {
	if meta == nil {
		return ""
	}
	return fmt.Sprintf("page %d of %d, %d total\n", page, max(meta.LastPage, 1), meta.Total)
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errors.New("row id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id: %s", args[0])
	}
	return id, nil
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("bad id list: %s", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func findUser(rows []models.User, id int64) *models.User {
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i]
		}
	}
	return nil
}

func (c *Console) savePage(ctx context.Context, view string, page int) {
	c.session.SaveViewState(ctx, &models.ViewState{View: view, Page: page})
}

func (c *Console) bookingsTab(v *views.BookingsView) *Tab {
	return &Tab{
		Name:    "bookings",
		Title:   "Reservations",
		view:    v,
		refresh: v.List.Refresh,
		page: func(ctx context.Context, uiPage int) error {
			if err := v.List.PageEvent(ctx, uiPage); err != nil {
				return err
			}
			c.savePage(ctx, "bookings", v.List.Page())
			return nil
		},
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "dates":
				from, to, err := parseRange(args)
				if err != nil {
					return true, err
				}
				return true, v.SetDateRange(ctx, from, to)
			case "name":
				v.SetClientNameFilter(ctx, strings.Join(args, " "))
				return true, nil
			case "phone":
				v.SetPhoneFilter(ctx, strings.Join(args, " "))
				return true, nil
			case "status":
				if len(args) != 1 {
					return true, errors.New("usage: status <value>")
				}
				return true, v.SetStatusFilter(ctx, args[0])
			case "doctor":
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				return true, v.SetDoctorFilter(ctx, id)
			case "setstatus":
				if len(args) != 2 {
					return true, errors.New("usage: setstatus <id> <status>")
				}
				if !v.CanUpdate() {
					return true, errors.New("no permission")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				return true, v.ChangeStatus(ctx, id, args[1])
			case "add":
				if len(args) < 4 {
					return true, errors.New("usage: add <YYYY-MM-DD> <slot-id> <phone> <name>")
				}
				date, err := parseDate(args[0])
				if err != nil {
					return true, err
				}
				slotID, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil || slotID <= 0 {
					return true, fmt.Errorf("bad slot id: %s", args[1])
				}
				f := forms.BookingForm{
					Date:       date,
					TimeID:     slotID,
					Phone:      args[2],
					ClientName: strings.Join(args[3:], " "),
				}
				if _, err := f.LoadSlots(ctx, c.client); err != nil {
					return true, err
				}
				_, err = f.Submit(ctx, v)
				return true, err
			case "move":
				if len(args) != 3 {
					return true, errors.New("usage: move <id> <YYYY-MM-DD> <slot-id>")
				}
				if !v.CanUpdate() {
					return true, errors.New("no permission")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				date, err := parseDate(args[1])
				if err != nil {
					return true, err
				}
				slotID, err := strconv.ParseInt(args[2], 10, 64)
				if err != nil || slotID <= 0 {
					return true, fmt.Errorf("bad slot id: %s", args[2])
				}
				b, err := c.client.GetBooking(ctx, id)
				if err != nil {
					return true, err
				}
				f := forms.EditBooking(b, slotID)
				f.Date = date
				if _, err := f.LoadSlots(ctx, c.client); err != nil {
					return true, err
				}
				_, err = f.Submit(ctx, v)
				return true, err
			case "delete":
				if !v.CanDelete() {
					return true, errors.New("no permission")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				v.Delete(ctx, id)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tDATE\tTIME\tSTATUS\tCLIENT\tPHONE\tDOCTOR\tADVANCE")
				for _, b := range v.List.Rows() {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s [%s]\t%s\t%s\t%s\t%s\n",
						b.ID,
						format.Date(b.ReservationDate),
						b.Time,
						b.Status, views.BookingSeverity(b.Status),
						b.ClientName,
						b.Phone,
						b.Doctor.FullName(),
						format.Price(b.AdvanceAmount),
					)
				}
			})
			return out + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

func (c *Console) servicesTab(v *views.ServicesView) *Tab {
	return &Tab{
		Name:    "services",
		Title:   "Billing",
		view:    v,
		refresh: v.List.Refresh,
		page: func(ctx context.Context, uiPage int) error {
			if err := v.List.PageEvent(ctx, uiPage); err != nil {
				return err
			}
			c.savePage(ctx, "services", v.List.Page())
			return nil
		},
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "dates":
				from, to, err := parseRange(args)
				if err != nil {
					return true, err
				}
				return true, v.SetDateRange(ctx, from, to)
			case "name":
				v.SetClientNameFilter(ctx, strings.Join(args, " "))
				return true, nil
			case "phone":
				v.SetPhoneFilter(ctx, strings.Join(args, " "))
				return true, nil
			case "status":
				if len(args) != 1 {
					return true, errors.New("usage: status <value>")
				}
				return true, v.SetStatusFilter(ctx, args[0])
			case "doctor":
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				return true, v.SetDoctorFilter(ctx, id)
			case "type":
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				return true, v.SetServiceTypeFilter(ctx, id)
			case "add":
				if !v.CanCreate() {
					return true, errors.New("no permission")
				}
				if len(args) < 5 {
					return true, errors.New("usage: add <cash|card> <amount> <type-ids> <phone> <name>")
				}
				typeIDs, err := parseIDList(args[2])
				if err != nil {
					return true, err
				}
				f := forms.ServiceForm{
					PaymentType:    args[0],
					Amount:         args[1],
					ServiceTypeIDs: typeIDs,
					Phone:          args[3],
					ClientName:     strings.Join(args[4:], " "),
				}
				_, err = f.Submit(ctx, v)
				return true, err
			case "reject":
				if len(args) < 2 {
					return true, errors.New("usage: reject <id> <comment>")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				s, err := c.client.GetService(ctx, id)
				if err != nil {
					return true, err
				}
				f := forms.EditService(s)
				f.Status = "rejected"
				f.RejectComment = strings.Join(args[1:], " ")
				_, err = f.Submit(ctx, v)
				return true, err
			case "delete":
				if !v.CanDelete() {
					return true, errors.New("no permission")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				v.Delete(ctx, id)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tSTATUS\tCLIENT\tPHONE\tSERVICES\tAMOUNT\tBY")
				for _, s := range v.List.Rows() {
					names := make([]string, 0, len(s.ServiceTypes))
					for _, st := range s.ServiceTypes {
						names = append(names, st.Name)
					}
					fmt.Fprintf(w, "%d\t%s [%s]\t%s\t%s\t%s\t%s\t%s\n",
						s.ID,
						s.Status, views.ServiceSeverity(s.Status),
						s.ClientName,
						s.Phone,
						strings.Join(names, ", "),
						format.Price(s.Amount),
						s.User.FullName(),
					)
				}
			})
			amount, cash, card := v.Totals()
			out += fmt.Sprintf("total %.2f (cash %.2f, card %.2f)\n", amount, cash, card)
			return out + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

func (c *Console) usersTab(v *views.UsersView) *Tab {
	return &Tab{
		Name:    "users",
		Title:   "Staff",
		view:    v,
		refresh: v.List.Refresh,
		page:    v.List.PageEvent,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "roles":
				roles, err := v.Roles(ctx)
				if err != nil {
					return true, err
				}
				for _, r := range roles {
					c.printf("  %d\t%s\n", r.ID, format.RoleName(r.Name))
				}
				return true, nil
			case "add":
				if !v.CanCreate() {
					return true, errors.New("no permission")
				}
				if len(args) < 5 {
					return true, errors.New("usage: add <email> <role-id> <password> <name> <surname>")
				}
				roleID, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil || roleID <= 0 {
					return true, fmt.Errorf("bad role id: %s", args[1])
				}
				f := forms.UserForm{
					Email:                args[0],
					RoleID:               roleID,
					Password:             args[2],
					PasswordConfirmation: args[2],
					Name:                 args[3],
					Surname:              strings.Join(args[4:], " "),
					IsVisible:            true,
				}
				_, err = f.Submit(ctx, v)
				return true, err
			case "setrole":
				if !v.CanUpdate() {
					return true, errors.New("no permission")
				}
				if len(args) != 2 {
					return true, errors.New("usage: setrole <id> <role-id>")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				roleID, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil || roleID <= 0 {
					return true, fmt.Errorf("bad role id: %s", args[1])
				}
				u := findUser(v.List.Rows(), id)
				if u == nil {
					return true, fmt.Errorf("no user %d on this page", id)
				}
				f := forms.EditUser(u)
				f.RoleID = roleID
				_, err = f.Submit(ctx, v)
				return true, err
			case "delete":
				if !v.CanDelete() {
					return true, errors.New("no permission")
				}
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				v.Delete(ctx, id)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tVISIBLE")
				for _, u := range v.List.Rows() {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
						u.ID, u.FullName(), u.Email, format.RoleName(roleOf(&u)), u.IsVisible)
				}
			})
			return out + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

func (c *Console) serviceTypesTab(v *views.ServiceTypesView) *Tab {
	return &Tab{
		Name:    "service-types",
		Title:   "Price list",
		view:    v,
		refresh: v.List.Refresh,
		page:    v.List.PageEvent,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "add":
				if len(args) < 2 {
					return true, errors.New("usage: add <price> <name>")
				}
				f := forms.ServiceTypeForm{Price: args[0], Name: strings.Join(args[1:], " "), ShowCustomer: true}
				_, err := f.Submit(ctx, v)
				return true, err
			case "delete":
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				v.Delete(ctx, id)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tPRICE\tPUBLIC")
				for _, s := range v.List.Rows() {
					fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", s.ID, s.Name, format.Price(s.Price), s.ShowCustomer)
				}
			})
			return out + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

func (c *Console) bookingTimesTab(v *views.BookingTimesView) *Tab {
	return &Tab{
		Name:    "slots",
		Title:   "Reservation times",
		view:    v,
		refresh: v.List.Refresh,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "add":
				if len(args) != 2 {
					return true, errors.New("usage: add <HH:MM> <capacity>")
				}
				count, err := strconv.Atoi(args[1])
				if err != nil {
					return true, fmt.Errorf("bad capacity: %s", args[1])
				}
				f := forms.BookingTimeForm{Time: args[0], ReserveCount: count, IsActive: true}
				_, err = f.Submit(ctx, v)
				return true, err
			case "delete":
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				v.Delete(ctx, id)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			slots := v.List.Rows()
			format.SortSlots(slots)
			return table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tTIME\tCAPACITY\tACTIVE")
				for _, s := range slots {
					fmt.Fprintf(w, "%d\t%s\t%d\t%t\n", s.ID, s.Time, s.ReserveCount, s.IsActive)
				}
			})
		},
	}
}

func (c *Console) bonusesTab(v *views.BonusesView) *Tab {
	return &Tab{
		Name:    "bonuses",
		Title:   "Doctor bonuses",
		view:    v,
		refresh: v.Refresh,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "dates":
				from, to, err := parseRange(args)
				if err != nil {
					return true, err
				}
				return true, v.SetDateRange(ctx, from, to)
			case "coef":
				if len(args) != 1 {
					return true, errors.New("usage: coef <value>")
				}
				if !v.CanEditCoefficient() {
					return true, errors.New("no permission")
				}
				val, err := strconv.ParseFloat(args[0], 64)
				if err != nil || val <= 0 {
					return true, errors.New("coefficient must be a positive number")
				}
				v.SetCoefficient(ctx, val)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "DOCTOR\tTOTAL\tBONUS")
				for _, r := range v.Rows() {
					fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", r.Doctor, r.TotalAmount, r.Bonus)
				}
			})
			return out + fmt.Sprintf("coefficient: %g\n", v.Coefficient())
		},
	}
}

func (c *Console) expensesTab(v *views.ExpensesView) *Tab {
	return &Tab{
		Name:    "expenses",
		Title:   "Expenses",
		view:    v,
		refresh: v.List.Refresh,
		page:    v.List.PageEvent,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			switch cmd {
			case "dates":
				from, to, err := parseRange(args)
				if err != nil {
					return true, err
				}
				return true, v.SetDateRange(ctx, from, to)
			case "add":
				if len(args) < 2 {
					return true, errors.New("usage: add <amount> <name>")
				}
				f := forms.ExpenseForm{Amount: args[0], Name: strings.Join(args[1:], " ")}
				_, err := f.Submit(ctx, v)
				return true, err
			case "delete":
				id, err := parseID(args)
				if err != nil {
					return true, err
				}
				v.Delete(ctx, id)
				return true, nil
			}
			return false, nil
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tAMOUNT\tDATE")
				for _, e := range v.List.Rows() {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						e.ID, e.Name, e.Description, format.Price(e.Amount), format.Date(e.CreatedAt))
				}
			})
			out += fmt.Sprintf("total %.2f\n", v.Total())
			return out + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

func (c *Console) logsTab(v *views.LogsView) *Tab {
	return &Tab{
		Name:    "logs",
		Title:   "Audit log",
		view:    v,
		refresh: v.List.Refresh,
		page:    v.List.PageEvent,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			if cmd != "dates" {
				return false, nil
			}
			from, to, err := parseRange(args)
			if err != nil {
				return true, err
			}
			return true, v.SetDateRange(ctx, from, to)
		},
		render: func(ctx context.Context) string {
			var sb strings.Builder
			for _, entry := range v.List.Rows() {
				sb.WriteString(fmt.Sprintf("#%d %s", entry.ID, format.DateTime(entry.CreatedAt)))
				if entry.Service != nil {
					sb.WriteString(" " + entry.Service.ClientName)
				}
				if pd := entry.PriceDifference; pd != nil {
					sb.WriteString(fmt.Sprintf(" %s -> %s (%s)",
						format.Price(pd.BeforeSum), format.Price(pd.AfterSum), pd.Causer.FullName()))
				}
				sb.WriteString("\n")
				for _, line := range views.RenderActivityTree(entry.Activity) {
					sb.WriteString("  " + line + "\n")
				}
			}
			return sb.String() + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

func (c *Console) advancesTab(v *views.AdvancesView) *Tab {
	return &Tab{
		Name:    "advances",
		Title:   "Advance transfers",
		view:    v,
		refresh: v.List.Refresh,
		page:    v.List.PageEvent,
		command: func(ctx context.Context, cmd string, args []string) (bool, error) {
			if cmd != "dates" {
				return false, nil
			}
			from, to, err := parseRange(args)
			if err != nil {
				return true, err
			}
			return true, v.SetDateRange(ctx, from, to)
		},
		render: func(ctx context.Context) string {
			out := table(func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tBOOKING\tCLIENT\tPHONE\tAMOUNT\tDATE")
				for _, a := range v.List.Rows() {
					fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
						a.ID, a.BookingID, a.ClientName, a.Phone, format.Price(a.Amount), format.Date(a.CreatedAt))
				}
			})
			return out + pageLine(v.List.Meta(), v.List.Page())
		},
	}
}

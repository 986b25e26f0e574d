package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/dfcarvalho/barberdesk/constants"
	"github.com/dfcarvalho/barberdesk/format"
	"github.com/dfcarvalho/barberdesk/store"
	"github.com/dfcarvalho/barberdesk/telemetry"
)

const (
	pageDashboard    = "dashboard"
	pageAppointments = "appointments"
	pageCustomers    = "customers"
	pageServices     = "services"
	pageBarbers      = "barbers"
	pageForm         = "form"
)

type ConsoleApp struct {
	app   *tview.Application
	pages *tview.Pages

	headerView        *tview.TextView
	dashboardView     *tview.TextView
	upcomingTable     *tview.Table
	appointmentsTable *tview.Table
	customersTable    *tview.Table
	servicesTable     *tview.Table
	barbersTable      *tview.Table
	logView           *tview.TextView

	cfg     *AppConfig
	options ConsoleOptions

	ctx    context.Context
	cancel context.CancelFunc

	unsubscribe []func()
}

func NewConsoleApp(cfg *AppConfig, options ConsoleOptions) *ConsoleApp {
	ctx, cancel := context.WithCancel(context.Background())

	return &ConsoleApp{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		cfg:     cfg,
		options: options,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *ConsoleApp) Setup() {
	theme := GetTheme(c.options.Theme)
	ApplyTheme(c.app, theme)

	c.headerView = tview.NewTextView()
	c.headerView.SetDynamicColors(true)
	c.headerView.SetText(" [1] Dashboard  [2] Agendamentos  [3] Clientes  [4] Serviços  [5] Barbeiros  [q] Sair")
	ApplyThemeToTextView(c.headerView, theme)

	// Dashboard: summary text on the left, upcoming appointments on the right
	c.dashboardView = tview.NewTextView()
	c.dashboardView.SetBorder(true)
	c.dashboardView.SetTitle(" Visão Geral ")
	c.dashboardView.SetTitleAlign(tview.AlignLeft)
	c.dashboardView.SetDynamicColors(true)
	ApplyThemeToTextView(c.dashboardView, theme)

	c.upcomingTable = c.newTable(" Próximos Agendamentos ", theme)

	dashboardFlex := tview.NewFlex()
	dashboardFlex.SetDirection(tview.FlexColumn)
	dashboardFlex.AddItem(c.dashboardView, 0, 1, false)
	dashboardFlex.AddItem(c.upcomingTable, 0, 2, false)

	c.appointmentsTable = c.newTable(" Agendamentos [n]ovo [e]ditar [d]eletar [c]oncluir [x]cancelar [f]alta ", theme)
	c.customersTable = c.newTable(" Clientes [n]ovo [e]ditar [d]eletar [v]isita ", theme)
	c.servicesTable = c.newTable(" Serviços [n]ovo [e]ditar [d]eletar ", theme)
	c.barbersTable = c.newTable(" Barbeiros [n]ovo [e]ditar [d]eletar [a]tivo ", theme)

	c.logView = tview.NewTextView()
	c.logView.SetBorder(true)
	c.logView.SetTitle(" Logs ")
	c.logView.SetTitleAlign(tview.AlignLeft)
	c.logView.SetDynamicColors(true)
	c.logView.SetScrollable(true)
	ApplyThemeToTextView(c.logView, theme)

	c.pages.AddPage(pageDashboard, dashboardFlex, true, true)
	c.pages.AddPage(pageAppointments, c.appointmentsTable, true, false)
	c.pages.AddPage(pageCustomers, c.customersTable, true, false)
	c.pages.AddPage(pageServices, c.servicesTable, true, false)
	c.pages.AddPage(pageBarbers, c.barbersTable, true, false)

	mainFlex := tview.NewFlex()
	mainFlex.SetDirection(tview.FlexRow)
	mainFlex.AddItem(c.headerView, 1, 0, false)
	mainFlex.AddItem(c.pages, 0, 2, true)
	mainFlex.AddItem(c.logView, 0, 1, false)

	c.app.SetRoot(mainFlex, true)
	c.app.EnableMouse(true)

	c.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let open forms receive every key
		if name, _ := c.pages.GetFrontPage(); name == pageForm {
			if event.Key() == tcell.KeyEscape {
				c.closeForm()
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			c.Stop()
			return nil
		}

		switch event.Rune() {
		case 'q', 'Q':
			c.Stop()
			return nil
		case '1':
			c.switchTo(pageDashboard, nil)
			return nil
		case '2':
			c.switchTo(pageAppointments, c.appointmentsTable)
			return nil
		case '3':
			c.switchTo(pageCustomers, c.customersTable)
			return nil
		case '4':
			c.switchTo(pageServices, c.servicesTable)
			return nil
		case '5':
			c.switchTo(pageBarbers, c.barbersTable)
			return nil
		}

		return event
	})

	c.setupTableActions()

	// Follow new log lines in the bottom pane
	c.cfg.Telemetry.LogCapture.SetLogCallback(func(entry telemetry.LogEntry) {
		c.appendLog(FormatLogEntryWithTheme(entry, theme))
	})

	// Re-render whenever a store changes
	c.subscribeStores()
}

func (c *ConsoleApp) newTable(title string, theme Theme) *tview.Table {
	tbl := tview.NewTable()
	tbl.SetBorder(true)
	tbl.SetTitle(title)
	tbl.SetTitleAlign(tview.AlignLeft)
	tbl.SetSelectable(true, false)
	tbl.SetFixed(1, 0)
	ApplyThemeToTable(tbl, theme)
	return tbl
}

func (c *ConsoleApp) switchTo(page string, focus tview.Primitive) {
	c.pages.SwitchToPage(page)
	if focus != nil {
		c.app.SetFocus(focus)
	}
}

func (c *ConsoleApp) setupTableActions() {
	c.appointmentsTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'n':
			c.openAppointmentForm(nil)
			return nil
		case 'e':
			if a, ok := c.selectedAppointment(); ok {
				c.openAppointmentForm(&a)
			}
			return nil
		case 'd':
			if a, ok := c.selectedAppointment(); ok {
				c.cfg.Appointments.DeleteAppointment(c.ctx, a.ID)
			}
			return nil
		case 'c':
			c.setSelectedStatus(store.StatusCompleted)
			return nil
		case 'x':
			c.setSelectedStatus(store.StatusCancelled)
			return nil
		case 'f':
			c.setSelectedStatus(store.StatusNoShow)
			return nil
		}
		return event
	})

	c.customersTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'n':
			c.openCustomerForm(nil)
			return nil
		case 'e':
			if cu, ok := c.selectedCustomer(); ok {
				c.openCustomerForm(&cu)
			}
			return nil
		case 'd':
			if cu, ok := c.selectedCustomer(); ok {
				c.cfg.Customers.DeleteCustomer(c.ctx, cu.ID)
			}
			return nil
		case 'v':
			if cu, ok := c.selectedCustomer(); ok {
				c.cfg.Customers.RecordVisit(c.ctx, cu.ID)
			}
			return nil
		}
		return event
	})

	c.servicesTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'n':
			c.openServiceForm(nil)
			return nil
		case 'e':
			if svc, ok := c.selectedService(); ok {
				c.openServiceForm(&svc)
			}
			return nil
		case 'd':
			if svc, ok := c.selectedService(); ok {
				c.cfg.Services.DeleteService(c.ctx, svc.ID)
			}
			return nil
		}
		return event
	})

	c.barbersTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'n':
			c.openBarberForm(nil)
			return nil
		case 'e':
			if b, ok := c.selectedBarber(); ok {
				c.openBarberForm(&b)
			}
			return nil
		case 'd':
			if b, ok := c.selectedBarber(); ok {
				c.cfg.Barbers.DeleteBarber(c.ctx, b.ID)
			}
			return nil
		case 'a':
			if b, ok := c.selectedBarber(); ok {
				c.cfg.Barbers.ToggleActive(c.ctx, b.ID)
			}
			return nil
		}
		return event
	})
}

func (c *ConsoleApp) subscribeStores() {
	// Mutations fire subscriptions on the event goroutine, where a direct
	// QueueUpdateDraw would deadlock, so hop to a fresh goroutine first.
	refresh := func(render func()) func() {
		return func() {
			go c.app.QueueUpdateDraw(render)
		}
	}

	c.unsubscribe = append(c.unsubscribe,
		c.cfg.Appointments.Subscribe(refresh(func() {
			c.renderAppointments()
			c.renderDashboard()
		})),
		c.cfg.Customers.Subscribe(refresh(func() {
			c.renderCustomers()
			c.renderAppointments()
			c.renderDashboard()
		})),
		c.cfg.Services.Subscribe(refresh(func() {
			c.renderServices()
			c.renderAppointments()
			c.renderDashboard()
		})),
		c.cfg.Barbers.Subscribe(refresh(func() {
			c.renderBarbers()
			c.renderAppointments()
		})),
	)
}

func (c *ConsoleApp) Start() error {
	go c.dashboardUpdateLoop()

	go func() {
		c.loadExistingLogs()
	}()

	c.renderAppointments()
	c.renderCustomers()
	c.renderServices()
	c.renderBarbers()
	c.renderDashboard()

	return c.app.Run()
}

func (c *ConsoleApp) Stop() {
	c.cancel()
	for _, unsub := range c.unsubscribe {
		unsub()
	}
	c.app.Stop()
}

func (c *ConsoleApp) dashboardUpdateLoop() {
	ticker := time.NewTicker(constants.ConsoleRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.app.QueueUpdateDraw(func() {
				c.renderDashboard()
			})
		}
	}
}

func (c *ConsoleApp) renderDashboard() {
	summary := store.SummarizeDay(c.cfg.Appointments, c.cfg.Customers, c.cfg.Services, time.Now())
	stats := c.cfg.Telemetry.StatsCollector.Collect()
	theme := GetTheme(c.options.Theme)

	c.dashboardView.SetText(FormatDashboardWithTheme(summary, stats, theme))
	c.renderUpcoming(theme)
}

func (c *ConsoleApp) renderUpcoming(theme Theme) {
	upcoming := store.Upcoming(c.cfg.Appointments, time.Now(), constants.UpcomingListLimit)

	c.upcomingTable.Clear()
	c.setHeader(c.upcomingTable, "Horário", "Cliente", "Serviço", "Status")
	for i, a := range upcoming {
		c.setAppointmentRow(c.upcomingTable, i+1, a, theme, false)
	}
}

func (c *ConsoleApp) renderAppointments() {
	theme := GetTheme(c.options.Theme)
	history := store.History(c.cfg.Appointments)

	c.appointmentsTable.Clear()
	c.setHeader(c.appointmentsTable, "Data", "Cliente", "Barbeiro", "Serviço", "Status", "Notas")
	for i, a := range history {
		c.setAppointmentRow(c.appointmentsTable, i+1, a, theme, true)
	}
}

func (c *ConsoleApp) setAppointmentRow(tbl *tview.Table, row int, a store.Appointment, theme Theme, full bool) {
	statusText := fmt.Sprintf("%s%s[-]", StatusColorTag(a.Status, theme), a.Status)

	first := tview.NewTableCell(format.DateTime(a.Date)).SetReference(a.ID)
	tbl.SetCell(row, 0, first)
	if full {
		tbl.SetCellSimple(row, 1, c.customerLabel(a.CustomerID))
		tbl.SetCellSimple(row, 2, c.barberLabel(a.BarberID))
		tbl.SetCellSimple(row, 3, c.serviceLabel(a.ServiceID))
		tbl.SetCellSimple(row, 4, statusText)
		tbl.SetCellSimple(row, 5, a.Notes)
	} else {
		tbl.SetCellSimple(row, 1, c.customerLabel(a.CustomerID))
		tbl.SetCellSimple(row, 2, c.serviceLabel(a.ServiceID))
		tbl.SetCellSimple(row, 3, statusText)
	}
}

func (c *ConsoleApp) renderCustomers() {
	c.customersTable.Clear()
	c.setHeader(c.customersTable, "Nome", "Telefone", "Email", "Visitas", "Última Visita", "Cadastro")
	for i, cu := range c.cfg.Customers.ListCustomers() {
		lastVisit := "-"
		if cu.LastVisit != nil {
			lastVisit = format.Date(*cu.LastVisit)
		}
		c.customersTable.SetCell(i+1, 0, tview.NewTableCell(cu.Name).SetReference(cu.ID))
		c.customersTable.SetCellSimple(i+1, 1, cu.Phone)
		c.customersTable.SetCellSimple(i+1, 2, cu.Email)
		c.customersTable.SetCellSimple(i+1, 3, fmt.Sprintf("%d", cu.TotalVisits))
		c.customersTable.SetCellSimple(i+1, 4, lastVisit)
		c.customersTable.SetCellSimple(i+1, 5, format.Date(cu.CreatedAt))
	}
}

func (c *ConsoleApp) renderServices() {
	c.servicesTable.Clear()
	c.setHeader(c.servicesTable, "Serviço", "Descrição", "Duração", "Preço")
	for i, svc := range c.cfg.Services.ListServices() {
		c.servicesTable.SetCell(i+1, 0, tview.NewTableCell(svc.Name).SetReference(svc.ID))
		c.servicesTable.SetCellSimple(i+1, 1, svc.Description)
		c.servicesTable.SetCellSimple(i+1, 2, fmt.Sprintf("%d min", svc.Duration))
		c.servicesTable.SetCellSimple(i+1, 3, format.Currency(svc.Price))
	}
}

func (c *ConsoleApp) renderBarbers() {
	c.barbersTable.Clear()
	c.setHeader(c.barbersTable, "Nome", "Telefone", "Email", "Especialidade", "Ativo")
	for i, b := range c.cfg.Barbers.ListBarbers() {
		active := "[green]sim[-]"
		if !b.IsActive {
			active = "[red]não[-]"
		}
		c.barbersTable.SetCell(i+1, 0, tview.NewTableCell(b.Name).SetReference(b.ID))
		c.barbersTable.SetCellSimple(i+1, 1, b.Phone)
		c.barbersTable.SetCellSimple(i+1, 2, b.Email)
		c.barbersTable.SetCellSimple(i+1, 3, b.Specialty)
		c.barbersTable.SetCellSimple(i+1, 4, active)
	}
}

func (c *ConsoleApp) setHeader(tbl *tview.Table, columns ...string) {
	theme := GetTheme(c.options.Theme)
	for col, name := range columns {
		cell := tview.NewTableCell(name).
			SetTextColor(theme.Title).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)
		tbl.SetCell(0, col, cell)
	}
}

// Weak reference labels: a deleted target renders as "não encontrado"
// instead of breaking the row.

func (c *ConsoleApp) customerLabel(id uuid.UUID) string {
	if cu, ok := c.cfg.Customers.GetCustomer(id); ok {
		return cu.Name
	}
	return missingLabel
}

func (c *ConsoleApp) barberLabel(id uuid.UUID) string {
	if b, ok := c.cfg.Barbers.GetBarber(id); ok {
		return b.Name
	}
	return missingLabel
}

func (c *ConsoleApp) serviceLabel(id uuid.UUID) string {
	if svc, ok := c.cfg.Services.GetService(id); ok {
		return svc.Name
	}
	return missingLabel
}

func (c *ConsoleApp) selectedID(tbl *tview.Table) (uuid.UUID, bool) {
	row, _ := tbl.GetSelection()
	if row < 1 {
		return uuid.Nil, false
	}
	cell := tbl.GetCell(row, 0)
	if cell == nil {
		return uuid.Nil, false
	}
	id, ok := cell.GetReference().(uuid.UUID)
	return id, ok
}

func (c *ConsoleApp) selectedAppointment() (store.Appointment, bool) {
	id, ok := c.selectedID(c.appointmentsTable)
	if !ok {
		return store.Appointment{}, false
	}
	return c.cfg.Appointments.GetAppointment(id)
}

func (c *ConsoleApp) selectedCustomer() (store.Customer, bool) {
	id, ok := c.selectedID(c.customersTable)
	if !ok {
		return store.Customer{}, false
	}
	return c.cfg.Customers.GetCustomer(id)
}

func (c *ConsoleApp) selectedService() (store.Service, bool) {
	id, ok := c.selectedID(c.servicesTable)
	if !ok {
		return store.Service{}, false
	}
	return c.cfg.Services.GetService(id)
}

func (c *ConsoleApp) selectedBarber() (store.Barber, bool) {
	id, ok := c.selectedID(c.barbersTable)
	if !ok {
		return store.Barber{}, false
	}
	return c.cfg.Barbers.GetBarber(id)
}

func (c *ConsoleApp) setSelectedStatus(status store.Status) {
	if a, ok := c.selectedAppointment(); ok {
		c.cfg.Appointments.UpdateStatus(c.ctx, a.ID, status)
	}
}

func (c *ConsoleApp) appendLog(message string) {
	go c.app.QueueUpdateDraw(func() {
		fmt.Fprint(c.logView, message)
		c.logView.ScrollToEnd()
	})
}

func (c *ConsoleApp) loadExistingLogs() {
	logs := c.cfg.Telemetry.LogCapture.GetAllLogs()
	theme := GetTheme(c.options.Theme)

	if len(logs) == 0 {
		waitingColor := "[grey]"
		if theme.Name == "light" {
			waitingColor = "[darkgray]"
		}
		c.appendLog(waitingColor + "Waiting for logs...[-]\n")
		return
	}

	var logText strings.Builder
	for _, entry := range logs {
		logText.WriteString(FormatLogEntryWithTheme(entry, theme))
	}

	c.app.QueueUpdateDraw(func() {
		c.logView.SetText(logText.String())
		c.logView.ScrollToEnd()
	})
}

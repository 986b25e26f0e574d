package cli

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/dfcarvalho/barberdesk/format"
	"github.com/dfcarvalho/barberdesk/store"
)

// Form field labels, also used to read values back on save.
const (
	fieldName        = "Nome"
	fieldPhone       = "Telefone"
	fieldEmail       = "Email"
	fieldSpecialty   = "Especialidade"
	fieldActive      = "Ativo"
	fieldDescription = "Descrição"
	fieldDuration    = "Duração (min)"
	fieldPrice       = "Preço"
	fieldCustomer    = "Cliente"
	fieldBarber      = "Barbeiro"
	fieldService     = "Serviço"
	fieldDate        = "Data (AAAA-MM-DD)"
	fieldTime        = "Hora (HH:MM)"
	fieldNotes       = "Notas"
)

const missingLabel = "não encontrado"

func (c *ConsoleApp) openForm(title string, form *tview.Form) {
	form.SetBorder(true)
	form.SetTitle(title)
	form.SetTitleAlign(tview.AlignLeft)

	centered := tview.NewFlex()
	centered.AddItem(nil, 0, 1, false)
	inner := tview.NewFlex()
	inner.SetDirection(tview.FlexRow)
	inner.AddItem(nil, 0, 1, false)
	inner.AddItem(form, 0, 3, true)
	inner.AddItem(nil, 0, 1, false)
	centered.AddItem(inner, 0, 2, true)
	centered.AddItem(nil, 0, 1, false)

	c.pages.AddPage(pageForm, centered, true, true)
	c.app.SetFocus(form)
}

func (c *ConsoleApp) closeForm() {
	c.pages.RemovePage(pageForm)
}

func formText(form *tview.Form, label string) string {
	return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
}

func (c *ConsoleApp) openCustomerForm(existing *store.Customer) {
	var name, phone, email string
	if existing != nil {
		name, phone, email = existing.Name, existing.Phone, existing.Email
	}

	form := tview.NewForm()
	form.AddInputField(fieldName, name, 40, nil, nil)
	form.AddInputField(fieldPhone, phone, 40, nil, nil)
	form.AddInputField(fieldEmail, email, 40, nil, nil)

	form.AddButton("Salvar", func() {
		name := formText(form, fieldName)
		phone := formText(form, fieldPhone)
		email := formText(form, fieldEmail)
		if name == "" {
			c.cfg.Telemetry.Logger.Warn("customer form requires a name")
			return
		}

		if existing == nil {
			c.cfg.Customers.CreateCustomer(c.ctx, store.Customer{Name: name, Phone: phone, Email: email})
		} else {
			c.cfg.Customers.UpdateCustomer(c.ctx, existing.ID, store.CustomerPatch{
				Name:  &name,
				Phone: &phone,
				Email: &email,
			})
		}
		c.closeForm()
	})
	form.AddButton("Cancelar", c.closeForm)

	title := " Novo Cliente "
	if existing != nil {
		title = " Editar Cliente "
	}
	c.openForm(title, form)
}

func (c *ConsoleApp) openServiceForm(existing *store.Service) {
	var name, description, duration, price string
	if existing != nil {
		name = existing.Name
		description = existing.Description
		duration = strconv.Itoa(existing.Duration)
		price = strconv.FormatFloat(existing.Price, 'f', 2, 64)
	}

	form := tview.NewForm()
	form.AddInputField(fieldName, name, 40, nil, nil)
	form.AddInputField(fieldDescription, description, 40, nil, nil)
	form.AddInputField(fieldDuration, duration, 10, tview.InputFieldInteger, nil)
	form.AddInputField(fieldPrice, price, 10, tview.InputFieldFloat, nil)

	form.AddButton("Salvar", func() {
		name := formText(form, fieldName)
		description := formText(form, fieldDescription)
		if name == "" {
			c.cfg.Telemetry.Logger.Warn("service form requires a name")
			return
		}
		duration, err := strconv.Atoi(formText(form, fieldDuration))
		if err != nil || duration <= 0 {
			c.cfg.Telemetry.Logger.Warn("service form requires a positive duration")
			return
		}
		price, err := strconv.ParseFloat(formText(form, fieldPrice), 64)
		if err != nil || price < 0 {
			c.cfg.Telemetry.Logger.Warn("service form requires a non-negative price")
			return
		}

		if existing == nil {
			c.cfg.Services.CreateService(c.ctx, store.Service{
				Name:        name,
				Description: description,
				Duration:    duration,
				Price:       price,
			})
		} else {
			c.cfg.Services.UpdateService(c.ctx, existing.ID, store.ServicePatch{
				Name:        &name,
				Description: &description,
				Duration:    &duration,
				Price:       &price,
			})
		}
		c.closeForm()
	})
	form.AddButton("Cancelar", c.closeForm)

	title := " Novo Serviço "
	if existing != nil {
		title = " Editar Serviço "
	}
	c.openForm(title, form)
}

func (c *ConsoleApp) openBarberForm(existing *store.Barber) {
	var name, phone, email, specialty string
	active := true
	if existing != nil {
		name, phone, email, specialty = existing.Name, existing.Phone, existing.Email, existing.Specialty
		active = existing.IsActive
	}

	form := tview.NewForm()
	form.AddInputField(fieldName, name, 40, nil, nil)
	form.AddInputField(fieldPhone, phone, 40, nil, nil)
	form.AddInputField(fieldEmail, email, 40, nil, nil)
	form.AddInputField(fieldSpecialty, specialty, 40, nil, nil)
	form.AddCheckbox(fieldActive, active, func(checked bool) { active = checked })

	form.AddButton("Salvar", func() {
		name := formText(form, fieldName)
		phone := formText(form, fieldPhone)
		email := formText(form, fieldEmail)
		specialty := formText(form, fieldSpecialty)
		if name == "" {
			c.cfg.Telemetry.Logger.Warn("barber form requires a name")
			return
		}

		if existing == nil {
			c.cfg.Barbers.CreateBarber(c.ctx, store.Barber{
				Name:      name,
				Phone:     phone,
				Email:     email,
				Specialty: specialty,
				IsActive:  active,
			})
		} else {
			c.cfg.Barbers.UpdateBarber(c.ctx, existing.ID, store.BarberPatch{
				Name:      &name,
				Phone:     &phone,
				Email:     &email,
				Specialty: &specialty,
				IsActive:  &active,
			})
		}
		c.closeForm()
	})
	form.AddButton("Cancelar", c.closeForm)

	title := " Novo Barbeiro "
	if existing != nil {
		title = " Editar Barbeiro "
	}
	c.openForm(title, form)
}

// referenceOptions builds dropdown labels and the parallel ID list. When the
// currently referenced entity is not in the offered set (deleted, or an
// inactive barber on an existing appointment), it is prepended so editing
// does not silently reassign the reference.
func referenceOptions(labels []string, ids []uuid.UUID, current uuid.UUID, currentLabel string, hasCurrent bool) ([]string, []uuid.UUID, int) {
	if !hasCurrent {
		return labels, ids, 0
	}
	for i, id := range ids {
		if id == current {
			return labels, ids, i
		}
	}
	labels = append([]string{currentLabel}, labels...)
	ids = append([]uuid.UUID{current}, ids...)
	return labels, ids, 0
}

func (c *ConsoleApp) openAppointmentForm(existing *store.Appointment) {
	var customerLabels []string
	var customerIDs []uuid.UUID
	for _, cu := range c.cfg.Customers.ListCustomers() {
		customerLabels = append(customerLabels, cu.Name)
		customerIDs = append(customerIDs, cu.ID)
	}

	// Only active barbers are offered for new bookings
	var barberLabels []string
	var barberIDs []uuid.UUID
	for _, b := range c.cfg.Barbers.ActiveBarbers() {
		barberLabels = append(barberLabels, b.Name)
		barberIDs = append(barberIDs, b.ID)
	}

	var serviceLabels []string
	var serviceIDs []uuid.UUID
	for _, svc := range c.cfg.Services.ListServices() {
		serviceLabels = append(serviceLabels, svc.Name)
		serviceIDs = append(serviceIDs, svc.ID)
	}

	var date, clock, notes string
	var customerInit, barberInit, serviceInit int
	if existing != nil {
		date = format.DateInputValue(existing.Date)
		clock = format.TimeInputValue(existing.Date)
		notes = existing.Notes
		customerLabels, customerIDs, customerInit = referenceOptions(
			customerLabels, customerIDs, existing.CustomerID, c.customerLabel(existing.CustomerID), true)
		barberLabels, barberIDs, barberInit = referenceOptions(
			barberLabels, barberIDs, existing.BarberID, c.barberLabel(existing.BarberID), true)
		serviceLabels, serviceIDs, serviceInit = referenceOptions(
			serviceLabels, serviceIDs, existing.ServiceID, c.serviceLabel(existing.ServiceID), true)
	} else {
		date = format.DateInputValue(time.Now())
	}

	if len(customerIDs) == 0 || len(barberIDs) == 0 || len(serviceIDs) == 0 {
		c.cfg.Telemetry.Logger.Warn("booking requires at least one customer, one active barber and one service")
		return
	}

	customerIdx, barberIdx, serviceIdx := customerInit, barberInit, serviceInit

	form := tview.NewForm()
	form.AddDropDown(fieldCustomer, customerLabels, customerInit, func(_ string, index int) { customerIdx = index })
	form.AddDropDown(fieldBarber, barberLabels, barberInit, func(_ string, index int) { barberIdx = index })
	form.AddDropDown(fieldService, serviceLabels, serviceInit, func(_ string, index int) { serviceIdx = index })
	form.AddInputField(fieldDate, date, 14, nil, nil)
	form.AddInputField(fieldTime, clock, 8, nil, nil)
	form.AddInputField(fieldNotes, notes, 40, nil, nil)

	form.AddButton("Salvar", func() {
		when, err := format.ParseDateTimeInput(formText(form, fieldDate), formText(form, fieldTime))
		if err != nil {
			c.cfg.Telemetry.Logger.Warn("invalid appointment date or time", "error", err)
			return
		}
		notes := formText(form, fieldNotes)

		if existing == nil {
			c.cfg.Appointments.CreateAppointment(c.ctx, store.Appointment{
				CustomerID: customerIDs[customerIdx],
				BarberID:   barberIDs[barberIdx],
				ServiceID:  serviceIDs[serviceIdx],
				Date:       when,
				Notes:      notes,
			})
		} else {
			c.cfg.Appointments.UpdateAppointment(c.ctx, existing.ID, store.AppointmentPatch{
				CustomerID: &customerIDs[customerIdx],
				BarberID:   &barberIDs[barberIdx],
				ServiceID:  &serviceIDs[serviceIdx],
				Date:       &when,
				Notes:      &notes,
			})
		}
		c.closeForm()
	})
	form.AddButton("Cancelar", c.closeForm)

	title := " Novo Agendamento "
	if existing != nil {
		title = " Editar Agendamento "
	}
	c.openForm(title, form)
}

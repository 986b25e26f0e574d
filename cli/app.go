package cli

import (
	"github.com/dfcarvalho/barberdesk/store"
	"github.com/dfcarvalho/barberdesk/telemetry"
)

// AppConfig groups common application dependencies to reduce parameter lists
type AppConfig struct {
	Customers    *store.CustomerStore
	Services     *store.ServiceStore
	Barbers      *store.BarberStore
	Appointments *store.AppointmentStore
	Telemetry    *telemetry.Telemetry
}

type ConsoleOptions struct {
	Theme string
}

// RunConsole starts the terminal console over the given stores and blocks
// until the user quits.
func RunConsole(cfg *AppConfig, options ConsoleOptions) error {
	app := NewConsoleApp(cfg, options)
	app.Setup()
	return app.Start()
}

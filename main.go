package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dfcarvalho/barberdesk/cli"
	"github.com/dfcarvalho/barberdesk/format"
	"github.com/dfcarvalho/barberdesk/store"
	"github.com/dfcarvalho/barberdesk/telemetry"
)

// Config holds all configuration parameters for running the application
type Config struct {
	DataDir  string
	Theme    string
	LogLevel string

	// Summary mode prints today's numbers and exits without starting the
	// console, so the stores can be exercised without a TTY.
	Summary bool
}

func main() {
	dataDir := flag.String("data-dir", "", "Base directory for the snapshot database (defaults to the working directory)")
	theme := flag.String("theme", "dark", "Theme for the console (dark or light)")
	logLevel := flag.String("log-level", "info", "Minimum log level (debug, info, warn, error)")
	summary := flag.Bool("summary", false, "Print today's summary and exit")

	flag.Parse()

	config := Config{
		DataDir:  *dataDir,
		Theme:    *theme,
		LogLevel: *logLevel,
		Summary:  *summary,
	}

	if err := Run(config); err != nil {
		log.Fatal(err)
	}
}

// ApplicationComponents holds the initialized components needed to run the application
type ApplicationComponents struct {
	Snapshots    store.SnapshotStore
	Customers    *store.CustomerStore
	Services     *store.ServiceStore
	Barbers      *store.BarberStore
	Appointments *store.AppointmentStore
	Telemetry    *telemetry.Telemetry
}

// initializeApplication sets up all application components
func initializeApplication(ctx context.Context, config Config) (*ApplicationComponents, error) {
	tel := telemetry.New(
		telemetry.WithCLIMode(!config.Summary),
		telemetry.WithLogLevel(config.LogLevel),
	)

	snapshotOpts := store.DefaultSnapshotOptions()
	snapshotOpts.BasePath = config.DataDir
	snapshots, err := store.NewSnapshotStore(snapshotOpts)
	if err != nil {
		tel.StatsCollector.Stop()
		return nil, fmt.Errorf("could not create snapshot store: %w", err)
	}

	opts := store.Options{
		Snapshots: snapshots,
		Logger:    tel.Logger,
		Metrics:   tel.StatsCollector,
	}

	return &ApplicationComponents{
		Snapshots:    snapshots,
		Customers:    store.NewCustomerStore(ctx, opts),
		Services:     store.NewServiceStore(ctx, opts),
		Barbers:      store.NewBarberStore(ctx, opts),
		Appointments: store.NewAppointmentStore(ctx, opts),
		Telemetry:    tel,
	}, nil
}

func Run(config Config) error {
	ctx := context.Background()

	components, err := initializeApplication(ctx, config)
	if err != nil {
		return err
	}
	defer components.Telemetry.StatsCollector.Stop()
	defer components.Snapshots.Close()

	if config.Summary {
		printSummary(components)
		return nil
	}

	appConfig := &cli.AppConfig{
		Customers:    components.Customers,
		Services:     components.Services,
		Barbers:      components.Barbers,
		Appointments: components.Appointments,
		Telemetry:    components.Telemetry,
	}
	options := cli.ConsoleOptions{Theme: config.Theme}

	return cli.RunConsole(appConfig, options)
}

func printSummary(components *ApplicationComponents) {
	summary := store.SummarizeDay(components.Appointments, components.Customers, components.Services, time.Now())

	fmt.Printf("Resumo de %s\n", format.Date(summary.Day))
	fmt.Printf("  Agendamentos: %d\n", summary.Appointments)
	fmt.Printf("  Concluídos:   %d\n", summary.Completed)
	fmt.Printf("  Receita:      %s\n", format.Currency(summary.Revenue))
	fmt.Printf("  Clientes:     %d\n", summary.TotalCustomers)
}

package constants

import "time"

// Application-wide constants
const (
	// Snapshot configuration
	SnapshotSchemaVersion = 1
	DefaultDataDir        = ".data"
	SnapshotDatabaseName  = "barberdesk"

	// Telemetry configuration
	DefaultLogBufferSize = 1000
	DefaultStatsInterval = 2 * time.Second

	// Console configuration
	ConsoleRefreshInterval = 2 * time.Second
	UpcomingListLimit      = 5
)

// Snapshot slot names, one per store
const (
	SlotCustomers    = "customers"
	SlotServices     = "services"
	SlotBarbers      = "barbers"
	SlotAppointments = "appointments"
)

package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dfcarvalho/barberdesk/store"
	"github.com/dfcarvalho/barberdesk/telemetry"
)

func TestGetTheme(t *testing.T) {
	require.Equal(t, "light", GetTheme("light").Name)
	require.Equal(t, "dark", GetTheme("dark").Name)
	require.Equal(t, "dark", GetTheme("neon").Name)
	require.Equal(t, "dark", GetTheme("").Name)
}

func TestStatusColorTag(t *testing.T) {
	require.Equal(t, "[yellow]", StatusColorTag(store.StatusScheduled, DarkTheme))
	require.Equal(t, "[green]", StatusColorTag(store.StatusCompleted, DarkTheme))
	require.Equal(t, "[red]", StatusColorTag(store.StatusCancelled, DarkTheme))
	require.Equal(t, "[gray]", StatusColorTag(store.StatusNoShow, DarkTheme))
	require.Equal(t, "[darkgray]", StatusColorTag(store.StatusNoShow, LightTheme))
}

func TestFormatDashboardWithTheme(t *testing.T) {
	summary := store.DaySummary{
		Day:            time.Now(),
		Appointments:   4,
		Completed:      2,
		Revenue:        60,
		TotalCustomers: 12,
	}
	stats := telemetry.Stats{
		TotalMutations:   17,
		MutationsPerMin:  3,
		SnapshotFailures: 1,
		Uptime:           90 * time.Second,
		GoRoutines:       8,
		MemoryUsage:      "3.2 MB",
		LastUpdated:      time.Now(),
	}

	out := FormatDashboardWithTheme(summary, stats, DarkTheme)
	require.Contains(t, out, "Agendamentos Hoje:")
	require.Contains(t, out, "Concluídos Hoje:")
	require.Contains(t, out, "Receita Hoje:")
	require.Contains(t, out, "Total de Clientes:")
	require.Contains(t, out, "R$")
	require.Contains(t, out, "12")
	require.Contains(t, out, "17")
	require.Contains(t, out, "1m30s")
	require.Contains(t, out, "3.2 MB")
	require.Contains(t, out, "[aqua]")

	light := FormatDashboardWithTheme(summary, stats, LightTheme)
	require.Contains(t, light, "[teal]")
	require.NotContains(t, light, "[aqua]")
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "0m45s", formatDuration(45*time.Second))
	require.Equal(t, "5m0s", formatDuration(5*time.Minute))
	require.Equal(t, "2h30m", formatDuration(2*time.Hour+30*time.Minute))
}

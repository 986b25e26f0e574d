package cli

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dfcarvalho/barberdesk/format"
	"github.com/dfcarvalho/barberdesk/store"
	"github.com/dfcarvalho/barberdesk/telemetry"
)

type Theme struct {
	Name       string
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	Highlight  tcell.Color
	Secondary  tcell.Color
	Accent     tcell.Color
	Success    tcell.Color
	Warning    tcell.Color
	Error      tcell.Color
}

var (
	DarkTheme = Theme{
		Name:       "dark",
		Foreground: tcell.ColorWhite,
		Border:     tcell.ColorBlue,
		Title:      tcell.ColorYellow,
		Highlight:  tcell.ColorGreen,
		Secondary:  tcell.ColorGray,
		Accent:     tcell.ColorAqua,
		Success:    tcell.ColorGreen,
		Warning:    tcell.ColorYellow,
		Error:      tcell.ColorRed,
	}

	LightTheme = Theme{
		Name:       "light",
		Foreground: tcell.ColorBlack,
		Border:     tcell.ColorNavy,
		Title:      tcell.ColorDarkBlue,
		Highlight:  tcell.ColorDarkGreen,
		Secondary:  tcell.ColorDarkGray,
		Accent:     tcell.ColorTeal,
		Success:    tcell.ColorDarkGreen,
		Warning:    tcell.ColorOrange,
		Error:      tcell.ColorDarkRed,
	}
)

func GetTheme(themeName string) Theme {
	switch themeName {
	case "light":
		return LightTheme
	case "dark":
		fallthrough
	default:
		return DarkTheme
	}
}

func ApplyTheme(app *tview.Application, theme Theme) {
	// Set the default theme for tview with transparent backgrounds
	tview.Styles = tview.Theme{
		PrimitiveBackgroundColor:    tcell.ColorDefault,
		ContrastBackgroundColor:     tcell.ColorDefault,
		MoreContrastBackgroundColor: tcell.ColorDefault,
		BorderColor:                 theme.Border,
		TitleColor:                  theme.Title,
		GraphicsColor:               theme.Accent,
		PrimaryTextColor:            theme.Foreground,
		SecondaryTextColor:          theme.Secondary,
		TertiaryTextColor:           theme.Secondary,
		InverseTextColor:            theme.Foreground,
		ContrastSecondaryTextColor:  theme.Foreground,
	}
}

func ApplyThemeToTextView(tv *tview.TextView, theme Theme) {
	tv.SetBackgroundColor(tcell.ColorDefault)
	tv.SetTextColor(theme.Foreground)
	tv.SetBorderColor(theme.Border)
	tv.SetTitleColor(theme.Title)
}

func ApplyThemeToTable(tbl *tview.Table, theme Theme) {
	tbl.SetBackgroundColor(tcell.ColorDefault)
	tbl.SetBorderColor(theme.Border)
	tbl.SetTitleColor(theme.Title)
	tbl.SetSelectedStyle(tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(theme.Highlight))
}

const dashboardTemplate = `{{.LabelColor}}Agendamentos Hoje:{{.ValueColor}} {{.TodayAppointments}}{{.LabelColor}}
Concluídos Hoje:{{.ValueColor}} {{.CompletedToday}}{{.LabelColor}}
Receita Hoje:{{.ValueColor}} {{.TodayRevenue}}{{.LabelColor}}
Total de Clientes:{{.ValueColor}} {{.TotalCustomers}}{{.LabelColor}}

Mutations:{{.ValueColor}} {{.TotalMutations}} ({{.MutationsPerMin}}/min){{.LabelColor}}
Snapshot Failures:{{.ValueColor}} {{.SnapshotFailures}}{{.LabelColor}}
Uptime:{{.ValueColor}} {{.Uptime}}{{.LabelColor}}
Goroutines:{{.ValueColor}} {{.GoRoutines}}{{.LabelColor}}
Memory:{{.ValueColor}} {{.MemoryUsage}}{{.SecondaryColor}}
Updated: {{.LastUpdated}}[-]`

type DashboardData struct {
	TodayAppointments int
	CompletedToday    int
	TodayRevenue      string
	TotalCustomers    int
	TotalMutations    int64
	MutationsPerMin   int64
	SnapshotFailures  int64
	Uptime            string
	GoRoutines        int
	MemoryUsage       string
	LastUpdated       string
	LabelColor        string
	ValueColor        string
	SecondaryColor    string
}

var dashboardTemplateParsed = template.Must(template.New("dashboard").Parse(dashboardTemplate))

func FormatDashboardWithTheme(summary store.DaySummary, stats telemetry.Stats, theme Theme) string {
	var labelColor, valueColor, secondaryColor string

	if theme.Name == "light" {
		labelColor = "[navy]"
		valueColor = "[teal]"
		secondaryColor = "[darkgray]"
	} else {
		labelColor = "[white]"
		valueColor = "[aqua]"
		secondaryColor = "[gray]"
	}

	data := DashboardData{
		TodayAppointments: summary.Appointments,
		CompletedToday:    summary.Completed,
		TodayRevenue:      format.Currency(summary.Revenue),
		TotalCustomers:    summary.TotalCustomers,
		TotalMutations:    stats.TotalMutations,
		MutationsPerMin:   stats.MutationsPerMin,
		SnapshotFailures:  stats.SnapshotFailures,
		Uptime:            formatDuration(stats.Uptime),
		GoRoutines:        stats.GoRoutines,
		MemoryUsage:       stats.MemoryUsage,
		LastUpdated:       format.Time(stats.LastUpdated),
		LabelColor:        labelColor,
		ValueColor:        valueColor,
		SecondaryColor:    secondaryColor,
	}

	var buf bytes.Buffer
	if err := dashboardTemplateParsed.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting dashboard: %v", err)
	}

	return buf.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

func FormatLogEntryWithTheme(entry telemetry.LogEntry, theme Theme) string {
	// The tint handler already includes ANSI colors and timestamp formatting,
	// so the message can be handed to tview as-is
	return tview.TranslateANSI(entry.Message)
}

// StatusColorTag maps an appointment status to a tview color tag.
func StatusColorTag(s store.Status, theme Theme) string {
	switch s {
	case store.StatusCompleted:
		return "[green]"
	case store.StatusCancelled:
		return "[red]"
	case store.StatusNoShow:
		if theme.Name == "light" {
			return "[darkgray]"
		}
		return "[gray]"
	default:
		return "[yellow]"
	}
}

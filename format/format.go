// Package format holds the stateless display helpers the console view layer
// uses: pt-BR date and currency formatting plus the form field round-trip
// for date and time inputs.
package format

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
	timeLayout     = "15:04"

	// Layouts accepted by the create/edit form fields
	DateInputLayout = "2006-01-02"
	TimeInputLayout = "15:04"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Date renders a date as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateTime renders a date with its time of day.
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// Time renders just the time of day.
func Time(t time.Time) string {
	return t.Format(timeLayout)
}

// Currency renders v as a BRL amount, e.g. "R$ 35,00".
func Currency(v float64) string {
	return printer.Sprintf("%v", currency.Symbol(currency.BRL.Amount(v)))
}

// DateInputValue renders t the way the date form field expects it.
func DateInputValue(t time.Time) string {
	return t.Format(DateInputLayout)
}

// TimeInputValue renders t the way the time form field expects it.
func TimeInputValue(t time.Time) string {
	return t.Format(TimeInputLayout)
}

// ParseDateTimeInput combines the date and time form fields into one local
// timestamp. An empty time field defaults to midnight.
func ParseDateTimeInput(date, clock string) (time.Time, error) {
	if clock == "" {
		return time.ParseInLocation(DateInputLayout, date, time.Local)
	}
	return time.ParseInLocation(DateInputLayout+" "+TimeInputLayout, date+" "+clock, time.Local)
}

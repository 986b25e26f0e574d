package store

import (
	"sort"
	"time"
)

// DaySummary holds the dashboard aggregates for one calendar day. All values
// are computed at read time from current store state.
type DaySummary struct {
	Day            time.Time
	Appointments   int
	Completed      int
	Revenue        float64
	TotalCustomers int
}

// SummarizeDay computes the appointment count, completed count and revenue
// for the given day, plus the total customer count. Revenue is the sum of
// the prices of services referenced by completed appointments on that day; a
// dangling service reference contributes nothing.
func SummarizeDay(appointments *AppointmentStore, customers *CustomerStore, services *ServiceStore, day time.Time) DaySummary {
	summary := DaySummary{
		Day:            day,
		TotalCustomers: len(customers.ListCustomers()),
	}

	for _, a := range appointments.ListByDate(day) {
		summary.Appointments++
		if a.Status != StatusCompleted {
			continue
		}
		summary.Completed++
		if svc, ok := services.GetService(a.ServiceID); ok {
			summary.Revenue += svc.Price
		}
	}

	return summary
}

// Upcoming returns the still-scheduled appointments for the given day,
// soonest first, capped at limit. A limit <= 0 means no cap.
func Upcoming(appointments *AppointmentStore, day time.Time, limit int) []Appointment {
	var result []Appointment
	for _, a := range appointments.ListByDate(day) {
		if a.Status == StatusScheduled {
			result = append(result, a)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result
}

// History returns the full ledger sorted descending by date, the order the
// appointment history view renders in.
func History(appointments *AppointmentStore) []Appointment {
	result := appointments.ListAppointments()
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}

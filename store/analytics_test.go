package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsStores(t *testing.T) (*AppointmentStore, *CustomerStore, *ServiceStore) {
	t.Helper()
	ctx := context.Background()
	opts := testOptions(newMemSnapshots())

	return NewAppointmentStore(ctx, opts), NewCustomerStore(ctx, opts), NewServiceStore(ctx, opts)
}

func TestSummarizeDay_RevenueFromCompletedAppointments(t *testing.T) {
	ctx := context.Background()
	appointments, customers, services := setupAnalyticsStores(t)

	// Second seed entry: Barba, price 25
	barba := services.ListServices()[1]
	today := time.Now()

	created, err := appointments.CreateAppointment(ctx, Appointment{
		CustomerID: uuid.New(),
		BarberID:   uuid.New(),
		ServiceID:  barba.ID,
		Date:       today,
	})
	require.NoError(t, err)
	require.NoError(t, appointments.UpdateStatus(ctx, created.ID, StatusCompleted))

	summary := SummarizeDay(appointments, customers, services, today)
	require.Equal(t, 1, summary.Appointments)
	require.Equal(t, 1, summary.Completed)
	require.Equal(t, 25.0, summary.Revenue)
	require.Equal(t, 0, summary.TotalCustomers)
}

func TestSummarizeDay_IgnoresOtherDaysAndStatuses(t *testing.T) {
	ctx := context.Background()
	appointments, customers, services := setupAnalyticsStores(t)

	svc := services.ListServices()[0]
	today := time.Now()
	tomorrow := today.AddDate(0, 0, 1)

	// Scheduled today: counted, no revenue
	_, err := appointments.CreateAppointment(ctx, Appointment{ServiceID: svc.ID, Date: today})
	require.NoError(t, err)

	// Completed tomorrow: not part of today's summary
	other, err := appointments.CreateAppointment(ctx, Appointment{ServiceID: svc.ID, Date: tomorrow})
	require.NoError(t, err)
	require.NoError(t, appointments.UpdateStatus(ctx, other.ID, StatusCompleted))

	_, err = customers.CreateCustomer(ctx, Customer{Name: "Ana Lima"})
	require.NoError(t, err)

	summary := SummarizeDay(appointments, customers, services, today)
	require.Equal(t, 1, summary.Appointments)
	require.Equal(t, 0, summary.Completed)
	require.Equal(t, 0.0, summary.Revenue)
	require.Equal(t, 1, summary.TotalCustomers)
}

func TestSummarizeDay_DanglingServiceReference(t *testing.T) {
	ctx := context.Background()
	appointments, customers, services := setupAnalyticsStores(t)

	today := time.Now()
	created, err := appointments.CreateAppointment(ctx, Appointment{
		ServiceID: uuid.New(), // never existed
		Date:      today,
	})
	require.NoError(t, err)
	require.NoError(t, appointments.UpdateStatus(ctx, created.ID, StatusCompleted))

	summary := SummarizeDay(appointments, customers, services, today)
	require.Equal(t, 1, summary.Completed)
	require.Equal(t, 0.0, summary.Revenue)
}

func TestUpcoming_SortedScheduledOnly(t *testing.T) {
	ctx := context.Background()
	appointments, _, _ := setupAnalyticsStores(t)

	day := mustParseLocal(t, "2025-03-14 00:00")

	late, err := appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 18:00")})
	require.NoError(t, err)
	early, err := appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 09:00")})
	require.NoError(t, err)
	done, err := appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-14 11:00")})
	require.NoError(t, err)
	require.NoError(t, appointments.UpdateStatus(ctx, done.ID, StatusCompleted))
	_, err = appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-15 09:00")})
	require.NoError(t, err)

	upcoming := Upcoming(appointments, day, 5)
	require.Len(t, upcoming, 2)
	require.Equal(t, early.ID, upcoming[0].ID)
	require.Equal(t, late.ID, upcoming[1].ID)

	// The cap applies after sorting
	capped := Upcoming(appointments, day, 1)
	require.Len(t, capped, 1)
	require.Equal(t, early.ID, capped[0].ID)
}

func TestHistory_DescendingByDate(t *testing.T) {
	ctx := context.Background()
	appointments, _, _ := setupAnalyticsStores(t)

	oldest, err := appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-01 10:00")})
	require.NoError(t, err)
	newest, err := appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-20 10:00")})
	require.NoError(t, err)
	middle, err := appointments.CreateAppointment(ctx, Appointment{Date: mustParseLocal(t, "2025-03-10 10:00")})
	require.NoError(t, err)

	history := History(appointments)
	require.Len(t, history, 3)
	require.Equal(t, newest.ID, history[0].ID)
	require.Equal(t, middle.ID, history[1].ID)
	require.Equal(t, oldest.ID, history[2].ID)
}

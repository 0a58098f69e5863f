package services

import (
	"context"
	"testing"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

func frozen() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type captureMailer struct {
	sent []notify.BookingEmail
	err  error
}

func (m *captureMailer) SendBookingConfirmation(ctx context.Context, msg notify.BookingEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	store      *memStore
	mailer     *captureMailer
	instructor models.User
	member     models.User
	aircraft   models.Aircraft
	dual       models.FlightType
	solo       models.FlightType
	landing    models.Chargeable
}

func (f fixture) staff() domain.Actor {
	return domain.Actor{UserID: f.instructor.ID, Name: f.instructor.FullName(), Role: domain.RoleInstructor}
}

func (f fixture) memberActor() domain.Actor {
	return domain.Actor{UserID: f.member.ID, Name: f.member.FullName(), Role: domain.RoleMember}
}

func (f fixture) bookings() BookingService {
	return BookingService{
		Store:    f.store,
		Mailer:   f.mailer,
		Invoices: f.invoices(),
		Now:      frozen,
	}
}

func (f fixture) invoices() InvoiceService {
	return InvoiceService{Store: f.store, Now: frozen}
}

func (f fixture) payments() PaymentService {
	return PaymentService{Store: f.store, Now: frozen}
}

// newFixture seeds an instructor, a member with $100 credit, ZK-ABC at
// tacho 2750.0 / hobbs 2800.0 and two flight types.
func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{store: newMemStore(), mailer: &captureMailer{}}

	f.instructor = models.User{FirstName: "Ivy", LastName: "Hart", Email: "ivy@aero.test", IsStaff: true, Role: domain.RoleInstructor}
	require.NoError(t, f.store.Users().Create(ctx, &f.instructor))
	f.member = models.User{FirstName: "Sam", LastName: "Reed", Email: "sam@aero.test", IsMember: true, Role: domain.RoleMember, CreditBalance: dec("100")}
	require.NoError(t, f.store.Users().Create(ctx, &f.member))

	f.aircraft = models.Aircraft{
		Registration: "ZK-ABC",
		Type:         "C172",
		Status:       models.AircraftActive,
		CurrentTacho: dec("2750.0"),
		CurrentHobbs: dec("2800.0"),
	}
	require.NoError(t, f.store.Aircraft().Create(ctx, &f.aircraft))

	f.dual = models.FlightType{Name: "Dual", HourlyRate: dec("220")}
	require.NoError(t, f.store.Catalog().CreateFlightType(ctx, &f.dual))
	f.solo = models.FlightType{Name: "Solo", HourlyRate: dec("180"), RequiresSolo: true}
	require.NoError(t, f.store.Catalog().CreateFlightType(ctx, &f.solo))

	f.landing = models.Chargeable{Name: "Landing NZAA", Category: models.ChargeLandingFee, Amount: dec("45")}
	require.NoError(t, f.store.Catalog().CreateChargeable(ctx, &f.landing))
	return f
}

func (f fixture) memberBookingInput(flightTypeID int64) MemberBookingInput {
	inst := f.instructor.ID
	desc := "circuits"
	return MemberBookingInput{
		UserID:       f.member.ID,
		AircraftID:   f.aircraft.ID,
		InstructorID: &inst,
		FlightTypeID: flightTypeID,
		StartTime:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		Description:  &desc,
	}
}

// bookFlying creates a confirmed member booking and checks it out.
func (f fixture) bookFlying(t *testing.T) models.BookingView {
	t.Helper()
	ctx := context.Background()
	svc := f.bookings()
	b, err := svc.CreateMember(ctx, f.memberActor(), f.memberBookingInput(f.dual.ID))
	require.NoError(t, err)
	v, err := svc.Checkout(ctx, f.staff(), b.ID, CheckoutInput{ETA: "11:00"})
	require.NoError(t, err)
	return v
}

package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleInvoiceInput(userID int64) InvoiceInput {
	return InvoiceInput{
		UserID: userID,
		FlightCharges: []models.FlightChargeLine{
			{Description: "Dual 1.0 hrs", Hours: dec("1.0"), Rate: dec("220"), Amount: dec("220.00")},
		},
		AdditionalCharges: []models.AdditionalChargeLine{
			{Name: "Landing", Category: models.ChargeLandingFee, Amount: dec("45"), Quantity: 1},
			{Name: "Airways", Category: models.ChargeAirwaysFee, Amount: dec("15"), Quantity: 2},
		},
	}
}

func TestCreateInvoiceTotals(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invoices().Create(context.Background(), f.staff(), exampleInvoiceInput(f.member.ID))
	require.NoError(t, err)

	assert.Equal(t, "295.00", inv.TotalAmount.StringFixed(2))
	assert.True(t, inv.TotalAmount.Equal(inv.FlightChargeTotal.Add(inv.AdditionalChargesTotal)))
	assert.Equal(t, "75", inv.AdditionalChargesTotal.String())
	assert.Equal(t, models.InvoicePending, inv.Status)
	assert.True(t, fixedNow.AddDate(0, 0, 30).Equal(inv.DueDate))
	assert.Regexp(t, regexp.MustCompile(`^INV-20260314-[0-9A-F]{8}$`), inv.InvoiceNumber)

	stored, ok := f.store.st.invoices[inv.ID]
	require.True(t, ok)
	assert.Equal(t, inv.InvoiceNumber, stored.InvoiceNumber)
	assert.Len(t, f.store.st.invoiceLines, 2)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices().Create(ctx, f.memberActor(), exampleInvoiceInput(f.member.ID))
	assert.True(t, domain.IsForbidden(err))

	_, err = f.invoices().Create(ctx, f.staff(), InvoiceInput{UserID: f.member.ID})
	assert.True(t, domain.IsValidation(err))

	in := exampleInvoiceInput(f.member.ID)
	in.AdditionalCharges[1].Quantity = 0
	_, err = f.invoices().Create(ctx, f.staff(), in)
	assert.True(t, domain.IsValidation(err))

	in = exampleInvoiceInput(f.member.ID)
	in.AdditionalCharges[0].Category = "Fuel"
	_, err = f.invoices().Create(ctx, f.staff(), in)
	assert.True(t, domain.IsValidation(err))

	_, err = f.invoices().Create(ctx, f.staff(), exampleInvoiceInput(9999))
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, f.store.st.invoices)
}

func TestCreateInvoiceDefaultsCategory(t *testing.T) {
	f := newFixture(t)
	in := exampleInvoiceInput(f.member.ID)
	in.AdditionalCharges[0].Category = ""

	inv, err := f.invoices().Create(context.Background(), f.staff(), in)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeOther, inv.AdditionalCharges[0].Category)
}

func TestNewInvoiceNumberFormat(t *testing.T) {
	a := NewInvoiceNumber(fixedNow)
	b := NewInvoiceNumber(fixedNow)
	assert.Regexp(t, `^INV-20260314-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestInvoiceListReportsOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	due := fixedNow.Add(-time.Hour)
	in := exampleInvoiceInput(f.member.ID)
	in.DueDate = &due
	_, err := f.invoices().Create(ctx, f.staff(), in)
	require.NoError(t, err)

	list, err := f.invoices().List(ctx, f.memberActor(), models.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.InvoiceOverdue, list[0].Status)

	other, err := f.invoices().List(ctx, domain.Actor{UserID: 777, Role: domain.RoleMember}, models.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCancelInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices().Create(ctx, f.staff(), exampleInvoiceInput(f.member.ID))
	require.NoError(t, err)

	cancelled, err := f.invoices().Cancel(ctx, f.staff(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceCancelled, cancelled.Status)

	_, err = f.invoices().Cancel(ctx, f.staff(), inv.ID)
	assert.True(t, domain.IsConflict(err))

	_, err = f.payments().RecordPayment(ctx, f.staff(), inv.ID, PaymentInput{PaymentMethod: models.PaymentCash})
	assert.True(t, domain.IsConflict(err))
}

func TestCancelInvoiceWithPaymentsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices().Create(ctx, f.staff(), exampleInvoiceInput(f.member.ID))
	require.NoError(t, err)
	amount := dec("10")
	_, err = f.payments().RecordPayment(ctx, f.staff(), inv.ID, PaymentInput{Amount: &amount, PaymentMethod: models.PaymentCash})
	require.NoError(t, err)

	_, err = f.invoices().Cancel(ctx, f.staff(), inv.ID)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, models.InvoicePending, f.store.st.invoices[inv.ID].Status)
}

func TestQuoteDoesNotWrite(t *testing.T) {
	f := newFixture(t)
	landing := f.landing.ID
	q, err := f.invoices().Quote(context.Background(), f.memberActor(), QuoteInput{
		AircraftID:   f.aircraft.ID,
		FlightTypeID: f.dual.ID,
		TachoEnd:     dec("2751.0"),
		HobbsEnd:     dec("2801.0"),
		AdditionalCharges: []models.AdditionalChargeLine{
			{ChargeableID: &landing, Amount: dec("45"), Quantity: 1},
			{Name: "Airways", Amount: dec("15"), Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", q.FlightCharge.Hours.String())
	assert.Equal(t, "295.00", q.TotalAmount.StringFixed(2))
	assert.Empty(t, f.store.st.invoices)
	assert.Equal(t, "2750", f.store.st.aircraft[f.aircraft.ID].CurrentTacho.String())
}

func TestGetInvoiceDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices().Create(ctx, f.staff(), exampleInvoiceInput(f.member.ID))
	require.NoError(t, err)
	amount := dec("95")
	_, err = f.payments().RecordPayment(ctx, f.memberActor(), inv.ID, PaymentInput{Amount: &amount, PaymentMethod: models.PaymentCard})
	require.NoError(t, err)

	d, err := f.invoices().Get(ctx, f.memberActor(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "95", d.Paid.String())
	assert.Equal(t, "200", d.Balance.String())
	assert.Len(t, d.Payments, 1)

	_, err = f.invoices().Get(ctx, domain.Actor{UserID: 777, Role: domain.RoleMember}, inv.ID)
	assert.True(t, domain.IsForbidden(err))
}

func TestBookingIsInvoicedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	flying := f.bookFlying(t)

	res, err := f.bookings().Complete(ctx, f.staff(), flying.ID, CompleteInput{
		TachoEnd:      dec("2751.0"),
		HobbsEnd:      dec("2801.0"),
		CreateInvoice: true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Invoice)

	in := exampleInvoiceInput(f.member.ID)
	in.BookingID = &flying.ID
	_, err = f.invoices().Create(ctx, f.staff(), in)
	assert.True(t, domain.IsConflict(err), "got %v", err)
	assert.Len(t, f.store.st.invoices, 1)

	// a cancelled invoice frees the booking for re-billing
	_, err = f.invoices().Cancel(ctx, f.staff(), res.Invoice.ID)
	require.NoError(t, err)
	again, err := f.invoices().Create(ctx, f.staff(), in)
	require.NoError(t, err)
	assert.Equal(t, &flying.ID, again.BookingID)
	assert.Len(t, f.store.st.invoices, 2)
}

func TestQuoteBookingRequiresOwnerOrStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	flying := f.bookFlying(t)
	in := QuoteInput{BookingID: &flying.ID, TachoEnd: dec("2751.0"), HobbsEnd: dec("2801.0")}

	stranger := domain.Actor{UserID: 777, Role: domain.RoleMember}
	_, err := f.invoices().Quote(ctx, stranger, in)
	assert.True(t, domain.IsForbidden(err), "got %v", err)

	q, err := f.invoices().Quote(ctx, f.memberActor(), in)
	require.NoError(t, err)
	assert.Equal(t, "220.00", q.FlightCharge.Amount.StringFixed(2))

	_, err = f.invoices().Quote(ctx, f.staff(), in)
	require.NoError(t, err)
}

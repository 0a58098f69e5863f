package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/metrics"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultInvoiceDueDays = 30

type InvoiceService struct {
	Store     repositories.Store
	DueDays   int
	RequestID string
	Now       func() time.Time
}

type InvoiceInput struct {
	UserID            int64                         `json:"user_id"`
	BookingID         *int64                        `json:"booking_id"`
	FlightCharges     []models.FlightChargeLine     `json:"flight_charges"`
	AdditionalCharges []models.AdditionalChargeLine `json:"additional_charges"`
	DueDate           *time.Time                    `json:"due_date"`
}

// QuoteInput previews a completion without writing anything.
type QuoteInput struct {
	BookingID         *int64                        `json:"booking_id"`
	AircraftID        int64                         `json:"aircraft_id"`
	FlightTypeID      int64                         `json:"flight_type_id"`
	TachoEnd          decimal.Decimal               `json:"tacho_end"`
	HobbsEnd          decimal.Decimal               `json:"hobbs_end"`
	AdditionalCharges []models.AdditionalChargeLine `json:"additional_charges"`
}

type Quote struct {
	FlightCharge      models.FlightChargeLine       `json:"flight_charge"`
	AdditionalCharges []models.AdditionalChargeLine `json:"additional_charges"`
	domain.InvoiceTotals
}

func (s InvoiceService) Create(ctx context.Context, actor domain.Actor, in InvoiceInput) (models.Invoice, error) {
	if err := requireStaff(actor); err != nil {
		return models.Invoice{}, err
	}
	var inv models.Invoice
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		var err error
		inv, err = s.create(ctx, r, in)
		return err
	})
	if err != nil {
		utils.LogError(s.RequestID, "invoice", "create", err)
		return models.Invoice{}, err
	}
	metrics.InvoiceCreated()
	return inv, nil
}

// create writes the invoice and its chargeable tracking rows through r,
// which is always a transaction.
func (s InvoiceService) create(ctx context.Context, r repositories.Repos, in InvoiceInput) (models.Invoice, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return models.Invoice{}, err
	}
	if len(in.FlightCharges) == 0 && len(in.AdditionalCharges) == 0 {
		return models.Invoice{}, domain.ValidationError{Field: "charges", Msg: "at least one line is required"}
	}
	if _, err := r.Users().Get(ctx, in.UserID); err != nil {
		return models.Invoice{}, err
	}
	if in.BookingID != nil {
		// the booking row lock serializes concurrent invoice attempts
		if _, err := r.Bookings().GetForUpdate(ctx, *in.BookingID); err != nil {
			return models.Invoice{}, err
		}
		existing, err := r.Invoices().GetByBooking(ctx, *in.BookingID)
		switch {
		case err == nil:
			return models.Invoice{}, domain.ConflictError{
				Resource: "invoice",
				Msg:      fmt.Sprintf("booking %d is already invoiced as %s", *in.BookingID, existing.InvoiceNumber),
			}
		case !domain.IsNotFound(err):
			return models.Invoice{}, err
		}
	}

	additional, err := resolveChargeables(ctx, r, in.AdditionalCharges)
	if err != nil {
		return models.Invoice{}, err
	}
	flight := make([]models.FlightChargeLine, len(in.FlightCharges))
	for i, l := range in.FlightCharges {
		l.Amount = utils.RoundMoney(l.Amount)
		flight[i] = l
	}
	totals, err := domain.ComputeInvoiceTotals(flight, additional)
	if err != nil {
		return models.Invoice{}, err
	}

	now := clock(s.Now)
	due := now.AddDate(0, 0, s.dueDays())
	if in.DueDate != nil {
		due = in.DueDate.UTC()
	}
	inv := models.Invoice{
		UserID:                 in.UserID,
		BookingID:              in.BookingID,
		FlightCharges:          flight,
		AdditionalCharges:      additional,
		FlightChargeTotal:      totals.FlightChargeTotal,
		AdditionalChargesTotal: totals.AdditionalChargesTotal,
		TotalAmount:            totals.TotalAmount,
		Status:                 models.InvoicePending,
		DueDate:                due,
	}

	const attempts = 3
	for i := 0; ; i++ {
		inv.InvoiceNumber = NewInvoiceNumber(now)
		err = r.Invoices().Create(ctx, &inv)
		if err == nil || !domain.IsConflict(err) || i == attempts-1 {
			break
		}
	}
	if err != nil {
		return models.Invoice{}, err
	}

	rows := make([]models.InvoiceChargeable, 0, len(additional))
	for _, l := range additional {
		rows = append(rows, models.InvoiceChargeable{
			InvoiceID:    inv.ID,
			ChargeableID: l.ChargeableID,
			Name:         l.Name,
			Amount:       l.Amount,
			Quantity:     l.Quantity,
			Total:        l.Total(),
		})
	}
	if len(rows) > 0 {
		if err := r.Invoices().AddChargeables(ctx, rows); err != nil {
			return models.Invoice{}, err
		}
	}
	utils.LogEvent(s.RequestID, "invoice", "create", fmt.Sprintf("invoice=%s user_id=%d total=%s", inv.InvoiceNumber, inv.UserID, inv.TotalAmount.StringFixed(2)))
	return inv, nil
}

func (s InvoiceService) dueDays() int {
	if s.DueDays > 0 {
		return s.DueDays
	}
	return defaultInvoiceDueDays
}

// NewInvoiceNumber returns INV-YYYYMMDD-XXXXXXXX with a random suffix.
func NewInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "INV-" + now.UTC().Format("20060102") + "-" + suffix
}

// resolveChargeables fills catalog defaults into lines that reference a chargeable.
func resolveChargeables(ctx context.Context, r repositories.Repos, lines []models.AdditionalChargeLine) ([]models.AdditionalChargeLine, error) {
	out := make([]models.AdditionalChargeLine, 0, len(lines))
	for i, l := range lines {
		if l.ChargeableID != nil {
			c, err := r.Catalog().GetChargeable(ctx, *l.ChargeableID)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(l.Name) == "" {
				l.Name = c.Name
			}
			if l.Category == "" {
				l.Category = c.Category
			}
		}
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return nil, domain.ValidationError{Field: fmt.Sprintf("additional_charges[%d].name", i), Msg: "required"}
		}
		if l.Category == "" {
			l.Category = models.ChargeOther
		}
		if !models.ValidChargeCategory(l.Category) {
			return nil, domain.ValidationError{Field: fmt.Sprintf("additional_charges[%d].category", i), Msg: "unknown category"}
		}
		l.Amount = utils.RoundMoney(l.Amount)
		out = append(out, l)
	}
	return out, nil
}

func (s InvoiceService) Get(ctx context.Context, actor domain.Actor, id int64) (models.InvoiceDetail, error) {
	inv, err := s.Store.Invoices().Get(ctx, id)
	if err != nil {
		return models.InvoiceDetail{}, err
	}
	if err := requireSelfOrStaff(actor, inv.UserID); err != nil {
		return models.InvoiceDetail{}, err
	}
	payments, err := s.Store.Payments().ListByInvoice(ctx, id)
	if err != nil {
		return models.InvoiceDetail{}, err
	}
	return invoiceDetail(inv, payments, clock(s.Now)), nil
}

func invoiceDetail(inv models.Invoice, payments []models.Payment, now time.Time) models.InvoiceDetail {
	paid := sumPayments(payments)
	balance := inv.TotalAmount.Sub(paid)
	if balance.IsNegative() || inv.Status == models.InvoiceCancelled {
		balance = decimal.Zero
	}
	inv.Status = inv.EffectiveStatus(now)
	return models.InvoiceDetail{Invoice: inv, Payments: payments, Paid: paid, Balance: balance}
}

func sumPayments(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func (s InvoiceService) List(ctx context.Context, actor domain.Actor, f models.InvoiceFilter) ([]models.Invoice, error) {
	if !actor.IsStaff() {
		uid := actor.UserID
		f.UserID = &uid
	}
	out, err := s.Store.Invoices().List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := clock(s.Now)
	for i := range out {
		out[i].Status = out[i].EffectiveStatus(now)
	}
	return out, nil
}

// Cancel voids an invoice that has no payments against it.
func (s InvoiceService) Cancel(ctx context.Context, actor domain.Actor, id int64) (models.Invoice, error) {
	if err := requireStaff(actor); err != nil {
		return models.Invoice{}, err
	}
	var inv models.Invoice
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		var err error
		inv, err = r.Invoices().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv.Status != models.InvoicePending {
			return domain.ConflictError{Resource: "invoice", Msg: "only pending invoices can be cancelled"}
		}
		payments, err := r.Payments().ListByInvoice(ctx, id)
		if err != nil {
			return err
		}
		if len(payments) > 0 {
			return domain.ConflictError{Resource: "invoice", Msg: "invoice has payments"}
		}
		inv.Status = models.InvoiceCancelled
		return r.Invoices().UpdateStatus(ctx, id, models.InvoiceCancelled)
	})
	if err != nil {
		utils.LogError(s.RequestID, "invoice", "cancel", err)
		return models.Invoice{}, err
	}
	utils.LogEvent(s.RequestID, "invoice", "cancel", "invoice="+inv.InvoiceNumber)
	return inv, nil
}

// Quote runs the charge calculator against current meters (or the booking's
// checkout readings) and returns the would-be totals. Members may only
// quote their own bookings.
func (s InvoiceService) Quote(ctx context.Context, actor domain.Actor, in QuoteInput) (Quote, error) {
	var (
		start       models.MeterReadings
		recordHobbs bool
	)
	aircraftID, flightTypeID := in.AircraftID, in.FlightTypeID
	if in.BookingID != nil {
		b, err := s.Store.Bookings().Get(ctx, *in.BookingID)
		if err != nil {
			return Quote{}, err
		}
		if err := requireSelfOrStaff(actor, b.UserID); err != nil {
			return Quote{}, err
		}
		aircraftID = b.AircraftID
		if flightTypeID == 0 {
			flightTypeID = b.FlightTypeID
		}
		if b.TachoStart != nil && b.HobbsStart != nil {
			start = models.MeterReadings{Tacho: *b.TachoStart, Hobbs: *b.HobbsStart}
		}
	}
	if err := requireID("aircraft_id", aircraftID); err != nil {
		return Quote{}, err
	}
	if err := requireID("flight_type_id", flightTypeID); err != nil {
		return Quote{}, err
	}
	ac, err := s.Store.Aircraft().Get(ctx, aircraftID)
	if err != nil {
		return Quote{}, err
	}
	recordHobbs = ac.RecordHobbs
	if start.Tacho.IsZero() && start.Hobbs.IsZero() {
		start = ac.Readings()
	}
	ft, err := s.Store.Catalog().GetFlightType(ctx, flightTypeID)
	if err != nil {
		return Quote{}, err
	}

	line, err := domain.ComputeFlightCharge(domain.FlightChargeInput{
		Start:       start,
		End:         models.MeterReadings{Tacho: in.TachoEnd, Hobbs: in.HobbsEnd},
		RecordHobbs: recordHobbs,
		FlightType:  ft,
	})
	if err != nil {
		return Quote{}, err
	}
	additional, err := resolveChargeables(ctx, s.Store, in.AdditionalCharges)
	if err != nil {
		return Quote{}, err
	}
	totals, err := domain.ComputeInvoiceTotals([]models.FlightChargeLine{line}, additional)
	if err != nil {
		return Quote{}, err
	}
	return Quote{FlightCharge: line, AdditionalCharges: additional, InvoiceTotals: totals}, nil
}

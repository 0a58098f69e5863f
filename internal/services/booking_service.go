package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/metrics"
	"flightschool/internal/notify"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/shopspring/decimal"
)

// BookingService drives a booking through unconfirmed -> confirmed -> flying -> complete.
type BookingService struct {
	Store     repositories.Store
	Mailer    notify.Sender
	Invoices  InvoiceService
	RequestID string
	Now       func() time.Time
}

type MemberBookingInput struct {
	UserID       int64     `json:"user_id"`
	AircraftID   int64     `json:"aircraft_id"`
	InstructorID *int64    `json:"instructor_id"`
	FlightTypeID int64     `json:"flight_type_id"`
	LessonID     *int64    `json:"lesson_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Description  *string   `json:"description"`
	Route        *string   `json:"route"`
}

// TrialContact identifies a trial-flight customer who may not be on file yet.
type TrialContact struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}

type TrialBookingInput struct {
	Contact      TrialContact `json:"contact"`
	AircraftID   int64        `json:"aircraft_id"`
	InstructorID *int64       `json:"instructor_id"`
	FlightTypeID int64        `json:"flight_type_id"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	Description  *string      `json:"description"`
	VoucherCode  *string      `json:"voucher_code"`
}

type CheckoutInput struct {
	ETA         string  `json:"eta"`
	Route       *string `json:"route"`
	Description *string `json:"description"`
}

type CompleteInput struct {
	TachoEnd          decimal.Decimal               `json:"tacho_end"`
	HobbsEnd          decimal.Decimal               `json:"hobbs_end"`
	CreateInvoice     bool                          `json:"create_invoice"`
	AdditionalCharges []models.AdditionalChargeLine `json:"additional_charges"`
	Description       string                        `json:"description"`
}

type CompleteResult struct {
	Booking models.BookingView `json:"booking"`
	Invoice *models.Invoice    `json:"invoice,omitempty"`
}

func (s BookingService) mailer() notify.Sender {
	if s.Mailer != nil {
		return s.Mailer
	}
	return notify.Noop{}
}

// CreateMember inserts a member booking directly as confirmed and sends the
// confirmation email before commit; a failed send leaves nothing behind.
func (s BookingService) CreateMember(ctx context.Context, actor domain.Actor, in MemberBookingInput) (models.BookingView, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return models.BookingView{}, err
	}
	if err := requireSelfOrStaff(actor, in.UserID); err != nil {
		return models.BookingView{}, err
	}
	if err := validateWindow(in.AircraftID, in.FlightTypeID, in.StartTime, in.EndTime); err != nil {
		return models.BookingView{}, err
	}

	b := models.Booking{
		AircraftID:   in.AircraftID,
		UserID:       in.UserID,
		InstructorID: in.InstructorID,
		FlightTypeID: in.FlightTypeID,
		LessonID:     in.LessonID,
		BookingType:  models.BookingTypeMember,
		StartTime:    in.StartTime.UTC(),
		EndTime:      in.EndTime.UTC(),
		Status:       models.BookingConfirmed,
		Description:  utils.TrimPtr(in.Description),
		Route:        utils.TrimPtr(in.Route),
	}

	var view models.BookingView
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		if _, err := r.Users().Get(ctx, b.UserID); err != nil {
			return err
		}
		if err := checkReferences(ctx, r, b); err != nil {
			return err
		}
		if err := r.Bookings().Create(ctx, &b); err != nil {
			return err
		}
		v, err := r.Bookings().GetView(ctx, b.ID)
		if err != nil {
			return err
		}
		if err := s.mailer().SendBookingConfirmation(ctx, confirmationEmail(v)); err != nil {
			return domain.InternalError{Msg: "booking confirmation email failed", Err: err}
		}
		view = v
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "booking", "create_member", err)
		return models.BookingView{}, err
	}
	metrics.BookingTransition(string(models.BookingConfirmed))
	utils.LogEvent(s.RequestID, "booking", "create_member", fmt.Sprintf("booking_id=%d user_id=%d", view.ID, view.UserID))
	return view, nil
}

// CreateTrial records a trial flight as unconfirmed, creating a non-member
// contact when the email is not on file.
func (s BookingService) CreateTrial(ctx context.Context, actor domain.Actor, in TrialBookingInput) (models.BookingView, error) {
	if err := requireStaff(actor); err != nil {
		return models.BookingView{}, err
	}
	first, err := requireText("contact.first_name", in.Contact.FirstName)
	if err != nil {
		return models.BookingView{}, err
	}
	email, err := requireEmail("contact.email", in.Contact.Email)
	if err != nil {
		return models.BookingView{}, err
	}
	if err := validateWindow(in.AircraftID, in.FlightTypeID, in.StartTime, in.EndTime); err != nil {
		return models.BookingView{}, err
	}

	b := models.Booking{
		AircraftID:   in.AircraftID,
		InstructorID: in.InstructorID,
		FlightTypeID: in.FlightTypeID,
		BookingType:  models.BookingTypeTrial,
		StartTime:    in.StartTime.UTC(),
		EndTime:      in.EndTime.UTC(),
		Status:       models.BookingUnconfirmed,
		Description:  utils.TrimPtr(in.Description),
		VoucherCode:  utils.TrimPtr(in.VoucherCode),
	}

	var view models.BookingView
	err = s.Store.InTx(ctx, func(r repositories.Repos) error {
		u, err := r.Users().GetByEmail(ctx, email)
		switch {
		case err == nil:
		case domain.IsNotFound(err):
			u = models.User{
				FirstName: first,
				LastName:  strings.TrimSpace(in.Contact.LastName),
				Email:     email,
				Phone:     utils.TrimPtr(in.Contact.Phone),
				Role:      domain.RoleMember,
			}
			if err := r.Users().Create(ctx, &u); err != nil {
				return err
			}
		default:
			return err
		}
		b.UserID = u.ID
		if err := checkReferences(ctx, r, b); err != nil {
			return err
		}
		if err := r.Bookings().Create(ctx, &b); err != nil {
			return err
		}
		view, err = r.Bookings().GetView(ctx, b.ID)
		return err
	})
	if err != nil {
		utils.LogError(s.RequestID, "booking", "create_trial", err)
		return models.BookingView{}, err
	}
	metrics.BookingTransition(string(models.BookingUnconfirmed))
	utils.LogEvent(s.RequestID, "booking", "create_trial", fmt.Sprintf("booking_id=%d user_id=%d", view.ID, view.UserID))
	return view, nil
}

func (s BookingService) Get(ctx context.Context, actor domain.Actor, id int64) (models.BookingView, error) {
	v, err := s.Store.Bookings().GetView(ctx, id)
	if err != nil {
		return models.BookingView{}, err
	}
	if err := requireSelfOrStaff(actor, v.UserID); err != nil {
		return models.BookingView{}, err
	}
	return v, nil
}

// List feeds the scheduler. Members only ever see their own bookings.
func (s BookingService) List(ctx context.Context, actor domain.Actor, f models.BookingFilter) ([]models.BookingView, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	if !actor.IsStaff() {
		uid := actor.UserID
		f.UserID = &uid
	}
	return s.Store.Bookings().List(ctx, f)
}

func (s BookingService) Confirm(ctx context.Context, actor domain.Actor, id int64) (models.BookingView, error) {
	if err := requireStaff(actor); err != nil {
		return models.BookingView{}, err
	}
	return s.transition(ctx, "confirm", id, models.BookingConfirmed, nil)
}

// Checkout copies the aircraft's meters into the booking at the moment of departure.
func (s BookingService) Checkout(ctx context.Context, actor domain.Actor, id int64, in CheckoutInput) (models.BookingView, error) {
	now := clock(s.Now)
	eta, err := utils.CombineDateAndClock(now, in.ETA)
	if err != nil {
		return models.BookingView{}, domain.ValidationError{Field: "eta", Msg: err.Error()}
	}

	return s.transition(ctx, "checkout", id, models.BookingFlying, func(r repositories.Repos, b *models.Booking) error {
		if err := requireSelfOrStaff(actor, b.UserID); err != nil {
			return err
		}
		ac, err := r.Aircraft().GetForUpdate(ctx, b.AircraftID)
		if err != nil {
			return err
		}
		if ac.Status != models.AircraftActive {
			return domain.ConflictError{Resource: "aircraft", Msg: fmt.Sprintf("%s is %s", ac.Registration, ac.Status)}
		}
		ft, err := r.Catalog().GetFlightType(ctx, b.FlightTypeID)
		if err != nil {
			return err
		}
		if ft.RequiresSolo {
			if err := requireApprovedSignout(ctx, r, b.ID); err != nil {
				return err
			}
		}

		tacho, hobbs := ac.CurrentTacho, ac.CurrentHobbs
		b.CheckedOutTime = &now
		b.ETA = &eta
		b.TachoStart = &tacho
		b.HobbsStart = &hobbs
		if route := utils.TrimPtr(in.Route); route != nil {
			b.Route = route
		}
		if desc := utils.TrimPtr(in.Description); desc != nil {
			b.Description = desc
		}
		return nil
	})
}

// Complete closes a flight: end readings must exceed the checkout readings,
// the aircraft meters move forward to them, and optionally an invoice is
// raised in the same transaction.
func (s BookingService) Complete(ctx context.Context, actor domain.Actor, id int64, in CompleteInput) (CompleteResult, error) {
	if err := requireStaff(actor); err != nil {
		return CompleteResult{}, err
	}
	end := models.MeterReadings{Tacho: in.TachoEnd, Hobbs: in.HobbsEnd}
	if !end.Tacho.IsPositive() {
		return CompleteResult{}, domain.ValidationError{Field: "tacho_end", Msg: "required"}
	}
	if !end.Hobbs.IsPositive() {
		return CompleteResult{}, domain.ValidationError{Field: "hobbs_end", Msg: "required"}
	}

	var invoice *models.Invoice
	view, err := s.transition(ctx, "complete", id, models.BookingComplete, func(r repositories.Repos, b *models.Booking) error {
		if b.TachoStart == nil || b.HobbsStart == nil {
			return domain.ConflictError{Resource: "booking", Msg: "missing checkout readings"}
		}
		ac, err := r.Aircraft().GetForUpdate(ctx, b.AircraftID)
		if err != nil {
			return err
		}
		start := models.MeterReadings{Tacho: *b.TachoStart, Hobbs: *b.HobbsStart}
		hours, err := domain.BillableHours(start, end, ac.RecordHobbs)
		if err != nil {
			return err
		}
		if _, err := domain.BillableHours(ac.Readings(), end, ac.RecordHobbs); err != nil {
			return err
		}

		b.TachoEnd = &end.Tacho
		b.HobbsEnd = &end.Hobbs
		b.FlightTime = &hours
		if err := r.Aircraft().UpdateMeters(ctx, ac.ID, ac.Readings(), end); err != nil {
			return err
		}

		if !in.CreateInvoice {
			return nil
		}
		ft, err := r.Catalog().GetFlightType(ctx, b.FlightTypeID)
		if err != nil {
			return err
		}
		line, err := domain.ComputeFlightCharge(domain.FlightChargeInput{
			Start:       start,
			End:         end,
			RecordHobbs: ac.RecordHobbs,
			FlightType:  ft,
			Description: in.Description,
		})
		if err != nil {
			return err
		}
		bookingID := b.ID
		inv, err := s.Invoices.create(ctx, r, InvoiceInput{
			UserID:            b.UserID,
			BookingID:         &bookingID,
			FlightCharges:     []models.FlightChargeLine{line},
			AdditionalCharges: in.AdditionalCharges,
		})
		if err != nil {
			return err
		}
		invoice = &inv
		return nil
	})
	if err != nil {
		return CompleteResult{}, err
	}
	if invoice != nil {
		metrics.InvoiceCreated()
	}
	return CompleteResult{Booking: view, Invoice: invoice}, nil
}

// Edit applies the generic edit form. Status is never touched here.
func (s BookingService) Edit(ctx context.Context, actor domain.Actor, id int64, edit models.BookingEdit) (models.BookingView, error) {
	if err := requireStaff(actor); err != nil {
		return models.BookingView{}, err
	}
	var view models.BookingView
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		b, err := r.Bookings().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		// checkout and completion meter readings belong to the aircraft that flew
		if edit.AircraftID != nil && *edit.AircraftID != b.AircraftID &&
			(b.Status == models.BookingFlying || b.Status == models.BookingComplete) {
			return domain.ConflictError{
				Resource: "booking",
				Msg:      fmt.Sprintf("cannot change the aircraft of a booking that is %s", b.Status),
			}
		}
		edit.Apply(&b)
		if err := validateWindow(b.AircraftID, b.FlightTypeID, b.StartTime, b.EndTime); err != nil {
			return err
		}
		if edit.UserID != nil {
			if _, err := r.Users().Get(ctx, b.UserID); err != nil {
				return err
			}
		}
		if err := checkReferences(ctx, r, b); err != nil {
			return err
		}
		if err := r.Bookings().Update(ctx, b, b.Status); err != nil {
			return err
		}
		view, err = r.Bookings().GetView(ctx, b.ID)
		return err
	})
	if err != nil {
		utils.LogError(s.RequestID, "booking", "edit", err)
		return models.BookingView{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "edit", fmt.Sprintf("booking_id=%d", id))
	return view, nil
}

// transition locks the booking, checks the single forward step to `to`,
// lets mutate stamp the step's fields and writes the row guarded by the old status.
func (s BookingService) transition(ctx context.Context, action string, id int64, to models.BookingStatus, mutate func(r repositories.Repos, b *models.Booking) error) (models.BookingView, error) {
	var view models.BookingView
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		b, err := r.Bookings().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := b.Status
		if !from.CanTransitionTo(to) {
			return domain.ConflictError{
				Resource: "booking",
				Msg:      fmt.Sprintf("cannot %s a booking that is %s", action, from),
			}
		}
		if mutate != nil {
			if err := mutate(r, &b); err != nil {
				return err
			}
		}
		b.Status = to
		if err := r.Bookings().Update(ctx, b, from); err != nil {
			return err
		}
		view, err = r.Bookings().GetView(ctx, b.ID)
		return err
	})
	if err != nil {
		utils.LogError(s.RequestID, "booking", action, err)
		return models.BookingView{}, err
	}
	metrics.BookingTransition(string(to))
	utils.LogEvent(s.RequestID, "booking", action, fmt.Sprintf("booking_id=%d status=%s", id, to))
	return view, nil
}

func validateWindow(aircraftID, flightTypeID int64, start, end time.Time) error {
	if err := requireID("aircraft_id", aircraftID); err != nil {
		return err
	}
	if err := requireID("flight_type_id", flightTypeID); err != nil {
		return err
	}
	if start.IsZero() {
		return domain.ValidationError{Field: "start_time", Msg: "required"}
	}
	if !end.After(start) {
		return domain.ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	return nil
}

func checkReferences(ctx context.Context, r repositories.Repos, b models.Booking) error {
	if _, err := r.Aircraft().Get(ctx, b.AircraftID); err != nil {
		return err
	}
	if _, err := r.Catalog().GetFlightType(ctx, b.FlightTypeID); err != nil {
		return err
	}
	if b.InstructorID != nil {
		inst, err := r.Users().Get(ctx, *b.InstructorID)
		if err != nil {
			return err
		}
		if !inst.IsStaff {
			return domain.ValidationError{Field: "instructor_id", Msg: "user is not an instructor"}
		}
	}
	if b.LessonID != nil {
		if _, err := r.Catalog().GetLesson(ctx, *b.LessonID); err != nil {
			return err
		}
	}
	return nil
}

func requireApprovedSignout(ctx context.Context, r repositories.Repos, bookingID int64) error {
	form, err := r.Signouts().LatestForBooking(ctx, bookingID)
	if domain.IsNotFound(err) {
		return domain.ConflictError{Resource: "booking", Msg: "solo flight requires an approved sign-out"}
	}
	if err != nil {
		return err
	}
	if form.Status != models.SignoutApproved {
		return domain.ConflictError{Resource: "booking", Msg: "solo sign-out is " + string(form.Status)}
	}
	return nil
}

func confirmationEmail(v models.BookingView) notify.BookingEmail {
	return notify.BookingEmail{
		MemberName:     v.MemberName,
		MemberEmail:    v.MemberEmail,
		BookingDate:    utils.FormatDate(v.StartTime),
		AircraftReg:    v.AircraftReg,
		InstructorName: v.InstructorName,
		StartTime:      utils.FormatClock(v.StartTime),
		EndTime:        utils.FormatClock(v.EndTime),
		FlightType:     v.FlightTypeName,
	}
}

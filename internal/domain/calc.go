package domain

import (
	"strings"

	"flightschool/internal/domain/models"

	"github.com/shopspring/decimal"
)

// BillableHours validates end readings against start readings and returns the
// delta of the billable meter (hobbs when recordHobbs, tacho otherwise).
func BillableHours(start, end models.MeterReadings, recordHobbs bool) (decimal.Decimal, error) {
	if !end.Tacho.GreaterThan(start.Tacho) {
		return decimal.Zero, ValidationError{Field: "tacho_end", Msg: "must be greater than " + start.Tacho.String()}
	}
	if !end.Hobbs.GreaterThan(start.Hobbs) {
		return decimal.Zero, ValidationError{Field: "hobbs_end", Msg: "must be greater than " + start.Hobbs.String()}
	}
	if recordHobbs {
		return end.Hobbs.Sub(start.Hobbs), nil
	}
	return end.Tacho.Sub(start.Tacho), nil
}

type FlightChargeInput struct {
	Start       models.MeterReadings
	End         models.MeterReadings
	RecordHobbs bool
	FlightType  models.FlightType
	Description string
}

// ComputeFlightCharge produces the single synthetic flight line:
// billable hours x hourly rate, rounded to cents.
func ComputeFlightCharge(in FlightChargeInput) (models.FlightChargeLine, error) {
	hours, err := BillableHours(in.Start, in.End, in.RecordHobbs)
	if err != nil {
		return models.FlightChargeLine{}, err
	}
	if in.FlightType.HourlyRate.IsNegative() {
		return models.FlightChargeLine{}, ValidationError{Field: "hourly_rate", Msg: "must not be negative"}
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = strings.TrimSpace(in.FlightType.Name + " flight " + hours.String() + " hrs")
	}
	return models.FlightChargeLine{
		Description:  desc,
		FlightTypeID: in.FlightType.ID,
		Hours:        hours,
		Rate:         in.FlightType.HourlyRate,
		Amount:       hours.Mul(in.FlightType.HourlyRate).Round(2),
	}, nil
}

type InvoiceTotals struct {
	FlightChargeTotal      decimal.Decimal `json:"flight_charge_total"`
	AdditionalChargesTotal decimal.Decimal `json:"additional_charges_total"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
}

// ComputeInvoiceTotals sums flight lines and additional lines (amount x quantity).
func ComputeInvoiceTotals(flight []models.FlightChargeLine, additional []models.AdditionalChargeLine) (InvoiceTotals, error) {
	out := InvoiceTotals{
		FlightChargeTotal:      decimal.Zero,
		AdditionalChargesTotal: decimal.Zero,
	}
	for _, l := range flight {
		if l.Amount.IsNegative() {
			return InvoiceTotals{}, ValidationError{Field: "flight_charges", Msg: "amount must not be negative"}
		}
		out.FlightChargeTotal = out.FlightChargeTotal.Add(l.Amount)
	}
	for _, l := range additional {
		if l.Quantity < 1 {
			return InvoiceTotals{}, ValidationError{Field: "additional_charges", Msg: "quantity must be at least 1"}
		}
		if l.Amount.IsNegative() {
			return InvoiceTotals{}, ValidationError{Field: "additional_charges", Msg: "amount must not be negative"}
		}
		out.AdditionalChargesTotal = out.AdditionalChargesTotal.Add(l.Total())
	}
	out.TotalAmount = out.FlightChargeTotal.Add(out.AdditionalChargesTotal)
	return out, nil
}

// SplitCredit bounds the requested credit to min(balance, total) and returns
// the credit actually used and the remainder to be paid by another method.
func SplitCredit(requested, balance, total decimal.Decimal) (credit, remainder decimal.Decimal) {
	credit = decimal.Max(decimal.Zero, decimal.Min(requested, balance, total))
	return credit, total.Sub(credit)
}

// AggregateRatings averages the supplied 1..5 category ratings.
func AggregateRatings(ratings map[string]int) (*decimal.Decimal, int, error) {
	allowed := map[string]bool{}
	for _, c := range models.DebriefCategories {
		allowed[c] = true
	}
	sum := 0
	for cat, r := range ratings {
		if !allowed[cat] {
			return nil, 0, ValidationError{Field: "ratings", Msg: "unknown category " + cat}
		}
		if r < 1 || r > 5 {
			return nil, 0, ValidationError{Field: "ratings." + cat, Msg: "must be between 1 and 5"}
		}
		sum += r
	}
	if len(ratings) == 0 {
		return nil, 0, nil
	}
	avg := decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(len(ratings))), 2)
	return &avg, len(ratings), nil
}

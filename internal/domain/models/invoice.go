package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// FlightChargeLine is the synthetic line produced from meter deltas.
type FlightChargeLine struct {
	Description  string          `json:"description"`
	FlightTypeID int64           `json:"flight_type_id"`
	Hours        decimal.Decimal `json:"hours"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
}

// AdditionalChargeLine is a catalog item with editable amount and quantity.
type AdditionalChargeLine struct {
	ChargeableID *int64          `json:"chargeable_id,omitempty"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Quantity     int             `json:"quantity"`
}

// Total is amount x quantity.
func (l AdditionalChargeLine) Total() decimal.Decimal {
	return l.Amount.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Invoice struct {
	ID                     int64                          `db:"id" json:"id"`
	InvoiceNumber          string                         `db:"invoice_number" json:"invoice_number"`
	UserID                 int64                          `db:"user_id" json:"user_id"`
	BookingID              *int64                         `db:"booking_id" json:"booking_id"`
	FlightCharges          JSONList[FlightChargeLine]     `db:"flight_charges" json:"flight_charges"`
	AdditionalCharges      JSONList[AdditionalChargeLine] `db:"additional_charges" json:"additional_charges"`
	FlightChargeTotal      decimal.Decimal                `db:"flight_charge_total" json:"flight_charge_total"`
	AdditionalChargesTotal decimal.Decimal                `db:"additional_charges_total" json:"additional_charges_total"`
	TotalAmount            decimal.Decimal                `db:"total_amount" json:"total_amount"`
	Status                 InvoiceStatus                  `db:"status" json:"status"`
	DueDate                time.Time                      `db:"due_date" json:"due_date"`
	CreatedAt              time.Time                      `db:"created_at" json:"created_at"`
}

// EffectiveStatus reports overdue for pending invoices past their due date.
func (i Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoicePending && now.After(i.DueDate) {
		return InvoiceOverdue
	}
	return i.Status
}

// InvoiceChargeable is a denormalized tracking row per additional-charge line.
type InvoiceChargeable struct {
	ID           int64           `db:"id" json:"id"`
	InvoiceID    int64           `db:"invoice_id" json:"invoice_id"`
	ChargeableID *int64          `db:"chargeable_id" json:"chargeable_id"`
	Name         string          `db:"name" json:"name"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Quantity     int             `db:"quantity" json:"quantity"`
	Total        decimal.Decimal `db:"total" json:"total"`
}

type InvoiceFilter struct {
	UserID *int64
	Status InvoiceStatus
}

type InvoiceDetail struct {
	Invoice
	Payments []Payment       `json:"payments"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

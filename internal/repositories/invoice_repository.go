package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
)

const invoiceColumns = `id, invoice_number, user_id, booking_id, flight_charges, additional_charges,
	flight_charge_total, additional_charges_total, total_amount, status, due_date, created_at`

type InvoiceRepository struct {
	DB intdb.DBTX
}

func (r InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	inv.CreatedAt = now()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO invoices (invoice_number, user_id, booking_id, flight_charges, additional_charges,
			flight_charge_total, additional_charges_total, total_amount, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.InvoiceNumber, inv.UserID, inv.BookingID, inv.FlightCharges, inv.AdditionalCharges,
		inv.FlightChargeTotal, inv.AdditionalChargesTotal, inv.TotalAmount, inv.Status, inv.DueDate, inv.CreatedAt,
	)
	id, err := insertID(res, err, "invoice")
	if err != nil {
		return err
	}
	inv.ID = id
	return nil
}

func (r InvoiceRepository) Get(ctx context.Context, id int64) (models.Invoice, error) {
	var inv models.Invoice
	if err := r.DB.GetContext(ctx, &inv, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id); err != nil {
		return models.Invoice{}, getErr(err, "invoice")
	}
	return inv, nil
}

func (r InvoiceRepository) GetForUpdate(ctx context.Context, id int64) (models.Invoice, error) {
	var inv models.Invoice
	if err := r.DB.GetContext(ctx, &inv, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ? FOR UPDATE`, id); err != nil {
		return models.Invoice{}, getErr(err, "invoice")
	}
	return inv, nil
}

// GetByBooking returns the newest non-cancelled invoice raised for a booking.
func (r InvoiceRepository) GetByBooking(ctx context.Context, bookingID int64) (models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.GetContext(ctx, &inv, `SELECT `+invoiceColumns+` FROM invoices
		WHERE booking_id = ? AND status <> ?
		ORDER BY id DESC LIMIT 1`, bookingID, models.InvoiceCancelled)
	if err != nil {
		return models.Invoice{}, getErr(err, "invoice")
	}
	return inv, nil
}

func (r InvoiceRepository) List(ctx context.Context, f models.InvoiceFilter) ([]models.Invoice, error) {
	where := []string{}
	args := []any{}
	if f.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *f.UserID)
	}
	switch f.Status {
	case "":
	case models.InvoiceOverdue:
		// overdue is derived from pending + due date, never stored
		where = append(where, "status = ? AND due_date < ?")
		args = append(args, models.InvoicePending, now())
	default:
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	out := []models.Invoice{}
	if err := r.DB.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

func (r InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status models.InvoiceStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE invoices SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return intdb.RequireAffected(res, domain.NotFoundError{Resource: "invoice"})
}

func (r InvoiceRepository) AddChargeables(ctx context.Context, rows []models.InvoiceChargeable) error {
	for _, row := range rows {
		_, err := r.DB.ExecContext(ctx, `
			INSERT INTO invoice_chargeables (invoice_id, chargeable_id, name, amount, quantity, total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			row.InvoiceID, row.ChargeableID, row.Name, row.Amount, row.Quantity, row.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice chargeable: %w", err)
		}
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"

	intdb "flightschool/internal/db"
	"flightschool/internal/domain/models"
)

type PaymentRepository struct {
	DB intdb.DBTX
}

func (r PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now()
	}
	if p.Status == "" {
		p.Status = models.PaymentCompleted
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO payments (invoice_id, user_id, amount, payment_method, status, payment_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.InvoiceID, p.UserID, p.Amount, p.PaymentMethod, p.Status, p.PaymentDate,
	)
	id, err := insertID(res, err, "payment")
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	out := []models.Payment{}
	err := r.DB.SelectContext(ctx, &out, `
		SELECT id, invoice_id, user_id, amount, payment_method, status, payment_date
		FROM payments WHERE invoice_id = ? ORDER BY payment_date, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return out, nil
}

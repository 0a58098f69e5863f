package services

import (
	"context"
	"fmt"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"
	"flightschool/internal/metrics"
	"flightschool/internal/repositories"
	"flightschool/internal/utils"

	"github.com/shopspring/decimal"
)

// PaymentService records payments against invoices, drawing on member credit first.
type PaymentService struct {
	Store     repositories.Store
	RequestID string
	Now       func() time.Time
}

var minPayment = decimal.New(1, -2)

type PaymentInput struct {
	// Amount defaults to the invoice's outstanding balance.
	Amount        *decimal.Decimal     `json:"amount"`
	UseCredit     bool                 `json:"use_credit"`
	CreditAmount  *decimal.Decimal     `json:"credit_amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type PaymentResult struct {
	Invoice    models.InvoiceDetail `json:"invoice"`
	Recorded   []models.Payment     `json:"recorded"`
	CreditUsed decimal.Decimal      `json:"credit_used"`
	Remainder  decimal.Decimal      `json:"remainder"`
}

// RecordPayment writes the credit drawdown, the credit payment row and the
// remainder payment row in one transaction, then marks the invoice paid once
// payments cover its total.
func (s PaymentService) RecordPayment(ctx context.Context, actor domain.Actor, invoiceID int64, in PaymentInput) (PaymentResult, error) {
	// amounts are checked after rounding so sub-cent input cannot become a zero payment
	if in.Amount != nil {
		a := utils.RoundMoney(*in.Amount)
		if a.LessThan(minPayment) {
			return PaymentResult{}, domain.ValidationError{Field: "amount", Msg: "must be at least 0.01"}
		}
		in.Amount = &a
	}
	if in.CreditAmount != nil {
		c := utils.RoundMoney(*in.CreditAmount)
		if c.LessThan(minPayment) {
			return PaymentResult{}, domain.ValidationError{Field: "credit_amount", Msg: "must be at least 0.01"}
		}
		in.CreditAmount = &c
	}
	if in.PaymentMethod == models.PaymentCredit {
		return PaymentResult{}, domain.ValidationError{Field: "payment_method", Msg: "use use_credit to pay from credit"}
	}

	now := clock(s.Now)
	var res PaymentResult
	err := s.Store.InTx(ctx, func(r repositories.Repos) error {
		inv, err := r.Invoices().GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := requireSelfOrStaff(actor, inv.UserID); err != nil {
			return err
		}
		if inv.Status == models.InvoiceCancelled || inv.Status == models.InvoicePaid {
			return domain.ConflictError{Resource: "invoice", Msg: "invoice is " + string(inv.Status)}
		}
		existing, err := r.Payments().ListByInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		paid := sumPayments(existing)
		balance := inv.TotalAmount.Sub(paid)
		if !balance.IsPositive() {
			return domain.ConflictError{Resource: "invoice", Msg: "nothing left to pay"}
		}

		amount := balance
		if in.Amount != nil {
			amount = *in.Amount
			if amount.GreaterThan(balance) {
				return domain.ValidationError{Field: "amount", Msg: "exceeds outstanding balance " + balance.StringFixed(2)}
			}
		}

		user, err := r.Users().GetForUpdate(ctx, inv.UserID)
		if err != nil {
			return err
		}
		credit, remainder := decimal.Zero, amount
		if in.UseCredit {
			requested := amount
			if in.CreditAmount != nil {
				requested = *in.CreditAmount
			}
			credit, remainder = domain.SplitCredit(requested, user.CreditBalance, amount)
		}
		if remainder.IsPositive() && !in.PaymentMethod.Valid() {
			return domain.ValidationError{Field: "payment_method", Msg: "required for the amount not covered by credit"}
		}

		if credit.IsPositive() {
			if err := r.Users().AdjustCredit(ctx, user.ID, credit.Neg()); err != nil {
				return err
			}
			p := models.Payment{
				InvoiceID:     inv.ID,
				UserID:        user.ID,
				Amount:        credit,
				PaymentMethod: models.PaymentCredit,
				Status:        models.PaymentCompleted,
				PaymentDate:   now,
			}
			if err := r.Payments().Create(ctx, &p); err != nil {
				return err
			}
			res.Recorded = append(res.Recorded, p)
		}
		if remainder.IsPositive() {
			p := models.Payment{
				InvoiceID:     inv.ID,
				UserID:        user.ID,
				Amount:        remainder,
				PaymentMethod: in.PaymentMethod,
				Status:        models.PaymentCompleted,
				PaymentDate:   now,
			}
			if err := r.Payments().Create(ctx, &p); err != nil {
				return err
			}
			res.Recorded = append(res.Recorded, p)
		}

		if !paid.Add(amount).LessThan(inv.TotalAmount) {
			if err := r.Invoices().UpdateStatus(ctx, inv.ID, models.InvoicePaid); err != nil {
				return err
			}
			inv.Status = models.InvoicePaid
		}
		res.CreditUsed, res.Remainder = credit, remainder
		res.Invoice = invoiceDetail(inv, append(existing, res.Recorded...), now)
		return nil
	})
	if err != nil {
		utils.LogError(s.RequestID, "payment", "record", err)
		return PaymentResult{}, err
	}
	for _, p := range res.Recorded {
		metrics.PaymentRecorded(string(p.PaymentMethod))
	}
	utils.LogEvent(s.RequestID, "payment", "record", fmt.Sprintf("invoice_id=%d credit=%s remainder=%s", invoiceID, res.CreditUsed.StringFixed(2), res.Remainder.StringFixed(2)))
	return res, nil
}

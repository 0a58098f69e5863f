package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentEftpos       PaymentMethod = "eftpos"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCredit       PaymentMethod = "credit"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentEftpos, PaymentBankTransfer, PaymentCredit:
		return true
	}
	return false
}

const PaymentCompleted = "completed"

type Payment struct {
	ID            int64           `db:"id" json:"id"`
	InvoiceID     int64           `db:"invoice_id" json:"invoice_id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method"`
	Status        string          `db:"status" json:"status"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"`
}

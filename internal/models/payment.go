package models

import "time"

// PaymentStatus is derived from the billed and paid amounts.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// DerivePaymentStatus computes the status enum: paid once nothing remains,
// pending while any payment was made, overdue otherwise.
func DerivePaymentStatus(totalAmount, paidAmount int64) PaymentStatus {
	switch {
	case totalAmount-paidAmount <= 0:
		return PaymentStatusPaid
	case paidAmount > 0:
		return PaymentStatusPending
	default:
		return PaymentStatusOverdue
	}
}

// StudentPaymentPermission is the grade-permission screen record. The
// 50%-threshold auto-grant rule operates on these; see PaymentRecord for the
// payment-management screen's independent full-payment rule.
type StudentPaymentPermission struct {
	StudentID     string        `json:"student_id"`
	StudentName   string        `json:"student_name"`
	StudentNameEn string        `json:"student_name_en"`
	Semester      string        `json:"semester"`
	TotalAmount   int64         `json:"total_amount"`
	PaidAmount    int64         `json:"paid_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CanViewGrades bool          `json:"can_view_grades"`
	IsAutoGranted bool          `json:"is_auto_granted"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PaymentRecord is the payment-management screen record. Editing the paid
// amount recomputes the derived fields; grade visibility here follows the
// full-payment rule only.
type PaymentRecord struct {
	StudentID     string        `json:"student_id"`
	StudentName   string        `json:"student_name"`
	StudentNameEn string        `json:"student_name_en"`
	Semester      string        `json:"semester"`
	TotalAmount   int64         `json:"total_amount"`
	PaidAmount    int64         `json:"paid_amount"`
	Remaining     int64         `json:"remaining"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CanViewGrades bool          `json:"can_view_grades"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// LedgerFilter captures filtering criteria for listing payment records.
type LedgerFilter struct {
	Status PaymentStatus
	Search string
}

// LedgerSummary aggregates the ledger for the finance dashboard.
type LedgerSummary struct {
	TotalBilled      int64 `json:"total_billed"`
	TotalCollected   int64 `json:"total_collected"`
	TotalOutstanding int64 `json:"total_outstanding"`
	PaidCount        int   `json:"paid_count"`
	PendingCount     int   `json:"pending_count"`
	OverdueCount     int   `json:"overdue_count"`
}

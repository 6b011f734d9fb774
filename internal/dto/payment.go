package dto

// ApplyPaymentRequest sets a new paid amount for one student. The UI hints
// at a 0..totalAmount range but the computation accepts out-of-range values
// as given, so no bounds are enforced here.
type ApplyPaymentRequest struct {
	PaidAmount *int64 `json:"paidAmount" validate:"required"`
}

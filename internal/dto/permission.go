package dto

import "github.com/noah-isme/his-portal-api/internal/models"

// TogglePermissionRequest asks to change a student's grade visibility.
// Confirmed acknowledges a manual grant that goes against the automatic
// payment-threshold policy.
type TogglePermissionRequest struct {
	CanViewGrades *bool `json:"canViewGrades" validate:"required"`
	Confirmed     bool  `json:"confirmed"`
}

// PermissionDecision is the outcome of evaluating a toggle request.
type PermissionDecision struct {
	Accepted             bool                            `json:"accepted"`
	RequiresConfirmation bool                            `json:"requiresConfirmation"`
	AutoQualifies        bool                            `json:"autoQualifies"`
	Record               models.StudentPaymentPermission `json:"record"`
}

// PermissionFilter filters the grade-permission listing.
type PermissionFilter struct {
	Semester string
	Search   string
}

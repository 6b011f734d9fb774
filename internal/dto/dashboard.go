package dto

import "github.com/noah-isme/his-portal-api/internal/models"

// StudentDashboardResponse aggregates the student landing page.
type StudentDashboardResponse struct {
	TodaySchedule  []models.Schedule     `json:"todaySchedule"`
	UnreadMessages int                   `json:"unreadMessages"`
	Payment        *models.PaymentRecord `json:"payment,omitempty"`
}

// TeacherDashboardResponse aggregates the teacher landing page.
type TeacherDashboardResponse struct {
	TodaySlots     []models.Schedule `json:"todaySlots"`
	UnreadMessages int               `json:"unreadMessages"`
}

// FinanceDashboardResponse aggregates the finance landing page.
type FinanceDashboardResponse struct {
	Summary        models.LedgerSummary   `json:"summary"`
	RecentPayments []models.PaymentRecord `json:"recentPayments"`
}

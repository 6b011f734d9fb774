package repository

import (
	"time"

	"github.com/noah-isme/his-portal-api/internal/models"
)

// SeedData is the static mock dataset the stores boot from.
type SeedData struct {
	Users       []models.User
	Permissions []models.StudentPaymentPermission
	Ledger      []models.PaymentRecord
	Messages    []models.Message
	Schedules   []models.Schedule
}

// DefaultSeed returns the bundled mock dataset. Amounts are VND-style
// integers matching the source data.
func DefaultSeed() SeedData {
	now := time.Now().UTC()

	users := []models.User{
		{ID: "u-001", Username: "nguyen.van.an", FullName: "Nguyễn Văn An", FullNameEn: "Nguyen Van An", Role: models.RoleStudent, Active: true, CreatedAt: now},
		{ID: "u-002", Username: "tran.thi.binh", FullName: "Trần Thị Bình", FullNameEn: "Tran Thi Binh", Role: models.RoleStudent, Active: true, CreatedAt: now},
		{ID: "u-003", Username: "le.van.cuong", FullName: "Lê Văn Cường", FullNameEn: "Le Van Cuong", Role: models.RoleStudent, Active: true, CreatedAt: now},
		{ID: "u-101", Username: "pham.thi.dao", FullName: "Phạm Thị Đào", FullNameEn: "Pham Thi Dao", Role: models.RoleTeacher, Active: true, CreatedAt: now},
		{ID: "u-102", Username: "hoang.van.em", FullName: "Hoàng Văn Em", FullNameEn: "Hoang Van Em", Role: models.RoleTeacher, Active: true, CreatedAt: now},
		{ID: "u-201", Username: "vu.thi.phuong", FullName: "Vũ Thị Phương", FullNameEn: "Vu Thi Phuong", Role: models.RoleFinance, Active: true, CreatedAt: now},
	}

	permissions := []models.StudentPaymentPermission{
		{StudentID: "u-001", StudentName: "Nguyễn Văn An", StudentNameEn: "Nguyen Van An", Semester: "2024-1", TotalAmount: 1_000_000, PaidAmount: 500_000, PaymentStatus: models.PaymentStatusPending, UpdatedAt: now},
		{StudentID: "u-002", StudentName: "Trần Thị Bình", StudentNameEn: "Tran Thi Binh", Semester: "2024-1", TotalAmount: 1_000_000, PaidAmount: 300_000, PaymentStatus: models.PaymentStatusPending, UpdatedAt: now},
		{StudentID: "u-003", StudentName: "Lê Văn Cường", StudentNameEn: "Le Van Cuong", Semester: "2024-1", TotalAmount: 1_200_000, PaidAmount: 1_200_000, PaymentStatus: models.PaymentStatusPaid, UpdatedAt: now},
	}

	ledger := []models.PaymentRecord{
		{StudentID: "u-001", StudentName: "Nguyễn Văn An", StudentNameEn: "Nguyen Van An", Semester: "2024-1", TotalAmount: 1_000_000, PaidAmount: 500_000, Remaining: 500_000, PaymentStatus: models.PaymentStatusPending, UpdatedAt: now},
		{StudentID: "u-002", StudentName: "Trần Thị Bình", StudentNameEn: "Tran Thi Binh", Semester: "2024-1", TotalAmount: 1_000_000, PaidAmount: 300_000, Remaining: 700_000, PaymentStatus: models.PaymentStatusPending, UpdatedAt: now},
		{StudentID: "u-003", StudentName: "Lê Văn Cường", StudentNameEn: "Le Van Cuong", Semester: "2024-1", TotalAmount: 1_200_000, PaidAmount: 1_200_000, Remaining: 0, PaymentStatus: models.PaymentStatusPaid, CanViewGrades: true, UpdatedAt: now},
	}

	readAt := now.Add(-20 * time.Hour)
	deliveredAt := now.Add(-22 * time.Hour)
	recentDeliveredAt := now.Add(-2*time.Hour + 2*time.Second)
	messages := []models.Message{
		{
			ID: "m-001", SenderID: "u-101", SenderName: "Phạm Thị Đào",
			ReceiverID: "u-001", ReceiverName: "Nguyễn Văn An",
			Subject: "Lab report deadline", Content: "Please submit the physics lab report by Friday.",
			Priority: models.MessagePriorityHigh, Status: models.MessageStatusRead,
			SentAt: now.Add(-24 * time.Hour), DeliveredAt: &deliveredAt, ReadAt: &readAt,
		},
		{
			ID: "m-002", SenderID: "u-201", SenderName: "Vũ Thị Phương",
			ReceiverID: "u-002", ReceiverName: "Trần Thị Bình",
			Subject: "Tuition reminder", Content: "Your tuition balance for semester 2024-1 is still outstanding.",
			Priority: models.MessagePriorityUrgent, Status: models.MessageStatusDelivered,
			SentAt: now.Add(-2 * time.Hour), DeliveredAt: &recentDeliveredAt,
		},
	}

	schedules := []models.Schedule{
		{ID: "s-001", CourseCode: "MATH101", CourseName: "Giải tích 1", CourseNameEn: "Calculus 1", Teacher: "Phạm Thị Đào", Room: "A204", DayOfWeek: 1, StartTime: "07:30", EndTime: "09:00", Type: models.ScheduleTypeLecture, Year: 2024, CreatedAt: now, UpdatedAt: now},
		{ID: "s-002", CourseCode: "PHYS102", CourseName: "Vật lý đại cương", CourseNameEn: "General Physics", Teacher: "Hoàng Văn Em", Room: "B101", DayOfWeek: 1, StartTime: "09:15", EndTime: "10:45", Type: models.ScheduleTypeLecture, Year: 2024, CreatedAt: now, UpdatedAt: now},
		{ID: "s-003", CourseCode: "PHYS102L", CourseName: "Thí nghiệm Vật lý", CourseNameEn: "Physics Lab", Teacher: "Hoàng Văn Em", Room: "Lab-2", DayOfWeek: 3, StartTime: "13:30", EndTime: "16:30", Type: models.ScheduleTypeLab, Year: 2024, CreatedAt: now, UpdatedAt: now},
		{ID: "s-004", CourseCode: "ENGL201", CourseName: "Tiếng Anh học thuật", CourseNameEn: "Academic English", Teacher: "Phạm Thị Đào", Room: "C305", DayOfWeek: 5, StartTime: "18:30", EndTime: "20:00", Type: models.ScheduleTypeTutorial, Year: 2024, CreatedAt: now, UpdatedAt: now},
	}

	return SeedData{
		Users:       users,
		Permissions: permissions,
		Ledger:      ledger,
		Messages:    messages,
		Schedules:   schedules,
	}
}

package models

import "time"

// Application statuses.
const (
	StatusDraft       = "Draft"
	StatusSubmitted   = "Submitted"
	StatusUnderReview = "Under Review"
	StatusApproved    = "Approved"
)

// ApplicationStatuses lists every status an application may carry.
var ApplicationStatuses = []string{StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved}

// Application is the root record every form section links to. It holds no
// form content of its own.
type Application struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:Submitted" bson:"status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" bson:"updatedAt" json:"updatedAt"`
}

// TableName implements gorm's tablename interface.
func (Application) TableName() string {
	return "applications"
}

// NewApplication returns an empty application in the initial status.
func NewApplication(id string, now time.Time) *Application {
	return &Application{
		ID:        id,
		Status:    StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

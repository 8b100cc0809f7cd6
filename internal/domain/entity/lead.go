package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the sales lead an RFP is raised against. Leads are owned by the lead
// management subsystem; the pipeline only reads them for the customer snapshot.
type Lead struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CompanyName    string     `gorm:"size:255;not null" json:"company_name"`
	ContactName    string     `gorm:"size:255" json:"contact_name"`
	Email          *string    `gorm:"size:255" json:"email,omitempty"`
	Phone          *string    `gorm:"size:50" json:"phone,omitempty"`
	Address        *string    `gorm:"type:text" json:"address,omitempty"`
	GSTIN          *string    `gorm:"size:20;column:gstin" json:"gstin,omitempty"`
	SalespersonID  *uuid.UUID `gorm:"type:uuid;index" json:"salesperson_id,omitempty"`
	DepartmentType string     `gorm:"size:100" json:"department_type"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}

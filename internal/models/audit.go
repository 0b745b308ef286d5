package models

import (
	"time"

	"gorm.io/datatypes"
)

// UnitStatusAudit records one occupancy transition of a unit. Rows are
// append-only; the first row of a unit has a null from_status.
type UnitStatusAudit struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UnitID      uint           `gorm:"not null;index" json:"unit_id"`
	FromStatus  *string        `json:"from_status"`
	ToStatus    string         `gorm:"not null" json:"to_status"`
	ChangedByID *uint          `gorm:"index" json:"changed_by_id"`
	Meta        datatypes.JSON `json:"meta"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`

	// Associations
	Unit      Unit  `gorm:"foreignKey:UnitID" json:"-"`
	ChangedBy *User `gorm:"foreignKey:ChangedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for UnitStatusAudit
func (UnitStatusAudit) TableName() string {
	return "unit_status_audits"
}

// AuditMeta is the snapshot stored in the audit meta column at the moment of
// a transition.
type AuditMeta struct {
	ActiveTenantID *uint              `json:"active_tenant_id"`
	Invoices       []AuditMetaInvoice `json:"invoices"`
}

// AuditMetaInvoice is the compact invoice shape inside an audit snapshot.
type AuditMetaInvoice struct {
	ID          uint    `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	Remaining   float64 `json:"remaining"`
}

// UnitStatusAuditResponse is the JSON response format for audit rows
type UnitStatusAuditResponse struct {
	ID          uint           `json:"id"`
	UnitID      uint           `json:"unit_id"`
	FromStatus  *string        `json:"from_status"`
	ToStatus    string         `json:"to_status"`
	ChangedByID *uint          `json:"changed_by_id"`
	ChangedBy   string         `json:"changed_by,omitempty"`
	Meta        datatypes.JSON `json:"meta"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ToResponse converts UnitStatusAudit to UnitStatusAuditResponse
func (a *UnitStatusAudit) ToResponse() UnitStatusAuditResponse {
	resp := UnitStatusAuditResponse{
		ID:          a.ID,
		UnitID:      a.UnitID,
		FromStatus:  a.FromStatus,
		ToStatus:    a.ToStatus,
		ChangedByID: a.ChangedByID,
		Meta:        a.Meta,
		CreatedAt:   a.CreatedAt,
	}

	if a.ChangedBy != nil && a.ChangedBy.ID != 0 {
		resp.ChangedBy = a.ChangedBy.FullName()
	}

	return resp
}

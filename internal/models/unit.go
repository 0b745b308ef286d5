package models

import (
	"time"

	"gorm.io/gorm"
)

// Unit represents a rentable unit within an apartment
type Unit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ApartmentID uint      `gorm:"not null;uniqueIndex:idx_units_apartment_number" json:"apartment_id"`
	UnitNumber  string    `gorm:"not null;uniqueIndex:idx_units_apartment_number" json:"unit_number"`
	Description string    `json:"description"`
	BaseRent    float64   `gorm:"type:decimal(12,2);not null" json:"base_rent"`
	Status      string    `gorm:"default:vacant;not null;index" json:"status"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Apartment Apartment       `gorm:"foreignKey:ApartmentID" json:"apartment,omitempty"`
	Tenants   []TenantProfile `gorm:"foreignKey:UnitID" json:"-"`
}

// TableName specifies the table name for Unit
func (Unit) TableName() string {
	return "units"
}

// BeforeCreate hook for setting defaults
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = UnitStatusVacant
	}
	return nil
}

// Unit status constants
const (
	UnitStatusVacant   = "vacant"
	UnitStatusOccupied = "occupied"
)

// ArchiveUnitNumber is the unit number of the lazily created archive unit.
const ArchiveUnitNumber = "ARCHIVE"

// IsValidUnitStatus reports whether s is a recognized occupancy status.
func IsValidUnitStatus(s string) bool {
	return s == UnitStatusVacant || s == UnitStatusOccupied
}

// ActiveTenant returns the active tenant profile assigned to this unit, or
// nil when the unit has none. Tenants must be preloaded.
func (u *Unit) ActiveTenant() *TenantProfile {
	for i := range u.Tenants {
		if u.Tenants[i].IsActive {
			return &u.Tenants[i]
		}
	}
	return nil
}

// UnitResponse is the JSON response format for units
type UnitResponse struct {
	ID            uint                   `json:"id"`
	ApartmentID   uint                   `json:"apartment_id"`
	ApartmentName string                 `json:"apartment_name,omitempty"`
	UnitNumber    string                 `json:"unit_number"`
	Description   string                 `json:"description"`
	BaseRent      float64                `json:"base_rent"`
	Status        string                 `json:"status"`
	IsActive      bool                   `json:"is_active"`
	ActiveTenant  *TenantSummaryResponse `json:"active_tenant,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ToResponse converts Unit to UnitResponse
func (u *Unit) ToResponse() UnitResponse {
	resp := UnitResponse{
		ID:          u.ID,
		ApartmentID: u.ApartmentID,
		UnitNumber:  u.UnitNumber,
		Description: u.Description,
		BaseRent:    u.BaseRent,
		Status:      u.Status,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}

	if u.Apartment.ID != 0 {
		resp.ApartmentName = u.Apartment.Name
	}

	if tenant := u.ActiveTenant(); tenant != nil {
		summary := tenant.ToSummary()
		resp.ActiveTenant = &summary
	}

	return resp
}

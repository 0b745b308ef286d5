package models

import (
	"time"
)

// TenantProfile links a tenant user to the unit they occupy
type TenantProfile struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	LandlordID uint       `gorm:"not null;index" json:"landlord_id"`
	UnitID     *uint      `gorm:"index" json:"unit_id"`
	IDNumber   string     `json:"id_number"`
	MoveInDate *time.Time `gorm:"type:date" json:"move_in_date"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	User     User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Landlord User  `gorm:"foreignKey:LandlordID" json:"-"`
	Unit     *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// TableName specifies the table name for TenantProfile
func (TenantProfile) TableName() string {
	return "tenant_profiles"
}

// TenantSummaryResponse is the compact tenant shape embedded in unit responses
type TenantSummaryResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// ToSummary converts TenantProfile to TenantSummaryResponse. User must be
// preloaded.
func (t *TenantProfile) ToSummary() TenantSummaryResponse {
	return TenantSummaryResponse{
		ID:       t.ID,
		FullName: t.User.FullName(),
		Phone:    t.User.Phone,
		Email:    t.User.Email,
	}
}

// TenantResponse is the JSON response format for tenants
type TenantResponse struct {
	ID            uint         `json:"id"`
	User          UserResponse `json:"user"`
	UnitID        *uint        `json:"unit_id"`
	UnitNumber    string       `json:"unit_number,omitempty"`
	ApartmentID   uint         `json:"apartment_id,omitempty"`
	ApartmentName string       `json:"apartment_name,omitempty"`
	IDNumber      string       `json:"id_number"`
	MoveInDate    *time.Time   `json:"move_in_date"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ToResponse converts TenantProfile to TenantResponse
func (t *TenantProfile) ToResponse() TenantResponse {
	resp := TenantResponse{
		ID:         t.ID,
		User:       t.User.ToResponse(),
		UnitID:     t.UnitID,
		IDNumber:   t.IDNumber,
		MoveInDate: t.MoveInDate,
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}

	if t.Unit != nil && t.Unit.ID != 0 {
		resp.UnitNumber = t.Unit.UnitNumber
		resp.ApartmentID = t.Unit.ApartmentID
		if t.Unit.Apartment.ID != 0 {
			resp.ApartmentName = t.Unit.Apartment.Name
		}
	}

	return resp
}

package models

import (
	"time"
)

// Apartment represents an apartment building owned by a landlord
type Apartment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LandlordID uint      `gorm:"not null;index" json:"landlord_id"`
	Name       string    `gorm:"not null" json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Landlord User   `gorm:"foreignKey:LandlordID" json:"-"`
	Units    []Unit `gorm:"foreignKey:ApartmentID" json:"units,omitempty"`
}

// TableName specifies the table name for Apartment
func (Apartment) TableName() string {
	return "apartments"
}

// ArchiveApartmentName is the name of the lazily created apartment that
// receives invoices preserved during unit deletion.
const ArchiveApartmentName = "Archived Properties"

// ApartmentResponse is the JSON response format for apartments
type ApartmentResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	TotalUnits    int       `json:"total_units"`
	OccupiedUnits int       `json:"occupied_units"`
	VacantUnits   int       `json:"vacant_units"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToResponse converts Apartment to ApartmentResponse. Unit counts only
// consider active units, so Units must be preloaded for them to be populated.
func (a *Apartment) ToResponse() ApartmentResponse {
	resp := ApartmentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Address:   a.Address,
		City:      a.City,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	for i := range a.Units {
		if !a.Units[i].IsActive {
			continue
		}
		resp.TotalUnits++
		if a.Units[i].Status == UnitStatusOccupied {
			resp.OccupiedUnits++
		} else {
			resp.VacantUnits++
		}
	}

	return resp
}

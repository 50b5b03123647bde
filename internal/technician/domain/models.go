// Package domain defines the technicians the company hires for jobs.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"gorm.io/gorm"
)

type Technician struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"not null" json:"name"`
	Email      string       `gorm:"" json:"email,omitempty"`
	Phone      string       `gorm:"" json:"phone,omitempty"`
	Specialty  string       `gorm:"" json:"specialty,omitempty"`
	HourlyRate float64      `gorm:"not null;default:0" json:"hourly_rate"`
	Active     bool         `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Technician) TableName() string { return "technicians" }

type Service interface {
	Create(ctx context.Context, req CreateTechnicianRequest) (Technician, error)
	List(ctx context.Context, req ListTechnicianRequest) (ListTechnicianResponse, error)
	GetByID(ctx context.Context, id string) (Technician, error)
	Update(ctx context.Context, req UpdateTechnicianRequest) (Technician, error)
	Deactivate(ctx context.Context, id string) (Technician, error)
}

type CreateTechnicianRequest struct {
	Name       string
	Email      string
	Phone      string
	Specialty  string
	HourlyRate float64
}

type UpdateTechnicianRequest struct {
	ID         string
	Name       *string
	Email      *string
	Phone      *string
	Specialty  *string
	HourlyRate *float64
}

type ListTechnicianRequest struct {
	PageToken       string
	PageSize        int
	Specialty       string
	IncludeInactive bool
}

type ListTechnicianFilter struct {
	Specialty       string
	IncludeInactive bool
}

type ListTechnicianResponse struct {
	pagination.PageInfo
	Technicians []Technician `json:"technicians"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, technician *Technician) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Technician, error)
	List(ctx context.Context, db *gorm.DB, filter ListTechnicianFilter, page pagination.Pagination) ([]*Technician, error)
	Update(ctx context.Context, db *gorm.DB, technician *Technician) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidRate = errors.New("invalid_rate")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)

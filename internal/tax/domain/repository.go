package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, option *TaxOption) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*TaxOption, error)
	FindDefault(ctx context.Context, db *gorm.DB) (*TaxOption, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]TaxOption, error)
	Update(ctx context.Context, db *gorm.DB, option *TaxOption) error
	ClearDefault(ctx context.Context, db *gorm.DB) error
}

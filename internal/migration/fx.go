package migration

import (
	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	"github.com/nexoav/nexoav/internal/config"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	productdomain "github.com/nexoav/nexoav/internal/product/domain"
	"github.com/nexoav/nexoav/internal/seed"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned migrations are written for postgres; the other
			// dialects serve local development and fall back to
			// AutoMigrate.
			err := conn.AutoMigrate(
				&taxdomain.TaxOption{},
				&clientdomain.Client{},
				&productdomain.Product{},
				&techdomain.Technician{},
				&docdomain.Document{},
				&docdomain.DocumentLine{},
				&docdomain.DocumentTaxLine{},
				&docdomain.DocumentSequence{},
				&docdomain.Payment{},
				&companydomain.Profile{},
			)
			if err != nil {
				return err
			}
		}

		if err := seed.EnsureTaxOptions(conn, node); err != nil {
			return err
		}
		return seed.EnsureCompanyProfile(conn, cfg.AppName)
	}),
)

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/nexoav/nexoav/internal/client"
	"github.com/nexoav/nexoav/internal/company"
	"github.com/nexoav/nexoav/internal/config"
	"github.com/nexoav/nexoav/internal/document"
	"github.com/nexoav/nexoav/internal/migration"
	"github.com/nexoav/nexoav/internal/observability"
	"github.com/nexoav/nexoav/internal/product"
	"github.com/nexoav/nexoav/internal/providers"
	"github.com/nexoav/nexoav/internal/server"
	"github.com/nexoav/nexoav/internal/tax"
	"github.com/nexoav/nexoav/internal/technician"
	"github.com/nexoav/nexoav/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		tax.Module,
		client.Module,
		product.Module,
		technician.Module,
		company.Module,
		document.Module,
		providers.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

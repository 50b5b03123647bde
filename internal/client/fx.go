package client

import (
	"github.com/nexoav/nexoav/internal/client/repository"
	"github.com/nexoav/nexoav/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(
		repository.NewRepository,
		service.New,
	),
)

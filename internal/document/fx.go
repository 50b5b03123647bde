package document

import (
	"github.com/nexoav/nexoav/internal/document/repository"
	"github.com/nexoav/nexoav/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(
		repository.NewRepository,
		service.New,
	),
)

package providers

import (
	"github.com/nexoav/nexoav/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
)

// Package pdf renders commercial documents with maroto.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

type Provider interface {
	RenderDocument(ctx context.Context, data DocumentData) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*TaxOption, error)
	List(ctx context.Context, req ListRequest) ([]TaxOption, error)
	Update(ctx context.Context, req UpdateRequest) (*TaxOption, error)
	Disable(ctx context.Context, id string) (*TaxOption, error)

	// DefaultRate returns the rate flagged as default, falling back to
	// the configured national VAT rate when none is flagged.
	DefaultRate(ctx context.Context) (float64, error)

	// LabelMap returns rate -> label for every option, for tax-group
	// labelling during document aggregation.
	LabelMap(ctx context.Context) (map[float64]string, error)
}

type CreateRequest struct {
	Rate      float64 `json:"rate"`
	Label     string  `json:"label"`
	IsDefault bool    `json:"is_default"`
}

type UpdateRequest struct {
	ID        string   `json:"id"`
	Label     *string  `json:"label,omitempty"`
	IsDefault *bool    `json:"is_default,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

type ListRequest struct {
	IsActive *bool
}

package domain

import (
	"context"
	"errors"

	"github.com/nexoav/nexoav/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, req UpdateClientRequest) (Client, error)
	Archive(ctx context.Context, id string) (Client, error)
}

type CreateClientRequest struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
	Notes   string
}

type UpdateClientRequest struct {
	ID      string
	Name    *string
	TaxID   *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

type ListClientRequest struct {
	PageToken       string
	PageSize        int
	Name            string
	TaxID           string
	IncludeArchived bool
}

type ListClientFilter struct {
	Name            string
	TaxID           string
	IncludeArchived bool
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)

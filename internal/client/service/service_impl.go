package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  clientdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  clientdomain.Repository
}

func New(p Params) clientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req clientdomain.CreateClientRequest) (clientdomain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return clientdomain.Client{}, clientdomain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return clientdomain.Client{}, clientdomain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	client := clientdomain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		TaxID:     strings.TrimSpace(req.TaxID),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Notes:     strings.TrimSpace(req.Notes),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return clientdomain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context, req clientdomain.ListClientRequest) (clientdomain.ListClientResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, clientdomain.ListClientFilter{
		Name:            strings.TrimSpace(req.Name),
		TaxID:           strings.TrimSpace(req.TaxID),
		IncludeArchived: req.IncludeArchived,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return clientdomain.ListClientResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(client *clientdomain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        client.ID.String(),
			CreatedAt: client.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	clients := make([]clientdomain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}

	resp := clientdomain.ListClientResponse{Clients: clients}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (clientdomain.Client, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return clientdomain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return clientdomain.Client{}, err
	}
	if client == nil {
		return clientdomain.Client{}, clientdomain.ErrNotFound
	}

	return *client, nil
}

func (s *Service) Update(ctx context.Context, req clientdomain.UpdateClientRequest) (clientdomain.Client, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return clientdomain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return clientdomain.Client{}, err
	}
	if client == nil {
		return clientdomain.Client{}, clientdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return clientdomain.Client{}, clientdomain.ErrInvalidName
		}
		client.Name = name
	}
	if req.TaxID != nil {
		client.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return clientdomain.Client{}, clientdomain.ErrInvalidEmail
		}
		client.Email = email
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		client.Notes = strings.TrimSpace(*req.Notes)
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, client); err != nil {
		return clientdomain.Client{}, err
	}

	return *client, nil
}

func (s *Service) Archive(ctx context.Context, id string) (clientdomain.Client, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return clientdomain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return clientdomain.Client{}, err
	}
	if client == nil {
		return clientdomain.Client{}, clientdomain.ErrNotFound
	}

	client.Archived = true
	client.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, client); err != nil {
		return clientdomain.Client{}, err
	}

	return *client, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, clientdomain.ErrInvalidID
	}
	return id, nil
}

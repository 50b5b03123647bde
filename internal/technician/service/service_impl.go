package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  techdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  techdomain.Repository
}

func New(p Params) techdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("technician.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req techdomain.CreateTechnicianRequest) (techdomain.Technician, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return techdomain.Technician{}, techdomain.ErrInvalidName
	}
	if req.HourlyRate < 0 {
		return techdomain.Technician{}, techdomain.ErrInvalidRate
	}

	now := time.Now().UTC()
	technician := techdomain.Technician{
		ID:         s.genID.Generate(),
		Name:       name,
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Specialty:  strings.TrimSpace(req.Specialty),
		HourlyRate: req.HourlyRate,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &technician); err != nil {
		return techdomain.Technician{}, err
	}

	return technician, nil
}

func (s *Service) List(ctx context.Context, req techdomain.ListTechnicianRequest) (techdomain.ListTechnicianResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, techdomain.ListTechnicianFilter{
		Specialty:       strings.TrimSpace(req.Specialty),
		IncludeInactive: req.IncludeInactive,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return techdomain.ListTechnicianResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(technician *techdomain.Technician) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        technician.ID.String(),
			CreatedAt: technician.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	technicians := make([]techdomain.Technician, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		technicians = append(technicians, *item)
	}

	resp := techdomain.ListTechnicianResponse{Technicians: technicians}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (techdomain.Technician, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return techdomain.Technician{}, err
	}

	technician, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return techdomain.Technician{}, err
	}
	if technician == nil {
		return techdomain.Technician{}, techdomain.ErrNotFound
	}

	return *technician, nil
}

func (s *Service) Update(ctx context.Context, req techdomain.UpdateTechnicianRequest) (techdomain.Technician, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return techdomain.Technician{}, err
	}

	technician, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return techdomain.Technician{}, err
	}
	if technician == nil {
		return techdomain.Technician{}, techdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return techdomain.Technician{}, techdomain.ErrInvalidName
		}
		technician.Name = name
	}
	if req.Email != nil {
		technician.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		technician.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Specialty != nil {
		technician.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return techdomain.Technician{}, techdomain.ErrInvalidRate
		}
		technician.HourlyRate = *req.HourlyRate
	}
	technician.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, technician); err != nil {
		return techdomain.Technician{}, err
	}

	return *technician, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (techdomain.Technician, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return techdomain.Technician{}, err
	}

	technician, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return techdomain.Technician{}, err
	}
	if technician == nil {
		return techdomain.Technician{}, techdomain.ErrNotFound
	}

	technician.Active = false
	technician.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, technician); err != nil {
		return techdomain.Technician{}, err
	}

	return *technician, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, techdomain.ErrInvalidID
	}
	return id, nil
}

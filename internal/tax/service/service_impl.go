package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nexoav/nexoav/internal/config"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	"github.com/nexoav/nexoav/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  taxdomain.Repository
	Cfg   config.Config
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  taxdomain.Repository
	cfg   config.Config
}

func New(p Params) taxdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		repo:  p.Repo,
		cfg:   p.Cfg,
	}
}

func (s *Service) Create(ctx context.Context, req taxdomain.CreateRequest) (*taxdomain.TaxOption, error) {
	now := time.Now().UTC()
	option := taxdomain.TaxOption{
		ID:        s.genID.Generate(),
		Rate:      req.Rate,
		Label:     strings.TrimSpace(req.Label),
		IsDefault: req.IsDefault,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := option.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if option.IsDefault {
			if err := s.repo.ClearDefault(ctx, tx); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, &option)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, taxdomain.ErrDuplicate
		}
		return nil, err
	}

	return &option, nil
}

func (s *Service) List(ctx context.Context, req taxdomain.ListRequest) ([]taxdomain.TaxOption, error) {
	return s.repo.List(ctx, s.db, req)
}

func (s *Service) Update(ctx context.Context, req taxdomain.UpdateRequest) (*taxdomain.TaxOption, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return nil, err
	}

	var updated *taxdomain.TaxOption
	err = s.db.Transaction(func(tx *gorm.DB) error {
		option, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if option == nil {
			return taxdomain.ErrNotFound
		}

		if req.Label != nil {
			option.Label = strings.TrimSpace(*req.Label)
		}
		if req.IsDefault != nil {
			option.IsDefault = *req.IsDefault
		}
		if req.IsActive != nil {
			option.IsActive = *req.IsActive
		}
		if err := option.Validate(); err != nil {
			return err
		}
		option.UpdatedAt = time.Now().UTC()

		if option.IsDefault {
			if err := s.repo.ClearDefault(ctx, tx); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, tx, option); err != nil {
			return err
		}

		updated = option
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*taxdomain.TaxOption, error) {
	active := false
	return s.Update(ctx, taxdomain.UpdateRequest{ID: id, IsActive: &active})
}

func (s *Service) DefaultRate(ctx context.Context) (float64, error) {
	option, err := s.repo.FindDefault(ctx, s.db)
	if err != nil {
		return 0, err
	}
	if option == nil {
		return s.cfg.DefaultTaxRate, nil
	}
	return option.Rate, nil
}

// LabelMap returns every configured rate's label, including disabled
// options, so documents created under a since-disabled rate keep their
// breakdown labels.
func (s *Service) LabelMap(ctx context.Context) (map[float64]string, error) {
	options, err := s.repo.List(ctx, s.db, taxdomain.ListRequest{})
	if err != nil {
		return nil, err
	}

	labels := make(map[float64]string, len(options))
	for _, option := range options {
		labels[option.Rate] = option.Label
	}
	return labels, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, taxdomain.ErrInvalidID
	}
	return id, nil
}

package service

import (
	"context"
	"strings"
	"time"

	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo companydomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo companydomain.Repository
}

func New(p Params) companydomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("company.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (companydomain.Profile, error) {
	profile, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return companydomain.Profile{}, err
	}
	if profile == nil {
		return companydomain.Profile{}, nil
	}
	return *profile, nil
}

func (s *Service) Update(ctx context.Context, req companydomain.UpdateProfileRequest) (companydomain.Profile, error) {
	profile, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return companydomain.Profile{}, err
	}
	if profile == nil {
		profile = &companydomain.Profile{CreatedAt: time.Now().UTC()}
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&profile.Name, req.Name)
	apply(&profile.TaxID, req.TaxID)
	apply(&profile.Address, req.Address)
	apply(&profile.Email, req.Email)
	apply(&profile.Phone, req.Phone)
	apply(&profile.Website, req.Website)
	apply(&profile.BankAccount, req.BankAccount)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, profile); err != nil {
		return companydomain.Profile{}, err
	}

	return *profile, nil
}

package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nexoav/nexoav/internal/config"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	"github.com/nexoav/nexoav/internal/tax/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) taxdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&taxdomain.TaxOption{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(),
		Cfg:   config.Config{DefaultTaxRate: 21},
	})
}

func TestDefaultRateFallsBackToConfig(t *testing.T) {
	svc := newTestService(t)

	rate, err := svc.DefaultRate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 21.0, rate)
}

func TestCreateAndDefaultRate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, taxdomain.CreateRequest{Rate: 10, Label: "IVA 10%", IsDefault: true})
	assert.NoError(t, err)

	rate, err := svc.DefaultRate(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, rate)
}

func TestCreateMovesDefaultFlag(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, taxdomain.CreateRequest{Rate: 21, Label: "IVA 21%", IsDefault: true})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, taxdomain.CreateRequest{Rate: 4, Label: "IVA 4%", IsDefault: true})
	assert.NoError(t, err)

	options, err := svc.List(ctx, taxdomain.ListRequest{})
	assert.NoError(t, err)

	defaults := 0
	for _, option := range options {
		if option.IsDefault {
			defaults++
			assert.NotEqual(t, first.ID, option.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestCreateRejectsDuplicateRate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, taxdomain.CreateRequest{Rate: 21, Label: "IVA 21%"})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, taxdomain.CreateRequest{Rate: 21, Label: "IVA general"})
	assert.ErrorIs(t, err, taxdomain.ErrDuplicate)
}

func TestLabelMap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, taxdomain.CreateRequest{Rate: 21, Label: "IVA 21%"})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, taxdomain.CreateRequest{Rate: 0, Label: "Exento"})
	assert.NoError(t, err)

	labels, err := svc.LabelMap(ctx)
	assert.NoError(t, err)
	assert.Equal(t, map[float64]string{21: "IVA 21%", 0: "Exento"}, labels)
}

func TestDisableKeepsOption(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, taxdomain.CreateRequest{Rate: 10, Label: "IVA 10%"})
	assert.NoError(t, err)

	disabled, err := svc.Disable(ctx, created.ID.String())
	assert.NoError(t, err)
	assert.False(t, disabled.IsActive)

	active := true
	options, err := svc.List(ctx, taxdomain.ListRequest{IsActive: &active})
	assert.NoError(t, err)
	assert.Empty(t, options)

	// still resolvable for historic documents
	labels, err := svc.LabelMap(ctx)
	assert.NoError(t, err)
	assert.Contains(t, labels, 10.0)
}

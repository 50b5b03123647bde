package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	"github.com/nexoav/nexoav/internal/company/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) companydomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&companydomain.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.NewRepository(),
	})
}

func strptr(v string) *string { return &v }

func TestUpdateCreatesProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	profile, err := svc.Update(ctx, companydomain.UpdateProfileRequest{
		Name:  strptr("NEXO AV S.L."),
		TaxID: strptr("B12345678"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "NEXO AV S.L.", profile.Name)
	assert.Equal(t, "B12345678", profile.TaxID)

	got, err := svc.Get(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "NEXO AV S.L.", got.Name)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, companydomain.UpdateProfileRequest{
		Name:        strptr("NEXO AV S.L."),
		BankAccount: strptr("ES91 2100 0418 4502 0005 1332"),
	})
	assert.NoError(t, err)

	updated, err := svc.Update(ctx, companydomain.UpdateProfileRequest{
		Phone: strptr("  +34 600 000 000  "),
	})
	assert.NoError(t, err)
	assert.Equal(t, "+34 600 000 000", updated.Phone)
	assert.Equal(t, "NEXO AV S.L.", updated.Name)
	assert.Equal(t, "ES91 2100 0418 4502 0005 1332", updated.BankAccount)
}

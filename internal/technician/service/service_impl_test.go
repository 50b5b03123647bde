package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	"github.com/nexoav/nexoav/internal/technician/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) techdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&techdomain.Technician{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(),
	})
}

func TestCreateTechnician(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, techdomain.CreateTechnicianRequest{
		Name:       "Marta Ruiz",
		Specialty:  "sound",
		HourlyRate: 32.5,
	})
	assert.NoError(t, err)
	assert.True(t, created.Active)

	got, err := svc.GetByID(ctx, created.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 32.5, got.HourlyRate)
}

func TestCreateTechnicianValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, techdomain.CreateTechnicianRequest{Name: " "})
	assert.ErrorIs(t, err, techdomain.ErrInvalidName)

	_, err = svc.Create(ctx, techdomain.CreateTechnicianRequest{Name: "Luis", HourlyRate: -5})
	assert.ErrorIs(t, err, techdomain.ErrInvalidRate)
}

func TestListTechniciansBySpecialty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, techdomain.CreateTechnicianRequest{Name: "Marta Ruiz", Specialty: "sound"})
	assert.NoError(t, err)
	lights, err := svc.Create(ctx, techdomain.CreateTechnicianRequest{Name: "Pedro Gil", Specialty: "lighting"})
	assert.NoError(t, err)

	resp, err := svc.List(ctx, techdomain.ListTechnicianRequest{Specialty: "lighting"})
	assert.NoError(t, err)
	assert.Len(t, resp.Technicians, 1)
	assert.Equal(t, lights.ID, resp.Technicians[0].ID)

	_, err = svc.Deactivate(ctx, lights.ID.String())
	assert.NoError(t, err)

	resp, err = svc.List(ctx, techdomain.ListTechnicianRequest{Specialty: "lighting"})
	assert.NoError(t, err)
	assert.Empty(t, resp.Technicians)
}

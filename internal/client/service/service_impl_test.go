package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	"github.com/nexoav/nexoav/internal/client/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) clientdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&clientdomain.Client{}); err != nil {
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

func TestCreateClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientdomain.CreateClientRequest{
		Name:  "  Auditorio Nacional  ",
		TaxID: "B12345678",
		Email: "produccion@auditorio.example",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Auditorio Nacional", created.Name)
	assert.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, "B12345678", got.TaxID)
}

func TestCreateClientValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientdomain.CreateClientRequest{Name: "   "})
	assert.ErrorIs(t, err, clientdomain.ErrInvalidName)

	_, err = svc.Create(ctx, clientdomain.CreateClientRequest{Name: "Foo", Email: "not-an-email"})
	assert.ErrorIs(t, err, clientdomain.ErrInvalidEmail)
}

func TestArchiveClientHiddenFromList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	active, err := svc.Create(ctx, clientdomain.CreateClientRequest{Name: "Teatro Real"})
	assert.NoError(t, err)
	archived, err := svc.Create(ctx, clientdomain.CreateClientRequest{Name: "Sala Apolo"})
	assert.NoError(t, err)

	_, err = svc.Archive(ctx, archived.ID.String())
	assert.NoError(t, err)

	resp, err := svc.List(ctx, clientdomain.ListClientRequest{})
	assert.NoError(t, err)
	assert.Len(t, resp.Clients, 1)
	assert.Equal(t, active.ID, resp.Clients[0].ID)

	resp, err = svc.List(ctx, clientdomain.ListClientRequest{IncludeArchived: true})
	assert.NoError(t, err)
	assert.Len(t, resp.Clients, 2)
}

func TestUpdateClientPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientdomain.CreateClientRequest{Name: "Festival Org", Phone: "600111222"})
	assert.NoError(t, err)

	newName := "Festival Organizacion SL"
	updated, err := svc.Update(ctx, clientdomain.UpdateClientRequest{
		ID:   created.ID.String(),
		Name: &newName,
	})
	assert.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "600111222", updated.Phone)

	_, err = svc.Update(ctx, clientdomain.UpdateClientRequest{ID: "zz"})
	assert.ErrorIs(t, err, clientdomain.ErrInvalidID)
}

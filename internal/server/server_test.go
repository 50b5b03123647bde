package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	clientrepository "github.com/nexoav/nexoav/internal/client/repository"
	clientservice "github.com/nexoav/nexoav/internal/client/service"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	companyrepository "github.com/nexoav/nexoav/internal/company/repository"
	companyservice "github.com/nexoav/nexoav/internal/company/service"
	"github.com/nexoav/nexoav/internal/config"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	docrepository "github.com/nexoav/nexoav/internal/document/repository"
	docservice "github.com/nexoav/nexoav/internal/document/service"
	productdomain "github.com/nexoav/nexoav/internal/product/domain"
	productrepository "github.com/nexoav/nexoav/internal/product/repository"
	productservice "github.com/nexoav/nexoav/internal/product/service"
	"github.com/nexoav/nexoav/internal/providers/pdf"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	taxrepository "github.com/nexoav/nexoav/internal/tax/repository"
	taxservice "github.com/nexoav/nexoav/internal/tax/service"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	techrepository "github.com/nexoav/nexoav/internal/technician/repository"
	techservice "github.com/nexoav/nexoav/internal/technician/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&taxdomain.TaxOption{},
		&clientdomain.Client{},
		&productdomain.Product{},
		&techdomain.Technician{},
		&docdomain.Document{},
		&docdomain.DocumentLine{},
		&docdomain.DocumentTaxLine{},
		&docdomain.DocumentSequence{},
		&docdomain.Payment{},
		&companydomain.Profile{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	log := zap.NewNop()
	cfg := config.Config{DefaultTaxRate: 21, HTTPPort: "8080"}

	taxSvc := taxservice.New(taxservice.Params{
		DB: db, Log: log, GenID: node,
		Repo: taxrepository.NewRepository(), Cfg: cfg,
	})
	docCfg, err := config.NewDocumentConfigHolder()
	if err != nil {
		t.Fatalf("document config: %v", err)
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine: engine,
		cfg:    cfg,
		clientSvc: clientservice.New(clientservice.Params{
			DB: db, Log: log, GenID: node, Repo: clientrepository.NewRepository(),
		}),
		productSvc: productservice.New(productservice.Params{
			DB: db, Log: log, GenID: node, Repo: productrepository.NewRepository(),
		}),
		technicianSvc: techservice.New(techservice.Params{
			DB: db, Log: log, GenID: node, Repo: techrepository.NewRepository(),
		}),
		taxSvc: taxSvc,
		documentSvc: docservice.New(docservice.Params{
			DB: db, Log: log, GenID: node,
			Repo: docrepository.NewRepository(), Tax: taxSvc, DocCfg: docCfg,
		}),
		companySvc: companyservice.New(companyservice.Params{
			DB: db, Log: log, Repo: companyrepository.NewRepository(),
		}),
		pdfProvider: pdf.New(),
	}
	srv.registerAPIRoutes()

	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListClients(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/clients", gin.H{
		"name":   "Teatro Real",
		"tax_id": "A11111111",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/clients", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Clients []clientdomain.Client `json:"clients"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Clients, 1)
	assert.Equal(t, "Teatro Real", resp.Data.Clients[0].Name)
}

func TestCreateClientValidationMapped(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/clients", gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Equal(t, "invalid_name", resp.Error.Errors[0].Code)
}

func TestGetClientNotFoundMapped(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/clients/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/documents", gin.H{
		"kind": "invoice",
		"lines": []gin.H{
			{"concept": "Sonido directo", "quantity": 2, "unit_price": 100, "discount_percent": 10, "tax_rate": 21},
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data docdomain.Document `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.InDelta(t, 217.8, created.Data.Total, 1e-9)

	id := created.Data.ID.String()

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/transition", gin.H{"status": "paid"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/transition", gin.H{"status": "issued"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var issued struct {
		Data docdomain.Document `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	assert.NotNil(t, issued.Data.Number)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/documents/"+id+"/payments", gin.H{"amount": 217.8})
	assert.Equal(t, http.StatusOK, rec.Code)

	var paid struct {
		Data docdomain.Document `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
	assert.Equal(t, docdomain.StatusPaid, paid.Data.Status)
}

func TestRenderDocumentPDF(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/documents", gin.H{
		"kind": "quote",
		"lines": []gin.H{
			{"concept": "Iluminacion", "quantity": 1, "unit_price": 300, "tax_rate": 21},
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data docdomain.Document `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/documents/"+created.Data.ID.String()+"/pdf", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

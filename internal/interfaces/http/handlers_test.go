package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/application/printtemplate"
	"github.com/IhsanMhd-mr/back-ims/internal/application/usecase"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	apphttp "github.com/IhsanMhd-mr/back-ims/internal/interfaces/http"
	pkgjwt "github.com/IhsanMhd-mr/back-ims/pkg/jwt"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memVendors struct {
	mu   sync.Mutex
	byID map[string]*entity.Vendor
	ids  []string
}

func (r *memVendors) Create(_ context.Context, v *entity.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.UniqueID == v.UniqueID {
			return domain.ErrDuplicate
		}
	}
	cp := *v
	r.byID[v.ID] = &cp
	r.ids = append(r.ids, v.ID)
	return nil
}

func (r *memVendors) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVendors) List(_ context.Context, limit, offset int) ([]*entity.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vendor
	for _, id := range r.ids {
		if v := r.byID[id]; v.DeletedAt == nil {
			out = append(out, v)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memVendors) Count(ctx context.Context) (int, error) {
	all, err := r.List(ctx, 1<<30, 0)
	return len(all), err
}

func (r *memVendors) Update(_ context.Context, v *entity.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.byID[v.ID] = &cp
	return nil
}

func (r *memVendors) SoftDelete(_ context.Context, id, deletedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.byID[id].DeletedAt = &now
	r.byID[id].DeletedBy = deletedBy
	return nil
}

type memTemplates struct{ docs map[string]json.RawMessage }

func (s *memTemplates) Load(context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(s.docs))
	for k, v := range s.docs {
		out[k] = v
	}
	return out, nil
}

func (s *memTemplates) Save(_ context.Context, docs map[string]json.RawMessage) error {
	s.docs = docs
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	ledger := newMemLedger()
	movs, sums := memMovements{ledger}, memSummaries{ledger}
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:          inventory.NewLedgerUseCase(movs),
		Balances:        inventory.NewBalanceResolver(movs, sums),
		Generator:       inventory.NewSummaryGenerator(ledger, fixedNamer{"MATERIAL|m-1": "Harina"}, log),
		SummaryQuery:    inventory.NewSummaryQueryUseCase(sums),
		VendorUC:        usecase.NewVendorUseCase(&memVendors{byID: map[string]*entity.Vendor{}}),
		PrintTemplateUC: printtemplate.NewUseCase(&memTemplates{docs: map[string]json.RawMessage{}}),
		JWTSecret:       testJWTSecret,
		Log:             log,
	})
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

func call(t *testing.T, app *fiber.App, role, method, path, body string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

// ──────────────────────────────────────────────────────────────────────────────
// Vendors
// ──────────────────────────────────────────────────────────────────────────────

func TestVendors_CrearDuplicadoYListar(t *testing.T) {
	app := newAPI(t)
	body := `{"unique_id":"V-001","company_name":"Molinos SA"}`

	status, env := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/vendors", body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.True(t, env.Success)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "V-001", created["unique_id"])
	assert.Equal(t, "ACTIVE", created["status"])
	assert.Equal(t, testUserID, created["created_by"])

	status, env = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/vendors", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	assert.Equal(t, "DUPLICATE", env.Code)

	status, env = call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/vendors?limit=5", "")
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Items []map[string]any `json:"items"`
		Page  struct {
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"page"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Page.Limit)
	assert.Equal(t, 1, list.Page.Total)
}

func TestVendors_ValidacionYNoEncontrado(t *testing.T) {
	app := newAPI(t)

	status, env := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/vendors", `{"company_name":"Sin ID"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, env.Message, "UniqueID")

	status, env = call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/vendors", `{"unique_id":"V-9","status":"PAUSED"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "oneof")

	status, env = call(t, app, pkgjwt.RoleAdmin, http.MethodGet, "/api/vendors/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestVendors_BorrarRequiereManager(t *testing.T) {
	app := newAPI(t)
	status, env := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/vendors", `{"unique_id":"V-2"}`)
	require.Equal(t, http.StatusCreated, status)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	path := "/api/vendors/" + created["id"].(string)

	status, _ = call(t, app, pkgjwt.RoleStorekeeper, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, env = call(t, app, pkgjwt.RoleManager, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, _ = call(t, app, pkgjwt.RoleManager, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas de impresión
// ──────────────────────────────────────────────────────────────────────────────

func TestPrintTemplates_CicloDeVida(t *testing.T) {
	app := newAPI(t)
	doc := `{"paper":"A4","fields":["sku","qty"]}`

	status, _ := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPut, "/api/print-templates/invoice", doc)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPut, "/api/print-templates/invoice", `{"paper":"Letter"}`)
	assert.Equal(t, http.StatusOK, status, "reemplazar una plantilla existente responde 200")

	status, env := call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/print-templates/invoice", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"paper":"Letter"}`, string(env.Data))

	status, env = call(t, app, pkgjwt.RoleStorekeeper, http.MethodGet, "/api/print-templates", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["invoice"]`, string(env.Data))

	status, env = call(t, app, pkgjwt.RoleStorekeeper, http.MethodPut, "/api/print-templates/invoice", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Code)

	status, _ = call(t, app, pkgjwt.RoleAdmin, http.MethodDelete, "/api/print-templates/invoice", "")
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, app, pkgjwt.RoleAdmin, http.MethodGet, "/api/print-templates/invoice", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de acceso y ruteo
// ──────────────────────────────────────────────────────────────────────────────

func TestSummaries_GeneracionRequiereManager(t *testing.T) {
	app := newAPI(t)
	for _, path := range []string{
		"/api/stock/monthly-summaries/generate",
		"/api/stock/monthly-summaries/generate-from-last-month",
		"/api/stock/monthly-summaries/generate-item",
	} {
		status, env := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, path, `{"year":2025,"month":9}`)
		assert.Equal(t, http.StatusForbidden, status, path)
		assert.Equal(t, "FORBIDDEN", env.Code)
	}
	status, _ := call(t, app, pkgjwt.RoleStorekeeper, http.MethodPost, "/api/production/execute", `{}`)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSummaries_ListaSinPeriodoEs400(t *testing.T) {
	app := newAPI(t)
	status, env := call(t, app, pkgjwt.RoleAdmin, http.MethodGet, "/api/stock/monthly-summaries?year=2025", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestRutaInexistente(t *testing.T) {
	app := newAPI(t)
	status, env := call(t, app, pkgjwt.RoleAdmin, http.MethodGet, "/api/nada", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ROUTE_NOT_FOUND", env.Code)
}

func TestApiSinToken(t *testing.T) {
	app := newAPI(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/vendors", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dropflow-go/pkg/metrics"
	"dropflow-go/pkg/models"
	"dropflow-go/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type memStore struct {
	products []models.Product
	orders   []models.Order
}

func (m *memStore) ListProducts(context.Context) ([]models.Product, error) {
	return m.products, nil
}

func (m *memStore) CreateProduct(_ context.Context, c models.ProductCreate) (*models.Product, error) {
	p := models.Product{ID: uuid.New(), Name: c.Name, Source: c.Source, Price: c.Price, Status: models.ProductActive}
	m.products = append(m.products, p)
	return &p, nil
}

func (m *memStore) ListOrders(context.Context) ([]models.Order, error) {
	return m.orders, nil
}

func newTestRouter(t *testing.T, token string) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0644); err != nil {
		t.Fatal(err)
	}

	store := &memStore{
		products: []models.Product{
			{ID: uuid.New(), Name: "Wireless Earbuds", Source: models.SourceAmazon, Status: models.ProductActive},
			{ID: uuid.New(), Name: "Phone Case", Source: models.SourceAliExpress, Status: models.ProductInactive},
		},
		orders: []models.Order{
			{ID: "ORD-001", Customer: "Ada", Email: "ada@example.com", Status: models.OrderPending},
			{ID: "ORD-002", Customer: "Alan", Email: "alan@example.com", Status: models.OrderShipped},
		},
	}

	reg := prometheus.NewRegistry()
	router := NewRouter(services.NewCatalogService(store), Options{
		StaticDir: dir,
		Token:     token,
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
	})
	return router, store
}

func do(router http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, "")
	w := do(router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "healthy" || body["service"] != "dropflow-frontend" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestListProductsWithFilter(t *testing.T) {
	router, _ := newTestRouter(t, "")
	w := do(router, http.MethodGet, "/api/products?source=Amazon", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Items []models.Product `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Items) != 1 || body.Items[0].Name != "Wireless Earbuds" {
		t.Errorf("unexpected items %+v", body.Items)
	}
}

func TestCreateProductValidation(t *testing.T) {
	router, store := newTestRouter(t, "")

	w := do(router, http.MethodPost, "/api/products", `{"name": "Lamp", "source": "eBay"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad source, got %d", w.Code)
	}

	w = do(router, http.MethodPost, "/api/products", `{"name": "Lamp", "source": "Amazon", "price": 12.5}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.products) != 3 {
		t.Errorf("expected product to be stored, have %d", len(store.products))
	}
}

func TestCreateProductRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, "secret")
	payload := `{"name": "Lamp", "source": "Amazon"}`

	if w := do(router, http.MethodPost, "/api/products", payload, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := do(router, http.MethodPost, "/api/products", payload, http.Header{"Authorization": {"Bearer nope"}}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong token, got %d", w.Code)
	}
	if w := do(router, http.MethodPost, "/api/products", payload, http.Header{"Authorization": {"Bearer secret"}}); w.Code != http.StatusCreated {
		t.Errorf("expected 201 with token, got %d", w.Code)
	}
}

func TestListOrders(t *testing.T) {
	router, _ := newTestRouter(t, "")
	w := do(router, http.MethodGet, "/api/orders?q=ada", "", nil)
	var body struct {
		Items []models.Order    `json:"items"`
		Stats models.OrderStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Items) != 1 || body.Items[0].ID != "ORD-001" {
		t.Errorf("expected order ORD-001, got %+v", body.Items)
	}
	if body.Stats.Total != 2 || body.Stats.Pending != 1 || body.Stats.Shipped != 1 {
		t.Errorf("unexpected stats %+v", body.Stats)
	}
}

func TestStaticAndSPAFallback(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := do(router, http.MethodGet, "/assets/app.js", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "console.log") {
		t.Errorf("expected asset, got %d %q", w.Code, w.Body.String())
	}

	w = do(router, http.MethodGet, "/scraper", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "app") {
		t.Errorf("expected index.html fallback, got %d %q", w.Code, w.Body.String())
	}

	w = do(router, http.MethodGet, "/../../etc/passwd", "", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("<html>")) {
		t.Errorf("expected traversal to fall back to index.html, got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/api/nope", "", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "not found") {
		t.Errorf("expected JSON 404 for unknown API path, got %d %q", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")
	do(router, http.MethodGet, "/api/products", "", nil)

	w := do(router, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `dropflow_http_requests_total{method="GET",path="/api/products",status="200"} 1`) {
		t.Errorf("expected request counter in output:\n%s", w.Body.String())
	}
}

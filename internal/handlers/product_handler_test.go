package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"productsapi/internal/handlers"
	"productsapi/internal/models"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
)

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp builds a Fiber app over an in-memory SQLite store with the
// product routes mounted under /api/products.
func setupApp(t *testing.T) (*fiber.App, repositories.ProductRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	repo := repositories.NewGORMProductRepository(db)
	return appOverRepo(repo), repo
}

func appOverRepo(repo repositories.ProductRepository) *fiber.App {
	service := services.NewProductService(repo, nil)
	handler := handlers.NewProductHandler(service)

	app := fiber.New()
	api := app.Group("/api")
	handler.RegisterRoutes(api)
	return app
}

func seedProduct(t *testing.T, repo repositories.ProductRepository, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price}
	require.NoError(t, repo.Create(p))
	return p
}

func doRequest(t *testing.T, app *fiber.App, method, path, payload string) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type productResponse struct {
	Data models.Product `json:"data"`
}

type listResponse struct {
	Data []models.Product `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type violationsResponse struct {
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

func TestGetProducts(t *testing.T) {
	app, repo := setupApp(t)

	t.Run("empty store returns empty array", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/products", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body listResponse
		decodeInto(t, resp, &body)
		assert.Empty(t, body.Data)
	})

	seedProduct(t, repo, "Laptop", 1200.00)
	seedProduct(t, repo, "Keyboard", 75.00)

	t.Run("returns every product", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/products", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body listResponse
		decodeInto(t, resp, &body)
		require.Len(t, body.Data, 2)
		assert.Equal(t, "Laptop", body.Data[0].Name)
	})
}

func TestGetProductByID(t *testing.T) {
	app, repo := setupApp(t)
	seeded := seedProduct(t, repo, "Monitor", 300.5)

	t.Run("existing product", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", seeded.ID), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body productResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, seeded.ID, body.Data.ID)
		assert.Equal(t, "Monitor", body.Data.Name)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/products/999999", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, "Product not Found", body.Error)
	})

	t.Run("non-integer id yields 400", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body violationsResponse
		decodeInto(t, resp, &body)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "id", body.Errors[0].Field)
		assert.Equal(t, "Invalid ID", body.Errors[0].Message)
	})
}

// trackingRepo fails the test if any store operation runs.
type trackingRepo struct {
	mock.Mock
}

func (m *trackingRepo) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *trackingRepo) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	return nil, args.Error(1)
}

func (m *trackingRepo) Create(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *trackingRepo) Update(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *trackingRepo) ToggleAvailability(id int) (*models.Product, error) {
	args := m.Called(id)
	return nil, args.Error(1)
}

func (m *trackingRepo) Delete(id int) error {
	return m.Called(id).Error(0)
}

func TestValidationFailuresNeverReachStore(t *testing.T) {
	repo := new(trackingRepo)
	app := appOverRepo(repo)

	requests := []struct {
		method  string
		path    string
		payload string
	}{
		{http.MethodGet, "/api/products/abc", ""},
		{http.MethodPut, "/api/products/abc", `{"name":"Monitor","price":300.5,"availability":true}`},
		{http.MethodPatch, "/api/products/abc", ""},
		{http.MethodDelete, "/api/products/abc", ""},
		{http.MethodPost, "/api/products", `{"name":"","price":-1}`},
		{http.MethodPut, "/api/products/1", `{"name":"Monitor","price":300.5,"availability":"yes"}`},
	}
	for _, r := range requests {
		resp := doRequest(t, app, r.method, r.path, r.payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s %s", r.method, r.path)
		resp.Body.Close()
	}

	repo.AssertNotCalled(t, "GetAll")
	repo.AssertNotCalled(t, "GetByID", mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything)
	repo.AssertNotCalled(t, "ToggleAvailability", mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestNotFoundNeverMutates(t *testing.T) {
	repo := new(trackingRepo)
	repo.On("GetByID", 42).Return(nil, repositories.ErrNotFound)
	repo.On("ToggleAvailability", 42).Return(nil, repositories.ErrNotFound)
	app := appOverRepo(repo)

	requests := []struct {
		method  string
		payload string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"Monitor","price":300.5,"availability":true}`},
		{http.MethodPatch, ""},
		{http.MethodDelete, ""},
	}
	for _, r := range requests {
		resp := doRequest(t, app, r.method, "/api/products/42", r.payload)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s", r.method)
		var body errorResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, "Product not Found", body.Error)
	}

	repo.AssertNotCalled(t, "Update", mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCreateProduct(t *testing.T) {
	app, _ := setupApp(t)

	t.Run("valid product is created with 200", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"Monitor","price":300.5}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body productResponse
		decodeInto(t, resp, &body)
		assert.GreaterOrEqual(t, body.Data.ID, 1)
		assert.Equal(t, 300.5, body.Data.Price)

		// Round-trip: the stored record matches what was sent, plus the
		// assigned id and the default availability.
		resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", body.Data.ID), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var stored productResponse
		decodeInto(t, resp, &stored)
		assert.Equal(t, body.Data.ID, stored.Data.ID)
		assert.Equal(t, "Monitor", stored.Data.Name)
		assert.Equal(t, 300.5, stored.Data.Price)
		assert.True(t, stored.Data.Availability)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name        string
			payload     string
			wantField   string
			wantMessage string
		}{
			{"missing name", `{"price":10}`, "name", "Product name can't be empty"},
			{"empty name", `{"name":"","price":10}`, "name", "Product name can't be empty"},
			{"missing price", `{"name":"Monitor"}`, "price", "Invalid Value"},
			{"non-numeric price", `{"name":"Monitor","price":"cheap"}`, "price", "Invalid Value"},
			{"zero price", `{"name":"Monitor","price":0}`, "price", "Invalid Price"},
			{"negative price", `{"name":"Monitor","price":-10}`, "price", "Invalid Price"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp := doRequest(t, app, http.MethodPost, "/api/products", tt.payload)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				var body violationsResponse
				decodeInto(t, resp, &body)
				require.Len(t, body.Errors, 1)
				assert.Equal(t, tt.wantField, body.Errors[0].Field)
				assert.Equal(t, tt.wantMessage, body.Errors[0].Message)
			})
		}
	})

	t.Run("all violations reported together", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"","price":0}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body violationsResponse
		decodeInto(t, resp, &body)
		require.Len(t, body.Errors, 2)
		assert.Equal(t, "name", body.Errors[0].Field)
		assert.Equal(t, "price", body.Errors[1].Field)
	})
}

func TestUpdateProduct(t *testing.T) {
	app, repo := setupApp(t)
	seeded := seedProduct(t, repo, "Monitor", 300.5)

	t.Run("full field replacement", func(t *testing.T) {
		path := fmt.Sprintf("/api/products/%d", seeded.ID)
		resp := doRequest(t, app, http.MethodPut, path,
			`{"name":"Curved Monitor","price":349.99,"availability":false}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body productResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, seeded.ID, body.Data.ID)
		assert.Equal(t, "Curved Monitor", body.Data.Name)
		assert.Equal(t, 349.99, body.Data.Price)
		assert.False(t, body.Data.Availability)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, "/api/products/999999",
			`{"name":"Monitor","price":300.5,"availability":true}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, "Product not Found", body.Error)
	})

	t.Run("availability is required and strictly boolean", func(t *testing.T) {
		path := fmt.Sprintf("/api/products/%d", seeded.ID)
		for name, payload := range map[string]string{
			"missing":      `{"name":"Monitor","price":300.5}`,
			"string value": `{"name":"Monitor","price":300.5,"availability":"true"}`,
			"number value": `{"name":"Monitor","price":300.5,"availability":1}`,
		} {
			t.Run(name, func(t *testing.T) {
				resp := doRequest(t, app, http.MethodPut, path, payload)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				var body violationsResponse
				decodeInto(t, resp, &body)
				require.Len(t, body.Errors, 1)
				assert.Equal(t, "availability", body.Errors[0].Field)
				assert.Equal(t, "Invalid Value for availability", body.Errors[0].Message)
			})
		}
	})
}

func TestToggleAvailability(t *testing.T) {
	app, repo := setupApp(t)
	seeded := seedProduct(t, repo, "Monitor", 300.5)
	path := fmt.Sprintf("/api/products/%d", seeded.ID)

	t.Run("flips the flag without reading a body", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPatch, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body productResponse
		decodeInto(t, resp, &body)
		assert.False(t, body.Data.Availability)
	})

	t.Run("a second toggle restores the original value", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPatch, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body productResponse
		decodeInto(t, resp, &body)
		assert.True(t, body.Data.Availability)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPatch, "/api/products/999999", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, "Product not Found", body.Error)
	})
}

func TestDeleteProduct(t *testing.T) {
	app, repo := setupApp(t)
	seeded := seedProduct(t, repo, "Monitor", 300.5)
	path := fmt.Sprintf("/api/products/%d", seeded.ID)

	t.Run("deletes and confirms", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data string `json:"data"`
		}
		decodeInto(t, resp, &body)
		assert.Equal(t, "Product deleted.", body.Data)
	})

	t.Run("deleted id no longer resolves", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, "Product not Found", body.Error)
	})
}

func TestStorageFailuresAlwaysRespond(t *testing.T) {
	// Degraded-store mode: every handler must still produce a response.
	repo := repositories.NewUnavailableProductRepository(fmt.Errorf("connection refused"))
	app := appOverRepo(repo)

	requests := []struct {
		method  string
		path    string
		payload string
	}{
		{http.MethodGet, "/api/products", ""},
		{http.MethodGet, "/api/products/1", ""},
		{http.MethodPost, "/api/products", `{"name":"Monitor","price":300.5}`},
		{http.MethodPut, "/api/products/1", `{"name":"Monitor","price":300.5,"availability":true}`},
		{http.MethodPatch, "/api/products/1", ""},
		{http.MethodDelete, "/api/products/1", ""},
	}
	for _, r := range requests {
		resp := doRequest(t, app, r.method, r.path, r.payload)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "%s %s", r.method, r.path)
		var body errorResponse
		decodeInto(t, resp, &body)
		assert.Equal(t, "Internal Server Error: Something went wrong.", body.Error, "%s %s", r.method, r.path)
	}
}

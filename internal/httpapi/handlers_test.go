// internal/httpapi/handlers_test.go
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-match-backend/internal/catalog"
	"estate-match-backend/internal/catalog/configstore"
	"estate-match-backend/internal/common/database"
	commonerrors "estate-match-backend/internal/common/errors"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/inquiry"
	"estate-match-backend/internal/match"
	"estate-match-backend/internal/models"
)

const testAdminToken = "test-admin-token"

type stubLoader struct {
	properties []models.Property
	err        error
}

func (s *stubLoader) Load(ctx context.Context) ([]models.Property, error) {
	return s.properties, s.err
}

type testServer struct {
	router      *mux.Router
	repo        *catalog.Repository
	inquiryMock sqlmock.Sqlmock
	configMock  sqlmock.Sqlmock
	loader      *stubLoader
}

func newTestServer(t *testing.T) *testServer {
	log := logger.NewTestLogger(t)

	repo := catalog.NewRepository()
	repo.Replace([]models.Property{
		{ID: "p1", Title: "Lakeside Cabin", Price: 110000, Rooms: 2, Baths: 2, Size: 900, Status: models.StatusForSale, Featured: true},
		{ID: "p2", Title: "Hillside Bungalow", Price: 95000, Rooms: 3, Baths: 1, Size: 1200, Status: models.StatusSold},
		{ID: "p3", Title: "Prairie Cottage", Price: 140000, Rooms: 3, Baths: 2, Size: 1500, Status: models.StatusForSale},
	})

	inquiryDB, inquiryMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { inquiryDB.Close() })

	configDB, configMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { configDB.Close() })

	loader := &stubLoader{}
	refresher := catalog.NewRefresher(loader, repo, nil, nil, time.Minute, log)

	handlers := NewHandlers(
		repo,
		nil,
		refresher,
		nil,
		configstore.New(&database.PostgresClient{DB: configDB}, log),
		match.NewEngine(match.DefaultWeights(), log),
		inquiry.NewService(inquiry.NewStore(&database.PostgresClient{DB: inquiryDB}, log), nil, nil, nil, log),
		testAdminToken,
		log,
	)

	router := mux.NewRouter()
	handlers.RegisterRoutes(router)

	return &testServer{
		router:      router,
		repo:        repo,
		inquiryMock: inquiryMock,
		configMock:  configMock,
		loader:      loader,
	}
}

func (ts *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAdminToken}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["properties"])
}

func TestPropertyEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("list all", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/properties", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Properties []models.Property `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Properties, 3)
	})

	t.Run("featured", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/properties/featured", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Properties []models.Property `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Properties, 1)
		assert.Equal(t, "p1", body.Properties[0].ID)
	})

	t.Run("available excludes sold", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/properties/available", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Properties []models.Property `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Properties, 2)
	})

	t.Run("by id", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/properties/p2", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var property models.Property
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &property))
		assert.Equal(t, "Hillside Bungalow", property.Title)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/properties/missing", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("search without elasticsearch is 503", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/properties/search?q=cabin", "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestComputeMatches(t *testing.T) {
	ts := newTestServer(t)

	t.Run("returns ranked matches", func(t *testing.T) {
		body := `{"preferences":{"budget":[100000,150000],"bedrooms":"2 Bedrooms","bathrooms":"2","style":"Compact & Affordable","priorities":["Lowest Price"]}}`

		rec := ts.do(http.MethodPost, "/api/match", body, nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Matches []models.ScoredProperty `json:"matches"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Matches, 2)
		assert.Equal(t, "p1", resp.Matches[0].Property.ID)
		assert.Equal(t, 93, resp.Matches[0].Score)
		assert.Greater(t, resp.Matches[0].MonthlyPayment, 0)
	})

	t.Run("createLead stores a synthesized inquiry", func(t *testing.T) {
		ts.inquiryMock.ExpectExec(`INSERT INTO inquiries`).WillReturnResult(sqlmock.NewResult(0, 1))

		body := `{"preferences":{"budget":[100000,150000],"bedrooms":"2 Bedrooms"},"email":"buyer@example.com","createLead":true}`

		rec := ts.do(http.MethodPost, "/api/match", body, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, ts.inquiryMock.ExpectationsWereMet())
	})

	t.Run("lead failure does not fail the match response", func(t *testing.T) {
		ts.inquiryMock.ExpectExec(`INSERT INTO inquiries`).WillReturnError(assert.AnError)

		body := `{"preferences":{"budget":[100000,150000]},"createLead":true}`

		rec := ts.do(http.MethodPost, "/api/match", body, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid body is 400", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/api/match", "{not json", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMatchOptions(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/match/options", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var opts match.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Len(t, opts.Budgets, 5)
	assert.Len(t, opts.Priorities, 7)
}

func TestSubmitInquiry(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid submission is 201", func(t *testing.T) {
		ts.inquiryMock.ExpectExec(`INSERT INTO inquiries`).WillReturnResult(sqlmock.NewResult(0, 1))

		body := `{"fullName":"Jane Doe","email":"jane@example.com","phone":"(512) 555-0101","message":"Interested in a tour this weekend.","preferredContact":"email"}`

		rec := ts.do(http.MethodPost, "/api/inquiries", body, nil)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])
	})

	t.Run("invalid payload is 400", func(t *testing.T) {
		body := `{"fullName":"J","email":"bad","phone":"1","message":"hi","preferredContact":"fax"}`

		rec := ts.do(http.MethodPost, "/api/inquiries", body, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token is 401", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/admin/sheet-url", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token is 401", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/admin/sheet-url", "", map[string]string{
			"Authorization": "Bearer wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminSheetURL(t *testing.T) {
	ts := newTestServer(t)

	t.Run("get", func(t *testing.T) {
		ts.configMock.ExpectQuery(`SELECT value FROM site_config`).
			WithArgs("sheet_url").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).
				AddRow("https://docs.google.com/spreadsheets/d/ABC123/edit"))

		rec := ts.do(http.MethodGet, "/api/admin/sheet-url", "", adminHeaders())

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["configured"])
	})

	t.Run("put valid URL", func(t *testing.T) {
		ts.configMock.ExpectExec(`INSERT INTO site_config`).
			WithArgs("sheet_url", "https://docs.google.com/spreadsheets/d/ABC123/edit").
			WillReturnResult(sqlmock.NewResult(0, 1))

		body := `{"url":"https://docs.google.com/spreadsheets/d/ABC123/edit"}`

		rec := ts.do(http.MethodPut, "/api/admin/sheet-url", body, adminHeaders())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, ts.configMock.ExpectationsWereMet())
	})

	t.Run("put invalid URL is 400", func(t *testing.T) {
		body := `{"url":"https://evil.com/spreadsheets/d/ABC123"}`

		rec := ts.do(http.MethodPut, "/api/admin/sheet-url", body, adminHeaders())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		ts.configMock.ExpectExec(`DELETE FROM site_config`).
			WithArgs("sheet_url").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := ts.do(http.MethodDelete, "/api/admin/sheet-url", "", adminHeaders())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAdminRefresh(t *testing.T) {
	ts := newTestServer(t)

	t.Run("success reports catalog size", func(t *testing.T) {
		ts.loader.properties = []models.Property{
			{ID: "p1", Title: "Only One", Status: models.StatusForSale},
		}
		ts.loader.err = nil

		rec := ts.do(http.MethodPost, "/api/admin/refresh", "", adminHeaders())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, ts.repo.Size())
	})

	t.Run("fetch failure is 502", func(t *testing.T) {
		ts.loader.properties = nil
		ts.loader.err = commonerrors.NewFetchFailureError(assert.AnError)

		rec := ts.do(http.MethodPost, "/api/admin/refresh", "", adminHeaders())

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "forwarded-for takes the first entry",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			expected: "203.0.113.7",
		},
		{
			name:     "real-ip fallback",
			headers:  map[string]string{"X-Real-IP": "203.0.113.8"},
			expected: "203.0.113.8",
		},
		{
			name:     "cloudflare fallback",
			headers:  map[string]string{"CF-Connecting-IP": "203.0.113.9"},
			expected: "203.0.113.9",
		},
		{
			name:     "no headers",
			headers:  nil,
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}

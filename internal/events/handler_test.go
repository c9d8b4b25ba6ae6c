package events

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"chronomap/internal/store"
	"chronomap/pkg/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	st := store.New(store.NewMemoryStorage())
	h := NewHandler(st, nil)
	h.RegisterReadRoutes(router.Group("/api"))
	h.RegisterWriteRoutes(router.Group("/api"))
	return router
}

func doRequest(router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetLocation(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/locations", map[string]any{
		"name":        "Promontory Summit",
		"coordinates": [2]float64{-112.54, 41.62},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var loc models.HistoricalLocation
	if err := json.Unmarshal(w.Body.Bytes(), &loc); err != nil {
		t.Fatal(err)
	}
	if loc.ID == "" {
		t.Fatal("no id in response")
	}

	w = doRequest(router, http.MethodGet, "/api/locations/"+loc.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/locations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list struct {
		Total int                         `json:"total"`
		Items []models.HistoricalLocation `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 {
		t.Errorf("total = %d, want 1", list.Total)
	}
}

func TestCreateLocationValidation(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/locations", map[string]any{"name": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name: status = %d, want 400", w.Code)
	}
}

func TestLocationNotFound(t *testing.T) {
	router := newTestRouter()

	if w := doRequest(router, http.MethodGet, "/api/locations/nowhere", nil); w.Code != http.StatusNotFound {
		t.Errorf("get: status = %d, want 404", w.Code)
	}
	if w := doRequest(router, http.MethodDelete, "/api/locations/nowhere", nil); w.Code != http.StatusNotFound {
		t.Errorf("delete: status = %d, want 404", w.Code)
	}
	w := doRequest(router, http.MethodPost, "/api/locations/nowhere/events", map[string]any{
		"events": []models.HistoricalEvent{{ID: "ev-1", Title: "T", Date: "1869"}},
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("add events: status = %d, want 404", w.Code)
	}
}

func TestEventLifecycle(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/locations", map[string]any{"name": "Promontory Summit"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create location: %d", w.Code)
	}
	var loc models.HistoricalLocation
	_ = json.Unmarshal(w.Body.Bytes(), &loc)

	w = doRequest(router, http.MethodPost, "/api/locations/"+loc.ID+"/events", map[string]any{
		"events": []models.HistoricalEvent{
			{ID: "ev-1", Title: "Golden Spike", Description: "Railroad completed.", Date: "1869-05-10"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add events: %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPut, "/api/locations/"+loc.ID+"/events/ev-1", models.HistoricalEvent{
		Title: "Golden Spike Ceremony", Date: "1869-05-10",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update event: %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/locations/"+loc.ID, nil)
	var got models.HistoricalLocation
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Events) != 1 || got.Events[0].Title != "Golden Spike Ceremony" {
		t.Errorf("events = %+v", got.Events)
	}

	w = doRequest(router, http.MethodDelete, "/api/locations/"+loc.ID+"/events/ev-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete event: %d", w.Code)
	}
	w = doRequest(router, http.MethodDelete, "/api/locations/"+loc.ID+"/events/ev-1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete twice: %d, want 404", w.Code)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/locations", map[string]any{
		"name": "Promontory Summit",
		"events": []models.HistoricalEvent{
			{ID: "ev-1", Title: "Golden Spike", Date: "1869-05-10"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	exported := w.Body.Bytes()

	router2 := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
	w2 := httptest.NewRecorder()
	router2.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("import: %d, body %s", w2.Code, w2.Body.String())
	}

	w = doRequest(router2, http.MethodGet, "/api/locations", nil)
	var list struct {
		Total int `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list.Total != 1 {
		t.Errorf("imported total = %d, want 1", list.Total)
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader([]byte(`{"foo":1}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

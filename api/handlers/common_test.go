// Common test helpers
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/backend"
	"github.com/meghashyamc/docregistry/config"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/models"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/services/report"
	"github.com/meghashyamc/docregistry/ui"
	"github.com/meghashyamc/docregistry/validation"
	"github.com/stretchr/testify/require"
)

var defaultTestRequestHeaders = map[string]string{"Content-Type": "application/json"}

var htmlTestRequestHeaders = map[string]string{"Accept": "text/html"}

type testCase struct {
	name           string
	endpoint       string
	requestBody    map[string]any
	expectedStatus int
	expectedError  string
}

// testEnvelope mirrors the JSON envelope with the snapshot fields the tests
// look at.
type testEnvelope struct {
	Data struct {
		Title        string                  `json:"title"`
		Form         consult.Form            `json:"form"`
		Types        []models.DocumentType   `json:"types"`
		Candidates   []models.Client         `json:"candidates"`
		ClientsState string                  `json:"clients_state"`
		SearchState  string                  `json:"search_state"`
		ShowTable    bool                    `json:"show_table"`
		Rows         []consult.Row           `json:"rows"`
		Dialog       *consult.DialogSnapshot `json:"dialog"`
		Notices      []consult.Notice        `json:"notices"`
	} `json:"data"`
	Errors []string `json:"errors"`
}

// fakeRegistry is an in-memory registry backend.
type fakeRegistry struct {
	mu         sync.Mutex
	clients    []models.Client
	types      []models.DocumentType
	documents  []models.Document
	deleted    []int
	failSearch bool
	failDelete bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		clients: []models.Client{
			{ID: 1, Name: "Ana Souza"},
			{ID: 2, Name: "Anabela Lima"},
			{ID: 3, Name: "Bruno Costa"},
		},
		types: []models.DocumentType{
			{ID: 1, Name: "Contrato"},
			{ID: 2, Name: "Procuração"},
		},
		documents: []models.Document{
			{ID: 10, Name: "Contrato social", TypeID: 1, ClientID: 1, Box: 3, Date: models.NewDate(2023, 4, 12)},
			{ID: 11, Name: "Procuração geral", TypeID: 2, ClientID: 2, Box: 3},
			{ID: 12, Name: "Aditivo contratual", TypeID: 1, ClientID: 1, Box: 7, Note: "cópia"},
		},
	}
}

func (f *fakeRegistry) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clients", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		name := strings.ToLower(r.URL.Query().Get("name"))
		found := []models.Client{}
		for _, client := range f.clients {
			if strings.Contains(strings.ToLower(client.Name), name) {
				found = append(found, client)
			}
		}
		writeTestJSON(w, found)
	})
	mux.HandleFunc("GET /clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, client := range f.clients {
			if client.ID == id {
				writeTestJSON(w, client)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /documentTypes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeTestJSON(w, f.types)
	})
	mux.HandleFunc("GET /documents", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failSearch {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		query := r.URL.Query()
		found := []models.Document{}
		for _, document := range f.documents {
			if clientID := query.Get("cliente"); clientID != "" && clientID != strconv.Itoa(document.ClientID) {
				continue
			}
			if name := query.Get("nome"); !strings.Contains(strings.ToLower(document.Name), strings.ToLower(name)) {
				continue
			}
			found = append(found, document)
		}
		writeTestJSON(w, found)
	})
	mux.HandleFunc("DELETE /documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failDelete {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		id, _ := strconv.Atoi(r.PathValue("id"))
		f.deleted = append(f.deleted, id)
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func writeTestJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

// setupTestServer wires the handlers to a single consult view backed by
// registry.
func setupTestServer(t *testing.T, assert *require.Assertions, registry *fakeRegistry) *gin.Engine {

	cfg, err := config.Load("test")
	assert.NoError(err, "could not load config")

	backendServer := httptest.NewServer(registry.handler())
	t.Cleanup(backendServer.Close)

	testLogger := newTestLogger()
	b := backend.New(testLogger, backendServer.URL, backend.WithTimeout(cfg.GetBackendTimeout()))
	view := consult.New(testLogger,
		consult.NewBatchedClients(backend.NewClientService(b)),
		backend.NewDocumentService(b),
		consult.Options{
			EditPath:    cfg.GetEditPath(),
			ShortNotice: cfg.GetShortNoticeDuration(),
			LongNotice:  cfg.GetLongNoticeDuration(),
		})
	view.Init(t.Context())

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")
	templates, err := ui.Templates()
	assert.NoError(err, "could not parse templates")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)
	views := router.Group("", func(c *gin.Context) {
		c.Set(ContextKeyView, view)
		c.Next()
	})

	SetupDocuments(views, testLogger, report.New(testLogger), validator)
	SetupClients(views, testLogger, validator)
	SetupDialog(views, testLogger, validator)

	return router
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, requestBodyMap map[string]interface{}, queryParams map[string]string) *httptest.ResponseRecorder {

	var err error
	w := httptest.NewRecorder()

	if len(queryParams) > 0 {
		endpoint = endpoint + "?"
		for key, value := range queryParams {
			if endpoint[len(endpoint)-1] != '?' {
				endpoint = endpoint + "&"
			}
			endpoint = endpoint + key + "=" + value
		}
	}
	var jsonBody []byte
	var req *http.Request
	if requestBodyMap != nil {
		jsonBody, err = json.Marshal(requestBodyMap)
		assert.NoError(err)
	}

	slog.Info("Making test request", "method", method, "endpoint", endpoint, "headers", headers, "body", string(jsonBody))

	if len(jsonBody) > 0 {
		req, err = http.NewRequest(method, endpoint, bytes.NewBuffer(jsonBody))
	} else {
		req, err = http.NewRequest(method, endpoint, nil)
	}
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

// makeTestFormRequest posts a url-encoded form the way the rendered page
// does, asking for HTML back.
func makeTestFormRequest(router *gin.Engine, assert *require.Assertions, endpoint string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	assert.NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	router.ServeHTTP(w, req)

	return w
}

func decodeEnvelope(assert *require.Assertions, w *httptest.ResponseRecorder) testEnvelope {
	envelope := testEnvelope{}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope
}

func postJSON(router *gin.Engine, assert *require.Assertions, endpoint string, body map[string]any) *httptest.ResponseRecorder {
	return makeTestHTTPRequest(router, assert, http.MethodPost, endpoint, defaultTestRequestHeaders, body, nil)
}

func noticeMessages(notices []consult.Notice) []string {
	messages := make([]string, len(notices))
	for i, notice := range notices {
		messages[i] = notice.Message
	}
	return messages
}

func rowIDs(rows []consult.Row) []int {
	ids := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

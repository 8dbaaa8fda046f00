package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/mock"
	"github.com/meghashyamc/docregistry/models"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/meghashyamc/docregistry/services/report"
	"github.com/meghashyamc/docregistry/services/session"
	"github.com/meghashyamc/docregistry/ui"
	"github.com/meghashyamc/docregistry/validation"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:4200"

func setupTestRouter(t *testing.T, assert *require.Assertions) (*gin.Engine, *session.Registry) {
	testLogger := logger.New("debug")

	documents := &mock.DocumentLookup{
		TypesFn: func(ctx context.Context) ([]models.DocumentType, error) {
			return []models.DocumentType{{ID: 1, Name: "Contrato"}}, nil
		},
	}
	factory := func(ctx context.Context) *consult.View {
		view := consult.New(testLogger, &mock.ClientLookup{}, documents, consult.Options{})
		view.Init(ctx)
		return view
	}
	sessions := session.New(testLogger, factory, time.Minute)

	validator, err := validation.New(testLogger)
	assert.NoError(err)
	templates, err := ui.Templates()
	assert.NoError(err)

	gin.SetMode(gin.TestMode)
	router := newRouter([]string{testOrigin})
	router.SetHTMLTemplate(templates)
	router.Use(loggingMiddleware(testLogger))
	setupRoutes(router, testLogger, sessions, report.New(testLogger), validator)

	return router, sessions
}

func TestHealth(t *testing.T) {
	assert := require.New(t)
	router, sessions := setupTestRouter(t, assert)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("OK", w.Body.String())
	assert.Zero(sessions.Len())
}

func TestRootRedirects(t *testing.T) {
	assert := require.New(t)
	router, _ := setupTestRouter(t, assert)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(http.StatusMovedPermanently, w.Code)
	assert.Equal("/documents", w.Header().Get("Location"))
}

func TestSessionIsKeptAcrossRequests(t *testing.T) {
	assert := require.New(t)
	router, sessions := setupTestRouter(t, assert)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/documents", nil))
	assert.Equal(http.StatusOK, w.Code)

	id := w.Header().Get(HeaderSession)
	assert.NotEmpty(id)
	cookies := w.Result().Cookies()
	assert.Len(cookies, 1)
	assert.Equal(SessionCookie, cookies[0].Name)
	assert.Equal(id, cookies[0].Value)
	assert.True(cookies[0].HttpOnly)

	byCookie := httptest.NewRequest(http.MethodGet, "/documents", nil)
	byCookie.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, byCookie)
	assert.Equal(id, w.Header().Get(HeaderSession))

	byHeader := httptest.NewRequest(http.MethodGet, "/documents", nil)
	byHeader.Header.Set(HeaderSession, id)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, byHeader)
	assert.Equal(id, w.Header().Get(HeaderSession))

	assert.Equal(1, sessions.Len())
}

func TestUnknownSessionGetsANewOne(t *testing.T) {
	assert := require.New(t)
	router, sessions := setupTestRouter(t, assert)

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.Header.Set(HeaderSession, "not-a-session")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.NotEqual("not-a-session", w.Header().Get(HeaderSession))
	assert.Equal(1, sessions.Len())
}

func TestCORSPreflight(t *testing.T) {
	assert := require.New(t)
	router, sessions := setupTestRouter(t, assert)

	req := httptest.NewRequest(http.MethodOptions, "/documents/search", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusNoContent, w.Code)
	assert.Equal(testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Zero(sessions.Len())
}

func TestCORSActualRequest(t *testing.T) {
	assert := require.New(t)
	router, _ := setupTestRouter(t, assert)

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal(testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal("true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(http.CanonicalHeaderKey(HeaderSession), w.Header().Get("Access-Control-Expose-Headers"))
}

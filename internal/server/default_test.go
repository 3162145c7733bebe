package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/hcdash/pkg/application"
	"github.com/jacksonlee411/hcdash/pkg/configuration"
	"github.com/jacksonlee411/hcdash/pkg/httpapi"
	"github.com/jacksonlee411/hcdash/pkg/session"
)

type whoamiController struct{}

func (whoamiController) Key() string { return "/whoami" }
func (whoamiController) Register(r *mux.Router) {
	r.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"user": sess.UserID, "role": string(sess.Role)})
	}).Methods(http.MethodGet)
}

func testConfig() *configuration.Configuration {
	return &configuration.Configuration{
		Session:            configuration.SessionOptions{UserHeader: "X-User-ID", RoleHeader: "X-User-Role", NIPHeader: "X-User-NIP"},
		RateLimit:          configuration.RateLimitOptions{Enabled: true, GlobalRPS: 100, Storage: "memory"},
		CORSAllowedOrigins: "http://localhost:3000",
		RequestIDHeader:    "X-Request-ID",
		RealIPHeader:       "X-Real-IP",
	}
}

func newDefault(t *testing.T) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	app := application.New(&application.ApplicationOptions{Logger: log})
	app.RegisterControllers(whoamiController{})
	srv, err := Default(&DefaultOptions{Logger: log, Configuration: testConfig(), Application: app})
	require.NoError(t, err)
	return srv.Router()
}

func TestDefault_SessionFromHeaders(t *testing.T) {
	h := newDefault(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Role", "ADMIN")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user":"u1","role":"admin"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestDefault_NotFoundIsJSON(t *testing.T) {
	h := newDefault(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var env httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "NOT_FOUND", env.Code)
	require.Equal(t, "rid-1", env.Meta["request_id"])
}

func TestDefault_MethodNotAllowedIsJSON(t *testing.T) {
	h := newDefault(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/whoami", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Contains(t, rec.Body.String(), "METHOD_NOT_ALLOWED")
}

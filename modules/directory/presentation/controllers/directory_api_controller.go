package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
	"github.com/jacksonlee411/hcdash/modules/directory/presentation/mappers"
	"github.com/jacksonlee411/hcdash/modules/directory/services"
	"github.com/jacksonlee411/hcdash/pkg/application"
	"github.com/jacksonlee411/hcdash/pkg/middleware"
	"github.com/jacksonlee411/hcdash/pkg/session"
)

type DirectoryAPIController struct {
	app       application.Application
	directory *services.DirectoryService
	log       *logrus.Logger
	basePath  string
}

func NewDirectoryAPIController(app application.Application) application.Controller {
	return &DirectoryAPIController{
		app:       app,
		directory: app.Service(services.DirectoryService{}).(*services.DirectoryService),
		log:       app.Logger(),
		basePath:  "/directory/api",
	}
}

func (c *DirectoryAPIController) Key() string {
	return c.basePath
}

func (c *DirectoryAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.TracedMiddleware("directory"))
	router.HandleFunc("/profiles", c.List).Methods(http.MethodGet)
	router.HandleFunc("/profiles/{nip}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/profiles/{nip}/performance", c.Performance).Methods(http.MethodGet)
	router.HandleFunc("/analytics", c.Analytics).Methods(http.MethodGet)
	router.HandleFunc("/fields", c.Fields).Methods(http.MethodGet)
	if c.app.Websocket() != nil {
		router.HandleFunc("/ws", c.Live).Methods(http.MethodGet)
	}
}

func sessionFrom(r *http.Request) session.Session {
	sess, _ := session.FromContext(r.Context())
	return sess
}

func queryInt(r *http.Request, name string) (int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *DirectoryAPIController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := services.ListParams{
		Q:         q.Get("q"),
		UnitKerja: q.Get("unitKerja"),
		Area:      q.Get("area"),
		Level:     q.Get("level"),
		Sort:      q.Get("sort"),
		Order:     q.Get("order"),
	}
	for name, dst := range map[string]*int{"limit": &params.Limit, "offset": &params.Offset} {
		n, ok := queryInt(r, name)
		if !ok {
			c.writeServiceError(w, r, services.ErrInvalidParams.WithTemplateData(map[string]string{
				"field": name,
				"rule":  "int",
			}))
			return
		}
		*dst = n
	}

	res, err := c.directory.List(r.Context(), sessionFrom(r), params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.ListResultToViewModel(res, params))
}

func (c *DirectoryAPIController) Get(w http.ResponseWriter, r *http.Request) {
	nip := strings.TrimSpace(mux.Vars(r)["nip"])
	matches, err := c.directory.FindByNIP(r.Context(), sessionFrom(r), nip)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if len(matches) == 0 {
		writeAPIError(w, r, http.StatusNotFound, "DIRECTORY_PROFILE_NOT_FOUND", "profile not found", map[string]string{"nip": nip})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"nip":   nip,
		"items": mappers.ProfilesToViewModels(matches),
	})
}

func (c *DirectoryAPIController) Performance(w http.ResponseWriter, r *http.Request) {
	nip := strings.TrimSpace(mux.Vars(r)["nip"])
	matches, err := c.directory.FindByNIP(r.Context(), sessionFrom(r), nip)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if len(matches) == 0 {
		writeAPIError(w, r, http.StatusNotFound, "DIRECTORY_PROFILE_NOT_FOUND", "profile not found", map[string]string{"nip": nip})
		return
	}
	writeJSON(w, http.StatusOK, mappers.PerformanceToViewModel(nip, matches))
}

func (c *DirectoryAPIController) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := c.directory.Analytics(r.Context(), sessionFrom(r))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.AnalyticsToViewModel(a))
}

// Fields is public: the header table carries no employee data.
func (c *DirectoryAPIController) Fields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.FieldsToViewModels(profile.Fields()),
	})
}

func (c *DirectoryAPIController) Live(w http.ResponseWriter, r *http.Request) {
	if err := c.directory.AuthorizeLive(r.Context(), sessionFrom(r)); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	c.app.Websocket().ServeHTTP(w, r)
}

package application

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/pkg/eventbus"
)

type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Websocket() Huber
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...any)
	Service(service any) any
	Services() map[reflect.Type]any
}

type ApplicationOptions struct {
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
	Huber    Huber
}

func New(opts *ApplicationOptions) Application {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	bus := opts.EventBus
	if bus == nil {
		bus = eventbus.NewEventPublisher(log)
	}
	return &application{
		logger:         log,
		eventPublisher: bus,
		websocket:      opts.Huber,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]any),
	}
}

// application with a dynamically extendable service registry
type application struct {
	logger         *logrus.Logger
	eventPublisher eventbus.EventBus
	websocket      Huber

	mu          sync.RWMutex
	services    map[reflect.Type]any
	controllers map[string]Controller
	middleware  []mux.MiddlewareFunc
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) Websocket() Huber {
	return app.websocket
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return append([]mux.MiddlewareFunc(nil), app.middleware...)
}

// Controllers are returned ordered by key so routes register deterministically.
func (app *application) Controllers() []Controller {
	app.mu.RLock()
	defer app.mu.RUnlock()
	keys := make([]string, 0, len(app.controllers))
	for k := range app.controllers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	controllers := make([]Controller, 0, len(keys))
	for _, k := range keys {
		controllers = append(controllers, app.controllers[k])
	}
	return controllers
}

func (app *application) RegisterControllers(controllers ...Controller) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.middleware = append(app.middleware, middleware...)
}

// RegisterServices registers pointer services keyed by their element type.
func (app *application) RegisterServices(services ...any) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, service := range services {
		t := reflect.TypeOf(service)
		if t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("service %s must be registered as a pointer", t))
		}
		app.services[t.Elem()] = service
	}
}

// Service retrieves a service by its type, e.g. app.Service(services.DirectoryService{}).
func (app *application) Service(service any) any {
	serviceType := reflect.TypeOf(service)
	app.mu.RLock()
	svc, exists := app.services[serviceType]
	app.mu.RUnlock()
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]any {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make(map[reflect.Type]any, len(app.services))
	for k, v := range app.services {
		out[k] = v
	}
	return out
}

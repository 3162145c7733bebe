package directory

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/modules/directory/presentation/controllers"
	"github.com/jacksonlee411/hcdash/modules/directory/presentation/mappers"
	"github.com/jacksonlee411/hcdash/modules/directory/services"
	"github.com/jacksonlee411/hcdash/pkg/application"
	"github.com/jacksonlee411/hcdash/pkg/authz"
)

type ModuleOptions struct {
	Source     sheet.Source
	Authorizer authz.Authorizer
	// RefreshSchedule is a cron spec; empty disables background refreshes.
	RefreshSchedule string
	DefaultPageSize int
}

func NewModule(opts *ModuleOptions) *Module {
	return &Module{opts: opts}
}

type Module struct {
	opts        *ModuleOptions
	refresher   *services.Refresher
	unsubscribe []func()
}

func (m *Module) Register(app application.Application) error {
	if m.opts == nil || m.opts.Source == nil {
		return errors.New("directory: source is required")
	}
	if m.opts.Authorizer == nil {
		return errors.New("directory: authorizer is required")
	}

	svc := services.NewDirectoryService(
		m.opts.Source,
		m.opts.Authorizer,
		app.EventPublisher(),
		app.Logger(),
		services.WithDefaultPageSize(m.opts.DefaultPageSize),
	)
	app.RegisterServices(svc)

	if m.opts.RefreshSchedule != "" {
		r, err := services.NewRefresher(svc, m.opts.RefreshSchedule, app.Logger())
		if err != nil {
			return err
		}
		m.refresher = r
	}

	app.RegisterControllers(
		controllers.NewDirectoryAPIController(app),
	)

	if hub := app.Websocket(); hub != nil {
		m.subscribeLive(app, hub)
	}
	return nil
}

// subscribeLive forwards directory events to websocket subscribers.
func (m *Module) subscribeLive(app application.Application, hub application.Huber) {
	log := app.Logger()
	send := func(v any) {
		payload, err := json.Marshal(v)
		if err != nil {
			log.WithError(err).Error("failed to encode directory live event")
			return
		}
		application.Broadcast(hub, log, application.ChannelDirectory, payload)
	}
	bus := app.EventPublisher()
	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(func(e *services.DirectoryLoadedEvent) {
			send(mappers.LoadedEventToLive(e))
		}),
		bus.Subscribe(func(e *services.DirectoryLoadFailedEvent) {
			send(mappers.FailedEventToLive(e))
		}),
	)
}

// Refresher is nil when no schedule was configured.
func (m *Module) Refresher() *services.Refresher {
	return m.refresher
}

// Close stops forwarding events. The refresher is stopped by its owner.
func (m *Module) Close() {
	for _, stop := range m.unsubscribe {
		stop()
	}
	m.unsubscribe = nil
}

func (m *Module) Name() string {
	return "directory"
}

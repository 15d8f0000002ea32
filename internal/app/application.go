package app

import (
	"context"
	"fmt"
	"time"

	"github.com/qalabs/reporting-demo-api/internal/app/services/calculator"
	"github.com/qalabs/reporting-demo-api/internal/app/services/dataproc"
	"github.com/qalabs/reporting-demo-api/internal/app/services/reporter"
	"github.com/qalabs/reporting-demo-api/internal/app/services/users"
	"github.com/qalabs/reporting-demo-api/internal/app/storage"
	"github.com/qalabs/reporting-demo-api/internal/app/storage/memory"
	"github.com/qalabs/reporting-demo-api/internal/app/system"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

// Stores encapsulates persistence dependencies. A nil store defaults to the
// in-memory implementation.
type Stores struct {
	Users storage.UserStore
}

// Options tunes optional application behavior.
type Options struct {
	// OperationLatency is slept before every user operation to simulate
	// asynchronous I/O. Zero disables it.
	OperationLatency time.Duration
	// ReporterSchedule overrides the stats snapshot cron expression.
	ReporterSchedule string
	// DisableReporter leaves the background stats job unregistered.
	DisableReporter bool
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Users      *users.Service
	Calculator *calculator.Service
	Data       *dataproc.Service
	Reporter   *reporter.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	if stores.Users == nil {
		stores.Users = memory.New()
	}

	manager := system.NewManager()

	var userOpts []users.Option
	if opts.OperationLatency > 0 {
		userOpts = append(userOpts, users.WithLatency(opts.OperationLatency))
	}
	userService := users.New(stores.Users, log.Named("users"), userOpts...)
	calcService := calculator.New(log.Named("calculator"))
	dataService := dataproc.New(log.Named("dataproc"))

	for _, name := range []string{"users", "calculator", "dataproc"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	app := &Application{
		manager:    manager,
		log:        log,
		Users:      userService,
		Calculator: calcService,
		Data:       dataService,
	}

	if !opts.DisableReporter {
		rep := reporter.New(userService, opts.ReporterSchedule, log.Named("reporter"))
		if err := manager.Register(rep); err != nil {
			return nil, fmt.Errorf("register reporter: %w", err)
		}
		app.Reporter = rep
	}

	return app, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}

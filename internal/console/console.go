package console

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/notify"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/store"
	consolehttp "github.com/AktanAlmazovich/Fleet-manager/internal/console/server/http"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
)

// ConsoleServer is the assembled fleet console.
type ConsoleServer struct {
	store  *store.VehicleStore
	bus    *notify.Bus
	http   *consolehttp.Server
	logger log.Logger
}

// Run performs the startup snapshot loads and serves until the context is
// cancelled. Failed startup loads are logged and tolerated: the console
// comes up with an empty snapshot and the operator can refresh once the
// fleet service is reachable again.
func (s *ConsoleServer) Run(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		s.logger.Warn("initial vehicle snapshot load failed", "error", err)
	}
	if err := s.store.LoadDrivers(ctx); err != nil {
		s.logger.Warn("initial driver snapshot load failed", "error", err)
	}

	s.bus.Seed([]model.Notification{
		{Type: model.NotificationInfo, Title: "Console started", Message: "Fleet console is up", Read: false},
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.http.Start(ctx)
	})

	s.logger.Info("fleet console running")
	return g.Wait()
}

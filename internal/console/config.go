package console

import (
	"context"
	"fmt"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/engine"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/notify"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/store"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/workflow"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/notifier"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/remote"
	consolehttp "github.com/AktanAlmazovich/Fleet-manager/internal/console/server/http"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/options"
)

// Config carries the resolved option groups needed to assemble the console.
type Config struct {
	RemoteOptions *options.RemoteOptions
	HttpOptions   *options.HttpOptions
	MqttOptions   *options.MqttOptions
}

// NewConsoleServer wires all components together. Construction order follows
// the dependency graph: remote client, then store and bus (with the optional
// MQTT sink), then the engine, the workflow registry, and finally the REST
// server on top.
func (cfg *Config) NewConsoleServer(ctx context.Context) (*ConsoleServer, error) {
	logger := log.Std()

	fleet := remote.NewClient(cfg.RemoteOptions)

	var sink core.EventSink
	if cfg.MqttOptions.Enabled() {
		mqttSink, err := notifier.NewMQTTSink(ctx, cfg.MqttOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to init mqtt sink: %w", err)
		}
		sink = mqttSink
	}

	vehicleStore := store.New(fleet, logger)
	bus := notify.NewBus(sink, logger)
	eng := engine.New(fleet, vehicleStore, bus, cfg.RemoteOptions.Timeout, logger)
	workflows := workflow.NewRegistry(eng)

	handler := consolehttp.NewHandler(vehicleStore, eng, bus, workflows, fleet, logger)
	httpSrv := consolehttp.NewServer(cfg.HttpOptions, handler)

	return &ConsoleServer{
		store:  vehicleStore,
		bus:    bus,
		http:   httpSrv,
		logger: logger.WithName("console"),
	}, nil
}

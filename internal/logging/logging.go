// Package logging builds the zap logger used by the CLI and bridges core
// events into it.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aexol-studio/axolotl-sub001/internal/eventbus"
	"github.com/aexol-studio/axolotl-sub001/internal/events"
)

// New creates a logger at level ("debug", "info", "warn", "error").
// Development loggers write human-readable console output.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}

// Attach logs composition and federation events from bus.
func Attach(bus *eventbus.Bus, logger *zap.Logger) (detach func()) {
	unsubs := []func(){
		eventbus.Subscribe(bus, func(_ context.Context, e events.ComposeFinish) {
			if e.Err != nil {
				logger.Error("schema composition failed",
					zap.Strings("documents", e.Documents),
					zap.Strings("conflicts", e.Conflicts),
					zap.Error(e.Err))
				return
			}
			logger.Info("schema composed",
				zap.Int("documents", len(e.Documents)),
				zap.Duration("duration", e.Duration))
		}),
		eventbus.Subscribe(bus, func(_ context.Context, e events.ResolverShadowed) {
			logger.Warn("subscription resolver shadows other subgraphs",
				zap.String("field", e.Type+"."+e.Field),
				zap.Int("winner", e.Winner),
				zap.Ints("shadowed", e.Shadowed))
		}),
		eventbus.Subscribe(bus, func(_ context.Context, e events.ValueReplaced) {
			logger.Debug("merged value replaced",
				zap.String("field", e.Type+"."+e.Field),
				zap.String("path", e.Path))
		}),
		eventbus.Subscribe(bus, func(_ context.Context, e events.FieldFinish) {
			if e.Err != nil {
				logger.Debug("federated field failed",
					zap.String("field", e.Type+"."+e.Field),
					zap.Error(e.Err))
			}
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

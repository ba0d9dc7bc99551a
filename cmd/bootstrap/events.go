package bootstrap

import (
	"context"
	"log/slog"

	"fieldbook/internal/events"
	"fieldbook/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (events.Publisher, error) {
	if !cfg.AMQP.Enabled {
		slog.Info("AMQP disabled, domain events will be dropped")
		return events.NewNopPublisher(), nil
	}

	pub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}

package health

import (
	"context"

	"go.uber.org/fx"

	echofx "github.com/storacha/rangestream/pkg/fx/echo"
)

// CheckerParams collects readiness checks contributed by other modules.
type CheckerParams struct {
	fx.In

	Checks []ReadinessCheck `group:"readiness_check"`
}

// NewCheckerFromParams creates a new Checker from fx parameters
func NewCheckerFromParams(params CheckerParams) *Checker {
	return NewChecker(params.Checks...)
}

// Module provides health check functionality
var Module = fx.Module("health",
	fx.Provide(
		NewCheckerFromParams,
		fx.Annotate(
			NewHandler,
			fx.As(new(echofx.RouteRegistrar)),
			fx.ResultTags(`group:"route_registrar"`),
		),
	),
	fx.Invoke(registerShutdown),
)

// registerShutdown marks the checker unready once the app starts stopping.
func registerShutdown(lc fx.Lifecycle, c *Checker) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			c.SetReady(false)
			return nil
		},
	})
}

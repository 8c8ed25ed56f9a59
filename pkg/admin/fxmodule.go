package admin

import (
	"go.uber.org/fx"

	echofx "github.com/storacha/rangestream/pkg/fx/echo"
)

var Module = fx.Module("admin",
	fx.Provide(
		fx.Annotate(
			NewRoutes,
			fx.As(new(echofx.RouteRegistrar)),
			fx.ResultTags(`group:"route_registrar"`),
		),
	),
)

package server

import (
	"go.uber.org/fx"

	echofx "github.com/storacha/rangestream/pkg/fx/echo"
)

// Module registers the info page on the Echo server.
var Module = fx.Module("info-server",
	fx.Provide(
		fx.Annotate(
			NewInfoServer,
			fx.As(new(echofx.RouteRegistrar)),
			fx.ResultTags(`group:"route_registrar"`),
		),
	),
)

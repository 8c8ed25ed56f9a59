package media

import (
	"go.uber.org/fx"

	echofx "github.com/storacha/rangestream/pkg/fx/echo"
	"github.com/storacha/rangestream/pkg/service/media"
)

var Module = fx.Module("media",
	fx.Provide(
		media.NewLibrary,
		fx.Annotate(
			media.NewServer,
			fx.As(new(echofx.RouteRegistrar)),
			fx.ResultTags(`group:"route_registrar"`),
		),
	),
)

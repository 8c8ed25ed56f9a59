package app

import (
	"go.uber.org/fx"

	"github.com/storacha/rangestream/pkg/fx/media"
	"github.com/storacha/rangestream/pkg/fx/stream"
	"github.com/storacha/rangestream/pkg/server"
)

var StreamModule = fx.Module("stream-server",
	stream.Module, // Provides the range streamer
	media.Module,  // Provides media library and handler
	server.Module, // Provides root info handler
)

package cliutil

import "time"

// ServerShutdownTimeout is how long fx waits for lifecycle stop hooks. Open
// streams are cut once it passes.
const ServerShutdownTimeout = 30 * time.Second

// DefaultDataDirName is the directory under the user's home used when no
// data dir is configured.
const DefaultDataDirName = ".rangestream"

// ConfigFileName is the file name written by `config show --write`.
const ConfigFileName = "rangestream.toml"

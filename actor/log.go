package actor

import "github.com/btcsuite/btclog/v2"

// Subsystem is the tag this package's logger registers under.
const Subsystem = "ACTR"

// log is the package-wide subsystem logger. It is disabled by default;
// callers wire up real output via UseLogger, the same pattern the rest of
// this dependency's consumers use for their own subsystem loggers.
var log btclog.Logger = btclog.Disabled

// UseLogger installs logger as the subsystem logger for this package.
func UseLogger(logger btclog.Logger) {
	log = logger
}

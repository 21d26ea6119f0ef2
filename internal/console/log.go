package console

import (
	"io"
	"log"
)

// Logger is the seam the console logs diagnostics through. No logging
// library appears anywhere in the retrieved reference corpus, so this
// stays a thin wrapper over the standard library's log.Logger rather
// than reaching for a third-party structured logger.
type Logger interface {
	Printf(format string, args ...any)
}

// discardLogger is installed by default so a Console never writes to
// stdout/stderr unless the host opts in via WithLogger.
var discardLogger = log.New(io.Discard, "", 0)

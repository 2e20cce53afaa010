package art

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level logger for diagnostics: Debug lines for
// deletes of absent prefixes, which return nil, and a Warn line when
// Insert rejects an out-of-range prefix length. Mirrors the
// package-level Logger + init() convention used by
// onflow/flow-dps's ledger/forest/trie package. Callers that want
// these folded into their own logging pipeline can replace it.
var Logger zerolog.Logger

func init() {
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetLogger replaces the package-level logger, e.g. to raise the level to
// zerolog.DebugLevel for tracing individual no-op deletes, or to
// redirect output into an application's own logger.
func SetLogger(l zerolog.Logger) {
	Logger = l
}

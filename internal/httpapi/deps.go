package httpapi

import (
	"database/sql"
	"sync/atomic"

	"jobflow-engine/internal/events"
	"jobflow-engine/internal/logging"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub
	Log *logging.Logger

	// stores config.Config
	CfgVal *atomic.Value

	// Origins allowed by Cors; empty reflects any origin.
	CORSOrigins []string
}

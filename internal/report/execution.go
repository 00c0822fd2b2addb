package report

import (
	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/pkg/reporting"
)

// Execution is one prepared report execution: the resolved plugin, the
// configured report instance ready to run, and the realm it must run
// under. Executions are handed to the rendering stage and owned by it
// from then on.
type Execution struct {
	// Plugin is the resolved plugin identity.
	Plugin *model.Plugin

	// Goal is the goal the report was prepared from.
	Goal string

	// ExecutionID labels the execution, "report:<goal>".
	ExecutionID string

	// Report is the configured report instance.
	Report reporting.Report

	// Realm is the isolated realm the report must be generated under.
	Realm *realm.Realm
}

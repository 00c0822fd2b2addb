package report

import (
	"github.com/kiln-build/reportexec/internal/plugin"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/pkg/reporting"
)

// isReport determines whether a goal's implementation satisfies the
// report capability contract. The check runs entirely inside the
// plugin's own realm, the prior realm being restored on every exit
// path, and never fails outward: implementations that cannot be
// resolved or whose construction panics degrade to "not a report" so
// one malformed plugin cannot abort the rest of the request.
func (e *defaultExecutor) isReport(exec *plugin.GoalExecution) (isReport bool) {
	r := exec.Realm()

	g := realm.Swap(r)
	defer g.Restore()

	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("skipping goal whose implementation check failed",
				"goal", exec.Goal, "panic", rec)
			isReport = false
		}
	}()

	factory, err := r.Lookup(exec.Descriptor.Implementation)
	if err != nil {
		e.logger.Warn("skipping goal with unresolvable implementation",
			"goal", exec.Goal, "error", err)
		return false
	}

	_, ok := factory().(reporting.Report)
	if !ok {
		e.logger.Debug("skipping non-report goal",
			"goal", exec.Goal, "implementation", exec.Descriptor.Implementation)
	}
	return ok
}

// canGenerate asks the configured report, under its own realm, whether
// it currently has anything to generate.
func (e *defaultExecutor) canGenerate(rep reporting.Report, exec *plugin.GoalExecution) bool {
	g := realm.Swap(exec.Realm())
	defer g.Restore()

	return rep.CanGenerate()
}

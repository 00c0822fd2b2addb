// Package report resolves, configures, and prepares report executions
// from a list of requested report plugins, so the rendering stage can
// later invoke them. Per plugin it resolves the effective version,
// obtains the descriptor and isolated realm from the plugin manager,
// selects and deduplicates goals, merges the three configuration
// levels, filters out goals that are not report-capable, runs any
// forked executions a goal declares, and assembles the ordered result.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kiln-build/reportexec/internal/lifecycle"
	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/plugin"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
	"github.com/kiln-build/reportexec/pkg/reporting"
)

// Imports is the fixed whitelist of contract type names every plugin
// realm imports from the host realm, so host and plugin share a single
// definition of the reporting contract.
var Imports = []string{
	"reporting.Report",
	"reporting.MultiPageReport",
	"sink.Sink",
	"sink.Factory",
	"sink.EventAttributes",
	"render.Renderer",
	"task.Task",
}

// ExcludedArtifacts are the artifact names excluded from every plugin
// realm's own population; they define the imported contract types, and
// loading them again would duplicate those definitions.
var ExcludedArtifacts = []string{
	"kiln-reporting-api",
	"kiln-sink-api",
	"kiln-render-core",
}

// Executor builds prepared report executions from a request.
type Executor interface {
	// BuildReportExecutions resolves every requested report plugin and
	// returns the prepared executions in declaration order. Any failure
	// while processing one plugin aborts the whole call, wrapped with
	// that plugin's identity; there is no partial success across
	// plugins.
	BuildReportExecutions(ctx context.Context, req *Request) ([]*Execution, error)
}

type defaultExecutor struct {
	logger    *slog.Logger
	manager   plugin.Manager
	lifecycle lifecycle.Engine
	versions  plugin.VersionResolver
}

// NewExecutor creates an Executor on top of the given collaborators.
func NewExecutor(manager plugin.Manager, engine lifecycle.Engine, versions plugin.VersionResolver, logger *slog.Logger) Executor {
	return &defaultExecutor{
		logger:    logger,
		manager:   manager,
		lifecycle: engine,
		versions:  versions,
	}
}

func (e *defaultExecutor) BuildReportExecutions(ctx context.Context, req *Request) ([]*Execution, error) {
	if req.ReportPlugins == nil {
		return []*Execution{}, nil
	}
	e.logger.Debug("building report executions", "plugins", len(req.ReportPlugins))

	seen := make(map[types.PluginKey]struct{})
	executions := []*Execution{}

	for i := range req.ReportPlugins {
		rp := &req.ReportPlugins[i]
		key := rp.Key()

		if _, dup := seen[key]; dup {
			e.logger.Info("plugin will be executed more than one time", "plugin", key.String())
		} else {
			seen[key] = struct{}{}
		}

		prepared, err := e.buildReportPlugin(ctx, req, rp)
		if err != nil {
			return nil, types.WrapError(types.REPORT_BUILD_FAILED,
				fmt.Sprintf("failed to get report for %s", key), err)
		}
		executions = append(executions, prepared...)
	}

	return executions, nil
}

func (e *defaultExecutor) buildReportPlugin(ctx context.Context, req *Request, rp *ReportPlugin) ([]*Execution, error) {
	p := &model.Plugin{GroupID: rp.GroupID, ArtifactID: rp.ArtifactID}

	version, err := e.resolveVersion(ctx, rp, req)
	if err != nil {
		return nil, err
	}
	p.Version = version

	mergeBuildPlugin(req, p, rp)

	e.logger.Info("configuring report plugin", "plugin", p.ID())

	descriptor, err := e.manager.GetDescriptor(ctx, p, req.Session)
	if err != nil {
		return nil, err
	}

	goals, userDefined := selectGoals(e.logger, rp)
	if !userDefined {
		// Implicit selection: every goal the plugin exposes becomes a
		// candidate with its own default configuration, filtered to
		// report-capable goals below.
		for _, gd := range descriptor.Goals() {
			goals = append(goals, goalWithConf{goal: gd.Goal, config: gd.DefaultConfiguration})
		}
	}

	var prepared []*Execution
	for _, gwc := range goals {
		gd := descriptor.Goal(gwc.goal)
		if gd == nil {
			return nil, types.NewErrorf(types.GOAL_NOT_FOUND,
				"could not find goal %s in plugin %s", gwc.goal, descriptor.ID())
		}

		exec := plugin.NewGoalExecution(p, gwc.goal, "report:"+gwc.goal)
		exec.Descriptor = gd

		if err := e.manager.SetupRealm(ctx, descriptor, req.Session, e.parentRealm(req), Imports, ExcludedArtifacts); err != nil {
			return nil, err
		}

		if !e.isReport(exec) {
			if userDefined {
				// The goal was explicitly requested; the user should
				// drop it from the reporting configuration.
				e.logger.Warn("ignoring goal since it is not a report",
					"plugin", p.ID(), "goal", gwc.goal)
			}
			continue
		}

		exec.Configuration = mergeConfiguration(e.logger,
			gd.DefaultConfiguration, rp.Configuration, gwc.config, gd.ParameterNames())

		rep, err := e.configuredReport(ctx, req, exec)
		if err != nil {
			return nil, err
		}
		if rep == nil {
			continue
		}

		if err := e.lifecycle.CalculateForkedExecutions(ctx, exec, req.Session); err != nil {
			return nil, err
		}
		if len(exec.Forked) > 0 {
			if err := e.lifecycle.ExecuteForkedExecutions(ctx, exec, req.Session); err != nil {
				return nil, err
			}
		}

		if e.canGenerate(rep, exec) {
			prepared = append(prepared, &Execution{
				Plugin:      p,
				Goal:        gwc.goal,
				ExecutionID: exec.ExecutionID,
				Report:      rep,
				Realm:       descriptor.Realm(),
			})
		}
	}

	return prepared, nil
}

// configuredReport obtains the configured report instance for a goal
// execution. Two failure kinds are recovered locally and yield a nil
// report with a warning: an instance that does not implement the
// report capability, and the known class-loading defect of plugins
// still depending on the removed plugin registry facility. Everything
// else propagates and aborts the request.
func (e *defaultExecutor) configuredReport(ctx context.Context, req *Request, exec *plugin.GoalExecution) (reporting.Report, error) {
	inst, err := e.manager.GetConfiguredInstance(ctx, req.Session, exec)
	if err != nil {
		if types.IsCode(err, types.LEGACY_REGISTRY_REMOVED) {
			e.logger.Warn("skipping goal depending on the removed plugin registry facility",
				"plugin", exec.Plugin.ID(), "goal", exec.Goal)
			e.logger.Debug("legacy plugin registry failure", "error", err)
			return nil, nil
		}
		return nil, err
	}

	rep, ok := inst.(reporting.Report)
	if !ok {
		mismatch := types.NewErrorf(types.INSTANCE_TYPE_MISMATCH,
			"configured instance %T of goal %s is not a report", inst, exec.Goal)
		e.logger.Warn("skipping goal with mismatched instance type", "error", mismatch)
		return nil, nil
	}

	return rep, nil
}

// parentRealm returns the realm plugin realms hang off: the currently
// active one, falling back to the session's host realm.
func (e *defaultExecutor) parentRealm(req *Request) *realm.Realm {
	if r := realm.Current(); r != nil {
		return r
	}
	return req.Session.HostRealm
}

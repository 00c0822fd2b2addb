// Package lifecycle provides the lifecycle engine collaborator: it
// computes the forked executions a goal declares as prerequisites and
// runs them before the goal itself is prepared.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/plugin"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
	"github.com/kiln-build/reportexec/pkg/task"
)

// Engine computes and runs forked sub-executions.
type Engine interface {
	// CalculateForkedExecutions populates exec.Forked from the fork
	// prerequisites the goal's descriptor declares.
	CalculateForkedExecutions(ctx context.Context, exec *plugin.GoalExecution, s *model.Session) error

	// ExecuteForkedExecutions runs exec.Forked in order. Only their
	// side effects matter; outputs are not collected.
	ExecuteForkedExecutions(ctx context.Context, exec *plugin.GoalExecution, s *model.Session) error
}

// defaultEngine resolves fork prerequisites against the goal's own
// plugin descriptor and runs them through the plugin manager.
type defaultEngine struct {
	manager plugin.Manager
	logger  *slog.Logger
}

// NewEngine creates the descriptor-driven lifecycle engine.
func NewEngine(manager plugin.Manager, logger *slog.Logger) Engine {
	return &defaultEngine{
		manager: manager,
		logger:  logger,
	}
}

func (e *defaultEngine) CalculateForkedExecutions(ctx context.Context, exec *plugin.GoalExecution, s *model.Session) error {
	exec.Forked = nil

	gd := exec.Descriptor
	if gd == nil || len(gd.Forks) == 0 {
		return nil
	}

	pd := gd.PluginDescriptor()
	visited := map[string]struct{}{gd.Goal: {}}

	for _, forkGoal := range gd.Forks {
		if _, seen := visited[forkGoal]; seen {
			e.logger.Warn("ignoring cyclic fork declaration",
				"goal", gd.Goal, "fork", forkGoal)
			continue
		}
		visited[forkGoal] = struct{}{}

		forkDescriptor := pd.Goal(forkGoal)
		if forkDescriptor == nil {
			return types.NewErrorf(types.GOAL_NOT_FOUND,
				"goal %s forks unknown goal %s in plugin %s", gd.Goal, forkGoal, pd.ID())
		}

		forked := plugin.NewGoalExecution(exec.Plugin, forkGoal, "forked:"+forkGoal)
		forked.Descriptor = forkDescriptor
		if forkDescriptor.DefaultConfiguration != nil {
			forked.Configuration = forkDescriptor.DefaultConfiguration.Clone()
		}
		exec.Forked = append(exec.Forked, forked)
	}

	return nil
}

func (e *defaultEngine) ExecuteForkedExecutions(ctx context.Context, exec *plugin.GoalExecution, s *model.Session) error {
	for _, forked := range exec.Forked {
		e.logger.Info("executing forked goal",
			"plugin", forked.Plugin.ID(), "goal", forked.Goal)

		inst, err := e.manager.GetConfiguredInstance(ctx, s, forked)
		if err != nil {
			return types.WrapError(types.FORKED_EXECUTION_FAILED,
				fmt.Sprintf("failed to prepare forked goal %s", forked.Goal), err)
		}

		t, ok := inst.(task.Task)
		if !ok {
			return types.NewErrorf(types.FORKED_EXECUTION_FAILED,
				"forked goal %s implementation %T is not executable", forked.Goal, inst)
		}

		if err := e.runInRealm(ctx, forked, t); err != nil {
			return types.WrapError(types.FORKED_EXECUTION_FAILED,
				fmt.Sprintf("forked goal %s failed", forked.Goal), err)
		}
	}

	return nil
}

// runInRealm executes the forked goal inside its plugin realm,
// restoring the prior realm on every exit path.
func (e *defaultEngine) runInRealm(ctx context.Context, exec *plugin.GoalExecution, t task.Task) error {
	g := realm.Swap(exec.Realm())
	defer g.Restore()

	return t.Execute(ctx)
}

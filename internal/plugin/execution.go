package plugin

import (
	"fmt"

	"github.com/kiln-build/reportexec/internal/conf"
	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
)

// GoalExecution is one unit of goal execution being prepared: the
// resolved plugin, the goal, its merged configuration, and any forked
// executions the lifecycle engine computed for it.
type GoalExecution struct {
	// ID uniquely identifies this execution unit.
	ID types.ID

	// Plugin is the resolved plugin the goal belongs to.
	Plugin *model.Plugin

	// Goal is the goal name.
	Goal string

	// ExecutionID labels the execution for diagnostics, by convention
	// "report:<goal>" for report executions.
	ExecutionID string

	// Descriptor is the goal's descriptor, set once looked up.
	Descriptor *GoalDescriptor

	// Configuration is the merged configuration the instance is
	// configured with.
	Configuration *conf.Node

	// Forked holds the forked executions computed by the lifecycle
	// engine, in the order they must run.
	Forked []*GoalExecution
}

// NewGoalExecution creates an execution unit for the given plugin and
// goal with a fresh ID.
func NewGoalExecution(p *model.Plugin, goal, executionID string) *GoalExecution {
	return &GoalExecution{
		ID:          types.NewID(),
		Plugin:      p,
		Goal:        goal,
		ExecutionID: executionID,
	}
}

// Realm returns the realm of the plugin this execution runs in, or nil
// before the realm has been set up.
func (e *GoalExecution) Realm() *realm.Realm {
	if e.Descriptor == nil || e.Descriptor.PluginDescriptor() == nil {
		return nil
	}
	return e.Descriptor.PluginDescriptor().Realm()
}

// String returns a diagnostic identity like "g:a:1.0.0:goal (report:goal)".
func (e *GoalExecution) String() string {
	return fmt.Sprintf("%s:%s (%s)", e.Plugin.ID(), e.Goal, e.ExecutionID)
}

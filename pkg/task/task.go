// Package task defines the generic executable contract of a plugin
// goal. Report goals additionally satisfy pkg/reporting.Report; forked
// prerequisite goals only need to be runnable.
package task

import "context"

// Task is a configured goal instance that can be executed.
type Task interface {
	// Execute runs the goal to completion.
	Execute(ctx context.Context) error
}

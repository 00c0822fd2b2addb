package report

import (
	"log/slog"

	"github.com/kiln-build/reportexec/internal/conf"
)

// mergeConfiguration merges the three configuration levels of one goal
// and filters the result down to the goal's declared parameters.
//
// Precedence, highest first: scope-level (report set or per-goal)
// configuration, then plugin-level configuration, then the goal's own
// default configuration. After merging, only top-level children naming
// a declared parameter survive; everything else is configuration noise
// and is dropped.
//
// When neither plugin-level nor scope-level configuration exists, the
// goal's own default configuration is returned unfiltered: it is the
// goal's own declaration and already trusted.
func mergeConfiguration(logger *slog.Logger, goalConf, pluginConf, scopeConf *conf.Node, parameters map[string]struct{}) *conf.Node {
	goalConfig := goalConf.Clone()
	if goalConfig == nil {
		goalConfig = conf.NewRoot()
	}

	if pluginConf == nil && scopeConf == nil {
		return goalConfig
	}

	// Scope-level configuration must win over plugin-level.
	mergedWithScope := conf.Merge(scopeConf, pluginConf)
	merged := conf.Merge(mergedWithScope, goalConfig)

	cleaned := conf.NewRoot()
	for _, param := range merged.Children {
		if _, declared := parameters[param.Name]; declared {
			cleaned.AddChild(param.Clone())
		}
	}

	logger.Debug("merged goal configuration",
		"merged", merged.String(), "cleaned", cleaned.String())

	return cleaned
}

package report

import (
	"log/slog"

	"github.com/kiln-build/reportexec/internal/conf"
)

// goalWithConf pairs a selected goal name with the configuration level
// that selected it. It only lives for the duration of one plugin's
// processing.
type goalWithConf struct {
	goal   string
	config *conf.Node
}

// selectGoals expands a report plugin request into the ordered list of
// goals to prepare, each paired with its configuration source.
//
// When the request declares neither report sets nor a goal list it
// returns (nil, false): implicit selection, to be expanded against the
// plugin's full goal catalog once the descriptor is available.
// Otherwise the top-level goal list comes first with the plugin-level
// configuration, followed by each report set's goals with that set's
// configuration, in declaration order. A goal name repeated within one
// list is kept once with a warning; the same goal appearing in
// different lists is kept in each, so it can run multiple times with
// different configuration.
func selectGoals(logger *slog.Logger, rp *ReportPlugin) ([]goalWithConf, bool) {
	if len(rp.Reports) == 0 && len(rp.ReportSets) == 0 {
		return nil, false
	}

	var goals []goalWithConf

	seen := make(map[string]struct{})
	for _, goal := range rp.Reports {
		if _, dup := seen[goal]; dup {
			logger.Warn("report is declared twice in default reports",
				"plugin", rp.Key().String(), "goal", goal)
			continue
		}
		seen[goal] = struct{}{}
		goals = append(goals, goalWithConf{goal: goal, config: rp.Configuration})
	}

	for i := range rp.ReportSets {
		rs := &rp.ReportSets[i]
		seen = make(map[string]struct{})
		for _, goal := range rs.Reports {
			if _, dup := seen[goal]; dup {
				logger.Warn("report is declared twice in report set",
					"plugin", rp.Key().String(), "reportSet", rs.ID, "goal", goal)
				continue
			}
			seen[goal] = struct{}{}
			goals = append(goals, goalWithConf{goal: goal, config: rs.Configuration})
		}
	}

	return goals, true
}

package report

import (
	"github.com/kiln-build/reportexec/internal/conf"
	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/types"
)

// Request bundles everything one report resolution runs against: the
// build session, the target project, and the ordered list of report
// plugin requests. It is read-only input for the executor.
type Request struct {
	Session       *model.Session
	Project       *model.Project
	ReportPlugins []ReportPlugin
}

// ReportPlugin is one requested report plugin: its coordinates, an
// optional pinned version, an optional flat goal list sharing the
// plugin-level configuration, and optional report sets. A request with
// no goals and no report sets means "every goal the plugin exposes,
// filtered to report-capable ones".
type ReportPlugin struct {
	GroupID       string      `yaml:"groupId"`
	ArtifactID    string      `yaml:"artifactId"`
	Version       string      `yaml:"version,omitempty"`
	Reports       []string    `yaml:"reports,omitempty"`
	Configuration *conf.Node  `yaml:"configuration,omitempty"`
	ReportSets    []ReportSet `yaml:"reportSets,omitempty"`
}

// Key returns the group:artifact coordinate of the requested plugin.
func (rp *ReportPlugin) Key() types.PluginKey {
	return types.NewPluginKey(rp.GroupID, rp.ArtifactID)
}

// ReportSet is a named subset of a plugin's goals with its own
// configuration, so one plugin can run the same goals with different
// settings.
type ReportSet struct {
	ID            string     `yaml:"id"`
	Reports       []string   `yaml:"reports"`
	Configuration *conf.Node `yaml:"configuration,omitempty"`
}

// Package builtin ships the report implementations bundled with the
// tool itself. Deployments register them into the host catalog so
// manifests referencing the builtin artifacts resolve without any
// external installation step.
package builtin

import (
	"fmt"

	"github.com/kiln-build/reportexec/internal/plugin"
	"github.com/kiln-build/reportexec/pkg/reporting"
	"github.com/kiln-build/reportexec/pkg/sink"
)

// SummaryArtifact is the artifact name of the bundled summary plugin.
const SummaryArtifact = "kiln-summary-plugin"

// Register adds the builtin implementations to the given catalog.
func Register(c *plugin.Catalog) {
	c.Register(SummaryArtifact, "summary.BuildSummaryReport", func() any {
		return NewBuildSummaryReport()
	})
	c.Register(SummaryArtifact, "summary.DependencyListReport", func() any {
		return NewDependencyListReport()
	})
}

// BuildSummaryReport renders a one-page overview of the build.
type BuildSummaryReport struct {
	Title     string `param:"title"`
	OutputDir string `param:"outputDir"`
	Skip      bool   `param:"skip"`
}

// NewBuildSummaryReport creates the report with its defaults.
func NewBuildSummaryReport() *BuildSummaryReport {
	return &BuildSummaryReport{Title: "Build Summary"}
}

var _ reporting.Report = (*BuildSummaryReport)(nil)

func (r *BuildSummaryReport) Name() string         { return r.Title }
func (r *BuildSummaryReport) Description() string  { return "Overview of the build and its settings." }
func (r *BuildSummaryReport) OutputName() string   { return "build-summary" }
func (r *BuildSummaryReport) CategoryName() string { return "Project Reports" }
func (r *BuildSummaryReport) ExternalReport() bool { return false }

func (r *BuildSummaryReport) CanGenerate() bool {
	return !r.Skip
}

func (r *BuildSummaryReport) Generate(s sink.Sink) error {
	s.Head()
	s.Title(r.Title)
	s.Section(1, nil)
	s.SectionTitle(1, r.Title)
	s.Text("This report summarizes the build.")
	if err := s.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", r.OutputName(), err)
	}
	return s.Close()
}

// DependencyListReport renders the declared dependencies of the
// project.
type DependencyListReport struct {
	OutputDir string   `param:"outputDir"`
	Scopes    []string `param:"scopes"`
}

// NewDependencyListReport creates the report with its defaults.
func NewDependencyListReport() *DependencyListReport {
	return &DependencyListReport{Scopes: []string{"compile"}}
}

var _ reporting.Report = (*DependencyListReport)(nil)

func (r *DependencyListReport) Name() string         { return "Dependencies" }
func (r *DependencyListReport) Description() string  { return "List of the project's declared dependencies." }
func (r *DependencyListReport) OutputName() string   { return "dependencies" }
func (r *DependencyListReport) CategoryName() string { return "Project Reports" }
func (r *DependencyListReport) ExternalReport() bool { return false }
func (r *DependencyListReport) CanGenerate() bool    { return len(r.Scopes) > 0 }

func (r *DependencyListReport) Generate(s sink.Sink) error {
	s.Head()
	s.Title("Dependencies")
	s.Section(1, nil)
	s.SectionTitle(1, "Dependencies")
	for _, scope := range r.Scopes {
		s.Text(fmt.Sprintf("scope: %s", scope))
	}
	if err := s.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", r.OutputName(), err)
	}
	return s.Close()
}

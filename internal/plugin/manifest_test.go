package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-build/reportexec/internal/conf"
	"github.com/kiln-build/reportexec/internal/types"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validManifest = `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.2.0
description: Bundled summary reports.
artifacts:
  - kiln-summary-plugin
goals:
  - goal: summary
    description: Renders the build summary.
    implementation: summary.BuildSummaryReport
    parameters:
      - name: title
      - name: outputDir
    configuration:
      title: Build Summary
  - goal: dependencies
    implementation: summary.DependencyListReport
    forks:
      - summary
`

func TestLoadManifest_Valid(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, validManifest))
	require.NoError(t, err)

	assert.Equal(t, "org.kiln.plugins", m.GroupID)
	assert.Equal(t, "kiln-summary-plugin", m.ArtifactID)
	assert.Equal(t, "1.2.0", m.Version)
	require.Len(t, m.Goals, 2)
	assert.Equal(t, "summary", m.Goals[0].Goal)
	assert.Equal(t, "summary.BuildSummaryReport", m.Goals[0].Implementation)
	assert.Len(t, m.Goals[0].Parameters, 2)
	assert.Equal(t, []string{"summary"}, m.Goals[1].Forks)

	require.NotNil(t, m.Goals[0].Configuration)
	assert.Equal(t, "Build Summary", m.Goals[0].Configuration.Child("title").Value)
}

func TestLoadManifest_TrimsCoordinates(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, `
groupId: "  org.kiln.plugins  "
artifactId: kiln-summary-plugin
version: "1.2.0 "
goals:
  - goal: summary
    implementation: summary.BuildSummaryReport
`))
	require.NoError(t, err)

	assert.Equal(t, "org.kiln.plugins", m.GroupID)
	assert.Equal(t, "1.2.0", m.Version)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), ManifestFileName))
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.MANIFEST_LOAD_FAILED))
}

func TestLoadManifest_MalformedYAML(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "goals: [unclosed"))
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.MANIFEST_LOAD_FAILED))
}

func TestLoadManifest_MissingRequiredFields(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
groupId: org.kiln.plugins
goals:
  - goal: summary
    implementation: summary.BuildSummaryReport
`))
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.MANIFEST_INVALID))
}

func TestLoadManifest_NoGoals(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
goals: []
`))
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.MANIFEST_INVALID))
}

func TestLoadManifest_DuplicateGoal(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
goals:
  - goal: summary
    implementation: summary.BuildSummaryReport
  - goal: summary
    implementation: summary.DependencyListReport
`))
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.MANIFEST_INVALID))
	assert.Contains(t, err.Error(), "declared twice")
}

func TestManifest_ToDescriptor(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, validManifest))
	require.NoError(t, err)

	d := m.ToDescriptor()

	assert.Equal(t, "org.kiln.plugins:kiln-summary-plugin:1.2.0", d.ID())
	assert.Equal(t, types.NewPluginKey("org.kiln.plugins", "kiln-summary-plugin"), d.Key())
	assert.Equal(t, []string{"kiln-summary-plugin"}, d.Artifacts)
	require.Len(t, d.Goals(), 2)

	summary := d.Goal("summary")
	require.NotNil(t, summary)
	assert.Same(t, d, summary.PluginDescriptor())
	require.NotNil(t, summary.DefaultConfiguration)
	assert.Equal(t, conf.RootName, summary.DefaultConfiguration.Name)
	assert.Equal(t, "Build Summary", summary.DefaultConfiguration.Child("title").Value)

	names := summary.ParameterNames()
	assert.Contains(t, names, "title")
	assert.Contains(t, names, "outputDir")

	assert.Nil(t, d.Goal("nope"))
}

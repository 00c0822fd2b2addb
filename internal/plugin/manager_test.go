package plugin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-build/reportexec/internal/conf"
	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
)

// fakeGoal is a configurable goal implementation for manager tests.
type fakeGoal struct {
	Title     string   `param:"title"`
	OutputDir string   `param:"outputDir"`
	Threshold int      `param:"threshold"`
	Scopes    []string `param:"scopes"`
}

const managerManifest = `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
artifacts:
  - kiln-summary-plugin
goals:
  - goal: summary
    implementation: fake.Goal
    parameters:
      - name: title
      - name: outputDir
      - name: threshold
      - name: scopes
`

// newTestManager installs the given manifest under a temp repository and
// returns a manager whose catalog ships fake.Goal.
func newTestManager(t *testing.T, manifest string) Manager {
	t.Helper()

	repo := t.TempDir()
	dir := filepath.Join(repo, "org.kiln.plugins", "kiln-summary-plugin", "1.0.0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0o644))

	catalog := NewCatalog()
	catalog.Register("kiln-summary-plugin", "fake.Goal", func() any { return &fakeGoal{} })

	return NewManifestManager(repo, catalog, discardLogger())
}

func testSession() *model.Session {
	return &model.Session{HostRealm: realm.New("host")}
}

func summaryPlugin() *model.Plugin {
	return &model.Plugin{
		GroupID:    "org.kiln.plugins",
		ArtifactID: "kiln-summary-plugin",
		Version:    "1.0.0",
	}
}

func TestManager_GetDescriptor(t *testing.T) {
	m := newTestManager(t, managerManifest)

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), testSession())
	require.NoError(t, err)

	assert.Equal(t, "org.kiln.plugins:kiln-summary-plugin:1.0.0", d.ID())
	require.NotNil(t, d.Goal("summary"))
	assert.Nil(t, d.Realm(), "realm is not prepared by GetDescriptor")
}

func TestManager_GetDescriptor_UnresolvedVersion(t *testing.T) {
	m := newTestManager(t, managerManifest)

	p := summaryPlugin()
	p.Version = ""

	_, err := m.GetDescriptor(context.Background(), p, testSession())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.PLUGIN_NOT_FOUND))
}

func TestManager_GetDescriptor_NotInstalled(t *testing.T) {
	m := newTestManager(t, managerManifest)

	p := summaryPlugin()
	p.Version = "9.9.9"

	_, err := m.GetDescriptor(context.Background(), p, testSession())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.PLUGIN_NOT_FOUND))
}

func TestManager_GetDescriptor_CoordinateMismatch(t *testing.T) {
	mismatched := `
groupId: org.other
artifactId: kiln-summary-plugin
version: 1.0.0
goals:
  - goal: summary
    implementation: fake.Goal
`
	m := newTestManager(t, mismatched)

	_, err := m.GetDescriptor(context.Background(), summaryPlugin(), testSession())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.MANIFEST_INVALID))
}

func TestManager_SetupRealm(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)

	err = m.SetupRealm(context.Background(), d, s, s.HostRealm, []string{"reporting.Report"}, nil)
	require.NoError(t, err)

	r := d.Realm()
	require.NotNil(t, r)
	assert.Equal(t, []string{"fake.Goal"}, r.TypeNames())
}

func TestManager_SetupRealm_Idempotent(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)

	require.NoError(t, m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil))
	first := d.Realm()

	require.NoError(t, m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil))
	assert.Same(t, first, d.Realm())
}

func TestManager_SetupRealm_SkipsExcludedArtifacts(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)

	err = m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, []string{"kiln-summary-plugin"})
	require.NoError(t, err)

	assert.Empty(t, d.Realm().TypeNames())
}

func TestManager_SetupRealm_SkipsLegacyRegistryArtifact(t *testing.T) {
	legacy := `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
artifacts:
  - kiln-plugin-registry
goals:
  - goal: summary
    implementation: fake.Goal
`
	m := newTestManager(t, legacy)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)

	// The removed facility is skipped instead of failing the setup.
	err = m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, d.Realm().TypeNames())
}

func TestManager_SetupRealm_UnknownArtifact(t *testing.T) {
	unknown := `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
artifacts:
  - not-installed
goals:
  - goal: summary
    implementation: fake.Goal
`
	m := newTestManager(t, unknown)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)

	err = m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.REALM_SETUP_FAILED))
}

// preparedExecution loads the descriptor, sets up the realm, and
// returns an execution unit for the summary goal.
func preparedExecution(t *testing.T, m Manager, s *model.Session) *GoalExecution {
	t.Helper()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)
	require.NoError(t, m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil))

	exec := NewGoalExecution(summaryPlugin(), "summary", "report:summary")
	exec.Descriptor = d.Goal("summary")
	return exec
}

func TestManager_GetConfiguredInstance_DecodesConfiguration(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()
	exec := preparedExecution(t, m, s)

	cfg := conf.NewRoot()
	title := conf.New("title")
	title.Value = "Build Summary"
	cfg.AddChild(title)
	threshold := conf.New("threshold")
	threshold.Value = "42"
	cfg.AddChild(threshold)
	scopes := conf.New("scopes")
	for _, v := range []string{"compile", "test"} {
		c := conf.New("scope")
		c.Value = v
		scopes.AddChild(c)
	}
	cfg.AddChild(scopes)
	exec.Configuration = cfg

	inst, err := m.GetConfiguredInstance(context.Background(), s, exec)
	require.NoError(t, err)

	goal, ok := inst.(*fakeGoal)
	require.True(t, ok)
	assert.Equal(t, "Build Summary", goal.Title)
	assert.Equal(t, 42, goal.Threshold, "weakly typed decode converts the scalar")
	assert.Equal(t, []string{"compile", "test"}, goal.Scopes)
}

func TestManager_GetConfiguredInstance_InterpolatesProperties(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()
	s.Properties = map[string]string{"project.reportDir": "target/site"}
	exec := preparedExecution(t, m, s)

	cfg := conf.NewRoot()
	out := conf.New("outputDir")
	out.Value = "${project.reportDir}/summary"
	cfg.AddChild(out)
	missing := conf.New("title")
	missing.Value = "${no.such.property}"
	cfg.AddChild(missing)
	exec.Configuration = cfg

	inst, err := m.GetConfiguredInstance(context.Background(), s, exec)
	require.NoError(t, err)

	goal := inst.(*fakeGoal)
	assert.Equal(t, "target/site/summary", goal.OutputDir)
	assert.Equal(t, "${no.such.property}", goal.Title, "unknown references stay literal")
}

func TestManager_GetConfiguredInstance_NoConfiguration(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()
	exec := preparedExecution(t, m, s)

	inst, err := m.GetConfiguredInstance(context.Background(), s, exec)
	require.NoError(t, err)
	assert.Equal(t, &fakeGoal{}, inst)
}

func TestManager_GetConfiguredInstance_RealmNotSetUp(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)

	exec := NewGoalExecution(summaryPlugin(), "summary", "report:summary")
	exec.Descriptor = d.Goal("summary")

	_, err = m.GetConfiguredInstance(context.Background(), s, exec)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.INSTANCE_CONFIG_FAILED))
}

func TestManager_GetConfiguredInstance_UnresolvableImplementation(t *testing.T) {
	missingImpl := `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
goals:
  - goal: summary
    implementation: gone.Type
`
	m := newTestManager(t, missingImpl)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)
	require.NoError(t, m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil))

	exec := NewGoalExecution(summaryPlugin(), "summary", "report:summary")
	exec.Descriptor = d.Goal("summary")

	_, err = m.GetConfiguredInstance(context.Background(), s, exec)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.INSTANCE_CONFIG_FAILED))
}

func TestManager_GetConfiguredInstance_LegacyRegistry(t *testing.T) {
	legacy := `
groupId: org.kiln.plugins
artifactId: kiln-summary-plugin
version: 1.0.0
artifacts:
  - kiln-plugin-registry
goals:
  - goal: summary
    implementation: registry.DependentGoal
`
	m := newTestManager(t, legacy)
	s := testSession()

	d, err := m.GetDescriptor(context.Background(), summaryPlugin(), s)
	require.NoError(t, err)
	require.NoError(t, m.SetupRealm(context.Background(), d, s, s.HostRealm, nil, nil))

	exec := NewGoalExecution(summaryPlugin(), "summary", "report:summary")
	exec.Descriptor = d.Goal("summary")

	_, err = m.GetConfiguredInstance(context.Background(), s, exec)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.LEGACY_REGISTRY_REMOVED))
}

func TestManager_GetConfiguredInstance_RestoresRealm(t *testing.T) {
	m := newTestManager(t, managerManifest)
	s := testSession()
	exec := preparedExecution(t, m, s)

	realm.SetCurrent(s.HostRealm)
	defer realm.SetCurrent(nil)

	_, err := m.GetConfiguredInstance(context.Background(), s, exec)
	require.NoError(t, err)

	assert.Same(t, s.HostRealm, realm.Current())
}

func TestCatalog_PopulateRealm(t *testing.T) {
	c := NewCatalog()
	c.Register("artifact-a", "a.Type", func() any { return "a" })
	c.Register("artifact-a", "b.Type", func() any { return "b" })

	assert.True(t, c.HasArtifact("artifact-a"))
	assert.False(t, c.HasArtifact("artifact-b"))

	r := realm.New("plugin")
	require.NoError(t, c.PopulateRealm(r, "artifact-a"))
	assert.Equal(t, []string{"a.Type", "b.Type"}, r.TypeNames())

	err := c.PopulateRealm(r, "artifact-b")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.REALM_SETUP_FAILED))
}

package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
)

// LegacyRegistryArtifact names the removed plugin-registry facility.
// Plugins whose manifests still reference it cannot have their goal
// implementations resolved; that specific failure is reported with a
// dedicated error code so the report executor can skip the goal instead
// of aborting the build.
const LegacyRegistryArtifact = "kiln-plugin-registry"

// ParamTagName is the struct tag goal implementations use to bind
// configuration parameters to fields.
const ParamTagName = "param"

// Manager is the registry collaborator: it materializes a plugin's
// descriptor and isolated realm for a resolved version, and hands out
// configured goal instances.
type Manager interface {
	// GetDescriptor loads the descriptor of the given resolved plugin.
	GetDescriptor(ctx context.Context, p *model.Plugin, s *model.Session) (*Descriptor, error)

	// SetupRealm prepares the plugin's isolated realm under parent,
	// importing the listed type names from it and skipping the listed
	// artifact names during population. It is idempotent per
	// descriptor.
	SetupRealm(ctx context.Context, d *Descriptor, s *model.Session, parent *realm.Realm, imports, excludes []string) error

	// GetConfiguredInstance creates the goal's implementation inside
	// the plugin realm and configures it from the execution's merged
	// configuration.
	GetConfiguredInstance(ctx context.Context, s *model.Session, exec *GoalExecution) (any, error)
}

// manifestManager implements Manager against a directory of installed
// plugin manifests laid out <repo>/<group>/<artifact>/<version>/plugin.yaml,
// with implementations supplied by a host catalog.
type manifestManager struct {
	repoDir string
	catalog *Catalog
	logger  *slog.Logger
}

// NewManifestManager creates a Manager reading manifests under repoDir
// and resolving implementations from catalog.
func NewManifestManager(repoDir string, catalog *Catalog, logger *slog.Logger) Manager {
	return &manifestManager{
		repoDir: repoDir,
		catalog: catalog,
		logger:  logger,
	}
}

func (m *manifestManager) GetDescriptor(ctx context.Context, p *model.Plugin, s *model.Session) (*Descriptor, error) {
	if p.Version == "" {
		return nil, types.NewErrorf(types.PLUGIN_NOT_FOUND,
			"plugin %s has no resolved version", p.Key())
	}

	path := filepath.Join(m.repoDir, p.GroupID, p.ArtifactID, p.Version, ManifestFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, types.WrapError(types.PLUGIN_NOT_FOUND,
			fmt.Sprintf("plugin %s is not installed", p.ID()), err)
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}

	if manifest.GroupID != p.GroupID || manifest.ArtifactID != p.ArtifactID || manifest.Version != p.Version {
		return nil, types.NewErrorf(types.MANIFEST_INVALID,
			"manifest at %s declares %s:%s:%s, expected %s",
			path, manifest.GroupID, manifest.ArtifactID, manifest.Version, p.ID())
	}

	m.logger.Debug("loaded plugin descriptor",
		"plugin", p.ID(), "goals", len(manifest.Goals))

	return manifest.ToDescriptor(), nil
}

func (m *manifestManager) SetupRealm(ctx context.Context, d *Descriptor, s *model.Session, parent *realm.Realm, imports, excludes []string) error {
	if d.realm != nil {
		return nil
	}

	r := realm.NewChild(d.ID(), parent, imports)
	for _, artifact := range d.Artifacts {
		if slices.Contains(excludes, artifact) {
			m.logger.Debug("excluding artifact from plugin realm",
				"plugin", d.ID(), "artifact", artifact)
			continue
		}
		if artifact == LegacyRegistryArtifact {
			// Left unresolved on purpose; the failure surfaces with
			// its own error code when a goal implementation needs it.
			m.logger.Debug("plugin references removed facility",
				"plugin", d.ID(), "artifact", artifact)
			continue
		}
		if err := m.catalog.PopulateRealm(r, artifact); err != nil {
			return types.WrapError(types.REALM_SETUP_FAILED,
				fmt.Sprintf("failed to set up realm for %s", d.ID()), err)
		}
	}

	d.realm = r
	m.logger.Debug("plugin realm ready", "plugin", d.ID(), "types", len(r.TypeNames()))
	return nil
}

func (m *manifestManager) GetConfiguredInstance(ctx context.Context, s *model.Session, exec *GoalExecution) (any, error) {
	gd := exec.Descriptor
	if gd == nil {
		return nil, types.NewErrorf(types.INSTANCE_CONFIG_FAILED,
			"execution %s has no goal descriptor", exec.ExecutionID)
	}

	r := exec.Realm()
	if r == nil {
		return nil, types.NewErrorf(types.INSTANCE_CONFIG_FAILED,
			"realm for %s has not been set up", exec.Plugin.ID())
	}

	// Instantiation resolves against the plugin realm, so factories may
	// look up further types through realm.Current().
	g := realm.Swap(r)
	defer g.Restore()

	factory, err := r.Lookup(gd.Implementation)
	if err != nil {
		if slices.Contains(gd.PluginDescriptor().Artifacts, LegacyRegistryArtifact) {
			return nil, types.WrapError(types.LEGACY_REGISTRY_REMOVED,
				fmt.Sprintf("goal %s depends on the removed plugin registry facility", gd.Goal), err)
		}
		return nil, types.WrapError(types.INSTANCE_CONFIG_FAILED,
			fmt.Sprintf("failed to load implementation of goal %s", gd.Goal), err)
	}

	inst := factory()

	if exec.Configuration != nil {
		params := exec.Configuration.ToMap()
		params = interpolateProperties(params, s.Properties).(map[string]any)

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          ParamTagName,
			WeaklyTypedInput: true,
			Result:           inst,
		})
		if err != nil {
			return nil, types.WrapError(types.INSTANCE_CONFIG_FAILED,
				fmt.Sprintf("failed to build decoder for goal %s", gd.Goal), err)
		}
		if err := decoder.Decode(params); err != nil {
			return nil, types.WrapError(types.INSTANCE_CONFIG_FAILED,
				fmt.Sprintf("failed to configure goal %s", gd.Goal), err)
		}
	}

	return inst, nil
}

var propertyPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateProperties replaces ${name} references in string values
// with session properties. Unknown references are left as-is.
func interpolateProperties(value any, props map[string]string) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = interpolateProperties(val, props)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = interpolateProperties(val, props)
		}
		return out
	case string:
		return propertyPattern.ReplaceAllStringFunc(v, func(match string) string {
			name := match[2 : len(match)-1]
			if val, ok := props[name]; ok {
				return val
			}
			return match
		})
	default:
		return value
	}
}

package plugin

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kiln-build/reportexec/internal/conf"
	"github.com/kiln-build/reportexec/internal/types"
)

// ManifestFileName is the descriptor file name inside an installed
// plugin version directory.
const ManifestFileName = "plugin.yaml"

// Manifest is the on-disk descriptor of one installed plugin version.
type Manifest struct {
	GroupID     string         `yaml:"groupId" validate:"required"`
	ArtifactID  string         `yaml:"artifactId" validate:"required"`
	Version     string         `yaml:"version" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Artifacts   []string       `yaml:"artifacts,omitempty"`
	Goals       []GoalManifest `yaml:"goals" validate:"min=1,dive"`
}

// GoalManifest is one goal entry in a plugin manifest.
type GoalManifest struct {
	Goal           string      `yaml:"goal" validate:"required"`
	Description    string      `yaml:"description,omitempty"`
	Implementation string      `yaml:"implementation" validate:"required"`
	Parameters     []Parameter `yaml:"parameters,omitempty" validate:"dive"`
	Configuration  *conf.Node  `yaml:"configuration,omitempty"`
	Forks          []string    `yaml:"forks,omitempty"`
}

var manifestValidate = validator.New()

// LoadManifest reads and validates a plugin manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.MANIFEST_LOAD_FAILED,
			fmt.Sprintf("failed to read manifest %s", path), err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, types.WrapError(types.MANIFEST_LOAD_FAILED,
			fmt.Sprintf("failed to parse manifest %s", path), err)
	}

	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the manifest for structural defects.
func (m *Manifest) Validate() error {
	if err := manifestValidate.Struct(m); err != nil {
		return types.WrapError(types.MANIFEST_INVALID,
			fmt.Sprintf("invalid manifest for %s:%s", m.GroupID, m.ArtifactID), err)
	}

	seen := make(map[string]struct{}, len(m.Goals))
	for _, g := range m.Goals {
		if _, dup := seen[g.Goal]; dup {
			return types.NewErrorf(types.MANIFEST_INVALID,
				"goal %s declared twice in manifest for %s:%s", g.Goal, m.GroupID, m.ArtifactID)
		}
		seen[g.Goal] = struct{}{}
	}

	return nil
}

// ToDescriptor converts the manifest into a plugin descriptor.
func (m *Manifest) ToDescriptor() *Descriptor {
	d := &Descriptor{
		GroupID:     m.GroupID,
		ArtifactID:  m.ArtifactID,
		Version:     m.Version,
		Description: m.Description,
		Artifacts:   append([]string(nil), m.Artifacts...),
	}

	for _, gm := range m.Goals {
		g := &GoalDescriptor{
			Goal:           gm.Goal,
			Description:    gm.Description,
			Implementation: gm.Implementation,
			Parameters:     append([]Parameter(nil), gm.Parameters...),
			Forks:          append([]string(nil), gm.Forks...),
		}
		if gm.Configuration != nil {
			cfg := gm.Configuration.Clone()
			cfg.Name = conf.RootName
			g.DefaultConfiguration = cfg
		}
		d.addGoal(g)
	}

	return d
}

// normalize trims coordinate fields so lookups are stable.
func (m *Manifest) normalize() {
	m.GroupID = strings.TrimSpace(m.GroupID)
	m.ArtifactID = strings.TrimSpace(m.ArtifactID)
	m.Version = strings.TrimSpace(m.Version)
}

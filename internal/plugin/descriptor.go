// Package plugin holds plugin descriptors and the registry collaborator
// that materializes them: loading a plugin's manifest, preparing its
// isolated realm, and handing out configured goal instances.
package plugin

import (
	"fmt"

	"github.com/kiln-build/reportexec/internal/conf"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
)

// Descriptor is the resolved metadata of one plugin version: its
// coordinates, the goals it exposes, and the artifacts its realm is
// built from. Descriptors are read-only to the report executor.
type Descriptor struct {
	GroupID     string
	ArtifactID  string
	Version     string
	Description string

	// Artifacts are the names of the artifacts whose types populate
	// the plugin realm.
	Artifacts []string

	goals []*GoalDescriptor
	realm *realm.Realm
}

// Key returns the group:artifact coordinate of the plugin.
func (d *Descriptor) Key() types.PluginKey {
	return types.NewPluginKey(d.GroupID, d.ArtifactID)
}

// ID returns the full group:artifact:version identity.
func (d *Descriptor) ID() string {
	return fmt.Sprintf("%s:%s:%s", d.GroupID, d.ArtifactID, d.Version)
}

// Goals returns all goals the plugin exposes, in manifest order.
func (d *Descriptor) Goals() []*GoalDescriptor {
	return d.goals
}

// Goal returns the named goal descriptor, or nil if the plugin does not
// expose it.
func (d *Descriptor) Goal(name string) *GoalDescriptor {
	for _, g := range d.goals {
		if g.Goal == name {
			return g
		}
	}
	return nil
}

// Realm returns the realm prepared for this plugin, or nil before
// Manager.SetupRealm has run.
func (d *Descriptor) Realm() *realm.Realm {
	return d.realm
}

func (d *Descriptor) addGoal(g *GoalDescriptor) {
	g.descriptor = d
	d.goals = append(d.goals, g)
}

// GoalDescriptor is the metadata of one executable goal.
type GoalDescriptor struct {
	// Goal is the goal name, unique within the plugin.
	Goal string

	// Description is a short human-readable summary.
	Description string

	// Implementation is the realm type name of the goal's
	// implementation.
	Implementation string

	// Parameters are the parameters the goal declares. Configuration
	// children with names outside this set are dropped during merging.
	Parameters []Parameter

	// DefaultConfiguration is the goal's own declared configuration,
	// the lowest-precedence merge level.
	DefaultConfiguration *conf.Node

	// Forks lists goals of the same plugin that must run as forked
	// executions before this goal.
	Forks []string

	descriptor *Descriptor
}

// PluginDescriptor returns the descriptor of the plugin this goal
// belongs to.
func (g *GoalDescriptor) PluginDescriptor() *Descriptor {
	return g.descriptor
}

// ParameterNames returns the set of declared parameter names.
func (g *GoalDescriptor) ParameterNames() map[string]struct{} {
	names := make(map[string]struct{}, len(g.Parameters))
	for _, p := range g.Parameters {
		names[p.Name] = struct{}{}
	}
	return names
}

// Parameter is one declared goal parameter.
type Parameter struct {
	Name        string `yaml:"name" validate:"required"`
	Type        string `yaml:"type,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Description string `yaml:"description,omitempty"`
}

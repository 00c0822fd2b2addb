// Package model holds the build-side model objects report resolution
// reads: plugin declarations from the build and plugin-management
// sections of a project, and the session the build runs under.
package model

import (
	"fmt"

	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
)

// Plugin is a versioned plugin declaration.
type Plugin struct {
	GroupID      string       `yaml:"groupId" json:"groupId"`
	ArtifactID   string       `yaml:"artifactId" json:"artifactId"`
	Version      string       `yaml:"version,omitempty" json:"version,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// Key returns the group:artifact coordinate of the plugin.
func (p *Plugin) Key() types.PluginKey {
	return types.NewPluginKey(p.GroupID, p.ArtifactID)
}

// ID returns the full group:artifact:version identity.
func (p *Plugin) ID() string {
	return fmt.Sprintf("%s:%s:%s", p.GroupID, p.ArtifactID, p.Version)
}

// Dependency is an extra artifact a plugin declaration pulls into the
// plugin's realm.
type Dependency struct {
	GroupID    string `yaml:"groupId" json:"groupId"`
	ArtifactID string `yaml:"artifactId" json:"artifactId"`
	Version    string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Build is the build section of a project.
type Build struct {
	Plugins          []*Plugin         `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	PluginManagement *PluginManagement `yaml:"pluginManagement,omitempty" json:"pluginManagement,omitempty"`
}

// PluginManagement is the plugin-management section of a build.
type PluginManagement struct {
	Plugins []*Plugin `yaml:"plugins,omitempty" json:"plugins,omitempty"`
}

// Project is the target project reports are prepared for.
type Project struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Build *Build `yaml:"build,omitempty" json:"build,omitempty"`
}

// FindPlugin returns the first plugin in plugins with the given group
// and artifact id, or nil.
func FindPlugin(plugins []*Plugin, groupID, artifactID string) *Plugin {
	for _, p := range plugins {
		if p.ArtifactID == artifactID && p.GroupID == groupID {
			return p
		}
	}
	return nil
}

// Session is the build context a report resolution runs in.
type Session struct {
	// HostRealm is the caller's own execution realm, the parent every
	// plugin realm imports contract types from.
	HostRealm *realm.Realm

	// Properties are build properties available for ${name}
	// interpolation in goal configuration values.
	Properties map[string]string
}

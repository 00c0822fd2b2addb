package types

import "fmt"

// PluginKey is the group:artifact coordinate pair identifying a plugin,
// without a version. It is the unit of matching between report plugin
// requests and build-side plugin declarations.
type PluginKey string

// NewPluginKey builds a PluginKey from group and artifact identifiers.
func NewPluginKey(groupID, artifactID string) PluginKey {
	return PluginKey(fmt.Sprintf("%s:%s", groupID, artifactID))
}

// String returns the string representation of the PluginKey.
func (k PluginKey) String() string {
	return string(k)
}

package plugin

import (
	"sync"

	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/types"
)

// Catalog is the host-side catalog of goal implementation factories,
// grouped by the artifact that ships them. It is the in-process
// analogue of a plugin's artifact contents: SetupRealm populates a
// plugin realm from the catalog entries of the artifacts the plugin
// declares, minus the excluded ones.
type Catalog struct {
	mu        sync.RWMutex
	artifacts map[string]map[string]realm.Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		artifacts: make(map[string]map[string]realm.Factory),
	}
}

// Register binds a type name shipped by the given artifact to its
// factory. Registering the same type name twice overwrites the earlier
// binding.
func (c *Catalog) Register(artifact, typeName string, f realm.Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byType, ok := c.artifacts[artifact]
	if !ok {
		byType = make(map[string]realm.Factory)
		c.artifacts[artifact] = byType
	}
	byType[typeName] = f
}

// HasArtifact reports whether the catalog holds any types for the
// given artifact name.
func (c *Catalog) HasArtifact(artifact string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.artifacts[artifact]
	return ok
}

// PopulateRealm registers every type of the given artifact into r.
// It fails when the artifact is unknown to the catalog.
func (c *Catalog) PopulateRealm(r *realm.Realm, artifact string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byType, ok := c.artifacts[artifact]
	if !ok {
		return types.NewErrorf(types.REALM_SETUP_FAILED,
			"artifact %s is not installed in the host catalog", artifact)
	}

	for typeName, f := range byType {
		r.Register(typeName, f)
	}
	return nil
}

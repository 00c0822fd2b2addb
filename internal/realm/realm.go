// Package realm models the isolated environment a plugin's goal
// implementations are resolved in. A realm is a catalog of named type
// factories with a parent realm; lookups fall back to the parent only
// for type names on the realm's import whitelist, so a plugin sees
// exactly one definition of each shared contract type and nothing else
// from the host.
package realm

import (
	"sort"

	"github.com/kiln-build/reportexec/internal/types"
)

// Factory creates a fresh instance of a registered type.
type Factory func() any

// Realm is one implementation-loading universe.
type Realm struct {
	name      string
	parent    *Realm
	imports   map[string]struct{}
	factories map[string]Factory
}

// New creates an empty realm with the given name and no parent.
func New(name string) *Realm {
	return &Realm{
		name:      name,
		factories: make(map[string]Factory),
	}
}

// NewChild creates a realm under parent that may resolve the listed
// type names from it.
func NewChild(name string, parent *Realm, imports []string) *Realm {
	r := New(name)
	r.parent = parent
	r.imports = make(map[string]struct{}, len(imports))
	for _, imp := range imports {
		r.imports[imp] = struct{}{}
	}
	return r
}

// Name returns the realm name.
func (r *Realm) Name() string {
	return r.name
}

// Register binds a type name to a factory in this realm. A local
// binding shadows any import of the same name.
func (r *Realm) Register(typeName string, f Factory) {
	r.factories[typeName] = f
}

// Lookup resolves a type name to its factory. Resolution is local
// first; on a local miss the parent is consulted, but only for names on
// the import whitelist.
func (r *Realm) Lookup(typeName string) (Factory, error) {
	if f, ok := r.factories[typeName]; ok {
		return f, nil
	}

	if r.parent != nil {
		if _, ok := r.imports[typeName]; ok {
			return r.parent.Lookup(typeName)
		}
	}

	return nil, types.NewErrorf(types.REALM_TYPE_UNRESOLVED,
		"type %s not visible in realm %s", typeName, r.name)
}

// TypeNames returns the locally registered type names in sorted order.
func (r *Realm) TypeNames() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package rpc

import (
	"sort"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// RestrictedMethod pairs a human-readable description with the handler that
// executes the method once a permission has been resolved.
type RestrictedMethod struct {
	Description string
	Handler     HandlerFunc
}

// Registry is the immutable set of methods the engine governs. Lookup is by
// exact method name.
type Registry struct {
	methods map[string]RestrictedMethod
}

// NewRegistry creates a registry from the given methods. The map is copied;
// the registry never changes after construction.
func NewRegistry(methods map[string]RestrictedMethod) *Registry {
	copied := make(map[string]RestrictedMethod, len(methods))
	for name, method := range methods {
		copied[name] = method
	}
	return &Registry{methods: copied}
}

// Get returns the restricted method registered under name.
func (r *Registry) Get(name string) (RestrictedMethod, bool) {
	method, ok := r.methods[name]
	return method, ok
}

// Has reports whether a method is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// Descriptions returns the method descriptions sorted by method name. This is
// the immutable permissionsDescriptions portion of the engine state.
func (r *Registry) Descriptions() []permissionDomain.MethodDescription {
	descriptions := make([]permissionDomain.MethodDescription, 0, len(r.methods))
	for name, method := range r.methods {
		descriptions = append(descriptions, permissionDomain.MethodDescription{
			Method:      name,
			Description: method.Description,
		})
	}
	sort.Slice(descriptions, func(i, j int) bool {
		return descriptions[i].Method < descriptions[j].Method
	})
	return descriptions
}

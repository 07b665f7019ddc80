package domain

// Caveat is a typed restriction attached to a permission. The value is
// treated as immutable once attached.
type Caveat struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Permission is the authoritative unit of authority: it allows one domain to
// invoke one method, under optional caveats. Permissions are immutable after
// creation; changes happen by upsert (replace) or revocation.
type Permission struct {
	// ID is an opaque unique identifier assigned at creation.
	ID string `json:"id"`
	// Method is the RPC method this record authorizes.
	Method string `json:"method"`
	// Granter is either another domain identifier (peer-delegated) or the
	// reserved UserGranter sentinel (root-granted via user approval).
	Granter string `json:"granter"`
	// Date is the creation timestamp in milliseconds since epoch.
	Date int64 `json:"date"`
	// Caveats is an optional ordered list of caveats.
	Caveats []Caveat `json:"caveats,omitempty"`
}

// Key is the natural key for upsert and revoke: permissions within one
// domain's list are unique by (method, granter).
type Key struct {
	Method  string
	Granter string
}

// Key returns the permission's natural key.
func (p Permission) Key() Key {
	return Key{Method: p.Method, Granter: p.Granter}
}

// IsRoot reports whether this is a root permission (granted by the user).
func (p Permission) IsRoot() bool {
	return p.Granter == UserGranter
}

// Clone returns a deep copy of the permission. Caveat values are shared;
// they are treated as immutable.
func (p Permission) Clone() Permission {
	clone := p
	if p.Caveats != nil {
		clone.Caveats = make([]Caveat, len(p.Caveats))
		copy(clone.Caveats, p.Caveats)
	}
	return clone
}

// LastStaticCaveat returns the last caveat of type "static", if any.
// When multiple static caveats are present the last one wins.
func (p Permission) LastStaticCaveat() (Caveat, bool) {
	for i := len(p.Caveats) - 1; i >= 0; i-- {
		if p.Caveats[i].Type == CaveatTypeStatic {
			return p.Caveats[i], true
		}
	}
	return Caveat{}, false
}

// DomainEntry holds the ordered permission list of a single domain.
// Insertion order is significant: the resolver always chases the first
// matching permission.
type DomainEntry struct {
	Permissions []Permission `json:"permissions"`
}

// Clone returns a deep copy of the entry.
func (e DomainEntry) Clone() DomainEntry {
	if e.Permissions == nil {
		return DomainEntry{}
	}
	perms := make([]Permission, len(e.Permissions))
	for i, p := range e.Permissions {
		perms[i] = p.Clone()
	}
	return DomainEntry{Permissions: perms}
}

// Upsert returns a new entry where any permission sharing a natural key with
// one of newPerms has been removed and all newPerms appended, preserving the
// insertion order of survivors.
func (e DomainEntry) Upsert(newPerms []Permission) DomainEntry {
	keys := make(map[Key]struct{}, len(newPerms))
	for _, p := range newPerms {
		keys[p.Key()] = struct{}{}
	}

	kept := make([]Permission, 0, len(e.Permissions)+len(newPerms))
	for _, p := range e.Permissions {
		if _, replaced := keys[p.Key()]; !replaced {
			kept = append(kept, p)
		}
	}
	return DomainEntry{Permissions: append(kept, newPerms...)}
}

// Remove returns a new entry with every permission matching a natural key of
// perms filtered out.
func (e DomainEntry) Remove(perms []Permission) DomainEntry {
	keys := make(map[Key]struct{}, len(perms))
	for _, p := range perms {
		keys[p.Key()] = struct{}{}
	}

	kept := make([]Permission, 0, len(e.Permissions))
	for _, p := range e.Permissions {
		if _, removed := keys[p.Key()]; !removed {
			kept = append(kept, p)
		}
	}
	return DomainEntry{Permissions: kept}
}

// FirstForMethod returns the first permission for method, honoring insertion
// order. The second return reports whether one was found.
func (e DomainEntry) FirstForMethod(method string) (Permission, bool) {
	for _, p := range e.Permissions {
		if p.Method == method {
			return p, true
		}
	}
	return Permission{}, false
}

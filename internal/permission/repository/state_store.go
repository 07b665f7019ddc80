// Package repository implements state storage for the permission engine.
//
// The authoritative store is an in-memory observable state holder; SQL
// repositories persist serialized snapshots emitted by its change hook so the
// engine can be rehydrated at construction.
package repository

import (
	"sync"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// StateStore is the in-memory, observable holder of the engine state. All
// reads return deep copies and all state mutations (not SetDescriptions) emit
// a snapshot to subscribers,
// so callers can never alias internal storage. Writes are serialized by a
// mutex; the engine contract requires a single logical writer.
type StateStore struct {
	mu          sync.RWMutex
	state       *permissionDomain.EngineState
	subscribers []func(*permissionDomain.EngineState)
}

// NewStateStore creates a store, optionally rehydrated from an initial state
// snapshot. A nil initState starts empty.
func NewStateStore(initState *permissionDomain.EngineState) *StateStore {
	state := permissionDomain.NewEngineState()
	if initState != nil {
		state = initState.Clone()
		if state.Domains == nil {
			state.Domains = make(map[string]permissionDomain.DomainEntry)
		}
		if state.PermissionsRequests == nil {
			state.PermissionsRequests = []permissionDomain.PermissionsRequest{}
		}
	}
	return &StateStore{state: state}
}

// Subscribe registers a change-notification hook. The hook receives a deep
// copy of the state after every mutation. Subscribers are invoked
// synchronously in registration order while no lock is held.
func (s *StateStore) Subscribe(fn func(*permissionDomain.EngineState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a deep copy of the full engine state.
func (s *StateStore) Snapshot() *permissionDomain.EngineState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// GetDomains returns a deep copy of all domain entries.
func (s *StateStore) GetDomains() map[string]permissionDomain.DomainEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domains := make(map[string]permissionDomain.DomainEntry, len(s.state.Domains))
	for name, entry := range s.state.Domains {
		domains[name] = entry.Clone()
	}
	return domains
}

// SetDomains replaces all domain entries and notifies subscribers.
func (s *StateStore) SetDomains(domains map[string]permissionDomain.DomainEntry) {
	s.mu.Lock()
	replaced := make(map[string]permissionDomain.DomainEntry, len(domains))
	for name, entry := range domains {
		replaced[name] = entry.Clone()
	}
	s.state.Domains = replaced
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

// GetDomainSettings returns the entry for a domain, or an empty entry if the
// domain is unknown. The read is pure: the empty entry is not committed until
// a subsequent SetDomain.
func (s *StateStore) GetDomainSettings(domain string) permissionDomain.DomainEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.state.Domains[domain]; ok {
		return entry.Clone()
	}
	return permissionDomain.DomainEntry{}
}

// SetDomain stores the entry for a domain and notifies subscribers.
func (s *StateStore) SetDomain(domain string, entry permissionDomain.DomainEntry) {
	s.mu.Lock()
	s.state.Domains[domain] = entry.Clone()
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

// GetPermissions returns the permission list of a domain; empty for unknown
// domains.
func (s *StateStore) GetPermissions(domain string) []permissionDomain.Permission {
	return s.GetDomainSettings(domain).Permissions
}

// PendingRequests returns a deep copy of all pending permission requests.
func (s *StateStore) PendingRequests() []permissionDomain.PermissionsRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]permissionDomain.PermissionsRequest, len(s.state.PermissionsRequests))
	for i, req := range s.state.PermissionsRequests {
		requests[i] = req.Clone()
	}
	return requests
}

// AddPendingRequest appends a pending permission request and notifies
// subscribers.
func (s *StateStore) AddPendingRequest(req permissionDomain.PermissionsRequest) {
	s.mu.Lock()
	s.state.PermissionsRequests = append(s.state.PermissionsRequests, req.Clone())
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

// RemovePendingRequest deletes the pending request with the given metadata id
// and reports whether one was removed. Subscribers are notified only on an
// actual removal.
func (s *StateStore) RemovePendingRequest(requestID string) bool {
	s.mu.Lock()

	kept := s.state.PermissionsRequests[:0]
	removed := false
	for _, req := range s.state.PermissionsRequests {
		if req.Metadata.ID == requestID {
			removed = true
			continue
		}
		kept = append(kept, req)
	}
	s.state.PermissionsRequests = kept

	var snapshot *permissionDomain.EngineState
	if removed {
		snapshot = s.state.Clone()
	}
	s.mu.Unlock()

	if removed {
		s.notify(snapshot)
	}
	return removed
}

// SetDescriptions records the immutable restricted-method descriptions
// derived from the registry at construction. No notification: descriptions
// are configuration, not state the persistence layer must chase.
func (s *StateStore) SetDescriptions(descriptions []permissionDomain.MethodDescription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]permissionDomain.MethodDescription, len(descriptions))
	copy(copied, descriptions)
	s.state.PermissionsDescriptions = copied
}

// Descriptions returns the restricted-method descriptions.
func (s *StateStore) Descriptions() []permissionDomain.MethodDescription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	descriptions := make([]permissionDomain.MethodDescription, len(s.state.PermissionsDescriptions))
	copy(descriptions, s.state.PermissionsDescriptions)
	return descriptions
}

func (s *StateStore) notify(snapshot *permissionDomain.EngineState) {
	s.mu.RLock()
	subscribers := make([]func(*permissionDomain.EngineState), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

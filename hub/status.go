/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

// PlayerID is a platform user id (a Discord snowflake in practice).
type PlayerID string

// Player pairs a platform id with a display name for rendering.
type Player struct {
	ID   PlayerID
	Name string
}

type StatusKind string

const (
	StatusIdle     StatusKind = "idle"
	StatusQueued   StatusKind = "queued"
	StatusDrafting StatusKind = "drafting"
	StatusInMatch  StatusKind = "in_match"
)

// PlayerStatus records what a player is currently doing and in which panel.
// The zero value is Idle.
type PlayerStatus struct {
	Kind    StatusKind
	PanelID PanelID
}

func (s PlayerStatus) Idle() bool {
	return s.Kind == "" || s.Kind == StatusIdle
}

// Registry is the single source of truth for player status across all
// panels. A player maps to at most one status at a time; absence means
// idle. Only the registry mutates this mapping; everything else reads it
// to gate actions. Not safe for concurrent use on its own; the
// Coordinator serializes access.
type Registry struct {
	statuses map[PlayerID]PlayerStatus
}

func NewRegistry() *Registry {
	return &Registry{statuses: make(map[PlayerID]PlayerStatus)}
}

func (r *Registry) StatusOf(id PlayerID) PlayerStatus {
	st, ok := r.statuses[id]
	if !ok {
		return PlayerStatus{Kind: StatusIdle}
	}
	return st
}

// SetStatus overwrites any prior status unconditionally.
func (r *Registry) SetStatus(id PlayerID, st PlayerStatus) {
	r.statuses[id] = st
}

// ClearStatus marks a player idle. No-op if the player is already absent.
func (r *Registry) ClearStatus(id PlayerID) {
	delete(r.statuses, id)
}

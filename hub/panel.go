/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import (
	"sort"
)

// PanelID identifies one queue panel instance. In the Discord surface it
// is the message id of the panel message, so a re-run of /setup always
// yields a fresh id.
type PanelID string

// Mode is a queue category determining the required player count.
type Mode string

const (
	Mode1v1 Mode = "1v1"
	Mode2v2 Mode = "2v2"
	Mode3v3 Mode = "3v3"
)

// Modes lists all queue modes in display order.
var Modes = []Mode{Mode1v1, Mode2v2, Mode3v3}

// Required returns the number of players needed to fill a bucket of this
// mode. The table is fixed, not configurable.
func (m Mode) Required() int {
	switch m {
	case Mode1v1:
		return 2
	case Mode2v2:
		return 4
	case Mode3v3:
		return 6
	}
	return 0
}

func (m Mode) Valid() bool {
	return m.Required() != 0
}

// Panel is one independently-operated queue dashboard instance. Panels
// are created by the setup command and persist for the process lifetime;
// operations on an unknown panel id fail gracefully instead.
type Panel struct {
	ID        PanelID
	GuildID   string
	ChannelID string

	queues  map[Mode][]Player
	matches map[MatchID]*Match
}

// PanelStore owns every panel instance and enforces the queueing rules.
// It consults the status registry to gate joins; not safe for concurrent
// use on its own (see Coordinator).
type PanelStore struct {
	panels   map[PanelID]*Panel
	registry *Registry
}

func NewPanelStore(registry *Registry) *PanelStore {
	return &PanelStore{
		panels:   make(map[PanelID]*Panel),
		registry: registry,
	}
}

// CreatePanel initializes a panel with empty queues. Calling it again
// with the same id resets that panel's state.
func (s *PanelStore) CreatePanel(id PanelID, guildID, channelID string) *Panel {
	p := &Panel{
		ID:        id,
		GuildID:   guildID,
		ChannelID: channelID,
		queues:    make(map[Mode][]Player),
		matches:   make(map[MatchID]*Match),
	}
	s.panels[id] = p
	return p
}

func (s *PanelStore) Panel(id PanelID) (*Panel, bool) {
	p, ok := s.panels[id]
	return p, ok
}

// JoinResult reports whether a join merely enqueued the player or drained
// a full bucket into a match roster.
type JoinResult struct {
	Formed bool
	Roster []Player // oldest-first, len == mode.Required() when Formed
}

// Join enqueues a player into a mode bucket, enforcing the global status
// gate, and drains the bucket front when it reaches the mode's required
// count. Joining a different mode within the same panel silently
// reassigns the player; everything else that conflicts is an error.
func (s *PanelStore) Join(panelID PanelID, p Player, mode Mode) (JoinResult, error) {
	panel, ok := s.panels[panelID]
	if !ok {
		return JoinResult{}, ErrUnknownPanel
	}
	if !mode.Valid() {
		return JoinResult{}, ErrUnknownMode
	}

	switch st := s.registry.StatusOf(p.ID); st.Kind {
	case StatusInMatch:
		return JoinResult{}, ErrAlreadyInMatch
	case StatusDrafting:
		return JoinResult{}, ErrAlreadyDrafting
	case StatusQueued:
		if st.PanelID != panelID {
			return JoinResult{}, ErrAlreadyQueuedElsewhere
		}
	}

	if containsPlayer(panel.queues[mode], p.ID) {
		return JoinResult{}, ErrAlreadyInThisQueue
	}

	// Mode switch within the same panel: drop the old entry first.
	for m, q := range panel.queues {
		if m == mode {
			continue
		}
		panel.queues[m] = removePlayer(q, p.ID)
	}

	panel.queues[mode] = append(panel.queues[mode], p)
	s.registry.SetStatus(p.ID, PlayerStatus{Kind: StatusQueued, PanelID: panelID})

	need := mode.Required()
	if len(panel.queues[mode]) < need {
		return JoinResult{}, nil
	}

	// Strict FIFO: the oldest N players form the match, the rest stay
	// queued in order.
	roster := make([]Player, need)
	copy(roster, panel.queues[mode][:need])
	panel.queues[mode] = append([]Player(nil), panel.queues[mode][need:]...)

	return JoinResult{Formed: true, Roster: roster}, nil
}

// Leave removes a player from whichever bucket of this panel contains
// them and clears their status.
func (s *PanelStore) Leave(panelID PanelID, id PlayerID) error {
	panel, ok := s.panels[panelID]
	if !ok {
		return ErrUnknownPanel
	}

	removed := false
	for m, q := range panel.queues {
		if containsPlayer(q, id) {
			panel.queues[m] = removePlayer(q, id)
			removed = true
		}
	}
	if !removed {
		return ErrNotQueued
	}

	s.registry.ClearStatus(id)
	return nil
}

// RecordMatch adds a match to the panel's in-progress display map.
// Tolerates an unknown panel silently; the panel may have been superseded
// by a newer setup run.
func (s *PanelStore) RecordMatch(panelID PanelID, m *Match) {
	if panel, ok := s.panels[panelID]; ok {
		panel.matches[m.ID] = m
	}
}

// RemoveMatch is the inverse of RecordMatch, with the same tolerance.
func (s *PanelStore) RemoveMatch(panelID PanelID, id MatchID) {
	if panel, ok := s.panels[panelID]; ok {
		delete(panel.matches, id)
	}
}

// MatchSummary is a render-ready roster pair for one in-progress match.
type MatchSummary struct {
	ID        MatchID
	Blue, Red []Player
}

// PanelView is a snapshot of a panel handed to the Display; it shares no
// mutable state with the store.
type PanelView struct {
	ID        PanelID
	GuildID   string
	ChannelID string
	Queues    map[Mode][]Player
	Matches   []MatchSummary // ascending by match id
}

func (s *PanelStore) View(id PanelID) (PanelView, bool) {
	panel, ok := s.panels[id]
	if !ok {
		return PanelView{}, false
	}

	v := PanelView{
		ID:        panel.ID,
		GuildID:   panel.GuildID,
		ChannelID: panel.ChannelID,
		Queues:    make(map[Mode][]Player, len(Modes)),
	}
	for _, m := range Modes {
		v.Queues[m] = append([]Player(nil), panel.queues[m]...)
	}
	for _, match := range panel.matches {
		v.Matches = append(v.Matches, MatchSummary{
			ID:   match.ID,
			Blue: append([]Player(nil), match.TeamBlue...),
			Red:  append([]Player(nil), match.TeamRed...),
		})
	}
	sort.Slice(v.Matches, func(i, j int) bool {
		return v.Matches[i].ID < v.Matches[j].ID
	})
	return v, true
}

func containsPlayer(q []Player, id PlayerID) bool {
	for _, p := range q {
		if p.ID == id {
			return true
		}
	}
	return false
}

func removePlayer(q []Player, id PlayerID) []Player {
	for i, p := range q {
		if p.ID == id {
			return append(q[:i:i], q[i+1:]...)
		}
	}
	return q
}

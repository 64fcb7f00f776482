/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Display renders matchmaking state to the chat platform. The core only
// emits structured snapshots; all platform markup lives behind this
// interface. Render failures are logged and never fail the operation
// that triggered them.
type Display interface {
	RenderPanel(ctx context.Context, v PanelView) error
	AnnounceQueuePop(ctx context.Context, channelID string, mode Mode, roster []Player) error
	RenderDraftPrompt(ctx context.Context, v DraftView) error
	RenderMatchLobby(ctx context.Context, v MatchView) error
	AnnounceResult(ctx context.Context, channelID string, v MatchView, winner TeamColor) error
	DisputeNotice(ctx context.Context, v MatchView) error
}

// VenueProvider provisions and removes the isolated areas for one match.
// DeleteVenue failures are tolerated; an area may already be gone.
type VenueProvider interface {
	CreateVenue(ctx context.Context, guildID string, id MatchID, blue, red []Player) (*Venue, error)
	DeleteVenue(ctx context.Context, v *Venue) error
}

// DefaultTeardownDelay is how long a resolved match's venue lingers
// before removal.
const DefaultTeardownDelay = 10 * time.Second

// Coordinator owns all matchmaking state and serializes every transition
// under one mutex. Interaction handlers run on concurrent goroutines, so
// the check-then-act sequences the queueing rules depend on are only
// sound inside that critical section; all shared-state mutations for a
// step commit before any network-bound Display or VenueProvider call.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	panels   *PanelStore
	drafts   map[uuid.UUID]*Draft
	matches  map[MatchID]*Match
	timers   map[MatchID]clockwork.Timer

	display       Display
	venues        VenueProvider
	clock         clockwork.Clock
	rng           *rand.Rand
	teardownDelay time.Duration
}

func NewCoordinator(display Display, venues VenueProvider) *Coordinator {
	registry := NewRegistry()
	return &Coordinator{
		registry:      registry,
		panels:        NewPanelStore(registry),
		drafts:        make(map[uuid.UUID]*Draft),
		matches:       make(map[MatchID]*Match),
		timers:        make(map[MatchID]clockwork.Timer),
		display:       display,
		venues:        venues,
		clock:         clockwork.NewRealClock(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		teardownDelay: DefaultTeardownDelay,
	}
}

// CreatePanel registers a fresh panel instance and renders its dashboard.
func (c *Coordinator) CreatePanel(ctx context.Context, id PanelID, guildID, channelID string) error {
	c.mu.Lock()
	c.panels.CreatePanel(id, guildID, channelID)
	view, _ := c.panels.View(id)
	c.mu.Unlock()

	log.Info().Str("panel_id", string(id)).Str("channel_id", channelID).
		Msg("panel created")

	return c.display.RenderPanel(ctx, view)
}

// Join enqueues a player and, when the bucket fills, forms the match:
// direct pairing for 1v1, captain draft otherwise. The returned error is
// one of the user-recoverable sentinels.
func (c *Coordinator) Join(ctx context.Context, panelID PanelID, p Player, mode Mode) error {
	c.mu.Lock()
	res, err := c.panels.Join(panelID, p, mode)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	if !res.Formed {
		view, _ := c.panels.View(panelID)
		c.mu.Unlock()
		c.renderPanel(ctx, view)
		return nil
	}

	panel, _ := c.panels.Panel(panelID)
	guildID, channelID := panel.GuildID, panel.ChannelID
	form := Form(res.Roster, mode, panelID, c.rng)

	if form.Draft != nil {
		d := form.Draft
		c.drafts[d.ID] = d
		for _, pl := range res.Roster {
			c.registry.SetStatus(pl.ID, PlayerStatus{Kind: StatusDrafting, PanelID: panelID})
		}
		dview := d.View()
		dview.ChannelID = channelID
		pview, _ := c.panels.View(panelID)
		c.mu.Unlock()

		log.Info().Str("panel_id", string(panelID)).Str("mode", string(mode)).
			Str("draft_id", d.ID.String()).Msg("queue drained into draft")

		c.renderPanel(ctx, pview)
		c.announceQueuePop(ctx, channelID, mode, res.Roster)
		c.renderDraft(ctx, dview)
		return nil
	}

	m := c.registerMatchLocked(panelID, form.Blue, form.Red)
	pview, _ := c.panels.View(panelID)
	c.mu.Unlock()

	c.renderPanel(ctx, pview)
	c.announceQueuePop(ctx, channelID, mode, res.Roster)
	c.provisionVenue(ctx, m, guildID)
	return nil
}

// Leave removes a player from whichever bucket of the panel holds them.
func (c *Coordinator) Leave(ctx context.Context, panelID PanelID, id PlayerID) error {
	c.mu.Lock()
	if err := c.panels.Leave(panelID, id); err != nil {
		c.mu.Unlock()
		return err
	}
	view, _ := c.panels.View(panelID)
	c.mu.Unlock()

	c.renderPanel(ctx, view)
	return nil
}

// Pick applies one captain pick to a running draft. When the pick (plus
// the auto-assigned final player) completes the draft, the teams proceed
// straight to match creation.
func (c *Coordinator) Pick(ctx context.Context, draftID uuid.UUID, captain, pick PlayerID) error {
	c.mu.Lock()
	d, ok := c.drafts[draftID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownDraft
	}
	if err := d.Pick(captain, pick); err != nil {
		c.mu.Unlock()
		return err
	}

	var channelID string
	if panel, ok := c.panels.Panel(d.PanelID); ok {
		channelID = panel.ChannelID
	}

	if !d.Complete() {
		dview := d.View()
		dview.ChannelID = channelID
		c.mu.Unlock()
		c.renderDraft(ctx, dview)
		return nil
	}

	delete(c.drafts, draftID)
	var guildID string
	if panel, ok := c.panels.Panel(d.PanelID); ok {
		guildID = panel.GuildID
	}
	m := c.registerMatchLocked(d.PanelID, d.TeamBlue, d.TeamRed)
	dview := d.View()
	dview.ChannelID = channelID
	pview, hasPanel := c.panels.View(d.PanelID)
	c.mu.Unlock()

	log.Info().Str("draft_id", draftID.String()).Int("match_id", int(m.ID)).
		Msg("draft complete")

	c.renderDraft(ctx, dview)
	if hasPanel {
		c.renderPanel(ctx, pview)
	}
	c.provisionVenue(ctx, m, guildID)
	return nil
}

// Vote records a participant's result claim and resolves the match once
// both sides have spoken. Votes on a resolved match are ignored.
func (c *Coordinator) Vote(ctx context.Context, matchID MatchID, id PlayerID, claim TeamColor) error {
	c.mu.Lock()
	m, ok := c.matches[matchID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownMatch
	}
	if m.resolved {
		c.mu.Unlock()
		return nil
	}

	res, ready, err := m.CastVote(id, claim)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if !ready {
		c.mu.Unlock()
		return nil
	}

	// Resolution commits all state changes before any announcement goes
	// out: record removed from the panel, every participant released,
	// teardown scheduled.
	m.resolved = true
	c.panels.RemoveMatch(m.PanelID, m.ID)
	for _, pl := range m.Participants() {
		c.registry.ClearStatus(pl.ID)
	}
	var guildID, channelID string
	if panel, ok := c.panels.Panel(m.PanelID); ok {
		guildID, channelID = panel.GuildID, panel.ChannelID
	}
	mview := m.view(guildID)
	pview, hasPanel := c.panels.View(m.PanelID)
	c.scheduleTeardownLocked(m)
	c.mu.Unlock()

	if res.Disputed {
		log.Info().Int("match_id", int(matchID)).Msg("match disputed")
		if err := c.display.DisputeNotice(ctx, mview); err != nil {
			log.Warn().Err(err).Int("match_id", int(matchID)).
				Msg("dispute notice failed")
		}
	} else {
		log.Info().Int("match_id", int(matchID)).Str("winner", string(res.Winner)).
			Msg("match resolved")
		if err := c.display.AnnounceResult(ctx, channelID, mview, res.Winner); err != nil {
			log.Warn().Err(err).Int("match_id", int(matchID)).
				Msg("result announcement failed")
		}
	}
	if hasPanel {
		c.renderPanel(ctx, pview)
	}
	return nil
}

// PanelView snapshots a panel for the command layer.
func (c *Coordinator) PanelView(id PanelID) (PanelView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panels.View(id)
}

// registerMatchLocked allocates an id, indexes the match, and tags every
// participant in-match. Caller holds c.mu.
func (c *Coordinator) registerMatchLocked(panelID PanelID, blue, red []Player) *Match {
	m := NewMatch(c.newMatchIDLocked(), panelID, blue, red)
	c.matches[m.ID] = m
	c.panels.RecordMatch(panelID, m)
	for _, pl := range m.Participants() {
		c.registry.SetStatus(pl.ID, PlayerStatus{Kind: StatusInMatch, PanelID: panelID})
	}

	log.Info().Int("match_id", int(m.ID)).Str("panel_id", string(panelID)).
		Int("team_size", len(blue)).Msg("match registered")

	return m
}

// newMatchIDLocked picks an unused id from the human-readable 1000-9999
// space. Caller holds c.mu.
func (c *Coordinator) newMatchIDLocked() MatchID {
	for i := 0; i < 64; i++ {
		id := MatchID(c.rng.Intn(9000) + 1000)
		if _, taken := c.matches[id]; !taken {
			return id
		}
	}
	// Nearly-full id space; probe sequentially.
	for id := MatchID(1000); id <= 9999; id++ {
		if _, taken := c.matches[id]; !taken {
			return id
		}
	}
	return MatchID(10000 + len(c.matches))
}

// provisionVenue creates the match areas and posts the lobby message.
// Rosters and statuses were committed before this call; a provisioning
// failure rolls the match back and releases everyone.
func (c *Coordinator) provisionVenue(ctx context.Context, m *Match, guildID string) {
	venue, err := c.venues.CreateVenue(ctx, guildID, m.ID, m.TeamBlue, m.TeamRed)
	if err != nil {
		log.Error().Err(err).Int("match_id", int(m.ID)).
			Msg("venue creation failed; rolling match back")

		c.mu.Lock()
		delete(c.matches, m.ID)
		c.panels.RemoveMatch(m.PanelID, m.ID)
		for _, pl := range m.Participants() {
			c.registry.ClearStatus(pl.ID)
		}
		pview, hasPanel := c.panels.View(m.PanelID)
		c.mu.Unlock()

		if hasPanel {
			c.renderPanel(ctx, pview)
		}
		return
	}

	c.mu.Lock()
	m.Venue = venue
	mview := m.view(guildID)
	c.mu.Unlock()

	if err := c.display.RenderMatchLobby(ctx, mview); err != nil {
		log.Warn().Err(err).Int("match_id", int(m.ID)).Msg("lobby render failed")
	}
}

// scheduleTeardownLocked arms the deferred venue removal. The timer is
// held so it could be cancelled, though nothing un-ends a match today.
// Caller holds c.mu.
func (c *Coordinator) scheduleTeardownLocked(m *Match) {
	timer := c.clock.NewTimer(c.teardownDelay)
	c.timers[m.ID] = timer
	go func() {
		<-timer.Chan()
		c.teardown(m)
	}()
}

// teardown removes the match venue best-effort and drops the record.
func (c *Coordinator) teardown(m *Match) {
	ctx := context.Background()

	c.mu.Lock()
	venue := m.Venue
	c.mu.Unlock()

	if venue != nil {
		if err := c.venues.DeleteVenue(ctx, venue); err != nil {
			// Areas may already be gone; cleanup is best-effort.
			log.Debug().Err(err).Int("match_id", int(m.ID)).
				Msg("venue removal reported errors")
		}
	}

	c.mu.Lock()
	delete(c.matches, m.ID)
	delete(c.timers, m.ID)
	c.mu.Unlock()

	log.Info().Int("match_id", int(m.ID)).Msg("match torn down")
}

func (c *Coordinator) renderPanel(ctx context.Context, v PanelView) {
	if err := c.display.RenderPanel(ctx, v); err != nil {
		log.Warn().Err(err).Str("panel_id", string(v.ID)).Msg("panel render failed")
	}
}

func (c *Coordinator) renderDraft(ctx context.Context, v DraftView) {
	if err := c.display.RenderDraftPrompt(ctx, v); err != nil {
		log.Warn().Err(err).Str("draft_id", v.ID.String()).Msg("draft render failed")
	}
}

func (c *Coordinator) announceQueuePop(ctx context.Context, channelID string, mode Mode, roster []Player) {
	if err := c.display.AnnounceQueuePop(ctx, channelID, mode, roster); err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("queue pop announcement failed")
	}
}

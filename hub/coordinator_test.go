/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type resultNote struct {
	channelID string
	matchID   MatchID
	winner    TeamColor
}

type fakeDisplay struct {
	mu       sync.Mutex
	panels   []PanelView
	pops     []string
	drafts   []DraftView
	lobbies  []MatchView
	results  []resultNote
	disputes []MatchView
}

func (f *fakeDisplay) RenderPanel(ctx context.Context, v PanelView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panels = append(f.panels, v)
	return nil
}

func (f *fakeDisplay) AnnounceQueuePop(ctx context.Context, channelID string,
	mode Mode, roster []Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pops = append(f.pops, channelID)
	return nil
}

func (f *fakeDisplay) RenderDraftPrompt(ctx context.Context, v DraftView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, v)
	return nil
}

func (f *fakeDisplay) RenderMatchLobby(ctx context.Context, v MatchView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lobbies = append(f.lobbies, v)
	return nil
}

func (f *fakeDisplay) AnnounceResult(ctx context.Context, channelID string,
	v MatchView, winner TeamColor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, resultNote{channelID, v.ID, winner})
	return nil
}

func (f *fakeDisplay) DisputeNotice(ctx context.Context, v MatchView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disputes = append(f.disputes, v)
	return nil
}

type fakeVenues struct {
	mu         sync.Mutex
	created    []MatchID
	deleted    []*Venue
	failCreate bool
}

func (f *fakeVenues) CreateVenue(ctx context.Context, guildID string,
	id MatchID, blue, red []Player) (*Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return nil, errors.New("venue backend down")
	}
	f.created = append(f.created, id)
	return &Venue{
		Container:  fmt.Sprintf("cat-%d", id),
		TeamAreas:  []string{"voice-blue", "voice-red"},
		SharedArea: "lobby-chat",
	}, nil
}

func (f *fakeVenues) DeleteVenue(ctx context.Context, v *Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, v)
	return nil
}

func (f *fakeVenues) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

func newTestCoordinator(t *testing.T) (*Coordinator, *fakeDisplay,
	*fakeVenues, *clockwork.FakeClock) {
	t.Helper()
	fd := &fakeDisplay{}
	fv := &fakeVenues{}
	c := NewCoordinator(fd, fv)
	fc := clockwork.NewFakeClock()
	c.clock = fc
	c.rng = rand.New(rand.NewSource(7))
	if err := c.CreatePanel(context.Background(), "panelA", "guild1",
		"chan1"); err != nil {
		t.Fatalf("CreatePanel failed: %v", err)
	}
	return c, fd, fv, fc
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %v", what)
}

// fillDirectMatch queues two players into 1v1 and returns the formed
// match.
func fillDirectMatch(t *testing.T, c *Coordinator) *Match {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := c.Join(ctx, "panelA", mkPlayer(i), Mode1v1); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.matches) != 1 {
		t.Fatalf("have %d matches; want 1", len(c.matches))
	}
	for _, m := range c.matches {
		return m
	}
	return nil
}

func TestDirectPairFlow(t *testing.T) {
	c, fd, fv, _ := newTestCoordinator(t)
	m := fillDirectMatch(t, c)

	if m.ID < 1000 || m.ID > 9999 {
		t.Errorf("match id = %d; want a 4-digit id", m.ID)
	}
	if m.Venue == nil {
		t.Fatal("match has no venue after provisioning")
	}
	for i := 0; i < 2; i++ {
		st := c.registry.StatusOf(mkPlayer(i).ID)
		if st.Kind != StatusInMatch || st.PanelID != "panelA" {
			t.Errorf("player %d status = %+v; want in_match in panelA", i, st)
		}
	}

	if len(fv.created) != 1 || fv.created[0] != m.ID {
		t.Errorf("venues created = %v; want [%d]", fv.created, m.ID)
	}
	if len(fd.lobbies) != 1 || fd.lobbies[0].Host.ID != m.TeamBlue[0].ID {
		t.Errorf("lobbies = %+v; want one naming the first blue member as host",
			fd.lobbies)
	}
	if len(fd.pops) != 1 {
		t.Errorf("queue pop announcements = %d; want 1", len(fd.pops))
	}

	view, _ := c.PanelView("panelA")
	if len(view.Matches) != 1 || view.Matches[0].ID != m.ID {
		t.Errorf("panel matches = %+v; want the live match listed",
			view.Matches)
	}
	if len(view.Queues[Mode1v1]) != 0 {
		t.Errorf("1v1 bucket = %v; want empty", view.Queues[Mode1v1])
	}
}

func TestDraftFlowThroughCoordinator(t *testing.T) {
	c, fd, _, _ := newTestCoordinator(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := c.Join(ctx, "panelA", mkPlayer(i), Mode2v2); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}

	c.mu.Lock()
	if len(c.drafts) != 1 {
		c.mu.Unlock()
		t.Fatalf("have %d drafts; want 1", len(c.drafts))
	}
	var d *Draft
	for _, dr := range c.drafts {
		d = dr
	}
	c.mu.Unlock()

	for i := 0; i < 4; i++ {
		st := c.registry.StatusOf(mkPlayer(i).ID)
		if st.Kind != StatusDrafting {
			t.Errorf("player %d status = %+v; want drafting", i, st)
		}
	}
	if len(fd.drafts) == 0 {
		t.Fatal("no draft prompt rendered")
	}

	// A non-captain pick is rejected; the blue captain picking completes
	// the 2v2 draft via auto-assign.
	var outsider PlayerID
	for i := 0; i < 4; i++ {
		id := mkPlayer(i).ID
		if id != d.CaptainBlue.ID && id != d.CaptainRed.ID {
			outsider = id
			break
		}
	}
	if err := c.Pick(ctx, d.ID, outsider, d.Pool[0].ID); !errors.Is(err,
		ErrNotYourTurn) {
		t.Errorf("outsider pick = %v; want %v", err, ErrNotYourTurn)
	}
	if err := c.Pick(ctx, d.ID, d.CaptainBlue.ID, d.Pool[0].ID); err != nil {
		t.Fatalf("captain pick failed: %v", err)
	}

	c.mu.Lock()
	nDrafts, nMatches := len(c.drafts), len(c.matches)
	c.mu.Unlock()
	if nDrafts != 0 || nMatches != 1 {
		t.Fatalf("drafts=%d matches=%d; want draft handed off to a match",
			nDrafts, nMatches)
	}
	for i := 0; i < 4; i++ {
		if st := c.registry.StatusOf(mkPlayer(i).ID); st.Kind != StatusInMatch {
			t.Errorf("player %d status = %+v; want in_match", i, st)
		}
	}

	if err := c.Pick(ctx, d.ID, d.CaptainRed.ID, "u9"); !errors.Is(err,
		ErrUnknownDraft) {
		t.Errorf("pick on finished draft = %v; want %v", err, ErrUnknownDraft)
	}
}

func TestVoteAgreementResolvesAndTearsDown(t *testing.T) {
	c, fd, fv, fc := newTestCoordinator(t)
	ctx := context.Background()
	m := fillDirectMatch(t, c)
	blue, red := m.TeamBlue[0].ID, m.TeamRed[0].ID

	if err := c.Vote(ctx, m.ID, blue, TeamBlue); err != nil {
		t.Fatalf("blue vote failed: %v", err)
	}
	if len(fd.results) != 0 {
		t.Fatal("resolved off a single side's vote")
	}
	if err := c.Vote(ctx, m.ID, red, TeamBlue); err != nil {
		t.Fatalf("red vote failed: %v", err)
	}

	if len(fd.results) != 1 || fd.results[0].winner != TeamBlue ||
		fd.results[0].channelID != "chan1" {
		t.Fatalf("results = %+v; want a blue win announced in chan1",
			fd.results)
	}
	if len(fd.disputes) != 0 {
		t.Error("dispute notice sent for an agreed result")
	}
	for i := 0; i < 2; i++ {
		if st := c.registry.StatusOf(mkPlayer(i).ID); !st.Idle() {
			t.Errorf("player %d status = %+v; want idle after resolution",
				i, st)
		}
	}
	view, _ := c.PanelView("panelA")
	if len(view.Matches) != 0 {
		t.Errorf("panel matches = %+v; want empty after resolution",
			view.Matches)
	}

	// A straggler vote after resolution is silently ignored.
	if err := c.Vote(ctx, m.ID, blue, TeamRed); err != nil {
		t.Errorf("post-resolution vote = %v; want nil", err)
	}
	if len(fd.results) != 1 {
		t.Error("post-resolution vote produced another announcement")
	}

	fc.Advance(DefaultTeardownDelay)
	waitFor(t, "venue teardown", func() bool { return fv.deletedCount() == 1 })
	waitFor(t, "match record removal", func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		_, live := c.matches[m.ID]
		return !live
	})
}

func TestVoteDisagreementIsDispute(t *testing.T) {
	c, fd, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	m := fillDirectMatch(t, c)

	if err := c.Vote(ctx, m.ID, m.TeamBlue[0].ID, TeamBlue); err != nil {
		t.Fatalf("blue vote failed: %v", err)
	}
	if err := c.Vote(ctx, m.ID, m.TeamRed[0].ID, TeamRed); err != nil {
		t.Fatalf("red vote failed: %v", err)
	}

	if len(fd.disputes) != 1 {
		t.Fatalf("disputes = %d; want 1", len(fd.disputes))
	}
	if len(fd.results) != 0 {
		t.Error("public winner announcement emitted for a dispute")
	}
	if st := c.registry.StatusOf(m.TeamBlue[0].ID); !st.Idle() {
		t.Errorf("status = %+v; want idle after dispute", st)
	}
}

func TestVoteGates(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	m := fillDirectMatch(t, c)

	if err := c.Vote(ctx, m.ID, "stranger", TeamBlue); !errors.Is(err,
		ErrNotAParticipant) {
		t.Errorf("stranger vote = %v; want %v", err, ErrNotAParticipant)
	}
	if err := c.Vote(ctx, 9998, m.TeamBlue[0].ID, TeamBlue); !errors.Is(err,
		ErrUnknownMatch) {
		t.Errorf("vote on unknown match = %v; want %v", err, ErrUnknownMatch)
	}
}

func TestVenueFailureRollsMatchBack(t *testing.T) {
	c, fd, fv, _ := newTestCoordinator(t)
	fv.failCreate = true
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := c.Join(ctx, "panelA", mkPlayer(i), Mode1v1); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}

	c.mu.Lock()
	nMatches := len(c.matches)
	c.mu.Unlock()
	if nMatches != 0 {
		t.Errorf("matches = %d; want 0 after rollback", nMatches)
	}
	for i := 0; i < 2; i++ {
		if st := c.registry.StatusOf(mkPlayer(i).ID); !st.Idle() {
			t.Errorf("player %d status = %+v; want idle after rollback", i, st)
		}
	}
	if len(fd.lobbies) != 0 {
		t.Error("lobby rendered despite venue failure")
	}
}

func TestJoinWhileInMatchBlockedAcrossPanels(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	fillDirectMatch(t, c)

	if err := c.CreatePanel(ctx, "panelB", "guild1", "chan2"); err != nil {
		t.Fatalf("CreatePanel failed: %v", err)
	}
	err := c.Join(ctx, "panelB", mkPlayer(0), Mode3v3)
	if !errors.Is(err, ErrAlreadyInMatch) {
		t.Errorf("join while playing = %v; want %v", err, ErrAlreadyInMatch)
	}
}

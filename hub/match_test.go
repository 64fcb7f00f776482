/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import (
	"errors"
	"testing"
)

func newTestMatch() *Match {
	blue := []Player{{ID: "b1", Name: "B1"}, {ID: "b2", Name: "B2"}}
	red := []Player{{ID: "r1", Name: "R1"}, {ID: "r2", Name: "R2"}}
	return NewMatch(4321, "panelA", blue, red)
}

func TestMatchHostIsFirstBlueMember(t *testing.T) {
	m := newTestMatch()
	if m.Host().ID != "b1" {
		t.Errorf("Host = %v; want b1", m.Host().ID)
	}
}

func TestVoteRejectsNonParticipant(t *testing.T) {
	m := newTestMatch()

	_, _, err := m.CastVote("stranger", TeamBlue)
	if !errors.Is(err, ErrNotAParticipant) {
		t.Errorf("CastVote err = %v; want %v", err, ErrNotAParticipant)
	}
	if _, ready, _ := m.CastVote("b1", TeamBlue); ready {
		t.Error("match became ready off a single side's vote")
	}
}

func TestVoteResolution(t *testing.T) {
	cases := []struct {
		name  string
		votes []struct {
			player PlayerID
			claim  TeamColor
		}
		wantWinner   TeamColor
		wantDisputed bool
	}{
		{
			name: "agreement resolves that winner",
			votes: []struct {
				player PlayerID
				claim  TeamColor
			}{{"b1", TeamBlue}, {"r1", TeamBlue}},
			wantWinner: TeamBlue,
		},
		{
			name: "agreement on red resolves red",
			votes: []struct {
				player PlayerID
				claim  TeamColor
			}{{"r2", TeamRed}, {"b2", TeamRed}},
			wantWinner: TeamRed,
		},
		{
			name: "disagreement is a dispute",
			votes: []struct {
				player PlayerID
				claim  TeamColor
			}{{"b1", TeamBlue}, {"r1", TeamRed}},
			wantDisputed: true,
		},
		{
			name: "only each side's first vote counts",
			votes: []struct {
				player PlayerID
				claim  TeamColor
			}{{"b1", TeamBlue}, {"b2", TeamRed}, {"r1", TeamBlue}},
			wantWinner: TeamBlue,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := newTestMatch()
			var res Result
			var ready bool
			for _, v := range c.votes {
				var err error
				res, ready, err = m.CastVote(v.player, v.claim)
				if err != nil {
					t.Fatalf("CastVote(%v) failed: %v", v.player, err)
				}
			}
			if !ready {
				t.Fatal("expected resolution after both sides voted")
			}
			if res.Disputed != c.wantDisputed {
				t.Errorf("Disputed = %v; want %v", res.Disputed, c.wantDisputed)
			}
			if !c.wantDisputed && res.Winner != c.wantWinner {
				t.Errorf("Winner = %v; want %v", res.Winner, c.wantWinner)
			}
		})
	}
}

// A revote overwrites the old claim without losing the player's original
// cast position.
func TestVoteOverwriteKeepsCastOrder(t *testing.T) {
	m := newTestMatch()

	if _, ready, _ := m.CastVote("b1", TeamBlue); ready {
		t.Fatal("resolved prematurely")
	}
	if _, ready, _ := m.CastVote("b1", TeamRed); ready {
		t.Fatal("resolved prematurely on a revote")
	}

	res, ready, err := m.CastVote("r1", TeamRed)
	if err != nil || !ready {
		t.Fatalf("CastVote = ready %v, err %v; want resolution", ready, err)
	}
	if res.Disputed || res.Winner != TeamRed {
		t.Errorf("result = %+v; want red win from the overwritten blue vote",
			res)
	}
}

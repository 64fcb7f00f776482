/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import (
	"github.com/google/uuid"
)

type TeamColor string

const (
	TeamBlue TeamColor = "Blue"
	TeamRed  TeamColor = "Red"
)

// Draft is a captain-alternating pick session for team sizes above one.
// Captains are pre-seeded as the first member of their team; the blue
// captain picks first. |TeamBlue| + |TeamRed| + |Pool| stays equal to the
// drained roster size until the session completes.
type Draft struct {
	ID          uuid.UUID
	PanelID     PanelID
	CaptainBlue Player
	CaptainRed  Player
	TeamBlue    []Player
	TeamRed     []Player
	Pool        []Player
	Turn        TeamColor
}

func NewDraft(panelID PanelID, captainBlue, captainRed Player, pool []Player) *Draft {
	return &Draft{
		ID:          uuid.New(),
		PanelID:     panelID,
		CaptainBlue: captainBlue,
		CaptainRed:  captainRed,
		TeamBlue:    []Player{captainBlue},
		TeamRed:     []Player{captainRed},
		Pool:        append([]Player(nil), pool...),
		Turn:        TeamBlue,
	}
}

// ActiveCaptain returns the captain whose turn it is to pick.
func (d *Draft) ActiveCaptain() Player {
	if d.Turn == TeamBlue {
		return d.CaptainBlue
	}
	return d.CaptainRed
}

// Complete reports whether the pool has been exhausted.
func (d *Draft) Complete() bool {
	return len(d.Pool) == 0
}

// Pick moves pickID from the pool onto the active captain's team and
// flips the turn. When exactly one player remains afterward, that player
// is assigned to the team that would pick next, so the session never
// requires a redundant final pick.
func (d *Draft) Pick(captain PlayerID, pickID PlayerID) error {
	if d.Complete() {
		return ErrUnknownDraft
	}
	if d.ActiveCaptain().ID != captain {
		return ErrNotYourTurn
	}

	var picked Player
	found := false
	for _, p := range d.Pool {
		if p.ID == pickID {
			picked = p
			found = true
			break
		}
	}
	if !found {
		return ErrInvalidSelection
	}

	d.Pool = removePlayer(d.Pool, pickID)
	if d.Turn == TeamBlue {
		d.TeamBlue = append(d.TeamBlue, picked)
		d.Turn = TeamRed
	} else {
		d.TeamRed = append(d.TeamRed, picked)
		d.Turn = TeamBlue
	}

	if len(d.Pool) == 1 {
		last := d.Pool[0]
		d.Pool = nil
		if d.Turn == TeamBlue {
			d.TeamBlue = append(d.TeamBlue, last)
		} else {
			d.TeamRed = append(d.TeamRed, last)
		}
	}

	return nil
}

// DraftView is a render-ready snapshot of a draft session. ChannelID is
// the panel's home channel, filled in by the Coordinator.
type DraftView struct {
	ID          uuid.UUID
	PanelID     PanelID
	ChannelID   string
	CaptainBlue Player
	CaptainRed  Player
	TeamBlue    []Player
	TeamRed     []Player
	Pool        []Player
	Active      Player
	Complete    bool
}

func (d *Draft) View() DraftView {
	return DraftView{
		ID:          d.ID,
		PanelID:     d.PanelID,
		CaptainBlue: d.CaptainBlue,
		CaptainRed:  d.CaptainRed,
		TeamBlue:    append([]Player(nil), d.TeamBlue...),
		TeamRed:     append([]Player(nil), d.TeamRed...),
		Pool:        append([]Player(nil), d.Pool...),
		Active:      d.ActiveCaptain(),
		Complete:    d.Complete(),
	}
}

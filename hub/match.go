/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

// MatchID is a short human-readable match number, unique among live
// matches (see Coordinator.newMatchID).
type MatchID int

// Venue is the set of platform areas provisioned for one match: one
// private area per team plus one shared area both teams can see.
type Venue struct {
	Container  string   // grouping handle (a Discord category)
	TeamAreas  []string // blue area then red area
	SharedArea string   // lobby text area
}

// Result is a settled match outcome.
type Result struct {
	Winner   TeamColor
	Disputed bool
}

type voteEntry struct {
	player PlayerID
	claim  TeamColor
}

// Match is one formed match from venue provisioning through result
// confirmation. Rosters are fixed at creation; only roster members may
// vote.
type Match struct {
	ID       MatchID
	PanelID  PanelID
	TeamBlue []Player
	TeamRed  []Player
	Venue    *Venue

	votes    []voteEntry
	resolved bool
}

func NewMatch(id MatchID, panelID PanelID, blue, red []Player) *Match {
	return &Match{
		ID:       id,
		PanelID:  panelID,
		TeamBlue: append([]Player(nil), blue...),
		TeamRed:  append([]Player(nil), red...),
	}
}

// Host is the designated lobby host: the first member of the blue team.
func (m *Match) Host() Player {
	return m.TeamBlue[0]
}

func (m *Match) Participants() []Player {
	all := make([]Player, 0, len(m.TeamBlue)+len(m.TeamRed))
	all = append(all, m.TeamBlue...)
	all = append(all, m.TeamRed...)
	return all
}

func (m *Match) Resolved() bool {
	return m.resolved
}

func (m *Match) onTeam(team []Player, id PlayerID) bool {
	return containsPlayer(team, id)
}

// CastVote records a participant's claimed winner. Re-voting overwrites
// the earlier claim in place, keeping the original cast position. Once
// each side has at least one vote the match is ready to resolve: matching
// first votes name the winner, differing first votes are a dispute.
func (m *Match) CastVote(id PlayerID, claim TeamColor) (Result, bool, error) {
	if !m.onTeam(m.TeamBlue, id) && !m.onTeam(m.TeamRed, id) {
		return Result{}, false, ErrNotAParticipant
	}

	updated := false
	for i := range m.votes {
		if m.votes[i].player == id {
			m.votes[i].claim = claim
			updated = true
			break
		}
	}
	if !updated {
		m.votes = append(m.votes, voteEntry{player: id, claim: claim})
	}

	blueClaim, blueVoted := m.firstVote(m.TeamBlue)
	redClaim, redVoted := m.firstVote(m.TeamRed)
	if !blueVoted || !redVoted {
		return Result{}, false, nil
	}

	if blueClaim == redClaim {
		return Result{Winner: blueClaim}, true, nil
	}
	return Result{Disputed: true}, true, nil
}

// firstVote returns the earliest-cast vote among the given team's
// members.
func (m *Match) firstVote(team []Player) (TeamColor, bool) {
	for _, v := range m.votes {
		if m.onTeam(team, v.player) {
			return v.claim, true
		}
	}
	return "", false
}

// MatchView is a render-ready snapshot of a match.
type MatchView struct {
	ID      MatchID
	PanelID PanelID
	GuildID string
	Blue    []Player
	Red     []Player
	Host    Player
	Venue   *Venue
}

func (m *Match) view(guildID string) MatchView {
	return MatchView{
		ID:      m.ID,
		PanelID: m.PanelID,
		GuildID: guildID,
		Blue:    append([]Player(nil), m.TeamBlue...),
		Red:     append([]Player(nil), m.TeamRed...),
		Host:    m.Host(),
		Venue:   m.Venue,
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import (
	"math/rand"
)

// Formation is the outcome of splitting a drained roster into teams:
// either a ready blue/red pair (1v1) or a draft session to run first.
type Formation struct {
	Blue  []Player
	Red   []Player
	Draft *Draft
}

// Form converts a drained roster into a Formation. For 1v1 the shuffle
// alone decides sides, since FIFO order carries no meaning between two
// otherwise equal players. For larger modes the first two post-shuffle
// players become the blue and red captains and the rest form the pool.
func Form(roster []Player, mode Mode, panelID PanelID, rng *rand.Rand) Formation {
	shuffled := append([]Player(nil), roster...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if mode == Mode1v1 {
		return Formation{
			Blue: shuffled[:1],
			Red:  shuffled[1:2],
		}
	}

	return Formation{
		Draft: NewDraft(panelID, shuffled[0], shuffled[1], shuffled[2:]),
	}
}

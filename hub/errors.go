/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package hub

import "errors"

// Every condition below is user-recoverable; the command layer surfaces
// these as ephemeral notices to the acting player and nothing else. None
// of them is ever fatal to the process.
var (
	ErrUnknownPanel           = errors.New("unknown queue panel")
	ErrUnknownMode            = errors.New("unknown queue mode")
	ErrAlreadyInMatch         = errors.New("player is already in a match")
	ErrAlreadyDrafting        = errors.New("player is currently drafting")
	ErrAlreadyQueuedElsewhere = errors.New("player is queued in a different panel")
	ErrAlreadyInThisQueue     = errors.New("player is already in this queue")
	ErrNotQueued              = errors.New("player is not in this queue")
	ErrNotYourTurn            = errors.New("not this captain's turn to pick")
	ErrInvalidSelection       = errors.New("selected player is not draftable")
	ErrNotAParticipant        = errors.New("player is not in this match")
	ErrUnknownDraft           = errors.New("unknown or completed draft")
	ErrUnknownMatch           = errors.New("unknown or completed match")
)

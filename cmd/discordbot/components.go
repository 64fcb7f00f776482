/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/mikeb26/skirmish-hub/hub"
	"github.com/mikeb26/skirmish-hub/internal"
)

const (
	leaveCustomID   = "q_leave"
	draftPickPrefix = "draft_pick:"
	voteBluePrefix  = "vote_blue:"
	voteRedPrefix   = "vote_red:"
)

var modeByCustomID = map[string]hub.Mode{
	"q_1v1": hub.Mode1v1,
	"q_2v2": hub.Mode2v2,
	"q_3v3": hub.Mode3v3,
}

// componentHandler routes button and select-menu interactions to the
// coordinator and maps its sentinel errors to ephemeral notices.
func (b *bot) componentHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.MessageComponentData()
	user := interactionUser(inter)
	if user == nil {
		return ephemeral("Could not identify you; try again.")
	}
	player := hub.Player{ID: hub.PlayerID(user.ID), Name: displayName(inter)}

	customID := data.CustomID
	switch {
	case customID == leaveCustomID:
		panelID := hub.PanelID(inter.Message.ID)
		if err := b.coord.Leave(ctx, panelID, player.ID); err != nil {
			return ephemeral(noticeFor(err))
		}
		return deferredUpdate()

	case modeByCustomID[customID] != "":
		panelID := hub.PanelID(inter.Message.ID)
		if err := b.coord.Join(ctx, panelID, player,
			modeByCustomID[customID]); err != nil {
			return ephemeral(noticeFor(err))
		}
		return deferredUpdate()

	case strings.HasPrefix(customID, draftPickPrefix):
		draftID, err := uuid.Parse(strings.TrimPrefix(customID,
			draftPickPrefix))
		if err != nil || len(data.Values) == 0 {
			return ephemeral(noticeFor(hub.ErrUnknownDraft))
		}
		pick := hub.PlayerID(data.Values[0])
		if err := b.coord.Pick(ctx, draftID, player.ID, pick); err != nil {
			return ephemeral(noticeFor(err))
		}
		return deferredUpdate()

	case strings.HasPrefix(customID, voteBluePrefix),
		strings.HasPrefix(customID, voteRedPrefix):
		claim, matchID, err := parseVoteCustomID(customID)
		if err != nil {
			return ephemeral(noticeFor(hub.ErrUnknownMatch))
		}
		if err := b.coord.Vote(ctx, matchID, player.ID, claim); err != nil {
			return ephemeral(noticeFor(err))
		}
		return ephemeral(fmt.Sprintf("You voted for Team %s", claim))
	}

	return ephemeral("Unknown control.")
}

func parseVoteCustomID(customID string) (hub.TeamColor, hub.MatchID, error) {
	var claim hub.TeamColor
	var raw string
	switch {
	case strings.HasPrefix(customID, voteBluePrefix):
		claim = hub.TeamBlue
		raw = strings.TrimPrefix(customID, voteBluePrefix)
	case strings.HasPrefix(customID, voteRedPrefix):
		claim = hub.TeamRed
		raw = strings.TrimPrefix(customID, voteRedPrefix)
	default:
		return "", 0, fmt.Errorf("not a vote control: %v", customID)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("bad match id %q: %w", raw, err)
	}
	return claim, hub.MatchID(id), nil
}

// noticeFor translates core sentinel errors into the text shown to the
// acting player.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, hub.ErrUnknownPanel):
		return "This queue instance has expired."
	case errors.Is(err, hub.ErrUnknownMode):
		return "That queue mode is not available."
	case errors.Is(err, hub.ErrAlreadyInMatch):
		return "❌ You are already playing in a match!"
	case errors.Is(err, hub.ErrAlreadyDrafting):
		return "❌ You are currently drafting! Finish that first."
	case errors.Is(err, hub.ErrAlreadyQueuedElsewhere):
		return "❌ You are already queued in a different lobby! Leave that one first."
	case errors.Is(err, hub.ErrAlreadyInThisQueue):
		return "You are already in this queue."
	case errors.Is(err, hub.ErrNotQueued):
		return "You are not in this queue."
	case errors.Is(err, hub.ErrNotYourTurn):
		return "It is not your turn to pick!"
	case errors.Is(err, hub.ErrInvalidSelection):
		return "That player is no longer available."
	case errors.Is(err, hub.ErrNotAParticipant):
		return "You are not in this match."
	case errors.Is(err, hub.ErrUnknownDraft):
		return "This draft has expired."
	case errors.Is(err, hub.ErrUnknownMatch):
		return "This match has already been settled."
	}
	return "Something went wrong; try again."
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: internal.TruncateContent(content),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

func deferredUpdate() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}
}

func interactionUser(inter *discordgo.Interaction) *discordgo.User {
	if inter.Member != nil {
		return inter.Member.User
	}
	return inter.User
}

func displayName(inter *discordgo.Interaction) string {
	if inter.Member != nil && inter.Member.Nick != "" {
		return inter.Member.Nick
	}
	u := interactionUser(inter)
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/mikeb26/skirmish-hub/hub"
)

// setupCmdHandler handles /setup: it acknowledges ephemerally, then
// posts the panel message and registers the new panel instance keyed by
// that message's id. Panel creation happens off the interaction path so
// the response stays within Discord's deadline.
func (b *bot) setupCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	guildID := inter.GuildID
	channelID := inter.ChannelID
	go b.spawnPanel(context.Background(), guildID, channelID)

	return ephemeral("Creating queue instance...")
}

func (b *bot) spawnPanel(ctx context.Context, guildID, channelID string) {
	msg, err := b.session.ChannelMessageSendComplex(channelID,
		&discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title: "Initializing Queue...",
			}},
			Components: queueButtons(),
		}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).
			Msg("failed to post panel message")
		return
	}

	if err := b.coord.CreatePanel(ctx, hub.PanelID(msg.ID), guildID,
		channelID); err != nil {
		log.Warn().Err(err).Str("panel_id", msg.ID).
			Msg("initial panel render failed")
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/mikeb26/skirmish-hub/hub"
)

// discordVenues provisions one category per match: a private voice
// channel per team plus a shared lobby text channel. Team channels are
// hidden from everyone except that team's members; the lobby is visible
// to both teams.
type discordVenues struct {
	session *discordgo.Session
}

func newDiscordVenues(session *discordgo.Session) *discordVenues {
	return &discordVenues{session: session}
}

func (v *discordVenues) CreateVenue(ctx context.Context, guildID string,
	id hub.MatchID, blue, red []hub.Player) (*hub.Venue, error) {

	denyEveryone := &discordgo.PermissionOverwrite{
		ID:   guildID, // @everyone role id equals the guild id
		Type: discordgo.PermissionOverwriteTypeRole,
		Deny: discordgo.PermissionViewChannel,
	}
	blueAllows := memberOverwrites(blue)
	redAllows := memberOverwrites(red)

	var created []string
	fail := func(err error) (*hub.Venue, error) {
		for _, chID := range created {
			if _, derr := v.session.ChannelDelete(chID,
				discordgo.WithContext(ctx)); derr != nil {
				log.Debug().Err(derr).Str("channel_id", chID).
					Msg("cleanup of partial venue failed")
			}
		}
		return nil, err
	}

	category, err := v.session.GuildChannelCreateComplex(guildID,
		discordgo.GuildChannelCreateData{
			Name:                 fmt.Sprintf("Match #%d", id),
			Type:                 discordgo.ChannelTypeGuildCategory,
			PermissionOverwrites: []*discordgo.PermissionOverwrite{denyEveryone},
		}, discordgo.WithContext(ctx))
	if err != nil {
		return fail(fmt.Errorf("failed to create match category: %w", err))
	}
	created = append(created, category.ID)

	blueVoice, err := v.session.GuildChannelCreateComplex(guildID,
		discordgo.GuildChannelCreateData{
			Name:                 "Team Blue",
			Type:                 discordgo.ChannelTypeGuildVoice,
			ParentID:             category.ID,
			PermissionOverwrites: withDeny(denyEveryone, blueAllows),
		}, discordgo.WithContext(ctx))
	if err != nil {
		return fail(fmt.Errorf("failed to create blue team channel: %w", err))
	}
	created = append(created, blueVoice.ID)

	redVoice, err := v.session.GuildChannelCreateComplex(guildID,
		discordgo.GuildChannelCreateData{
			Name:                 "Team Red",
			Type:                 discordgo.ChannelTypeGuildVoice,
			ParentID:             category.ID,
			PermissionOverwrites: withDeny(denyEveryone, redAllows),
		}, discordgo.WithContext(ctx))
	if err != nil {
		return fail(fmt.Errorf("failed to create red team channel: %w", err))
	}
	created = append(created, redVoice.ID)

	lobby, err := v.session.GuildChannelCreateComplex(guildID,
		discordgo.GuildChannelCreateData{
			Name:     "lobby-chat",
			Type:     discordgo.ChannelTypeGuildText,
			ParentID: category.ID,
			PermissionOverwrites: withDeny(denyEveryone,
				append(blueAllows, redAllows...)),
		}, discordgo.WithContext(ctx))
	if err != nil {
		return fail(fmt.Errorf("failed to create lobby channel: %w", err))
	}

	return &hub.Venue{
		Container:  category.ID,
		TeamAreas:  []string{blueVoice.ID, redVoice.ID},
		SharedArea: lobby.ID,
	}, nil
}

// DeleteVenue removes every area of the venue, children before the
// category. Each deletion is attempted regardless of earlier failures;
// the first error is returned for the caller to log.
func (v *discordVenues) DeleteVenue(ctx context.Context,
	venue *hub.Venue) error {

	ids := append([]string{}, venue.TeamAreas...)
	ids = append(ids, venue.SharedArea, venue.Container)

	var firstErr error
	for _, chID := range ids {
		if chID == "" {
			continue
		}
		if _, err := v.session.ChannelDelete(chID,
			discordgo.WithContext(ctx)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func memberOverwrites(team []hub.Player) []*discordgo.PermissionOverwrite {
	var out []*discordgo.PermissionOverwrite
	for _, p := range team {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    string(p.ID),
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect,
		})
	}
	return out
}

func withDeny(deny *discordgo.PermissionOverwrite,
	allows []*discordgo.PermissionOverwrite) []*discordgo.PermissionOverwrite {

	return append([]*discordgo.PermissionOverwrite{deny}, allows...)
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/mikeb26/skirmish-hub/hub"
	"github.com/mikeb26/skirmish-hub/internal"
)

const (
	colorSkirmish = 0xff4655 // valorant red
	colorGold     = 0xc9a227
	colorGreen    = 0x2ecc71
)

// discordDisplay renders hub snapshots as Discord embeds and components.
// It owns one piece of presentation state: which message each running
// draft prompt lives in, so re-renders edit in place.
type discordDisplay struct {
	session *discordgo.Session

	mu        sync.Mutex
	draftMsgs map[uuid.UUID]messageRef
}

type messageRef struct {
	channelID string
	messageID string
}

func newDiscordDisplay(session *discordgo.Session) *discordDisplay {
	return &discordDisplay{
		session:   session,
		draftMsgs: make(map[uuid.UUID]messageRef),
	}
}

func (d *discordDisplay) RenderPanel(ctx context.Context, v hub.PanelView) error {
	embed := &discordgo.MessageEmbed{
		Title:       "⚔️ Skirmish Hub",
		Description: "This is a standalone queue instance.\nClick a button to join.",
		Color:       colorSkirmish,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Instance ID: %v", v.ID),
		},
	}

	for _, mode := range hub.Modes {
		players := v.Queues[mode]
		value := "*Waiting for players...*"
		if len(players) > 0 {
			var lines []string
			for _, p := range players {
				lines = append(lines, fmt.Sprintf("> 👤 %s", p.Name))
			}
			value = strings.Join(lines, "\n")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("**%s Queue** (%d)", mode, len(players)),
			Value: value,
		})
	}

	if len(v.Matches) > 0 {
		var sb strings.Builder
		for _, m := range v.Matches {
			sb.WriteString(fmt.Sprintf("**#%d**: 🔵 `%s` **VS** 🔴 `%s`\n",
				m.ID, nameList(m.Blue), nameList(m.Red)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🔥 Matches in Progress",
			Value: internal.TruncateContent(sb.String()),
		})
	}

	embeds := []*discordgo.MessageEmbed{embed}
	components := queueButtons()
	_, err := d.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    v.ChannelID,
		ID:         string(v.ID),
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return err
}

func (d *discordDisplay) AnnounceQueuePop(ctx context.Context,
	channelID string, mode hub.Mode, roster []hub.Player) error {

	_, err := d.session.ChannelMessageSend(channelID,
		fmt.Sprintf("🚨 **MATCH FOUND** for %s! Prepared: %s", mode,
			mentionList(roster)), discordgo.WithContext(ctx))
	return err
}

func (d *discordDisplay) RenderDraftPrompt(ctx context.Context,
	v hub.DraftView) error {

	embed := &discordgo.MessageEmbed{
		Title: "👨‍✈️ Captain Draft",
		Color: colorGold,
		Description: fmt.Sprintf(
			"**🔵 Team Blue:** %s\n**🔴 Team Red:** %s\n\n**Available:** %s",
			nameList(v.TeamBlue), nameList(v.TeamRed), nameList(v.Pool)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Blue Captain", Value: mention(v.CaptainBlue), Inline: true},
			{Name: "Red Captain", Value: mention(v.CaptainRed), Inline: true},
		},
	}

	components := []discordgo.MessageComponent{}
	if v.Complete {
		embed.Title = "Draft Complete! Setting up lobby..."
		embed.Color = colorGreen
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "On the clock",
			Value: mention(v.Active),
		})
		var options []discordgo.SelectMenuOption
		for _, p := range v.Pool {
			options = append(options, discordgo.SelectMenuOption{
				Label: p.Name,
				Value: string(p.ID),
			})
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    draftPickPrefix + v.ID.String(),
					Placeholder: "Pick a player...",
					Options:     options,
				},
			},
		})
	}

	d.mu.Lock()
	ref, known := d.draftMsgs[v.ID]
	d.mu.Unlock()

	if !known {
		msg, err := d.session.ChannelMessageSendComplex(v.ChannelID,
			&discordgo.MessageSend{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: components,
			}, discordgo.WithContext(ctx))
		if err != nil {
			return err
		}
		if !v.Complete {
			d.mu.Lock()
			d.draftMsgs[v.ID] = messageRef{
				channelID: msg.ChannelID,
				messageID: msg.ID,
			}
			d.mu.Unlock()
		}
		return nil
	}

	if v.Complete {
		d.mu.Lock()
		delete(d.draftMsgs, v.ID)
		d.mu.Unlock()
	}

	embeds := []*discordgo.MessageEmbed{embed}
	_, err := d.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    ref.channelID,
		ID:         ref.messageID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return err
}

func (d *discordDisplay) RenderMatchLobby(ctx context.Context,
	v hub.MatchView) error {

	if v.Venue == nil {
		return fmt.Errorf("match #%d has no venue to post the lobby in", v.ID)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Match #%d - Lobby Info", v.ID),
		Color: colorGold,
		Description: fmt.Sprintf(
			"**Host:** %s\nCreate the custom game and paste the invite here.",
			mention(v.Host)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔵 Team Blue", Value: mentionLines(v.Blue), Inline: true},
			{Name: "🔴 Team Red", Value: mentionLines(v.Red), Inline: true},
		},
	}

	_, err := d.session.ChannelMessageSendComplex(v.Venue.SharedArea,
		&discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "Blue Team Won",
							Style:    discordgo.PrimaryButton,
							CustomID: fmt.Sprintf("%s%d", voteBluePrefix, v.ID),
						},
						discordgo.Button{
							Label:    "Red Team Won",
							Style:    discordgo.DangerButton,
							CustomID: fmt.Sprintf("%s%d", voteRedPrefix, v.ID),
						},
					},
				},
			},
		}, discordgo.WithContext(ctx))
	return err
}

func (d *discordDisplay) AnnounceResult(ctx context.Context,
	channelID string, v hub.MatchView, winner hub.TeamColor) error {

	captain := v.Blue[0]
	if winner == hub.TeamRed {
		captain = v.Red[0]
	}
	_, err := d.session.ChannelMessageSend(channelID,
		fmt.Sprintf("🏆 **Winner Confirmed: Team %s!** GG %s and team.",
			winner, mention(captain)), discordgo.WithContext(ctx))
	return err
}

func (d *discordDisplay) DisputeNotice(ctx context.Context,
	v hub.MatchView) error {

	if v.Venue == nil {
		return nil
	}
	_, err := d.session.ChannelMessageSend(v.Venue.SharedArea,
		"⚠️ **Result disputed:** the two teams reported different winners. "+
			"No result was recorded. These channels will be removed shortly.",
		discordgo.WithContext(ctx))
	return err
}

func queueButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Join 1v1",
					Style: discordgo.PrimaryButton, CustomID: "q_1v1"},
				discordgo.Button{Label: "Join 2v2",
					Style: discordgo.SuccessButton, CustomID: "q_2v2"},
				discordgo.Button{Label: "Join 3v3",
					Style: discordgo.SecondaryButton, CustomID: "q_3v3"},
				discordgo.Button{Label: "Leave Queue",
					Style: discordgo.DangerButton, CustomID: leaveCustomID},
			},
		},
	}
}

func mention(p hub.Player) string {
	return fmt.Sprintf("<@%s>", p.ID)
}

func mentionList(players []hub.Player) string {
	var parts []string
	for _, p := range players {
		parts = append(parts, mention(p))
	}
	return strings.Join(parts, ", ")
}

func mentionLines(players []hub.Player) string {
	var parts []string
	for _, p := range players {
		parts = append(parts, fmt.Sprintf("- %s", mention(p)))
	}
	return strings.Join(parts, "\n")
}

func nameList(players []hub.Player) string {
	if len(players) == 0 {
		return "*none*"
	}
	var parts []string
	for _, p := range players {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}

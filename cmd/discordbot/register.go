/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// registerSlashCommands creates or refreshes the /setup command. Set
// SETUP_CMD_ID once the command exists to refresh in place instead of
// creating a duplicate.
func (b *bot) registerSlashCommands() {
	adminOnly := int64(discordgo.PermissionAdministrator)
	setupCmd := &discordgo.ApplicationCommand{
		Name:                     string(SetupCmd),
		Description:              "Spawn a skirmish queue panel in this channel",
		DefaultMemberPermissions: &adminOnly,
	}

	if b.cfg.setupCmdID == "" {
		cmd, err := b.session.ApplicationCommandCreate(b.cfg.appID, "", setupCmd)
		if err != nil {
			log.Error().Err(err).Msg("failed to register setup command")
			return
		}
		log.Info().Str("cmd_id", cmd.ID).
			Msg("registered setup command; set SETUP_CMD_ID to this id")
		return
	}

	cmd, err := b.session.ApplicationCommandEdit(b.cfg.appID, "",
		b.cfg.setupCmdID, setupCmd)
	if err != nil {
		log.Error().Err(err).Msg("failed to update setup command")
		return
	}
	log.Info().Str("cmd_id", cmd.ID).Msg("updated setup command")
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/skirmish-hub/hub"
	"github.com/mikeb26/skirmish-hub/internal"
)

type TopLevelCommand string

const SetupCmd TopLevelCommand = "setup"

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

type botConfig struct {
	token      string
	pubKey     ed25519.PublicKey
	appID      string
	setupCmdID string
	listenAddr string
}

func loadConfig() (botConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg botConfig
	cfg.token = os.Getenv("DISCORD_BOT_TOKEN")
	if cfg.token == "" {
		return cfg, fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}
	cfg.appID = os.Getenv("DISCORD_APP_ID")
	if cfg.appID == "" {
		return cfg, fmt.Errorf("DISCORD_APP_ID is not set")
	}
	pubKeyText := os.Getenv("DISCORD_PUBLIC_KEY")
	if pubKeyText == "" {
		return cfg, fmt.Errorf("DISCORD_PUBLIC_KEY is not set")
	}
	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse public key: %w", err)
	}
	cfg.pubKey = ed25519.PublicKey(pubKeyBytes)
	cfg.setupCmdID = os.Getenv("SETUP_CMD_ID")
	cfg.listenAddr = internal.GetEnvOrDefault("LISTEN_ADDR",
		internal.DefaultListenAddr)

	return cfg, nil
}

type bot struct {
	cfg      botConfig
	session  *discordgo.Session
	coord    *hub.Coordinator
	cmdHdlrs map[TopLevelCommand]CmdHandler
}

func newBot(cfg botConfig) (*bot, error) {
	session, err := discordgo.New("Bot " + cfg.token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize discord client: %w", err)
	}
	session.UserAgent = internal.UserAgent

	b := &bot{
		cfg:     cfg,
		session: session,
	}
	b.coord = hub.NewCoordinator(newDiscordDisplay(session),
		newDiscordVenues(session))
	b.cmdHdlrs = map[TopLevelCommand]CmdHandler{
		SetupCmd: b.setupCmdHandler,
	}

	return b, nil
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.cfg.pubKey) {
		log.Warn().Msg("interaction failed signature verification")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read interaction body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Warn().Err(err).Msg("failed to unmarshal interaction")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	switch inter.Type {
	case discordgo.InteractionPing:
		resp.Type = discordgo.InteractionResponsePong
	case discordgo.InteractionApplicationCommand:
		hdlr, ok :=
			b.cmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp = ephemeral(fmt.Sprintf("unknown command '%v'",
				inter.ApplicationCommandData().Name))
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	case discordgo.InteractionMessageComponent:
		resp = b.componentHandler(r.Context(), &inter)
	default:
		log.Warn().Int("type", int(inter.Type)).
			Msg("unimplemented interaction type")
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal interaction response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rawResp); err != nil {
		log.Error().Err(err).Msg("failed to write interaction response")
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(internal.GetEnvOrDefault("LOG_LEVEL",
		"info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	b, err := newBot(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize bot")
	}

	go b.registerSlashCommands()

	router := chi.NewRouter()
	router.Post(internal.InteractionRoute, b.interactionHandler)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := &http.Server{Addr: cfg.listenAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.listenAddr).Msg("starting interaction server")
		if err := srv.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("interaction server failed")
	}
	log.Info().Msg("exiting")
}

// Command server runs the Career Navigator backend: the job board API,
// account management and the AI agent endpoints.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ishan11032005GitHub/career-navigator-backend/agent"
	"github.com/Ishan11032005GitHub/career-navigator-backend/auth"
	"github.com/Ishan11032005GitHub/career-navigator-backend/compiler"
	"github.com/Ishan11032005GitHub/career-navigator-backend/config"
	"github.com/Ishan11032005GitHub/career-navigator-backend/gateway"
	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
	"github.com/Ishan11032005GitHub/career-navigator-backend/mailer"
	"github.com/Ishan11032005GitHub/career-navigator-backend/memory"
	"github.com/Ishan11032005GitHub/career-navigator-backend/runner"
	"github.com/Ishan11032005GitHub/career-navigator-backend/server"
	"github.com/Ishan11032005GitHub/career-navigator-backend/store"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Config{Level: slog.LevelInfo})

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("database init failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("database ready", "path", cfg.DBPath)

	// Providers are constructed only when their credentials are present;
	// with none configured the gateway answers from its local fallback.
	var providers []gateway.Provider
	if cfg.OpenRouterKey != "" {
		providers = append(providers, gateway.NewOpenAIProvider(cfg.OpenRouterKey))
	}
	if cfg.AnthropicKey != "" {
		providers = append(providers, gateway.NewAnthropicProvider(cfg.AnthropicKey))
	}
	if len(providers) == 0 {
		logger.Warn("no llm provider credentials configured, running on local fallback responses")
	}
	gw := gateway.New(providers, func(o *gateway.Options) { o.Logger = logger })

	comp, err := compiler.New(cfg.GeneratedDir, func(o *compiler.Options) { o.Logger = logger })
	if err != nil {
		logger.Error("compiler init failed", "dir", cfg.GeneratedDir, "error", err)
		os.Exit(1)
	}

	threads := memory.NewThreadStore()
	dispatcher := runner.New(
		agent.NewCareer(gw, comp, logger),
		agent.NewLearning(gw, threads, logger),
		agent.NewChitchat(gw, logger),
		func(o *runner.Options) {
			o.Workers = cfg.AgentWorkers
			o.WaitTimeout = cfg.AgentWait
			o.Logger = logger
		},
	)

	ml := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, logger)
	srv := server.New(st, auth.NewManager(cfg.JWTSecret), ml, dispatcher, cfg.GeneratedDir, logger)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.Addr)
	if err := srv.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/redwan/configs"
	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/providers/knowledge"
	"github.com/sandevgo/redwan/internal/providers/llm"
	"github.com/sandevgo/redwan/internal/service/agent"
	"github.com/sandevgo/redwan/internal/service/command"
	"github.com/sandevgo/redwan/internal/service/intent"
	"github.com/sandevgo/redwan/internal/service/lexicon"
	"github.com/sandevgo/redwan/internal/service/responder"
	"github.com/sandevgo/redwan/internal/service/state"
	"github.com/sandevgo/redwan/internal/storage/sqlite"
	"github.com/sandevgo/redwan/internal/transport/cli"
	"github.com/sandevgo/redwan/internal/transport/telegram"
	"github.com/sandevgo/redwan/pkg/log"
	"github.com/sandevgo/redwan/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	genCfg := config.NewGeneratorConfig(ctx)

	// 2. Storage
	db, messagesRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Knowledge
	kcfg := config.NewKnowledgeConfig(ctx, appCfg.GetRuntimePath())
	knowledgeState, err := initKnowledge(ctx, kcfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load knowledge")
	}
	if kcfg.IsWatchEnabled() {
		watcher, err := knowledge.NewWatcher(kcfg.GetDataPath(), knowledgeState, knowledge.DefaultDebounce)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize knowledge watcher")
		}
		services = append(services, watcher)
	}

	// 4. Optional generator
	// the interfaces stay untyped nil when the generator is disabled
	var (
		generator core.Generator
		switcher  core.ModelSwitcher
	)
	if genCfg.IsEnabled() {
		dyn, err := llm.NewDynamicGenerator(ctx, genCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize generator")
		}
		generator, switcher = dyn, dyn
		logger.Info().Str("provider", genCfg.GetProvider()).Str("model", genCfg.GetModel()).Msg("generator enabled")
	}

	// 5. Responder, commands and agent
	resp := newResponder(ctx, knowledgeState, generator, genCfg)
	router := command.New(command.NewCommands(messagesRepo, knowledgeState, genCfg, generator, switcher))
	ag := agent.NewAgent(appCfg, resp, router, messagesRepo)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, ag)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set REDWAN_ENABLE_CLI or REDWAN_ENABLE_TELEGRAM")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.MessagesRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewMessagesRepo(db), nil
}

// initKnowledge performs the first load. Later reloads keep the previous
// snapshot on failure, the first one has nothing to fall back to.
func initKnowledge(ctx context.Context, cfg *config.KnowledgeConfig) (*state.GlobalState, error) {
	loader := knowledge.NewLoader(cfg, configs.FS)
	st := state.NewGlobalState(loader)
	if err := st.Reload(ctx); err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	for _, rep := range snap.Failed() {
		log.FromCtx(ctx).Warn().Err(rep.Err).Str("kind", string(rep.Kind)).Str("name", rep.Name).Msg("knowledge source skipped")
	}
	log.FromCtx(ctx).Info().
		Int("intents", snap.Intents.Len()).
		Int("dictionary", snap.Lexicon.Len()).
		Msg("knowledge loaded")

	return st, nil
}

func newResponder(ctx context.Context, k responder.Knowledge, generator core.Generator, genCfg *config.GeneratorConfig) *responder.Responder {
	match := config.NewMatchConfig(ctx)
	return responder.New(k,
		responder.WithClassifier(intent.NewClassifier(match.GetIntentThreshold(), match.GetSubstringGuard())),
		responder.WithLexicon(lexicon.NewResolver(match.GetLexiconThreshold())),
		responder.WithGenerator(generator, genCfg.Timeout),
	)
}

func initTransports(ctx context.Context, cfg *config.AppConfig, ag *agent.Agent) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, cfg, ag)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Terminal chat
	if cfg.IsCLISelected() {
		rl, err := cli.NewReadLine(ag, cfg.GetInputHistoryPath())
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

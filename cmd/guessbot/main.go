package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iamwavecut/guessbot/internal/adapters"
	"github.com/iamwavecut/guessbot/internal/adapters/llm/gemini"
	"github.com/iamwavecut/guessbot/internal/adapters/llm/local"
	"github.com/iamwavecut/guessbot/internal/adapters/llm/openai"
	"github.com/iamwavecut/guessbot/internal/bot"
	"github.com/iamwavecut/guessbot/internal/config"
	"github.com/iamwavecut/guessbot/internal/db"
	"github.com/iamwavecut/guessbot/internal/db/memory"
	"github.com/iamwavecut/guessbot/internal/db/sqlite"
	"github.com/iamwavecut/guessbot/internal/game"
	handlers "github.com/iamwavecut/guessbot/internal/handlers/game"
	"github.com/iamwavecut/guessbot/internal/infra"
	"github.com/iamwavecut/guessbot/internal/infrastructure/telegram"
	"github.com/iamwavecut/guessbot/internal/lifecycle"
	"github.com/iamwavecut/guessbot/internal/observability"
	"github.com/iamwavecut/guessbot/internal/oracle"
	"github.com/iamwavecut/guessbot/internal/queue"
)

const stopTimeout = 30 * time.Second

func main() {
	log.SetFormatter(&config.GbFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatalln("cant load config")
	}
	log.SetLevel(log.Level(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Errorln("bot stopped")
		cancel()
		os.Exit(1)
	}
	log.Info("bot stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	botAPI, err := api.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return errors.WithMessage(err, "cant initialize bot api")
	}
	if log.Level(cfg.LogLevel) == log.TraceLevel {
		botAPI.Debug = true
	}
	defer botAPI.StopReceivingUpdates()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("cant close store")
		}
	}()

	images := openai.NewOpenAI(cfg.LLM.APIKey, cfg.LLM.BaseURL, log.WithField("context", "openai")).
		WithImageModel(cfg.LLM.ImageModel, cfg.LLM.ImageSize)

	embedder, closeEmbedder, err := newEmbedder(ctx, cfg, images)
	if err != nil {
		return err
	}
	defer closeEmbedder()

	vocabulary, err := oracle.LoadVocabulary(cfg.Oracle.VocabularyFile)
	if err != nil {
		return err
	}
	log.WithField("words", vocabulary.Len()).Info("vocabulary loaded")
	words, err := oracle.New(vocabulary, embedder, cfg.Oracle.CacheSize)
	if err != nil {
		return err
	}

	operations := telegram.NewOperations(botAPI).WithUserName(cfg.BotName)
	pending := queue.New[game.PickRequest](cfg.Queue.Delay)
	engine := game.NewEngine(store, words, images, pending, handlers.NewNotifier(operations, cfg.DefaultLanguage), game.Options{
		MaxQueueSize: cfg.Queue.MaxSize,
		Delay:        pending.Delay(),
		Prompt:       cfg.LLM.ImagePrompt,
	})
	if _, err := engine.Recover(ctx); err != nil {
		return errors.WithMessage(err, "cant recover pending sessions")
	}

	service := bot.NewService(botAPI, cfg.DefaultLanguage)
	bot.RegisterUpdateHandler("game", handlers.NewGame(service, engine, operations))
	updateProcessor := bot.NewUpdateProcessor(service, cfg.EnabledHandlers)

	runtime := lifecycle.NewRuntime(stopTimeout)
	runtime.Register("observability", observability.NewServer(cfg.Observability.MetricsAddr, cfg.Observability.OTelEnabled))
	runtime.Register("pick_worker", queue.NewWorker(pending, engine.ProcessPick))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runtime.Run(gctx)
	})
	g.Go(func() error {
		return pollUpdates(gctx, botAPI, updateProcessor)
	})
	g.Go(func() error {
		select {
		case <-infra.WatchExecutable(gctx):
			return errors.New("executable file was modified")
		case <-gctx.Done():
			return nil
		}
	})
	return g.Wait()
}

func pollUpdates(ctx context.Context, botAPI *api.BotAPI, updateProcessor *bot.UpdateProcessor) error {
	updateConfig := api.NewUpdate(0)
	updateConfig.Timeout = 60
	updateChan, errorChan := bot.GetUpdatesChans(ctx, botAPI, updateConfig)

	for {
		select {
		case err := <-errorChan:
			if err == nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return errors.WithMessage(err, "bot api get updates error")
		case update, ok := <-updateChan:
			if !ok {
				return nil
			}
			go func(u api.Update) {
				if err := infra.CatchPanic(func() error { return updateProcessor.Process(ctx, &u) }); err != nil {
					log.WithError(err).Errorln("cant process update")
				}
			}(update)
		}
	}
}

func newStore(ctx context.Context, cfg config.Config) (db.Client, error) {
	if cfg.Store == "memory" {
		log.Warn("sessions are kept in memory and will not survive a restart")
		return memory.NewMemoryClient(), nil
	}
	dir, err := infra.WorkDir(cfg.DotPath)
	if err != nil {
		return nil, err
	}
	return sqlite.NewSQLiteClient(ctx, dir, "guessbot.db")
}

func newEmbedder(ctx context.Context, cfg config.Config, fallback *openai.API) (adapters.Embedder, func(), error) {
	switch cfg.Oracle.Embedder {
	case "gemini":
		embedder, err := gemini.NewGemini(ctx, cfg.Oracle.GeminiAPIKey, cfg.Oracle.EmbeddingModel, log.WithField("context", "gemini"))
		if err != nil {
			return nil, nil, err
		}
		return embedder, func() { _ = embedder.Close() }, nil
	case "local":
		dir, err := infra.WorkDir(cfg.DotPath, cfg.Oracle.LocalModelsDir)
		if err != nil {
			return nil, nil, err
		}
		embedder, err := local.NewEncoder(dir, cfg.Oracle.LocalModel, log.WithField("context", "local_embedder"))
		if err != nil {
			return nil, nil, err
		}
		return embedder, func() {}, nil
	default:
		if cfg.Oracle.EmbeddingModel != "" {
			fallback.WithEmbeddingModel(cfg.Oracle.EmbeddingModel)
		}
		return fallback, func() {}, nil
	}
}

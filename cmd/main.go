package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"campushub/cmd/buildCFG"
	"campushub/internal/api/api"
	"campushub/internal/kvstore"
	"campushub/internal/mailer"
	"campushub/internal/notify"
	"campushub/internal/payment"
	"campushub/internal/rabbit"
	"campushub/internal/repo"
	"campushub/internal/service"
	"campushub/internal/workflow"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)

	storageCfg, err := buildCFG.BuildStorageConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build storage config")
	}

	var store kvstore.Store
	switch storageCfg.Driver {
	case "postgres":
		db, err := dbpg.New(storageCfg.DSN, nil, &dbpg.Options{})
		if err != nil {
			log.Fatal().Msgf("failed to connect to DB: %v", err)
		}
		store, err = kvstore.NewPostgres(db)
		if err != nil {
			log.Fatal().Msgf("failed to initialize postgres store: %v", err)
		}
	default:
		store, err = kvstore.OpenSQLite(storageCfg.Path)
		if err != nil {
			log.Fatal().Msgf("failed to open sqlite store: %v", err)
		}
	}
	defer store.Close()
	log.Info().Msg("store opened successfully")

	repository, err := repo.NewRepository(store, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	if err := repository.SeedBlogPosts(context.Background(), service.InitialBlogPosts()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed blog posts")
	}

	adminCfg, err := buildCFG.BuildAdminConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build admin config")
	}
	paymentCfg := buildCFG.BuildPaymentConfig(cfg)
	workflowCfg := buildCFG.BuildWorkflowConfig(cfg)
	smtpCfg := buildCFG.BuildSMTPConfig(cfg)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	drafts := workflow.NewManager(workflowCfg.DraftTTL, &log)
	go drafts.Run(workerCtx)

	publisher := notify.Publisher(notify.Nop{})
	var worker *notify.Worker
	rabbitCfg := buildCFG.BuildRabbitConfig(cfg, &log)
	if rabbitCfg.Url != "" {
		rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
		if err != nil {
			log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()

		publisher = notify.NewQueuePublisher(rmq)
		mail := mailer.New(smtpCfg.Addr, smtpCfg.From, smtpCfg.Password, &log)
		worker = notify.NewWorker(rmq, mail)
		worker.Start(workerCtx)
	}

	serviceInstance := service.NewService(repository, &log, drafts, publisher, service.Config{
		Payment: payment.Details{
			AmountCents: paymentCfg.AmountCents,
			Recipient:   paymentCfg.Recipient,
			Account:     paymentCfg.Account,
		},
		AdminPasswordHash: adminCfg.PasswordHash,
		ContactInbox:      adminCfg.ContactInbox,
	})
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := app.Run(":" + serverCfg.Port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	if worker != nil {
		worker.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}

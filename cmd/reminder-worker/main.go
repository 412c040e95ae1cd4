package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the reminder worker")
		os.Exit(1)
	}

	ctx, cancel := cli.ShutdownContext(logger)
	defer cancel()

	var deliverer worker.Deliverer = worker.NewLogDeliverer(logger)
	if cfg.TelegramBotToken != "" {
		tg, err := worker.NewTelegramDeliverer(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Error("Failed to initialize Telegram bot", log.FieldError, err)
			os.Exit(1)
		}
		deliverer = tg
		logger.Info("Delivering reminders to Telegram", "chat_id", cfg.TelegramChatID)
	} else {
		logger.Info("Telegram not configured, reminders will only be logged")
	}

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	dispatcher := worker.NewDispatcher(deliverer, logger)
	defer dispatcher.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting reminder worker", "queue", cfg.AMQPQueue)
		err := client.ConsumeNotifications(gctx, dispatcher.Handle)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Reminder worker stopped", "pending", len(dispatcher.Pending()))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/slack-taskbot/internal/command"
	"github.com/phrazzld/slack-taskbot/internal/config"
	"github.com/phrazzld/slack-taskbot/internal/domain"
	"github.com/phrazzld/slack-taskbot/internal/events"
	"github.com/phrazzld/slack-taskbot/internal/platform/memory"
	"github.com/phrazzld/slack-taskbot/internal/platform/slack"
	"github.com/phrazzld/slack-taskbot/internal/scheduler"
	"github.com/phrazzld/slack-taskbot/internal/service"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	location *time.Location

	// The single task store shared by the interpreter and the subscribers.
	tasks *memory.TaskStore

	bus         *events.InMemoryBus
	scheduler   *scheduler.Scheduler
	messenger   service.Messenger
	interpreter *command.Interpreter
}

// newApplication wires the store, bus, scheduler, messenger and
// subscribers. Nothing runs until start.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := cfg.Server.Location()
	if err != nil {
		return nil, err
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		location:  loc,
		tasks:     memory.NewTaskStore(logger),
		bus:       events.NewInMemoryBus(cfg.Events.QueueSize, logger),
		scheduler: scheduler.New(logger),
	}
	app.messenger = slack.NewMessenger(cfg.Slack, logger)
	app.interpreter = command.NewInterpreter(app.tasks, logger, command.WithLocation(loc))

	storage := service.NewTaskStorageHandler(app.tasks, logger)
	for _, topic := range storage.Topics() {
		app.bus.Subscribe(topic, storage)
	}
	app.bus.Subscribe(domain.TopicTaskReminder, service.NewReminderHandler(
		app.scheduler, app.messenger, logger, service.WithReminderLocation(loc)))

	for _, topic := range []string{domain.TopicTaskCreated, domain.TopicTaskCompleted, domain.TopicTaskReminder} {
		logger.Debug("subscriptions registered", "topic", topic, "handlers", app.bus.HandlerCount(topic))
	}

	if cfg.Slack.VerificationToken == "" {
		logger.Warn("verification token is not configured; every command request will be rejected")
	}
	if cfg.Slack.BotToken == "" {
		logger.Warn("bot token is not configured; reminders will fail to deliver")
	}

	return app, nil
}

// start launches background processing.
func (app *application) start() {
	app.scheduler.Start()
}

// cleanup drains the bus and then stops the scheduler, which cancels
// in-flight deliveries and drops reminders that have not fired.
func (app *application) cleanup(ctx context.Context) error {
	var errs []error
	if err := app.bus.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("event bus close: %w", err))
	}
	app.scheduler.Stop()
	return errors.Join(errs...)
}

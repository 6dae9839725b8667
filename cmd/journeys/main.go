package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"journeys/internal/config"
	"journeys/internal/notify"
	"journeys/internal/repository"
	"journeys/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	journeyRepo := repository.NewJourneyRepository(db)
	historyRepo := repository.NewGoalHistoryRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logrus.WithError(err).Warn("telegram notifier unavailable, notifications disabled")
		} else {
			notifier = tg
		}
	}

	resetSvc := service.NewResetService(journeyRepo, historyRepo, notifier)
	syncSvc := service.NewSyncService(journeyRepo, prefsRepo, cfg.FlushDebounce)

	scheduler := service.NewSchedulerService(time.Local)
	scheduler.RegisterResetJobs(resetSvc)
	scheduler.Start()
	defer scheduler.Stop()

	go syncSvc.Run(ctx)

	logrus.Info("journeys started")
	<-ctx.Done()
	logrus.Info("shutdown complete")
}

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"obrabot/lib/bot"
	"obrabot/lib/clients"
	"obrabot/lib/config"
	"obrabot/lib/data"
	"obrabot/lib/reports"
	"obrabot/lib/scheduler"
	"obrabot/lib/storage"
	"obrabot/lib/ui"
	"obrabot/lib/util"
)

var (
	logger *logrus.Logger
	cfg    config.Config
	sqlDB  *sql.DB
)

func init() {
	var err error

	cfg, err = config.Load()
	if err != nil {
		logrus.WithField("error", err.Error()).Fatal("Invalid configuration")
	}

	logger = setupLogger(cfg)

	sqlDB, err = clients.NewPostgresClient(cfg)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error setting up PostgreSQL client")
	}

	logger.WithField("operation", "init").Info("Bot initialization completed successfully")
}

func setupLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	util.SetLogLevel(logger, cfg.LogLevel)
	logger.SetFormatter(&logrus.JSONFormatter{PrettyPrint: cfg.IsLocal})
	return logger
}

func main() {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.WithField("error", err.Error()).Fatal("Failed to connect to Telegram")
	}

	photos, err := storage.NewPhotoStore(cfg.PhotoDir, logger)
	if err != nil {
		logger.WithField("error", err.Error()).Fatal("Failed to prepare photo storage")
	}

	b := &bot.Bot{
		API:      api,
		Logger:   logger,
		Sessions: bot.NewStore(),
		Calendar: ui.NewCalendar(),
		Photos:   photos,
		Broadcast: &reports.Broadcaster{
			Bot:         api,
			GroupChatID: cfg.GroupChatID,
			Logger:      logger,
		},
		Users:       &data.UserDao{DB: sqlDB, Logger: logger},
		Ubicaciones: &data.UbicacionDao{DB: sqlDB, Logger: logger},
		Almacen:     &data.AlmacenDao{DB: sqlDB, Logger: logger},
		Avances:     &data.AvanceDao{DB: sqlDB, Logger: logger},
		Incidencias: &data.IncidenciaDao{DB: sqlDB, Logger: logger},
		Prevencion:  &data.PrevencionDao{DB: sqlDB, Logger: logger},
		Pedidos:     &data.PedidoDao{DB: sqlDB, Logger: logger},
		Solicitudes: &data.SolicitudDao{DB: sqlDB, Logger: logger},
		Ordenes:     &data.OrdenDao{DB: sqlDB, Logger: logger},
		Registros:   &data.RegistroDao{DB: sqlDB, Logger: logger},
		Trabajos:    &data.TrabajoDao{DB: sqlDB, Logger: logger},
		Averias:     &data.AveriaDao{DB: sqlDB, Logger: logger},
	}

	reminder := scheduler.NewReminder(b.Registros, b.Users, func(chatID int64, text string) {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := api.Send(msg); err != nil {
			logger.WithFields(logrus.Fields{
				"chat_id": chatID,
				"error":   err.Error(),
			}).Error("Failed to send reminder")
		}
	}, logger)
	if err := reminder.Start(); err != nil {
		logger.WithField("error", err.Error()).Fatal("Failed to start reminder scheduler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b.Run(ctx)

	reminder.Stop()
	if err := sqlDB.Close(); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to close database connection")
	}
}

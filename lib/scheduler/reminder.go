package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"obrabot/lib/constants"
	"obrabot/lib/data"
)

// reminderSpecs fire on workday mornings: half past from 08:30 to 10:30,
// with a last call at 11:00. Each run is skipped once the day's headcount
// is in, so at most the gap between entries goes unreminded.
var reminderSpecs = []string{
	"30 8-10 * * 1-5",
	"0 11 * * 1-5",
}

// Reminder nags the encargados until someone registers the daily
// headcount.
type Reminder struct {
	cron      *cron.Cron
	registros data.RegistroRepository
	users     data.UserRepository
	notify    func(chatID int64, text string)
	logger    *logrus.Logger
}

// NewReminder builds the scheduler; notify delivers one message to one
// user and must not block for long.
func NewReminder(registros data.RegistroRepository, users data.UserRepository,
	notify func(chatID int64, text string), logger *logrus.Logger) *Reminder {
	return &Reminder{
		cron:      cron.New(),
		registros: registros,
		users:     users,
		notify:    notify,
		logger:    logger,
	}
}

// Start registers the cron entries and launches the scheduler goroutine.
func (r *Reminder) Start() error {
	for _, spec := range reminderSpecs {
		if _, err := r.cron.AddFunc(spec, r.run); err != nil {
			return fmt.Errorf("failed to schedule reminder %q: %w", spec, err)
		}
	}
	r.cron.Start()
	r.logger.WithField("entries", len(reminderSpecs)).Info("Headcount reminder scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *Reminder) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reminder) run() {
	ctx := context.Background()

	registered, err := r.registros.ExistsForToday(ctx)
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to check today's headcount for reminder")
		return
	}
	if registered {
		r.logger.Debug("Headcount already registered today, reminder skipped")
		return
	}

	encargados, err := r.users.GetByRole(ctx, constants.RoleEncargado)
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to list encargados for reminder")
		return
	}
	for _, u := range encargados {
		r.notify(u.ID, "⏰ Recuerda registrar el personal de hoy desde el menú «Registrar Personal».")
	}
	r.logger.WithField("recipients", len(encargados)).Info("Headcount reminder sent")
}

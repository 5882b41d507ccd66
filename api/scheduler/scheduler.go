// Package scheduler runs the node's periodic background jobs: retrying
// failed best-effort syncs and mailing the nightly field digest.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// Scheduler handles periodic background jobs for the field node
type Scheduler struct {
	cron   *cron.Cron
	Store  *store.Store
	Config config.Config
}

// NewScheduler creates a new scheduler instance
func NewScheduler(st *store.Store, cfg config.Config) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		Store:  st,
		Config: cfg,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// low-connectivity zones leave records queued; retry often
	_, _ = s.cron.AddFunc("*/2 * * * *", s.flushPendingJob)
	_, _ = s.cron.AddFunc("50 23 * * *", s.dailyDigestJob)
	s.cron.Start()
	zap.S().Info("scheduler started")
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) flushPendingJob() {
	if s.Store.PendingCount() == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	flushed, remaining := s.Store.FlushPending(ctx)
	zap.S().Infow("background sync retry finished", "flushed", flushed, "remaining", remaining)
}

// dailyDigestJob mails supervisors a capture summary for the day. Skipped
// when no digest recipients are configured.
func (s *Scheduler) dailyDigestJob() {
	if s.Config.DigestTo == "" {
		return
	}

	points := s.Store.SurveyPoints()
	highPriority := 0
	voters := 0
	byOperator := map[string]int{}
	for _, p := range points {
		if p.Priority == models.PriorityHigh {
			highPriority++
		}
		voters += p.VoterCount
		byOperator[p.SurveyorName]++
	}

	var operators strings.Builder
	for name, count := range byOperator {
		fmt.Fprintf(&operators, "  - %s: %d capturas\n", name, count)
	}

	subject := fmt.Sprintf("Reporte de campo %s", time.Now().UTC().Format("2006-01-02"))
	plainText := fmt.Sprintf(
		"Capturas totales: %d\nVotantes registrados: %d\nAlertas rojas (prioridad ALTA): %d\nPendientes de sincronizar: %d\n\nPor operador:\n%s",
		len(points), voters, highPriority, s.Store.PendingCount(), operators.String(),
	)

	for _, to := range strings.Split(s.Config.DigestTo, ",") {
		to = strings.TrimSpace(to)
		if to == "" {
			continue
		}
		if err := s.sendEmail(to, subject, plainText); err != nil {
			zap.S().Errorw("failed to send field digest", "to", to, "error", err)
		}
	}
}

func (s *Scheduler) sendEmail(toAddr, subject, plainText string) error {
	from := mail.NewEmail("Campo API", s.Config.DigestFrom)
	to := mail.NewEmail("", toAddr)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

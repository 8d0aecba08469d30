package job

import (
	"context"
	"log/slog"

	"github.com/cambrewitt-ship-it/contentflow/internal/service"
)

// TrialExpiryJob downgrades self-managed trials whose period has ended. It
// runs on the in-process cron and can also be triggered by an external
// scheduler through the secured cron endpoint.
type TrialExpiryJob struct {
	s service.SubscriptionService
}

func NewTrialExpiryJob(s service.SubscriptionService) *TrialExpiryJob {
	return &TrialExpiryJob{
		s: s,
	}
}

func (j *TrialExpiryJob) ExpireTrials() {
	ctx := context.Background()

	expired, err := j.s.ExpireTrials(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if expired > 0 {
		slog.Info("expired trials downgraded", "count", expired)
	}
}

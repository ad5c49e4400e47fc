// File: internal/jobs/request_digest.go
package jobs

import (
	"context"
	"time"

	"blood_bank_backend/internal/bloodrequest"
	"blood_bank_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DigestSource supplies open request counts per urgency.
type DigestSource interface {
	OpenRequestDigest(ctx context.Context) (map[bloodrequest.Urgency]int64, error)
}

// DigestSink receives each digest. The metrics registry implements it.
type DigestSink interface {
	SetOpenRequests(urgency string, n int64)
}

// RequestDigestJob periodically logs how many blood requests are still open.
type RequestDigestJob struct {
	source        DigestSource
	sink          DigestSink
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewRequestDigestJob creates a new RequestDigestJob. sink may be nil.
func NewRequestDigestJob(
	source DigestSource,
	sink DigestSink,
	logger *zap.Logger,
	cfg *config.Config,
) *RequestDigestJob {
	cronLog := NewCronLogger(logger.Named("cron"))
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog), cron.Recover(cronLog)),
	)

	return &RequestDigestJob{
		source:        source,
		sink:          sink,
		logger:        logger.Named("RequestDigestJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *RequestDigestJob) SetupAndStart() error {
	jobSpec := j.cfg.RequestDigestSchedule
	if jobSpec == "" {
		j.logger.Warn("Request digest schedule not defined (REQUEST_DIGEST_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule request digest job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Request digest job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *RequestDigestJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := j.Run(ctx); err != nil {
		j.logger.Error("Request digest job run failed", zap.Error(err))
	}
}

// Run computes one digest, logs it and forwards it to the sink.
func (j *RequestDigestJob) Run(ctx context.Context) (map[bloodrequest.Urgency]int64, error) {
	digest, err := j.source.OpenRequestDigest(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	fields := make([]zap.Field, 0, len(bloodrequest.Urgencies)+1)
	for _, u := range bloodrequest.Urgencies {
		n := digest[u]
		total += n
		fields = append(fields, zap.Int64(string(u), n))
		if j.sink != nil {
			j.sink.SetOpenRequests(string(u), n)
		}
	}
	fields = append(fields, zap.Int64("total", total))

	if digest[bloodrequest.UrgencyEmergency] > 0 {
		j.logger.Warn("Open blood requests include emergencies", fields...)
	} else {
		j.logger.Info("Open blood requests", fields...)
	}
	return digest, nil
}

// Stop gracefully stops the cron scheduler.
func (j *RequestDigestJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping request digest job scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Request digest job scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Request digest job scheduler stop timed out.")
	}
}

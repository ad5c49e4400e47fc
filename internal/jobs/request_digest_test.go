package jobs

import (
	"context"
	"errors"
	"testing"

	"blood_bank_backend/internal/bloodrequest"
	"blood_bank_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSource struct {
	digest map[bloodrequest.Urgency]int64
	err    error
}

func (f fakeSource) OpenRequestDigest(context.Context) (map[bloodrequest.Urgency]int64, error) {
	return f.digest, f.err
}

type recordingSink map[string]int64

func (r recordingSink) SetOpenRequests(urgency string, n int64) { r[urgency] = n }

func TestRequestDigestJob_Run(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := recordingSink{}
	source := fakeSource{digest: map[bloodrequest.Urgency]int64{bloodrequest.UrgencyEmergency: 2, bloodrequest.UrgencyNormal: 5}}
	job := NewRequestDigestJob(source, sink, zap.New(core), &config.Config{})

	digest, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), digest[bloodrequest.UrgencyEmergency])
	assert.Equal(t, recordingSink{"Emergency": 2, "Urgent": 0, "Normal": 5}, sink)

	entries := logs.FilterMessage("Open blood requests include emergencies").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 7, entries[0].ContextMap()["total"])
}

func TestRequestDigestJob_RunError(t *testing.T) {
	job := NewRequestDigestJob(fakeSource{err: errors.New("db down")}, nil, zap.NewNop(), &config.Config{})
	_, err := job.Run(context.Background())
	assert.Error(t, err)
	assert.NotPanics(t, job.runJob)
}

func TestRequestDigestJob_Schedule(t *testing.T) {
	job := NewRequestDigestJob(fakeSource{}, nil, zap.NewNop(), &config.Config{})
	assert.NoError(t, job.SetupAndStart(), "empty schedule disables the job")
	job.Stop()

	job = NewRequestDigestJob(fakeSource{}, nil, zap.NewNop(), &config.Config{RequestDigestSchedule: "not a schedule"})
	assert.Error(t, job.SetupAndStart())

	job = NewRequestDigestJob(fakeSource{}, nil, zap.NewNop(), &config.Config{RequestDigestSchedule: "@every 1h"})
	require.NoError(t, job.SetupAndStart())
	job.Stop()
}

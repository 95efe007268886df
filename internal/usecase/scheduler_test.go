package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsScanner/internal/domain"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualDriver) Stop(context.Context) error {
	m.stopped = true
	return nil
}

func TestSchedulerRunsPipelineOnTick(t *testing.T) {
	t.Parallel()

	writer := &memoryWriter{}
	source := &staticSource{articles: sampleArticles()}
	p := newTestPipeline(t, PipelineDeps{Source: source, Recognizer: &cannedRecognizer{}, Writer: writer})

	driver := &manualDriver{}
	s := NewScheduler(driver, p, nil)
	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(runToday)
	assert.Equal(t, 1, writer.writes)

	source.err = &domain.FetchError{URL: "http://x", Status: 502}
	driver.job(runToday)
	assert.Equal(t, 1, writer.writes, "failed tick does not write")

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}

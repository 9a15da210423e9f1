package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/metrics"
	"github.com/stwalsh4118/leadrank/internal/models"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) ListByStatus(ctx context.Context, statuses []models.PropertyStatus, afterID int64, limit int) ([]models.Property, error) {
	args := m.Called(ctx, statuses, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) UpdatePriority(ctx context.Context, id int64, priority models.Priority) (bool, error) {
	args := m.Called(ctx, id, priority)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) EscalateUrgentLeads(ctx context.Context, maxDays int) (int64, error) {
	args := m.Called(ctx, maxDays)
	return args.Get(0).(int64), args.Error(1)
}

func property(id int64, status models.PropertyStatus, days int, stored models.Priority) models.Property {
	return models.Property{
		ID:               id,
		Status:           status,
		DaysUntilAuction: models.Ptr(days),
		Priority:         stored,
	}
}

func TestRunOnce_PagesAndUpdatesStalePriorities(t *testing.T) {
	// Arrange
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, logger.New("test"), time.Minute, 2)
	ctx := context.Background()

	firstPage := []models.Property{
		property(1, models.PropertyStatusAuction, 3, models.PriorityLow),         // now high
		property(2, models.PropertyStatusForeclosure, 60, models.PriorityMedium), // unchanged
	}
	secondPage := []models.Property{
		property(5, models.PropertyStatusWholesale, 90, models.PriorityHigh), // now low
	}

	repo.On("ListByStatus", ctx, models.DistressedStatuses, int64(0), 2).Return(firstPage, nil).Once()
	repo.On("ListByStatus", ctx, models.DistressedStatuses, int64(2), 2).Return(secondPage, nil).Once()
	repo.On("UpdatePriority", ctx, int64(1), models.PriorityHigh).Return(true, nil).Once()
	repo.On("UpdatePriority", ctx, int64(5), models.PriorityLow).Return(true, nil).Once()
	repo.On("EscalateUrgentLeads", ctx, UrgentLeadDays).Return(int64(3), nil).Once()

	// Act
	stats, err := w.RunOnce(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Scanned)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, int64(3), stats.Escalated)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdatePriority", ctx, int64(2), mock.Anything)
}

func TestRunOnce_FullLastPageFetchesOnceMore(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 1)
	ctx := context.Background()

	repo.On("ListByStatus", ctx, mock.Anything, int64(0), 1).
		Return([]models.Property{property(4, models.PropertyStatusForeclosure, 60, models.PriorityMedium)}, nil).Once()
	repo.On("ListByStatus", ctx, mock.Anything, int64(4), 1).Return([]models.Property{}, nil).Once()
	repo.On("EscalateUrgentLeads", ctx, UrgentLeadDays).Return(int64(0), nil).Once()

	stats, err := w.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scanned)
	assert.Zero(t, stats.Updated)
	repo.AssertExpectations(t)
}

func TestRunOnce_UnchangedRowNotCounted(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 10)
	ctx := context.Background()

	repo.On("ListByStatus", ctx, mock.Anything, int64(0), 10).
		Return([]models.Property{property(8, models.PropertyStatusAuction, 1, models.PriorityLow)}, nil)
	// A concurrent writer got there first.
	repo.On("UpdatePriority", ctx, int64(8), models.PriorityHigh).Return(false, nil)
	repo.On("EscalateUrgentLeads", ctx, UrgentLeadDays).Return(int64(0), nil)

	stats, err := w.RunOnce(ctx)

	require.NoError(t, err)
	assert.Zero(t, stats.Updated)
}

func TestRunOnce_ListError(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 10)
	ctx := context.Background()
	dbErr := errors.New("conn reset")

	repo.On("ListByStatus", ctx, mock.Anything, int64(0), 10).Return(nil, dbErr)

	_, err := w.RunOnce(ctx)

	assert.ErrorIs(t, err, dbErr)
	repo.AssertNotCalled(t, "EscalateUrgentLeads", mock.Anything, mock.Anything)
}

func TestRunOnce_UpdateErrorKeepsPartialStats(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 10)
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")

	repo.On("ListByStatus", ctx, mock.Anything, int64(0), 10).Return([]models.Property{
		property(1, models.PropertyStatusAuction, 2, models.PriorityLow),
		property(2, models.PropertyStatusAuction, 2, models.PriorityLow),
	}, nil)
	repo.On("UpdatePriority", ctx, int64(1), models.PriorityHigh).Return(true, nil)
	repo.On("UpdatePriority", ctx, int64(2), models.PriorityHigh).Return(false, dbErr)

	stats, err := w.RunOnce(ctx)

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 1, stats.Updated)
}

func TestRunOnce_CancelledContext(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.RunOnce(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// refreshRuns reads the refresh pass counter for one result label.
func refreshRuns(t *testing.T, result string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "leadrank_priority_refresh_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "result" && label.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestTick_CancelledPassIsNotCounted(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errorsBefore := refreshRuns(t, metrics.ResultError)
	okBefore := refreshRuns(t, metrics.ResultOK)

	w.tick(ctx)

	assert.Equal(t, errorsBefore, refreshRuns(t, metrics.ResultError))
	assert.Equal(t, okBefore, refreshRuns(t, metrics.ResultOK))
}

func TestTick_FailedPassCountedAsError(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Minute, 10)
	repo.On("ListByStatus", mock.Anything, mock.Anything, int64(0), 10).
		Return(nil, errors.New("connection refused")).Once()

	errorsBefore := refreshRuns(t, metrics.ResultError)

	w.tick(context.Background())

	assert.Equal(t, errorsBefore+1, refreshRuns(t, metrics.ResultError))
	repo.AssertExpectations(t)
}

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	repo := new(MockPropertyRepository)
	w := NewPriorityRefresher(repo, nil, time.Hour, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo.On("ListByStatus", mock.Anything, mock.Anything, int64(0), 10).Return([]models.Property{}, nil).Once()
	repo.On("EscalateUrgentLeads", mock.Anything, UrgentLeadDays).
		Run(func(mock.Arguments) { cancel() }).
		Return(int64(0), nil).Once()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
	repo.AssertExpectations(t)
}

func TestNewPriorityRefresher_Defaults(t *testing.T) {
	w := NewPriorityRefresher(new(MockPropertyRepository), nil, 0, -1)

	assert.Equal(t, DefaultInterval, w.interval)
	assert.Equal(t, DefaultBatchSize, w.batchSize)
	assert.NotNil(t, w.log)
}

package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestFinished(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/score", "200")
	before := testutil.ToFloat64(counter)
	inFlight := testutil.ToFloat64(httpInFlight)

	RequestStarted()
	assert.Equal(t, inFlight+1, testutil.ToFloat64(httpInFlight))
	RequestFinished(http.MethodPost, "/api/v1/score", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, inFlight, testutil.ToFloat64(httpInFlight))
}

func TestRecordVerdicts(t *testing.T) {
	accepted := testutil.ToFloat64(investorVerdicts.WithLabelValues("accepted"))
	rejected := testutil.ToFloat64(investorVerdicts.WithLabelValues("rejected"))

	RecordVerdicts(3, 2)

	assert.Equal(t, accepted+3, testutil.ToFloat64(investorVerdicts.WithLabelValues("accepted")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(investorVerdicts.WithLabelValues("rejected")))
}

func TestRecordOutreach(t *testing.T) {
	ok := testutil.ToFloat64(outreachPublished.WithLabelValues(ResultOK))
	failed := testutil.ToFloat64(outreachPublished.WithLabelValues(ResultError))

	RecordOutreach(nil)
	RecordOutreach(errors.New("channel closed"))
	RecordOutreach(nil)

	assert.Equal(t, ok+2, testutil.ToFloat64(outreachPublished.WithLabelValues(ResultOK)))
	assert.Equal(t, failed+1, testutil.ToFloat64(outreachPublished.WithLabelValues(ResultError)))
}

func TestRecordPriorityUpdateAndRefresh(t *testing.T) {
	high := testutil.ToFloat64(priorityUpdates.WithLabelValues("high"))
	runs := testutil.ToFloat64(refreshRuns.WithLabelValues(ResultOK))

	RecordPriorityUpdate("high")
	RecordRefresh(nil)

	assert.Equal(t, high+1, testutil.ToFloat64(priorityUpdates.WithLabelValues("high")))
	assert.Equal(t, runs+1, testutil.ToFloat64(refreshRuns.WithLabelValues(ResultOK)))
}

func TestRecordScoreAndPanic(t *testing.T) {
	panics := testutil.ToFloat64(panicsRecovered)

	RecordScore(86)
	RecordPanic()

	assert.Equal(t, panics+1, testutil.ToFloat64(panicsRecovered))
	assert.Equal(t, 1, testutil.CollectAndCount(leadScores))
}

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFFIS-RIT/statnl/pkg/nl"
)

var _ nl.Recorder = (*Recorder)(nil)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()
	r.SentencesWritten(3)
	r.SentencesWritten(2)
	r.TopicsWritten(4)
	r.EntitySkipped(nl.ReasonMissingDCID)
	r.EntitySkipped(nl.ReasonMissingDCID)
	r.EntitySkipped(nl.ReasonNoSentenceContent)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.sentences))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.topics))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.skipped.WithLabelValues(nl.ReasonMissingDCID)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.skipped.WithLabelValues(nl.ReasonNoSentenceContent)))
}

func TestObserveStage(t *testing.T) {
	r := NewRecorder()
	r.ObserveStage("sentences", 20*time.Millisecond, nil)
	r.ObserveStage("topics", time.Second, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("sentences", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("topics", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.stageDuration))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.SentencesWritten(7)
	r.MarkSuccess(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "statnl.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "statnl_sentences_written_total 7")
	assert.Contains(t, string(content), "statnl_last_success_timestamp_seconds ")
}

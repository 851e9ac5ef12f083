package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Actions(t *testing.T) {
	c, err := NewCollector("")
	require.NoError(t, err)

	c.RecordAction("draft", time.Millisecond, nil)
	c.RecordAction("draft", time.Millisecond, nil)
	c.RecordAction("draft", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.actionsTotal.WithLabelValues("draft", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actionsTotal.WithLabelValues("draft", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.actionDuration))
}

func TestCollector_GameLifecycle(t *testing.T) {
	c, err := NewCollector("test")
	require.NoError(t, err)

	c.RecordGameStarted()
	c.RecordGameStarted()
	c.RecordRoundStarted(2)
	c.RecordGameFinished(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.gamesStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.gamesFinished))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.gamesActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.roundsStarted.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.roundsStarted.WithLabelValues("2")))
}

func TestCollector_WriteText(t *testing.T) {
	c, err := NewCollector("iaww")
	require.NoError(t, err)
	c.RecordGameStarted()

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), "iaww_match_games_started_total 1")
	assert.Contains(t, buf.String(), "# TYPE iaww_match_games_active gauge")
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordAction("draft", 0, nil)
	r.RecordGameStarted()
	r.RecordRoundStarted(2)
	r.RecordGameFinished(4)
}

package prometheus

import (
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	"github.com/sirupsen/logrus"
)

func TestLogrusCollector(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(NewLogrusCollector())

	before := testutil.ToFloat64(counterVec.WithLabelValues("warning", "slasher"))
	globalBefore := testutil.ToFloat64(counterVec.WithLabelValues("info", defaultPrefix))

	logger.WithField("prefix", "slasher").Warn("warned")
	logger.WithField("prefix", "slasher").Warn("warned again")
	logger.Info("no prefix")
	logger.Debug("not counted")

	assert.Equal(t, before+2, testutil.ToFloat64(counterVec.WithLabelValues("warning", "slasher")))
	assert.Equal(t, globalBefore+1, testutil.ToFloat64(counterVec.WithLabelValues("info", defaultPrefix)))
}

func TestLogrusCollector_BadPrefix(t *testing.T) {
	hook := NewLogrusCollector()
	entry := logrus.NewEntry(logrus.New()).WithField("prefix", 42)
	entry.Level = logrus.InfoLevel
	require.ErrorContains(t, "prefix is not a string", hook.Fire(entry))
}

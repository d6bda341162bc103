package objgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/objgraph/objgraph"
	"github.com/objgraph/objgraph/config"
	"github.com/objgraph/objgraph/internal/testutil"
)

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := testutil.NewContainer(t, objgraph.WithLogger(zap.New(core)))

	c.BindParameterByName("name", testutil.ServiceID, "logged")
	_, err := c.Resolve(testutil.ServiceID)
	require.NoError(t, err)

	constructed := logs.FilterMessage("constructed instance")
	require.Equal(t, 2, constructed.Len(), "service and its logger")
	for _, entry := range constructed.All() {
		assert.Equal(t, c.ID(), entry.ContextMap()["container"])
	}

	assert.Equal(t, 1, logs.FilterMessage("redirected interface").Len())

	applied := logs.FilterMessage("applied parameter override").All()
	require.Len(t, applied, 1)
	assert.Equal(t, "name", applied[0].ContextMap()["parameter"])
	assert.Equal(t, true, applied[0].ContextMap()["by_name"])
}

func TestWithLogger_Failures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := testutil.NewContainer(t, objgraph.WithLogger(zap.New(core)))

	_, err := c.Resolve(testutil.NeedsMissingID)
	require.Error(t, err)

	failed := logs.FilterMessage("resolution failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, string(testutil.NeedsMissingID), failed[0].ContextMap()["id"])
	assert.Contains(t, failed[0].ContextMap()["error"], "no entry for")
}

func TestWithLogger_Nil(t *testing.T) {
	c := testutil.NewContainer(t, objgraph.WithLogger(nil))

	_, err := c.Resolve(testutil.ServiceID)
	assert.NoError(t, err)
}

func TestWithMaxDepth_ResetsBelowOne(t *testing.T) {
	c := testutil.NewContainer(t, objgraph.WithMaxDepth(0))

	_, err := c.Resolve(testutil.ApplicationID)
	assert.NoError(t, err)
}

func TestFromConfig(t *testing.T) {
	t.Run("applies settings", func(t *testing.T) {
		cfg := config.Default()
		cfg.Lifetime = "singleton"
		cfg.LogLevel = "error"
		cfg.LogFormat = "console"
		cfg.MaxDepth = 2

		opts, err := objgraph.FromConfig(cfg)
		require.NoError(t, err)

		c := objgraph.New(testutil.NewCatalog(t), opts...)
		c.BindInterface(testutil.LoggerID, testutil.ConsoleLoggerID)
		assert.Equal(t, objgraph.Singleton, c.Lifetime())

		_, err = c.Resolve(testutil.ApplicationID)
		assert.ErrorIs(t, err, objgraph.ErrMaxDepthExceeded)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := config.Default()
		cfg.LogLevel = "verbose"

		_, err := objgraph.FromConfig(cfg)
		assert.Error(t, err)
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg, err := config.Parse("OBJGRAPH_LIFETIME=singleton\nOBJGRAPH_LOG_LEVEL=warn\n")
	require.NoError(t, err)

	c, err := objgraph.NewFromConfig(testutil.NewCatalog(t), cfg, objgraph.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	c.BindInterface(testutil.LoggerID, testutil.ConsoleLoggerID)

	first := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
	second := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
	testutil.AssertSameInstance(t, first, second)

	_, err = objgraph.NewFromConfig(nil, config.Config{})
	assert.Error(t, err)
}

package objgraph_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objgraph/objgraph"
	"github.com/objgraph/objgraph/internal/testutil"
)

func TestResolve_EndToEnd(t *testing.T) {
	c := testutil.NewContainer(t)

	svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)

	assert.IsType(t, &testutil.ConsoleLogger{}, svc.Logger)
	assert.Equal(t, "default", svc.Name)
}

func TestResolve_ZeroArgumentConstructor(t *testing.T) {
	c := testutil.NewContainer(t)

	first := testutil.AssertResolvable[*testutil.ConsoleLogger](t, c, testutil.ConsoleLoggerID)
	second := testutil.AssertResolvable[*testutil.ConsoleLogger](t, c, testutil.ConsoleLoggerID)

	testutil.AssertDifferentInstances(t, first, second, "transient lifetime constructs anew")
	assert.False(t, c.Has(testutil.ConsoleLoggerID))
}

func TestResolve_TypeWithoutConstructor(t *testing.T) {
	c := testutil.NewContainer(t)

	clock := testutil.AssertResolvable[*testutil.Clock](t, c, testutil.ClockID)
	assert.True(t, clock.Now.IsZero())
}

func TestResolve_BoundValueShortCircuits(t *testing.T) {
	c := testutil.NewContainer(t)
	prebuilt := &testutil.Service{Name: "prebuilt"}
	c.Bind(testutil.ServiceID, prebuilt)

	for i := 0; i < 3; i++ {
		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		testutil.AssertSameInstance(t, prebuilt, svc)
	}
}

func TestResolve_BoundDependency(t *testing.T) {
	c := testutil.NewContainer(t)
	logger := testutil.NewConsoleLogger()
	c.Bind(testutil.ConsoleLoggerID, logger)

	svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
	worker := testutil.AssertResolvable[*testutil.Worker](t, c, testutil.WorkerID)

	testutil.AssertSameInstance(t, logger, svc.Logger)
	testutil.AssertSameInstance(t, logger, worker.Logger)
}

func TestResolve_InterfaceRedirection(t *testing.T) {
	t.Run("unscoped", func(t *testing.T) {
		c := testutil.NewContainer(t)

		logger := testutil.AssertResolvable[testutil.Logger](t, c, testutil.LoggerID)
		assert.IsType(t, &testutil.ConsoleLogger{}, logger)
	})

	t.Run("scoped to a declaring class", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindInterfaceFor(testutil.LoggerID, testutil.FileLoggerID, testutil.ServiceID)

		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		worker := testutil.AssertResolvable[*testutil.Worker](t, c, testutil.WorkerID)
		top := testutil.AssertResolvable[testutil.Logger](t, c, testutil.LoggerID)

		require.IsType(t, &testutil.FileLogger{}, svc.Logger)
		assert.Equal(t, "/var/log/app.log", svc.Logger.(*testutil.FileLogger).Path)
		assert.IsType(t, &testutil.ConsoleLogger{}, worker.Logger)
		assert.IsType(t, &testutil.ConsoleLogger{}, top)
	})

	t.Run("scoped without unscoped fallback", func(t *testing.T) {
		c := objgraph.New(testutil.NewCatalog(t))
		c.BindInterfaceFor(testutil.LoggerID, testutil.FileLoggerID, testutil.ServiceID)

		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		assert.IsType(t, &testutil.FileLogger{}, svc.Logger)

		_, err := c.Resolve(testutil.WorkerID)
		require.Error(t, err)
		assert.True(t, objgraph.IsNotFound(err))
	})

	t.Run("scoped mapping is not inherited by subclasses", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindInterfaceFor(testutil.LoggerID, testutil.FileLoggerID, testutil.ServiceID)

		audit := testutil.AssertResolvable[*testutil.AuditService](t, c, testutil.AuditServiceID)
		assert.IsType(t, &testutil.ConsoleLogger{}, audit.Logger)
	})

	t.Run("resolve for a declaring class", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindInterfaceFor(testutil.LoggerID, testutil.FileLoggerID, testutil.WorkerID)

		logger, err := c.ResolveFor(testutil.LoggerID, testutil.WorkerID)
		require.NoError(t, err)
		assert.IsType(t, &testutil.FileLogger{}, logger)
	})

	t.Run("redirected to an unknown identifier", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindInterface(testutil.MissingID, "example.com/nowhere.Impl")

		_, err := c.Resolve(testutil.MissingID)
		notFound := testutil.AssertErrorType[objgraph.NotFoundError](t, err)
		assert.Equal(t, objgraph.Identifier("example.com/nowhere.Impl"), notFound.ID)
		assert.Equal(t, testutil.MissingID, notFound.Requested)
		assert.Contains(t, err.Error(), "redirected from")
	})
}

func TestResolve_ParameterOverrides(t *testing.T) {
	t.Run("typed override", func(t *testing.T) {
		c := testutil.NewContainer(t)
		fileLogger := testutil.NewFileLogger("/tmp/service.log")
		c.BindParameterByType(testutil.LoggerID, testutil.ServiceID, fileLogger)

		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		worker := testutil.AssertResolvable[*testutil.Worker](t, c, testutil.WorkerID)

		testutil.AssertSameInstance(t, fileLogger, svc.Logger)
		assert.IsType(t, &testutil.ConsoleLogger{}, worker.Logger, "other declaring classes are unaffected")
	})

	t.Run("typed override of a concrete type", func(t *testing.T) {
		c := testutil.NewContainer(t)
		fixed := &testutil.Clock{Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		c.BindParameterByType(testutil.ClockID, testutil.ApplicationID, fixed)

		app := testutil.AssertResolvable[*testutil.Application](t, c, testutil.ApplicationID)
		testutil.AssertSameInstance(t, fixed, app.Clock)
	})

	t.Run("named override wins over typed", func(t *testing.T) {
		c := testutil.NewContainer(t)
		typed := testutil.NewConsoleLogger()
		named := testutil.NewConsoleLogger()
		c.BindParameterByType(testutil.LoggerID, testutil.ServiceID, typed)
		c.BindParameterByName("logger", testutil.ServiceID, named)

		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		testutil.AssertSameInstance(t, named, svc.Logger)
	})

	t.Run("named override of a scalar", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("name", testutil.ServiceID, "billing")

		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		assert.Equal(t, "billing", svc.Name)
	})

	t.Run("override registered on an ancestor", func(t *testing.T) {
		c := testutil.NewContainer(t)
		fileLogger := testutil.NewFileLogger("/tmp/audit.log")
		c.BindParameterByType(testutil.LoggerID, testutil.ServiceID, fileLogger)
		c.BindParameterByName("name", testutil.ServiceID, "inherited")

		audit := testutil.AssertResolvable[*testutil.AuditService](t, c, testutil.AuditServiceID)
		testutil.AssertSameInstance(t, fileLogger, audit.Logger)
		assert.Equal(t, "inherited", audit.Name)
		assert.Equal(t, 30, audit.Retention)
	})

	t.Run("own override wins over the ancestor's", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("name", testutil.ServiceID, "parent")
		c.BindParameterByName("name", testutil.AuditServiceID, "child")

		audit := testutil.AssertResolvable[*testutil.AuditService](t, c, testutil.AuditServiceID)
		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		assert.Equal(t, "child", audit.Name)
		assert.Equal(t, "parent", svc.Name)
	})

	t.Run("falsy override replaces the default", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("retention", testutil.AuditServiceID, 0)

		audit := testutil.AssertResolvable[*testutil.AuditService](t, c, testutil.AuditServiceID)
		assert.Equal(t, 0, audit.Retention)
	})

	t.Run("override payload is not resolved further", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("logger", testutil.ServiceID, nil)

		svc := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
		assert.Nil(t, svc.Logger)
	})

	t.Run("override of the wrong type", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("name", testutil.ServiceID, 42)

		_, err := c.Resolve(testutil.ServiceID)
		mismatch := testutil.AssertErrorType[objgraph.TypeMismatchError](t, err)
		assert.Equal(t, testutil.ServiceID, mismatch.ID)
		assert.Contains(t, mismatch.Context, "name")
	})
}

func TestResolve_DeclaringClass(t *testing.T) {
	t.Run("receives the requesting class", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindToDeclaringClass("owner", testutil.BaseRepositoryID)

		report := testutil.AssertResolvable[*testutil.ReportController](t, c, testutil.ReportControllerID)
		assert.Equal(t, string(testutil.ReportControllerID), report.Repo.Owner)
	})

	t.Run("through an inherited constructor", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindToDeclaringClass("owner", testutil.BaseRepositoryID)

		users := testutil.AssertResolvable[*testutil.UserController](t, c, testutil.UserControllerID)
		assert.Equal(t, string(testutil.UserControllerID), users.Repo.Owner)
		assert.IsType(t, &testutil.ConsoleLogger{}, users.Repo.Logger)
	})

	t.Run("no requesting class at the top level", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindToDeclaringClass("owner", testutil.BaseRepositoryID)

		repo := testutil.AssertResolvable[*testutil.BaseRepository](t, c, testutil.BaseRepositoryID)
		assert.Equal(t, "", repo.Owner)

		v, err := c.ResolveFor(testutil.BaseRepositoryID, "example.com/jobs.Nightly")
		require.NoError(t, err)
		assert.Equal(t, "example.com/jobs.Nightly", v.(*testutil.BaseRepository).Owner)
	})

	t.Run("flag wins over overrides", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindToDeclaringClass("owner", testutil.BaseRepositoryID)
		c.BindParameterByName("owner", testutil.BaseRepositoryID, "override")

		report := testutil.AssertResolvable[*testutil.ReportController](t, c, testutil.ReportControllerID)
		assert.Equal(t, string(testutil.ReportControllerID), report.Repo.Owner)

		repo := testutil.AssertResolvable[*testutil.BaseRepository](t, c, testutil.BaseRepositoryID)
		assert.Equal(t, "override", repo.Owner, "without a requesting class the override applies")
	})

	t.Run("inherited constructor uses the ancestor's overrides", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("owner", testutil.BaseRepositoryID, "shared")

		users := testutil.AssertResolvable[*testutil.UserRepository](t, c, testutil.UserRepositoryID)
		assert.Equal(t, "shared", users.Owner)
	})
}

func TestResolve_Defaults(t *testing.T) {
	c := testutil.NewContainer(t)

	audit := testutil.AssertResolvable[*testutil.AuditService](t, c, testutil.AuditServiceID)
	assert.Equal(t, 30, audit.Retention)
	assert.Equal(t, "", audit.Name, "untyped parameter without default is nil")
}

func TestResolve_Failures(t *testing.T) {
	t.Run("unknown identifier", func(t *testing.T) {
		c := testutil.NewContainer(t)
		testutil.AssertNotFound(t, c, "example.com/nowhere.Thing")
	})

	t.Run("unresolvable parameter", func(t *testing.T) {
		c := testutil.NewContainer(t)

		_, err := c.Resolve(testutil.NeedsMissingID)
		require.Error(t, err)
		assert.True(t, objgraph.IsUnresolvable(err))
		assert.True(t, objgraph.IsNotFound(err))

		resErr := testutil.AssertErrorType[objgraph.ResolutionError](t, err)
		assert.Equal(t, testutil.NeedsMissingID, resErr.ID)
		assert.Equal(t, "m", resErr.Parameter)

		notFound := testutil.AssertErrorType[objgraph.NotFoundError](t, err)
		assert.Equal(t, testutil.MissingID, notFound.ID)
	})

	t.Run("failure propagates through every level", func(t *testing.T) {
		c := objgraph.New(testutil.NewCatalog(t))

		_, err := c.Resolve(testutil.ApplicationID)
		require.Error(t, err)

		var outer objgraph.ResolutionError
		require.True(t, errors.As(err, &outer))
		assert.Equal(t, testutil.ApplicationID, outer.ID)
		assert.Equal(t, "service", outer.Parameter)

		var inner objgraph.ResolutionError
		require.True(t, errors.As(outer.Cause, &inner))
		assert.Equal(t, testutil.ServiceID, inner.ID)
		assert.Equal(t, "logger", inner.Parameter)

		notFound := testutil.AssertErrorType[objgraph.NotFoundError](t, err)
		assert.Equal(t, testutil.LoggerID, notFound.ID)
	})

	t.Run("constructor error", func(t *testing.T) {
		c := testutil.NewContainer(t)

		_, err := c.Resolve(testutil.FailingServiceID)
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrConstructor)
		invocation := testutil.AssertErrorType[objgraph.ConstructorInvocationError](t, err)
		assert.Equal(t, testutil.FailingServiceID, invocation.ID)
	})

	t.Run("constructor panic", func(t *testing.T) {
		c := testutil.NewContainer(t)

		_, err := c.Resolve(testutil.PanickingServiceID)
		panicErr := testutil.AssertErrorType[objgraph.ConstructorPanicError](t, err)
		assert.Contains(t, panicErr.Panic, "panicking service")
		assert.NotEmpty(t, panicErr.Stack)
	})
}

func TestResolve_CircularDependency(t *testing.T) {
	t.Run("mutual", func(t *testing.T) {
		c := testutil.NewContainer(t)

		_, err := c.Resolve(testutil.CycleAID)
		testutil.AssertCircularDependency(t, err)

		cycle := testutil.AssertErrorType[objgraph.CircularDependencyError](t, err)
		assert.Equal(t, string(testutil.CycleAID), cycle.Node)
		assert.Equal(t, []string{string(testutil.CycleAID), string(testutil.CycleBID)}, cycle.Path)
	})

	t.Run("self", func(t *testing.T) {
		c := testutil.NewContainer(t)

		_, err := c.Resolve(testutil.SelfRefID)
		testutil.AssertCircularDependency(t, err)
	})

	t.Run("broken by a binding", func(t *testing.T) {
		c := testutil.NewContainer(t)
		b := &testutil.CycleB{}
		c.Bind(testutil.CycleBID, b)

		a := testutil.AssertResolvable[*testutil.CycleA](t, c, testutil.CycleAID)
		testutil.AssertSameInstance(t, b, a.B)
	})

	t.Run("broken by an override", func(t *testing.T) {
		c := testutil.NewContainer(t)
		c.BindParameterByName("self", testutil.SelfRefID, nil)

		s := testutil.AssertResolvable[*testutil.SelfRef](t, c, testutil.SelfRefID)
		assert.Nil(t, s.Self)
	})

	t.Run("repeated dependency is not a cycle", func(t *testing.T) {
		c := testutil.NewContainer(t)

		app := testutil.AssertResolvable[*testutil.Application](t, c, testutil.ApplicationID)
		assert.NotNil(t, app.Service.Logger)
		assert.NotNil(t, app.Worker.Logger)
	})
}

func TestResolve_MaxDepth(t *testing.T) {
	c := testutil.NewContainer(t, objgraph.WithMaxDepth(2))

	_, err := c.Resolve(testutil.ApplicationID)
	require.Error(t, err)
	assert.ErrorIs(t, err, objgraph.ErrMaxDepthExceeded)

	_, err = c.Resolve(testutil.WorkerID)
	assert.NoError(t, err)
}

func TestResolve_SingletonLifetime(t *testing.T) {
	c := testutil.NewContainer(t, objgraph.WithLifetime(objgraph.Singleton))

	first := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
	second := testutil.AssertResolvable[*testutil.Service](t, c, testutil.ServiceID)
	testutil.AssertSameInstance(t, first, second)
	assert.True(t, c.Has(testutil.ServiceID))

	worker := testutil.AssertResolvable[*testutil.Worker](t, c, testutil.WorkerID)
	testutil.AssertSameInstance(t, first.Logger, worker.Logger, "dependencies are memoized under their concrete identifier")
	assert.True(t, c.Has(testutil.ConsoleLoggerID))
	assert.False(t, c.Has(testutil.LoggerID))
}

func TestResolve_ContainerAware(t *testing.T) {
	c := testutil.NewContainer(t)

	aware := testutil.AssertResolvable[*testutil.AwareService](t, c, testutil.AwareServiceID)
	assert.Same(t, c, aware.Container)
	assert.Equal(t, 1, aware.Calls)

	bound := &testutil.AwareService{}
	c.Bind(testutil.AwareServiceID, bound)
	got := testutil.AssertResolvable[*testutil.AwareService](t, c, testutil.AwareServiceID)
	testutil.AssertSameInstance(t, bound, got)
	assert.Nil(t, got.Container, "bound values are not injected")
}

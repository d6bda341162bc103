package testutil

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objgraph/objgraph"
)

// Identifiers of the fixture types.
var (
	LoggerID           = objgraph.TypeID[Logger]()
	ConsoleLoggerID    = objgraph.TypeID[*ConsoleLogger]()
	FileLoggerID       = objgraph.TypeID[*FileLogger]()
	ClockID            = objgraph.TypeID[*Clock]()
	ServiceID          = objgraph.TypeID[*Service]()
	AuditServiceID     = objgraph.TypeID[*AuditService]()
	WorkerID           = objgraph.TypeID[*Worker]()
	BaseRepositoryID   = objgraph.TypeID[*BaseRepository]()
	UserRepositoryID   = objgraph.TypeID[*UserRepository]()
	UserControllerID   = objgraph.TypeID[*UserController]()
	ReportControllerID = objgraph.TypeID[*ReportController]()
	ApplicationID      = objgraph.TypeID[*Application]()
	CycleAID           = objgraph.TypeID[*CycleA]()
	CycleBID           = objgraph.TypeID[*CycleB]()
	SelfRefID          = objgraph.TypeID[*SelfRef]()
	AwareServiceID     = objgraph.TypeID[*AwareService]()
	FailingServiceID   = objgraph.TypeID[*FailingService]()
	PanickingServiceID = objgraph.TypeID[*PanickingService]()
	MissingID          = objgraph.TypeID[Missing]()
	NeedsMissingID     = objgraph.TypeID[*NeedsMissing]()
)

// TypeFixture is one catalog registration.
type TypeFixture struct {
	ID          objgraph.Identifier
	Constructor any
	Options     []objgraph.TypeOption
}

// CommonFixtures registers every fixture type.
var CommonFixtures = []TypeFixture{
	{ID: ConsoleLoggerID, Constructor: NewConsoleLogger},
	{ID: FileLoggerID, Constructor: NewFileLogger, Options: []objgraph.TypeOption{
		objgraph.Params("path"),
		objgraph.Default("path", "/var/log/app.log"),
	}},
	{ID: ClockID, Constructor: reflect.TypeOf(&Clock{})},
	{ID: ServiceID, Constructor: NewService, Options: []objgraph.TypeOption{
		objgraph.Params("logger", "name"),
		objgraph.Default("name", "default"),
	}},
	{ID: AuditServiceID, Constructor: NewAuditService, Options: []objgraph.TypeOption{
		objgraph.Params("logger", "name", "retention"),
		objgraph.Default("retention", 30),
		objgraph.Extends(ServiceID),
	}},
	{ID: WorkerID, Constructor: NewWorker, Options: []objgraph.TypeOption{
		objgraph.Params("logger"),
	}},
	{ID: BaseRepositoryID, Constructor: NewBaseRepository, Options: []objgraph.TypeOption{
		objgraph.Params("logger", "owner"),
	}},
	{ID: UserRepositoryID, Constructor: NewUserRepository, Options: []objgraph.TypeOption{
		objgraph.Extends(BaseRepositoryID),
		objgraph.InheritConstructor(),
	}},
	{ID: UserControllerID, Constructor: NewUserController, Options: []objgraph.TypeOption{
		objgraph.Params("repo"),
	}},
	{ID: ReportControllerID, Constructor: NewReportController, Options: []objgraph.TypeOption{
		objgraph.Params("repo"),
	}},
	{ID: ApplicationID, Constructor: NewApplication, Options: []objgraph.TypeOption{
		objgraph.Params("service", "worker", "clock"),
	}},
	{ID: CycleAID, Constructor: NewCycleA, Options: []objgraph.TypeOption{objgraph.Params("b")}},
	{ID: CycleBID, Constructor: NewCycleB, Options: []objgraph.TypeOption{objgraph.Params("a")}},
	{ID: SelfRefID, Constructor: NewSelfRef, Options: []objgraph.TypeOption{objgraph.Params("self")}},
	{ID: AwareServiceID, Constructor: NewAwareService},
	{ID: FailingServiceID, Constructor: NewFailingService},
	{ID: PanickingServiceID, Constructor: NewPanickingService},
	{ID: NeedsMissingID, Constructor: NewNeedsMissing, Options: []objgraph.TypeOption{objgraph.Params("m")}},
}

// NewCatalog returns a catalog holding CommonFixtures.
func NewCatalog(t testing.TB) *objgraph.Catalog {
	t.Helper()
	cat := objgraph.NewCatalog()
	for _, f := range CommonFixtures {
		require.NoError(t, cat.Register(f.ID, f.Constructor, f.Options...), "register %s", f.ID)
	}
	return cat
}

// NewContainer returns a container over NewCatalog with Logger redirected to
// ConsoleLogger.
func NewContainer(t testing.TB, opts ...objgraph.Option) *objgraph.Container {
	t.Helper()
	c := objgraph.New(NewCatalog(t), opts...)
	c.BindInterface(LoggerID, ConsoleLoggerID)
	return c
}

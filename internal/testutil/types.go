package testutil

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/objgraph/objgraph"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// Logger is the interface most fixtures depend on.
type Logger interface {
	Log(msg string)
	Logs() []string
}

// ConsoleLogger implements Logger.
type ConsoleLogger struct {
	ID string

	mu   sync.Mutex
	logs []string
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{ID: uuid.NewString()}
}

func (l *ConsoleLogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *ConsoleLogger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.logs))
	copy(out, l.logs)
	return out
}

// FileLogger implements Logger and records the path it writes to.
type FileLogger struct {
	ConsoleLogger
	Path string
}

func NewFileLogger(path string) *FileLogger {
	return &FileLogger{ConsoleLogger: ConsoleLogger{ID: uuid.NewString()}, Path: path}
}

// Clock has no constructor; it is registered by type.
type Clock struct {
	Now time.Time
}

// Service is the canonical end-to-end fixture: an interface dependency and a
// scalar with a default.
type Service struct {
	ID     string
	Logger Logger
	Name   string
}

func NewService(logger Logger, name string) *Service {
	return &Service{ID: uuid.NewString(), Logger: logger, Name: name}
}

// AuditService extends Service with its own constructor.
type AuditService struct {
	Service
	Retention int
}

func NewAuditService(logger Logger, name string, retention int) *AuditService {
	return &AuditService{
		Service:   Service{ID: uuid.NewString(), Logger: logger, Name: name},
		Retention: retention,
	}
}

// Worker depends on Logger, to contrast scoped redirections with Service.
type Worker struct {
	Logger Logger
}

func NewWorker(logger Logger) *Worker {
	return &Worker{Logger: logger}
}

// BaseRepository learns which class requested it through its Owner
// parameter.
type BaseRepository struct {
	Logger Logger
	Owner  string
}

func NewBaseRepository(logger Logger, owner string) *BaseRepository {
	return &BaseRepository{Logger: logger, Owner: owner}
}

// UserRepository inherits BaseRepository's constructor.
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(logger Logger, owner string) *UserRepository {
	return &UserRepository{BaseRepository: BaseRepository{Logger: logger, Owner: owner}}
}

// UserController depends on UserRepository.
type UserController struct {
	Repo *UserRepository
}

func NewUserController(repo *UserRepository) *UserController {
	return &UserController{Repo: repo}
}

// ReportController depends on BaseRepository.
type ReportController struct {
	Repo *BaseRepository
}

func NewReportController(repo *BaseRepository) *ReportController {
	return &ReportController{Repo: repo}
}

// Application sits on top of the graph.
type Application struct {
	Service *Service
	Worker  *Worker
	Clock   *Clock
}

func NewApplication(service *Service, worker *Worker, clock *Clock) *Application {
	return &Application{Service: service, Worker: worker, Clock: clock}
}

// CycleA and CycleB depend on each other.
type CycleA struct{ B *CycleB }
type CycleB struct{ A *CycleA }

func NewCycleA(b *CycleB) *CycleA { return &CycleA{B: b} }
func NewCycleB(a *CycleA) *CycleB { return &CycleB{A: a} }

// SelfRef depends on itself.
type SelfRef struct{ Self *SelfRef }

func NewSelfRef(s *SelfRef) *SelfRef { return &SelfRef{Self: s} }

// AwareService records the container that built it.
type AwareService struct {
	Container *objgraph.Container
	Calls     int
}

func NewAwareService() *AwareService {
	return &AwareService{}
}

func (s *AwareService) SetContainer(c *objgraph.Container) {
	s.Container = c
	s.Calls++
}

// FailingService always fails to construct.
type FailingService struct{}

func NewFailingService() (*FailingService, error) {
	return nil, ErrConstructor
}

// PanickingService panics in its constructor.
type PanickingService struct{}

func NewPanickingService() *PanickingService {
	panic(fmt.Sprintf("panicking service %s", uuid.NewString()))
}

// NeedsMissing depends on an interface nothing implements.
type Missing interface{ Missing() }

type NeedsMissing struct{ M Missing }

func NewNeedsMissing(m Missing) *NeedsMissing { return &NeedsMissing{M: m} }

// Package userstub is an in-process stand-in for the external user service.
//
// It implements the public contract the harness depends on (user creation
// and lookup) so the facade, the assertions and the scenarios can be tested
// without a running service.
package userstub

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/usere2e/internal/pkg/clock"
	"github.com/shandysiswandi/usere2e/internal/pkg/hash"
	"github.com/shandysiswandi/usere2e/internal/pkg/instrument"
	"github.com/shandysiswandi/usere2e/internal/pkg/router"
	"github.com/shandysiswandi/usere2e/internal/pkg/uid"
	"github.com/shandysiswandi/usere2e/internal/pkg/validator"
	"github.com/shandysiswandi/usere2e/internal/userservice"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

// Config holds the stub dependencies. Zero values get working defaults.
type Config struct {
	Validator  validator.Validator
	Hash       hash.Hash
	IDs        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	MaskFields []string
}

type user struct {
	ID           int64
	Request      userservice.UserCreationRequest
	PasswordHash string
	CreatedAt    time.Time
}

// Server is the stub user service. It is safe for concurrent use.
type Server struct {
	router    *router.Router
	validator validator.Validator
	hash      hash.Hash
	ids       uid.NumberID
	clock     clock.Clocker
	tracer    trace.Tracer

	mu      sync.RWMutex
	byID    map[int64]*user
	byEmail map[string]int64
	byLogin map[string]int64

	created *atomic.Int64
	hits    *atomic.Int64
}

// New builds a Server with its routes registered.
func New(cfg Config) (*Server, error) {
	if cfg.Validator == nil {
		v, err := validator.NewV10Validator()
		if err != nil {
			return nil, err
		}
		cfg.Validator = v
	}
	if cfg.IDs == nil {
		ids, err := uid.NewSnowflake(1)
		if err != nil {
			return nil, err
		}
		cfg.IDs = ids
	}
	if cfg.Hash == nil {
		cfg.Hash = hash.NewBcrypt(0, "")
	}
	if cfg.UUID == nil {
		cfg.UUID = uid.NewUUID()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Instrument == nil {
		cfg.Instrument = instrument.NewNoop()
	}

	s := &Server{
		router: router.NewRouter(router.Config{
			UUID:       cfg.UUID,
			Instrument: cfg.Instrument,
			MaskFields: cfg.MaskFields,
		}),
		validator: cfg.Validator,
		hash:      cfg.Hash,
		ids:       cfg.IDs,
		clock:     cfg.Clock,
		tracer:    cfg.Instrument.Tracer("userstub"),
		byID:      make(map[int64]*user),
		byEmail:   make(map[string]int64),
		byLogin:   make(map[string]int64),
		created:   atomic.NewInt64(0),
		hits:      atomic.NewInt64(0),
	}

	s.router.GET("/", s.health)
	s.router.POST(userservice.UsersPath, s.createUser)
	s.router.GET(userservice.UsersPath+"/:id", s.getUser)
	s.router.DELETE(userservice.UsersPath+"/:id", s.deleteUser)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits.Inc()
	s.router.ServeHTTP(w, r)
}

// Hits returns the number of requests served so far.
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

// Created returns the number of users created so far.
func (s *Server) Created() int64 {
	return s.created.Load()
}

// VerifyPassword reports whether password matches the stored hash of the user
// with the given ID.
func (s *Server) VerifyPassword(id, password string) bool {
	u, ok := s.find(id)
	return ok && s.hash.Verify(u.PasswordHash, password)
}

func (s *Server) find(id string) (*user, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[n]
	return u, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

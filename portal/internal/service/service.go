package service

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anever/school-portal/pkg/clock"
	"github.com/anever/school-portal/portal/internal/repository"
)

// Policy holds the circulation constants. Days are calendar days in the
// clock's zone.
type Policy struct {
	HoldDays       int
	CheckoutDays   int
	RenewalDays    int
	MaxRenewals    int
	FineRatePerDay int
}

func DefaultPolicy() Policy {
	return Policy{
		HoldDays:       3,
		CheckoutDays:   14,
		RenewalDays:    7,
		MaxRenewals:    1,
		FineRatePerDay: 1,
	}
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	clock  clock.Clock
	policy Policy
	audit  Auditor
	newID  func() string
}

type Option func(s *Service)

// WithIDSource overrides id generation, so tests get reproducible ids and
// pass codes.
func WithIDSource(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.audit = a }
}

func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

func NewService(repo repository.Repository, clk clock.Clock, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:    log,
		repo:   repo,
		clock:  clk,
		policy: DefaultPolicy(),
		audit:  NopAuditor{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// passCode builds the human-typeable display token, e.g. PASS-EV1-4F2A.
func (s *Service) passCode(eventID string) string {
	raw := strings.ToUpper(strings.ReplaceAll(s.newID(), "-", ""))
	suffix := raw
	if len(suffix) > 4 {
		suffix = suffix[:4]
	}
	return "PASS-" + strings.ToUpper(eventID) + "-" + suffix
}

package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/repository"
)

// RSVP issues an event pass while active passes stay under the event's
// capacity. At most one active pass per holder and event.
func (s *Service) RSVP(ctx context.Context, holderID, eventID string) (model.EventPass, string, error) {
	var (
		pass  model.EventPass
		event model.Event
	)
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		var err error
		event, err = r.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		issued, err := r.CountActivePasses(ctx, eventID)
		if err != nil {
			return err
		}
		if issued >= event.Capacity {
			return errs.ErrNoSeatsLeft
		}
		if _, err = r.FindActivePass(ctx, holderID, eventID); err == nil {
			return errs.ErrPassAlreadyIssued
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		pass = model.EventPass{
			ID:       s.newID(),
			EventID:  eventID,
			HolderID: holderID,
			Code:     s.passCode(eventID),
			Status:   model.PassActive,
			IssuedAt: s.clock.Now(),
		}
		return r.CreatePass(ctx, pass)
	})
	if err != nil {
		return model.EventPass{}, "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "admission.pass_issued", HolderID: holderID, EntityID: pass.ID, At: s.clock.Now()})
	s.log.Debug("pass issued",
		zap.String("holder", holderID),
		zap.String("event", eventID),
		zap.String("code", pass.Code))
	return pass, fmt.Sprintf("Pass %s issued for %q", pass.Code, event.Title), nil
}

// CancelPass marks the pass CANCELLED. The record stays; active counts and
// listings exclude it immediately.
func (s *Service) CancelPass(ctx context.Context, holderID, passID string) (string, error) {
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		pass, err := r.GetPass(ctx, passID)
		if err != nil {
			return err
		}
		if pass.HolderID != holderID {
			return errors.Wrap(errs.ErrNotFound, "pass "+passID)
		}
		if pass.Status != model.PassActive {
			return errors.Wrap(errs.ErrInvalidState, "pass already cancelled")
		}
		pass.Status = model.PassCancelled
		return r.UpdatePass(ctx, pass)
	})
	if err != nil {
		return "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "admission.pass_cancelled", HolderID: holderID, EntityID: passID, At: s.clock.Now()})
	return "Pass cancelled", nil
}

// SeatsLeft is always computed fresh from the active-pass count, never
// cached, so cancellations free seats immediately.
func (s *Service) SeatsLeft(ctx context.Context, eventID string) (int, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	issued, err := s.repo.CountActivePasses(ctx, eventID)
	if err != nil {
		return 0, err
	}
	left := event.Capacity - issued
	if left < 0 {
		left = 0
	}
	return left, nil
}

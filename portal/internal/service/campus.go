package service

import (
	"context"
	"time"

	"github.com/anever/school-portal/portal/internal/model"
)

type SubmitRequestInput struct {
	Type     model.RequestType
	Reason   string
	FromDate time.Time
	ToDate   time.Time
}

// SubmitRequest records a leave or stop-change request. Requests start
// PENDING; nothing in this service ever approves them.
func (s *Service) SubmitRequest(ctx context.Context, holderID string, in SubmitRequestInput) (model.Request, error) {
	req := model.Request{
		ID:        s.newID(),
		HolderID:  holderID,
		Type:      in.Type,
		Reason:    in.Reason,
		FromDate:  in.FromDate,
		ToDate:    in.ToDate,
		Status:    model.RequestPending,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return model.Request{}, err
	}
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, holderID string) ([]model.Request, error) {
	return s.repo.ListRequests(ctx, holderID)
}

func (s *Service) LatestNotices(ctx context.Context, limit int) ([]model.Notice, error) {
	return s.repo.ListNotices(ctx, limit)
}

func (s *Service) GetNotice(ctx context.Context, id string) (model.Notice, error) {
	return s.repo.GetNotice(ctx, id)
}

// Attendance returns the records in [from, to] plus the percentage summary
// the calendar screen shows (present and late both count as attended).
func (s *Service) Attendance(ctx context.Context, holderID string, from, to time.Time) ([]model.Attendance, model.AttendanceSummary, error) {
	recs, err := s.repo.ListAttendanceBetween(ctx, holderID, from, to)
	if err != nil {
		return nil, model.AttendanceSummary{}, err
	}
	var sum model.AttendanceSummary
	for _, a := range recs {
		switch a.Status {
		case model.AttendancePresent:
			sum.Present++
		case model.AttendanceAbsent:
			sum.Absent++
		case model.AttendanceLate:
			sum.Late++
		}
	}
	sum.Total = len(recs)
	if sum.Total > 0 {
		sum.Percent = float64(sum.Present+sum.Late) / float64(sum.Total) * 100
	}
	return recs, sum, nil
}

// Route resolves the holder's bus route with ETAs offset from now.
func (s *Service) Route(ctx context.Context, holderID string) (model.RouteView, error) {
	route, err := s.repo.GetRoute(ctx, holderID)
	if err != nil {
		return model.RouteView{}, err
	}
	return s.routeView(route), nil
}

// ChangeStop updates the student's boarding stop and returns the refreshed
// route.
func (s *Service) ChangeStop(ctx context.Context, holderID, stopID string) (model.RouteView, error) {
	route, err := s.repo.UpdateStudentStop(ctx, holderID, stopID)
	if err != nil {
		return model.RouteView{}, err
	}
	return s.routeView(route), nil
}

func (s *Service) routeView(route model.Route) model.RouteView {
	now := s.clock.Now()
	view := model.RouteView{Route: route}
	for _, st := range route.Stops {
		eta := model.StopETA{Stop: st, ETA: now.Add(time.Duration(st.EtaOffsetMin) * time.Minute)}
		view.Arrival = append(view.Arrival, eta)
		if st.ID == route.StudentStopID {
			mine := eta
			view.MyStop = &mine
		}
	}
	return view
}

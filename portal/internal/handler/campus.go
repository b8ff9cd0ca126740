package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/service"
)

type submitRequestReq struct {
	Type     string `json:"type" validate:"required,oneof=LEAVE STOP_CHANGE"`
	Reason   string `json:"reason" validate:"required"`
	FromDate string `json:"fromDate" validate:"required"`
	ToDate   string `json:"toDate" validate:"required"`
}

func (h *Handler) SubmitRequest(c echo.Context) error {
	var req submitRequestReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	from, err := time.Parse(time.DateOnly, req.FromDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fromDate is invalid")
	}
	to, err := time.Parse(time.DateOnly, req.ToDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "toDate is invalid")
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "toDate is before fromDate")
	}

	out, err := h.svc.SubmitRequest(c.Request().Context(), holder(c), service.SubmitRequestInput{
		Type:     model.RequestType(req.Type),
		Reason:   req.Reason,
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) ListRequests(c echo.Context) error {
	reqs, err := h.svc.ListRequests(c.Request().Context(), holder(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *Handler) Notices(c echo.Context) error {
	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
		}
	}
	notices, err := h.svc.LatestNotices(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notices)
}

func (h *Handler) GetNotice(c echo.Context) error {
	notice, err := h.svc.GetNotice(c.Request().Context(), c.Param("noticeId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

func (h *Handler) Attendance(c echo.Context) error {
	from, err := time.Parse(time.DateOnly, c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from is invalid")
	}
	to, err := time.Parse(time.DateOnly, c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to is invalid")
	}
	recs, summary, err := h.svc.Attendance(c.Request().Context(), holder(c), from, to)
	if err != nil {
		return httpError(err)
	}
	type resp struct {
		Records []model.Attendance      `json:"records"`
		Summary model.AttendanceSummary `json:"summary"`
	}
	return c.JSON(http.StatusOK, resp{Records: recs, Summary: summary})
}

func (h *Handler) Route(c echo.Context) error {
	view, err := h.svc.Route(c.Request().Context(), holder(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

type changeStopReq struct {
	StopID string `json:"stopId" validate:"required"`
}

func (h *Handler) ChangeStop(c echo.Context) error {
	var req changeStopReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	view, err := h.svc.ChangeStop(c.Request().Context(), holder(c), req.StopID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/anever/school-portal/pkg/auth"
	md "github.com/anever/school-portal/pkg/middleware"
	"github.com/anever/school-portal/pkg/validate"
	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
)

type RouterConfig struct {
	// DefaultHolder identifies the single-tenant student used when no
	// identity header or token is supplied.
	DefaultHolder string
	// UseJWT switches identity resolution from plain headers to bearer
	// tokens.
	UseJWT bool
}

type Handler struct {
	svc PortalService
	log *zap.Logger
}

func New(svc PortalService, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log,
	}
}

func (h *Handler) NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()

	identity := md.AuthContext(cfg.DefaultHolder)
	if cfg.UseJWT {
		identity = md.JwtAuthentication
	}
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		identity,
	)

	api.GET("/books", h.BrowseBooks)
	api.GET("/books/:bookId", h.GetBook)
	api.POST("/books/:bookId/reserve", h.ReserveBook)
	api.GET("/loans", h.MyLoans)
	api.DELETE("/loans/:loanId/reservation", h.CancelReservation)
	api.POST("/loans/:loanId/renew", h.RenewLoan)
	api.POST("/loans/:loanId/fulfill", h.FulfillReservation)
	api.POST("/loans/:loanId/return", h.ReturnLoan)

	api.GET("/events", h.BrowseEvents)
	api.GET("/events/:eventId", h.GetEvent)
	api.POST("/events/:eventId/rsvp", h.RSVP)
	api.GET("/passes", h.MyPasses)
	api.DELETE("/passes/:passId", h.CancelPass)

	api.POST("/requests", h.SubmitRequest)
	api.GET("/requests", h.ListRequests)
	api.GET("/notices", h.Notices)
	api.GET("/notices/:noticeId", h.GetNotice)
	api.GET("/attendance", h.Attendance)
	api.GET("/transport/route", h.Route)
	api.PUT("/transport/stop", h.ChangeStop)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func holder(c echo.Context) string {
	id, _ := auth.HolderFromContext(c.Request().Context())
	return id
}

func requireStaff(c echo.Context) error {
	role, _ := auth.RoleFromContext(c.Request().Context())
	if role != auth.RoleStaff {
		return echo.NewHTTPError(http.StatusForbidden, "staff role required")
	}
	return nil
}

// httpError maps the error taxonomy onto status codes. Unknown errors stay
// 500.
func httpError(err error) *echo.HTTPError {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errs.KindConflict, errs.KindCapacityExceeded:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errs.KindInvalidState:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

type loanResponse struct {
	Message string     `json:"message"`
	Loan    model.Loan `json:"loan"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type passResponse struct {
	Message string          `json:"message"`
	Pass    model.EventPass `json:"pass"`
}

/* ---------------- circulation ---------------- */

func (h *Handler) BrowseBooks(c echo.Context) error {
	rows, err := h.svc.BrowseBooks(c.Request().Context(), holder(c), c.QueryParam("query"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.svc.GetBook(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ReserveBook(c echo.Context) error {
	loan, msg, err := h.svc.ReserveBook(c.Request().Context(), holder(c), c.Param("bookId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loanResponse{Message: msg, Loan: loan})
}

func (h *Handler) MyLoans(c echo.Context) error {
	rows, err := h.svc.MyLoans(c.Request().Context(), holder(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	msg, err := h.svc.CancelReservation(c.Request().Context(), holder(c), c.Param("loanId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *Handler) RenewLoan(c echo.Context) error {
	loan, msg, err := h.svc.RenewLoan(c.Request().Context(), holder(c), c.Param("loanId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loanResponse{Message: msg, Loan: loan})
}

func (h *Handler) FulfillReservation(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	loan, msg, err := h.svc.FulfillReservation(c.Request().Context(), c.Param("loanId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loanResponse{Message: msg, Loan: loan})
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	if err := requireStaff(c); err != nil {
		return err
	}
	loan, msg, err := h.svc.ReturnLoan(c.Request().Context(), c.Param("loanId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loanResponse{Message: msg, Loan: loan})
}

/* ---------------- admission ---------------- */

func (h *Handler) BrowseEvents(c echo.Context) error {
	rows, err := h.svc.BrowseEvents(c.Request().Context(), holder(c), c.QueryParam("category"), c.QueryParam("query"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetEvent(c echo.Context) error {
	event, err := h.svc.GetEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *Handler) RSVP(c echo.Context) error {
	pass, msg, err := h.svc.RSVP(c.Request().Context(), holder(c), c.Param("eventId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, passResponse{Message: msg, Pass: pass})
}

func (h *Handler) MyPasses(c echo.Context) error {
	rows, err := h.svc.MyPasses(c.Request().Context(), holder(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) CancelPass(c echo.Context) error {
	msg, err := h.svc.CancelPass(c.Request().Context(), holder(c), c.Param("passId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

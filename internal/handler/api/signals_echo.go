package api

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"CoinSignals/internal/domain/models"
	"CoinSignals/internal/usecase"
	"CoinSignals/internal/view"
	xhttp "CoinSignals/pkg/http"
	xlogger "CoinSignals/pkg/logger"
)

// SignalsEchoHandler serves markets, signals, histories, charts and the dashboard.
type SignalsEchoHandler struct {
	logger    *xlogger.Logger
	markets   *usecase.MarketsUseCase
	signals   *usecase.SignalsUseCase
	history   *usecase.HistoryUseCase
	dashboard *usecase.DashboardUseCase
	surface   *view.Surface
}

func NewSignalsEchoHandler(
	logger *xlogger.Logger,
	markets *usecase.MarketsUseCase,
	signals *usecase.SignalsUseCase,
	history *usecase.HistoryUseCase,
	dashboard *usecase.DashboardUseCase,
	surface *view.Surface,
) *SignalsEchoHandler {
	return &SignalsEchoHandler{
		logger:    logger,
		markets:   markets,
		signals:   signals,
		history:   history,
		dashboard: dashboard,
		surface:   surface,
	}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/markets", h.Markets)
	g.GET("/signals", h.Signals)
	g.GET("/history/:id", h.History)
	g.GET("/charts/:id", h.Chart)
	g.GET("/dashboard", h.Dashboard)
}

func (h *SignalsEchoHandler) Markets(c echo.Context) error {
	req := &models.MarketsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := h.markets.TopMarkets(c.Request().Context(), req.Limit)
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=30")
	return xhttp.SuccessResponse(c, view.Markets(res))
}

func (h *SignalsEchoHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	batch := h.signals.GetSignals(c.Request().Context())
	if len(batch.Signals) > req.Limit {
		batch.Signals = batch.Signals[:req.Limit]
	}
	return xhttp.SuccessResponse(c, view.Signals(batch))
}

// History returns prices, volumes and indicators for one coin. A provider
// failure answers 200 with empty series and the reason under errors.
func (h *SignalsEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.history.FullHistory(c.Request().Context(), req.ID, req.Days)
	dto := view.History(res)
	if err != nil {
		h.logger.Warn("history degraded", xlogger.String("id", req.ID), xlogger.Error(err))
		dto.Degraded = true
		dto.Errors = map[string]string{"history": degradedReason(err)}
	}
	return xhttp.SuccessResponse(c, dto)
}

// Chart renders a price or indicator chart. A handle from a previous response
// may be passed back so the client knows which chart the new one replaces.
// Provider failures render an empty chart marked degraded.
func (h *SignalsEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	prev, err := view.ParseHandle(req.Handle)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("invalid chart handle").WithError(err))
	}

	ctx := c.Request().Context()
	var cfg view.ChartConfig
	switch req.Kind {
	case "indicators":
		var full models.FullHistory
		full, err = h.history.FullHistory(ctx, req.ID, req.Days)
		cfg = view.IndicatorChart(strings.ToUpper(req.ID), full)
	default:
		var prices []float64
		prices, err = h.history.PriceSeries(ctx, req.ID, req.Days)
		cfg = view.PriceChart(req.ID, prices)
	}

	out := h.surface.Render(prev, cfg)
	if err != nil {
		h.logger.Warn("chart degraded", xlogger.String("id", req.ID), xlogger.String("kind", req.Kind), xlogger.Error(err))
		out.Degraded = true
		out.Errors = map[string]string{"chart": degradedReason(err)}
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *SignalsEchoHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := h.dashboard.Build(c.Request().Context(), req.Days)
	return xhttp.SuccessResponse(c, view.Dashboard(res))
}

// degradedReason is the client-facing text for a provider failure.
func degradedReason(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "coin not found"
	case errors.Is(err, models.ErrRateLimited):
		return "upstream rate limit reached"
	default:
		return "market data provider unavailable"
	}
}

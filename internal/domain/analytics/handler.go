package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chartsense/chartsense/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/analytics", auth.RequireRole(auth.RolePhysician, auth.RoleCoder))
	g.GET("/dashboard", h.Dashboard)
	g.GET("/weekly", h.Weekly)
	g.GET("/disease-groups", h.DiseaseGroups)
	g.GET("/top-missing-codes", h.TopMissingCodes)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

func serviceError(err error) error {
	if errors.Is(err, ErrOutOfRange) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Weekly(c echo.Context) error {
	weeks, err := intParam(c, "weeks", 4)
	if err != nil {
		return err
	}
	report, err := h.svc.Weekly(c.Request().Context(), weeks)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) DiseaseGroups(c echo.Context) error {
	stats, err := h.svc.DiseaseGroups(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) TopMissingCodes(c echo.Context) error {
	limit, err := intParam(c, "limit", 5)
	if err != nil {
		return err
	}
	codes, err := h.svc.TopMissingCodes(c.Request().Context(), limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, codes)
}

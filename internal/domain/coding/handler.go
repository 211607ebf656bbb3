package coding

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/internal/platform/auth"
	"github.com/chartsense/chartsense/internal/platform/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/code-suggestion", auth.RequireRole(auth.RolePhysician, auth.RoleCoder))
	g.POST("/:encounter_id", h.Suggest)
	g.GET("/:encounter_id", h.List)
	g.POST("/:encounter_id/accept", h.Accept)
	g.POST("/:encounter_id/reject", h.Reject)
}

func encounterError(err error) error {
	if errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "encounter not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) Suggest(c echo.Context) error {
	resp, err := h.svc.Suggest(c.Request().Context(), c.Param("encounter_id"))
	if err != nil {
		return encounterError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), c.Param("encounter_id"), c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Accept(c echo.Context) error {
	var req DecisionRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.Accept(c.Request().Context(), c.Param("encounter_id"), req.SuggestionIDs)
	if err != nil {
		return encounterError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reject(c echo.Context) error {
	var req DecisionRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.Reject(c.Request().Context(), c.Param("encounter_id"), req.SuggestionIDs)
	if err != nil {
		return encounterError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

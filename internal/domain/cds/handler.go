package cds

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

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
	clinical := api.Group("/cds", auth.RequireRole(auth.RolePhysician, auth.RoleCoder))
	clinical.POST("/pre-diagnosis", h.PreDiagnosis)
	clinical.POST("/order-suggestion", h.OrderSuggestion)
	clinical.POST("/admission-decision", h.AdmissionDecision)

	admin := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	admin.GET("/templates", h.ListTemplates)
	admin.GET("/templates/:template_id", h.GetTemplate)
}

func (h *Handler) PreDiagnosis(c echo.Context) error {
	var req PreDiagnosisRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.PreDiagnosis(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) OrderSuggestion(c echo.Context) error {
	var req OrderSuggestionRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.SuggestOrders(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) AdmissionDecision(c echo.Context) error {
	var req AdmissionDecisionRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.AdmissionDecision(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListTemplates(c echo.Context) error {
	items, err := h.svc.ListTemplates(c.Request().Context(), c.QueryParam("disease_group"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTemplate(c echo.Context) error {
	t, err := h.svc.GetTemplate(c.Request().Context(), c.Param("template_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "template not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

package chart

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
	clinical := api.Group("/chart-completeness", auth.RequireRole(auth.RolePhysician, auth.RoleCoder))
	clinical.GET("/:encounter_id", h.GetScore)
	clinical.GET("/:encounter_id/history", h.History)
	clinical.POST("/evaluate", h.Evaluate)

	admin := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	admin.GET("/rules", h.ListRules)
	admin.POST("/rules", h.CreateRule)
	admin.GET("/rules/:rule_id", h.GetRule)
	admin.PUT("/rules/:rule_id", h.UpdateRule)
	admin.DELETE("/rules/:rule_id", h.DeleteRule)
}

func scoreError(err error) error {
	if errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "encounter not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) GetScore(c echo.Context) error {
	score, err := h.svc.Score(c.Request().Context(), c.Param("encounter_id"))
	if err != nil {
		return scoreError(err)
	}
	return c.JSON(http.StatusOK, score)
}

func (h *Handler) Evaluate(c echo.Context) error {
	var req EvaluateRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	score, err := h.svc.Evaluate(c.Request().Context(), req.EncounterID, req.ForceRefresh)
	if err != nil {
		return scoreError(err)
	}
	return c.JSON(http.StatusOK, score)
}

func (h *Handler) History(c echo.Context) error {
	scores, err := h.svc.History(c.Request().Context(), c.Param("encounter_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scores)
}

func ruleError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "rule not found")
	case errors.Is(err, ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) ListRules(c echo.Context) error {
	rules, err := h.svc.ListRules(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *Handler) GetRule(c echo.Context) error {
	r, err := h.svc.GetRule(c.Request().Context(), c.Param("rule_id"))
	if err != nil {
		return ruleError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) CreateRule(c echo.Context) error {
	var req RuleCreateRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.svc.CreateRule(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return ruleError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) UpdateRule(c echo.Context) error {
	var req RuleUpdateRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.svc.UpdateRule(c.Request().Context(), c.Param("rule_id"), &req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ruleError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteRule(c echo.Context) error {
	if err := h.svc.DeleteRule(c.Request().Context(), c.Param("rule_id")); err != nil {
		return ruleError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"pairs-trading/internal/dto"
	"pairs-trading/internal/model"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func (h *HttpAPIHandler) SetupScreenings(base *echo.Group) {
	screeningGroup := base.Group("/screenings")
	{
		screeningGroup.POST("", h.runScreening)
		screeningGroup.GET("", h.listScreenings)
		screeningGroup.GET("/:id", h.getScreening)
	}
}

func (h *HttpAPIHandler) runScreening(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.ScreeningRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.ScreeningService.RunScreening(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) listScreenings(c echo.Context) error {
	ctx := c.Request().Context()

	param := model.GetScreeningRunsParam{
		Status: c.QueryParam("status"),
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		param.Limit = n
	}

	runs, err := h.service.ScreeningService.GetRuns(ctx, param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list screening runs"})
	}

	return c.JSON(http.StatusOK, runs)
}

func (h *HttpAPIHandler) getScreening(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid screening run id"})
	}

	run, err := h.service.ScreeningService.GetRun(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "screening run not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get screening run"})
	}

	return c.JSON(http.StatusOK, run)
}

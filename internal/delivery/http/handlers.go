package http

import (
	"bytes"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/prizedash/internal/render"
	"github.com/smartcity/prizedash/internal/service"
	"github.com/smartcity/prizedash/pkg/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
}

// NewHandler creates a new handler
func NewHandler(dashboardSvc *service.DashboardService) *Handler {
	return &Handler{dashboardSvc: dashboardSvc}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status, code := "ok", fiber.StatusOK
	if err := h.dashboardSvc.Health(c.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"service":   "prizedash",
		"version":   "1.0.0",
		"scenarios": len(h.dashboardSvc.Registry().Names()),
	})
}

// GetScenarios lists the registered scenarios and the default pair
func (h *Handler) GetScenarios(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dashboardSvc.GetScenarios(),
	})
}

// GetResults returns every result table of a scenario
func (h *Handler) GetResults(c *fiber.Ctx) error {
	rs, err := h.dashboardSvc.GetResults(c.Params("name"))
	if err != nil {
		return lookupError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rs,
	})
}

// GetTable returns one result table of a scenario
func (h *Handler) GetTable(c *fiber.Ctx) error {
	table, err := h.dashboardSvc.GetTable(c.Params("name"), c.Params("table"))
	if err != nil {
		return lookupError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    table,
	})
}

// GetChart renders one result table as a PNG
func (h *Handler) GetChart(c *fiber.Ctx) error {
	table, err := h.dashboardSvc.GetTable(c.Params("name"), c.Params("table"))
	if err != nil {
		return lookupError(err)
	}

	var buf bytes.Buffer
	if err := render.Table(table, &buf); err != nil {
		log.Printf("Chart render error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render chart")
	}

	c.Type("png")
	return c.Send(buf.Bytes())
}

// GetLayout returns the checklist options and visible charts of a tab
func (h *Handler) GetLayout(c *fiber.Ctx) error {
	tab, err := service.ParseTab(c.Query("tab", string(service.TabScores)))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dashboardSvc.GetLayout(tab, utils.SplitList(c.Query("checked"))),
	})
}

// Compare returns the visible tables of two scenarios side by side
func (h *Handler) Compare(c *fiber.Ctx) error {
	tab, err := service.ParseTab(c.Query("tab", string(service.TabScores)))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	defA, defB := h.dashboardSvc.Registry().Defaults()
	a, b := c.Query("a", defA), c.Query("b", defB)

	cmp, err := h.dashboardSvc.Compare(a, b, tab, utils.SplitList(c.Query("checked")))
	if err != nil {
		return lookupError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    cmp,
	})
}

func lookupError(err error) error {
	switch {
	case errors.Is(err, service.ErrScenarioNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Scenario not found")
	case errors.Is(err, service.ErrTableNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Result table not found")
	}
	log.Printf("Result lookup error: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to build results")
}

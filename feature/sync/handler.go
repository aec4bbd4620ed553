package sync

import (
	"project-sync/core/logger"
	"project-sync/core/server"
	"project-sync/core/utils"
	"project-sync/core/worker"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes. /sync/plan is registered before
// the project routes so it is never taken for a project id.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/plan", h.HandlePlan)
	group.Get("/:projectId/status", h.HandleStatus)
	group.Post("/:projectId", h.HandleSync)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error, fields ...zap.Field) error {
	status := server.StatusFor(err)
	l := logger.WithRayID(h.service.logger, c).With(fields...)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandlePlan reconciles two posted snapshots.
// @Summary Plan Snapshots
// @Description Computes the operations that make remoteData match localData. Nothing is written.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body worker.Request true "Snapshots to reconcile"
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 400 {object} map[string]string "Malformed snapshot"
// @Failure 503 {object} map[string]string "Execution host closed"
// @Router /sync/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	var req worker.Request
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "Invalid plan request", fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error()))
	}
	if req.LocalData == nil || req.RemoteData == nil {
		return h.fail(c, "Invalid plan request", fiber.NewError(fiber.StatusBadRequest, "localData and remoteData are required"))
	}

	plan, err := h.service.Plan(c.UserContext(), req.LocalData, req.RemoteData)
	if err != nil {
		return h.fail(c, "Planning failed", err, zap.String("project_id", req.LocalData.ProjectID()))
	}
	return c.JSON(plan)
}

// HandleStatus compares the cached snapshot with the remote store.
// @Summary Sync Status
// @Description Plans the cached snapshot of a project against the remote store and reports the summary. Nothing is written.
// @Tags sync
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} Status "Status"
// @Failure 404 {object} map[string]string "Project not cached"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{projectId}/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	status, err := h.service.Status(c.UserContext(), projectID)
	if err != nil {
		return h.fail(c, "Status check failed", err, zap.String("project_id", projectID))
	}
	return c.JSON(status)
}

// HandleSync applies the plan of a project to the remote store.
// @Summary Sync Project
// @Description Reconciles the cached snapshot of a project into the remote store, deletes first.
// @Tags sync
// @Produce json
// @Param projectId path string true "Project id"
// @Param dry_run query boolean false "Only compute the plan"
// @Success 200 {object} Result "Sync result"
// @Failure 404 {object} map[string]string "Project not cached"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{projectId} [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	dryRun := utils.ToBool(c.Query("dry_run"))

	l := logger.WithRayID(h.service.logger, c)
	l.Info("Sync requested", zap.String("project_id", projectID), zap.Bool("dry_run", dryRun))

	result, err := h.service.Sync(c.UserContext(), projectID, dryRun)
	if err != nil {
		if result != nil {
			return c.Status(server.StatusFor(err)).JSON(fiber.Map{
				"error":    err.Error(),
				"executed": result.Executed,
				"planned":  len(result.Plan.Operations),
			})
		}
		return h.fail(c, "Sync failed", err, zap.String("project_id", projectID))
	}
	return c.JSON(result)
}

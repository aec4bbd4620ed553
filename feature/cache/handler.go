package cache

import (
	"project-sync/core/logger"
	"project-sync/core/reconcile"
	"project-sync/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the local cache.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the cache routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/projects")
	group.Get("/", h.HandleList)
	group.Put("/:projectId/cache", h.HandlePut)
	group.Get("/:projectId/cache", h.HandleGet)
	group.Delete("/:projectId/cache", h.HandleDelete)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := server.StatusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.String("project_id", c.Params("projectId")), zap.Error(err))
	} else {
		l.Warn(msg, zap.String("project_id", c.Params("projectId")), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList lists cached projects.
// @Summary List Cached Projects
// @Description Returns the ids of every project with a cached snapshot.
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{} "Project ids"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	ids, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, "Listing cached projects failed", err)
	}
	return c.JSON(fiber.Map{"projects": ids})
}

// HandlePut stores a snapshot.
// @Summary Cache Snapshot
// @Description Validates and stores the local snapshot of a project, replacing any previous one.
// @Tags cache
// @Accept json
// @Produce json
// @Param projectId path string true "Project id"
// @Param snapshot body reconcile.Snapshot true "Snapshot"
// @Success 200 {object} map[string]interface{} "Stored"
// @Failure 400 {object} map[string]string "Malformed snapshot"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects/{projectId}/cache [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	projectID := c.Params("projectId")

	var snap reconcile.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return h.fail(c, "Invalid snapshot body", fiber.NewError(fiber.StatusBadRequest, "invalid snapshot body: "+err.Error()))
	}

	count, err := h.service.Put(c.Context(), projectID, &snap)
	if err != nil {
		return h.fail(c, "Caching snapshot failed", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Snapshot cached",
		zap.String("project_id", projectID),
		zap.Int("documents", count))

	return c.JSON(fiber.Map{"projectId": projectID, "documents": count})
}

// HandleGet reads a snapshot.
// @Summary Get Cached Snapshot
// @Description Returns the cached snapshot of a project with timestamps in unix milliseconds.
// @Tags cache
// @Produce json
// @Param projectId path string true "Project id"
// @Success 200 {object} reconcile.Snapshot "Snapshot"
// @Failure 404 {object} map[string]string "Not cached"
// @Router /projects/{projectId}/cache [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	snap, err := h.service.Get(c.Context(), c.Params("projectId"))
	if err != nil {
		return h.fail(c, "Reading cached snapshot failed", err)
	}
	return c.JSON(snap)
}

// HandleDelete drops a snapshot.
// @Summary Delete Cached Snapshot
// @Description Removes the cached snapshot of a project. Missing snapshots are not an error.
// @Tags cache
// @Param projectId path string true "Project id"
// @Success 204 "Deleted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects/{projectId}/cache [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("projectId")); err != nil {
		return h.fail(c, "Deleting cached snapshot failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

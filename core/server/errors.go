package server

import (
	"context"
	"errors"

	"project-sync/core/localcache"
	"project-sync/core/reconcile"
	"project-sync/core/remote"
	"project-sync/core/worker"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error to the HTTP status handlers answer with.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, reconcile.ErrMalformedSnapshot),
		errors.Is(err, reconcile.ErrIDCollision),
		errors.Is(err, reconcile.ErrUnclassifiable):
		return fiber.StatusBadRequest
	case errors.Is(err, localcache.ErrSnapshotNotFound),
		errors.Is(err, remote.ErrProjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, worker.ErrHostClosed):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the Fiber error handler for errors no handler answered.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var errInvalidActor = errors.New("invalid actor")

// actorFromLocals reads the authenticated user id and role stashed by the
// auth middleware.
func actorFromLocals(c *fiber.Ctx) (int64, string, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, "", errInvalidActor
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return 0, "", errInvalidActor
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, "", errInvalidActor
	}
	return userID, role, nil
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidActor
	}
	return id, nil
}

package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/adintl/catalog-api/internal/types"
	"github.com/adintl/catalog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// parseID extracts the numeric :id path parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, types.Validation("Invalid id", "validation.id")
	}
	return uint(id), nil
}

// parsePagination reads page/pageSize query parameters with the usual defaults
func parsePagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("pageSize", 10)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// formValue reads a multipart form field, trimmed
func formValue(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

// formUint parses an optional numeric multipart form field
func formUint(c *fiber.Ctx, key string) *uint {
	v := formValue(c, key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(parsed)
	return &u
}

// formInt parses a numeric multipart form field with a default
func formInt(c *fiber.Ctx, key string, def int) int {
	v := formValue(c, key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

// formBool parses a boolean multipart form field with a default
func formBool(c *fiber.Ctx, key string, def bool) bool {
	v := formValue(c, key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

// formTime parses an RFC3339 or date-only multipart form field
func formTime(c *fiber.Ctx, key string) *time.Time {
	v := formValue(c, key)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	return nil
}

// formUintList parses a repeated or comma-separated list of ids
func formUintList(form *multipart.Form, key string) []uint {
	if form == nil {
		return nil
	}
	var ids []uint
	for _, raw := range form.Value[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			parsed, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				continue
			}
			ids = append(ids, uint(parsed))
		}
	}
	return ids
}

// serviceError maps a service-layer error to the response envelope. Known
// CustomErrors keep their status and message; anything else is logged and
// answered with the generic fallback as a 500.
func serviceError(c *fiber.Ctx, err error, fallback, errorType string) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		if ce.Code == fiber.StatusNotFound {
			return utils.NotFoundResponse(c, ce.Message)
		}
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}

	log.Printf("%s: %v", fallback, err)
	return utils.ErrorResponse(c, fallback, fiber.StatusInternalServerError, errorType)
}

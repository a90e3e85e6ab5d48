package handlers

import (
	"github.com/adintl/catalog-api/internal/services"
	"github.com/adintl/catalog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CategoryHandler handles category routes
type CategoryHandler struct {
	DB *gorm.DB
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// GetCategories handles GET /api/category
// @Summary List categories
// @Description Get the paginated category listing with optional search and status filters
// @Tags Category
// @Produce json
// @Param search query string false "Match against name or description"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {array} handlers.CategoryDTO
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /category [get]
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	categories, totalCount, err := services.ListCategories(h.DB, c.Query("search"), c.Query("status"), page, pageSize)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving categories", "getCategories")
	}

	utils.PaginationHeaders(c, totalCount, page, pageSize)

	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, toCategoryDTO(&categories[i]))
	}
	return c.Status(fiber.StatusOK).JSON(dtos)
}

// GetCategory handles GET /api/category/:id
// @Summary Get a category
// @Tags Category
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} handlers.CategoryDTO
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /category/{id} [get]
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid category id", "getCategory")
	}

	category, err := services.GetCategory(h.DB, id)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving the category", "getCategory")
	}

	return c.Status(fiber.StatusOK).JSON(toCategoryDTO(category))
}

// CreateCategory handles POST /api/category
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body handlers.categoryRequest true "Category"
// @Success 201 {object} handlers.CategoryDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /category [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "createCategory")
	}

	category, err := services.CreateCategory(h.DB, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return serviceError(c, err, "An error occurred while creating the category", "createCategory")
	}

	return c.Status(fiber.StatusCreated).JSON(toCategoryDTO(category))
}

// UpdateCategory handles PUT /api/category/:id
// @Summary Update a category
// @Tags Category
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body handlers.categoryRequest true "Category"
// @Success 200 {object} handlers.CategoryDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /category/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid category id", "updateCategory")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateCategory")
	}

	category, err := services.UpdateCategory(h.DB, id, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return serviceError(c, err, "An error occurred while updating the category", "updateCategory")
	}

	return c.Status(fiber.StatusOK).JSON(toCategoryDTO(category))
}

// DeleteCategory handles DELETE /api/category/:id
// @Summary Delete a category
// @Description Delete a category; refused while the category still contains products
// @Tags Category
// @Param id path int true "Category ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /category/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid category id", "deleteCategory")
	}

	if err := services.DeleteCategory(h.DB, id); err != nil {
		return serviceError(c, err, "An error occurred while deleting the category", "deleteCategory")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateCategoryStatus handles PATCH /api/category/:id/status
// @Summary Change a category's status
// @Description Activate or deactivate a category; deactivation is refused while active products remain
// @Tags Category
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} handlers.CategoryDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /category/{id}/status [patch]
func (h *CategoryHandler) UpdateCategoryStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid category id", "updateCategoryStatus")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateCategoryStatus")
	}

	category, err := services.UpdateCategoryStatus(h.DB, id, req.Status)
	if err != nil {
		return serviceError(c, err, "An error occurred while updating category status", "updateCategoryStatus")
	}

	return c.Status(fiber.StatusOK).JSON(toCategoryDTO(category))
}

// GetCategoryStats handles GET /api/category/stats
// @Summary Category statistics
// @Tags Category
// @Produce json
// @Success 200 {object} services.CategoryStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /category/stats [get]
func (h *CategoryHandler) GetCategoryStats(c *fiber.Ctx) error {
	stats, err := services.GetCategoryStats(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving category statistics", "getCategoryStats")
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

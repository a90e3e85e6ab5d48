package handlers

import (
	"github.com/adintl/catalog-api/internal/services"
	"github.com/adintl/catalog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MetaDataHandler handles business-information routes
type MetaDataHandler struct {
	DB *gorm.DB
}

// GetCurrentMetaData handles GET /api/metadata/current
// @Summary Current business information
// @Description Get the most recently maintained business-information record for the storefront
// @Tags MetaData
// @Produce json
// @Success 200 {object} handlers.PublicMetaDataDTO
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /metadata/current [get]
func (h *MetaDataHandler) GetCurrentMetaData(c *fiber.Ctx) error {
	meta, err := services.CurrentMetaData(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving business information", "getCurrentMetaData")
	}

	return c.Status(fiber.StatusOK).JSON(toPublicMetaDataDTO(meta))
}

// GetPublicMetaData handles GET /api/metadata/public
// @Summary Public business-information projection
// @Description Get the current record in its storefront shape
// @Tags MetaData
// @Produce json
// @Success 200 {object} handlers.PublicMetaDataDTO
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /metadata/public [get]
func (h *MetaDataHandler) GetPublicMetaData(c *fiber.Ctx) error {
	meta, err := services.CurrentMetaData(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving business information", "getPublicMetaData")
	}

	return c.Status(fiber.StatusOK).JSON(toPublicMetaDataDTO(meta))
}

// GetMetaDataList handles GET /api/metadata
// @Summary List business-information records
// @Tags MetaData
// @Produce json
// @Success 200 {array} handlers.MetaDataDTO
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /metadata [get]
func (h *MetaDataHandler) GetMetaDataList(c *fiber.Ctx) error {
	records, err := services.ListMetaData(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving business information", "getMetaDataList")
	}

	dtos := make([]MetaDataDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toMetaDataDTO(&records[i]))
	}
	return c.Status(fiber.StatusOK).JSON(dtos)
}

// GetMetaData handles GET /api/metadata/:id
// @Summary Get a business-information record
// @Tags MetaData
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} handlers.MetaDataDTO
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /metadata/{id} [get]
func (h *MetaDataHandler) GetMetaData(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid metadata id", "getMetaData")
	}

	meta, err := services.GetMetaData(h.DB, id)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving business information", "getMetaData")
	}

	return c.Status(fiber.StatusOK).JSON(toMetaDataDTO(meta))
}

// CreateMetaData handles POST /api/metadata
// @Summary Create a business-information record
// @Tags MetaData
// @Accept json
// @Produce json
// @Param metadata body services.MetaDataInput true "Business information"
// @Success 201 {object} handlers.MetaDataDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /metadata [post]
func (h *MetaDataHandler) CreateMetaData(c *fiber.Ctx) error {
	var input services.MetaDataInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "createMetaData")
	}

	meta, err := services.CreateMetaData(h.DB, input)
	if err != nil {
		return serviceError(c, err, "An error occurred while creating business information", "createMetaData")
	}

	return c.Status(fiber.StatusCreated).JSON(toMetaDataDTO(meta))
}

// UpdateMetaData handles PUT /api/metadata/:id
// @Summary Update a business-information record
// @Description Apply a partial update; absent fields keep their stored values
// @Tags MetaData
// @Accept json
// @Param id path int true "Record ID"
// @Param metadata body services.MetaDataInput true "Business information"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /metadata/{id} [put]
func (h *MetaDataHandler) UpdateMetaData(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid metadata id", "updateMetaData")
	}

	var input services.MetaDataInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateMetaData")
	}

	if err := services.UpdateMetaData(h.DB, id, input); err != nil {
		return serviceError(c, err, "An error occurred while updating business information", "updateMetaData")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMetaData handles DELETE /api/metadata/:id
// @Summary Delete a business-information record
// @Tags MetaData
// @Param id path int true "Record ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /metadata/{id} [delete]
func (h *MetaDataHandler) DeleteMetaData(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid metadata id", "deleteMetaData")
	}

	if err := services.DeleteMetaData(h.DB, id); err != nil {
		return serviceError(c, err, "An error occurred while deleting business information", "deleteMetaData")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

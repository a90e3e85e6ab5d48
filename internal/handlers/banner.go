package handlers

import (
	"mime/multipart"
	"time"

	"github.com/adintl/catalog-api/internal/imaging"
	"github.com/adintl/catalog-api/internal/services"
	"github.com/adintl/catalog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BannerHandler handles promotional banner routes
type BannerHandler struct {
	DB     *gorm.DB
	Images imaging.Service
}

// GetPublicBanners handles GET /api/banner/public
// @Summary List displayable banners
// @Description Get the currently active, date-windowed banners for the storefront
// @Tags Banner
// @Produce json
// @Success 200 {array} handlers.PublicBannerDTO
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /banner/public [get]
func (h *BannerHandler) GetPublicBanners(c *fiber.Ctx) error {
	banners, err := services.PublicBanners(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving banners", "getPublicBanners")
	}

	dtos := make([]PublicBannerDTO, 0, len(banners))
	for i := range banners {
		dtos = append(dtos, toPublicBannerDTO(&banners[i]))
	}
	return c.Status(fiber.StatusOK).JSON(dtos)
}

// GetBanners handles GET /api/banner
// @Summary List banners
// @Description Get the paginated admin banner listing
// @Tags Banner
// @Produce json
// @Param status query string false "Filter by status"
// @Param linkType query string false "Filter by link type"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {array} handlers.BannerResponseDTO
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /banner [get]
func (h *BannerHandler) GetBanners(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	banners, totalCount, err := services.ListBanners(h.DB, c.Query("status"), c.Query("linkType"), page, pageSize)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving banners", "getBanners")
	}

	utils.PaginationHeaders(c, totalCount, page, pageSize)

	dtos := make([]BannerResponseDTO, 0, len(banners))
	for i := range banners {
		dtos = append(dtos, toBannerResponseDTO(&banners[i]))
	}
	return c.Status(fiber.StatusOK).JSON(dtos)
}

// GetBanner handles GET /api/banner/:id
// @Summary Get a banner
// @Tags Banner
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} handlers.BannerResponseDTO
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /banner/{id} [get]
func (h *BannerHandler) GetBanner(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid banner id", "getBanner")
	}

	banner, err := services.GetBanner(h.DB, id)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving the banner", "getBanner")
	}

	return c.Status(fiber.StatusOK).JSON(toBannerResponseDTO(banner))
}

// CreateBanner handles POST /api/banner (multipart)
// @Summary Create a banner
// @Description Validate the link target, upload the image and insert the banner transactionally
// @Tags Banner
// @Accept mpfd
// @Produce json
// @Success 201 {object} handlers.BannerResponseDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /banner [post]
func (h *BannerHandler) CreateBanner(c *fiber.Ctx) error {
	input, file := parseBannerForm(c)

	banner, err := services.CreateBanner(c.Context(), h.DB, h.Images, input, file)
	if err != nil {
		return serviceError(c, err, "An error occurred while creating the banner", "createBanner")
	}

	return c.Status(fiber.StatusCreated).JSON(toBannerResponseDTO(banner))
}

// UpdateBanner handles PUT /api/banner/:id (multipart)
// @Summary Update a banner
// @Tags Banner
// @Accept mpfd
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} handlers.BannerResponseDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /banner/{id} [put]
func (h *BannerHandler) UpdateBanner(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid banner id", "updateBanner")
	}

	input, file := parseBannerForm(c)

	banner, err := services.UpdateBanner(c.Context(), h.DB, h.Images, id, input, file)
	if err != nil {
		return serviceError(c, err, "An error occurred while updating the banner", "updateBanner")
	}

	return c.Status(fiber.StatusOK).JSON(toBannerResponseDTO(banner))
}

// DeleteBanner handles DELETE /api/banner/:id
// @Summary Delete a banner
// @Tags Banner
// @Param id path int true "Banner ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /banner/{id} [delete]
func (h *BannerHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid banner id", "deleteBanner")
	}

	if err := services.DeleteBanner(c.Context(), h.DB, h.Images, id); err != nil {
		return serviceError(c, err, "An error occurred while deleting the banner", "deleteBanner")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleBannerStatus handles PATCH /api/banner/:id/toggle-status
// @Summary Toggle a banner's active flag
// @Tags Banner
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /banner/{id}/toggle-status [patch]
func (h *BannerHandler) ToggleBannerStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid banner id", "toggleBannerStatus")
	}

	isActive, err := services.ToggleBannerStatus(h.DB, id)
	if err != nil {
		return serviceError(c, err, "An error occurred while toggling banner status", "toggleBannerStatus")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"isActive": isActive})
}

// parseBannerForm reads the multipart banner fields; the image file is nil
// when none was uploaded
func parseBannerForm(c *fiber.Ctx) (services.BannerInput, *multipart.FileHeader) {
	input := services.BannerInput{
		Title:        formValue(c, "title"),
		Subtitle:     formValue(c, "subtitle"),
		ButtonText:   formValue(c, "buttonText"),
		LinkType:     formValue(c, "linkType"),
		ProductID:    formUint(c, "productId"),
		CategoryID:   formUint(c, "categoryId"),
		ExternalUrl:  formValue(c, "externalUrl"),
		Status:       formValue(c, "status"),
		DisplayOrder: formInt(c, "displayOrder", 0),
		IsActive:     formBool(c, "isActive", true),
		EndDate:      formTime(c, "endDate"),
	}

	if start := formTime(c, "startDate"); start != nil {
		input.StartDate = *start
	} else {
		input.StartDate = time.Now().UTC()
	}

	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}
	return input, file
}

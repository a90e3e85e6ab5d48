package handlers

import (
	"mime/multipart"

	"github.com/adintl/catalog-api/internal/imaging"
	"github.com/adintl/catalog-api/internal/services"
	"github.com/adintl/catalog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProductHandler handles product routes
type ProductHandler struct {
	DB     *gorm.DB
	Images imaging.Service
}

// GetProducts handles GET /api/product
// @Summary List products
// @Description Get the paginated product listing with optional search, category and status filters
// @Tags Product
// @Produce json
// @Param search query string false "Match against product name, description or category name"
// @Param categoryId query int false "Filter by category"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {array} handlers.ProductListDTO
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /product [get]
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	var categoryID *uint
	if raw := c.QueryInt("categoryId", 0); raw > 0 {
		id := uint(raw)
		categoryID = &id
	}

	products, totalCount, err := services.ListProducts(h.DB, c.Query("search"), categoryID, c.Query("status"), page, pageSize)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving products", "getProducts")
	}

	utils.PaginationHeaders(c, totalCount, page, pageSize)

	dtos := make([]ProductListDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, toProductListDTO(&products[i]))
	}
	return c.Status(fiber.StatusOK).JSON(dtos)
}

// GetProduct handles GET /api/product/:id
// @Summary Get a product
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} handlers.ProductResponseDTO
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /product/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid product id", "getProduct")
	}

	product, err := services.GetProduct(h.DB, id)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving the product", "getProduct")
	}

	return c.Status(fiber.StatusOK).JSON(toProductResponseDTO(product))
}

// CreateProduct handles POST /api/product (multipart)
// @Summary Create a product
// @Description Insert a product and upload its images; individual image failures are skipped
// @Tags Product
// @Accept mpfd
// @Produce json
// @Success 201 {object} handlers.ProductResponseDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /product [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	input := parseProductForm(c)

	product, err := services.CreateProduct(c.Context(), h.DB, h.Images, input, formFiles(c, "images"))
	if err != nil {
		return serviceError(c, err, "An error occurred while creating the product", "createProduct")
	}

	return c.Status(fiber.StatusCreated).JSON(toProductResponseDTO(product))
}

// UpdateProduct handles PUT /api/product/:id (multipart)
// @Summary Update a product
// @Description Update product fields, remove the listed images and upload new ones within the per-product cap
// @Tags Product
// @Accept mpfd
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} handlers.ProductResponseDTO
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /product/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid product id", "updateProduct")
	}

	input := parseProductForm(c)

	var removeIds []uint
	if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
		removeIds = formUintList(form, "removeImageIds")
	}

	product, err := services.UpdateProduct(c.Context(), h.DB, h.Images, id, input, removeIds, formFiles(c, "newImages"))
	if err != nil {
		return serviceError(c, err, "An error occurred while updating the product", "updateProduct")
	}

	return c.Status(fiber.StatusOK).JSON(toProductResponseDTO(product))
}

// DeleteProduct handles DELETE /api/product/:id
// @Summary Delete a product
// @Description Delete a product and best-effort remove its hosted images
// @Tags Product
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /product/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "Invalid product id", "deleteProduct")
	}

	if err := services.DeleteProduct(c.Context(), h.DB, h.Images, id); err != nil {
		return serviceError(c, err, "An error occurred while deleting the product", "deleteProduct")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetActiveCategories handles GET /api/product/categories
// @Summary Active category references
// @Description Get the id and name of each active category, for product form dropdowns
// @Tags Product
// @Produce json
// @Success 200 {array} services.ActiveCategoryRef
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /product/categories [get]
func (h *ProductHandler) GetActiveCategories(c *fiber.Ctx) error {
	refs, err := services.ActiveCategories(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving categories", "getActiveCategories")
	}

	return c.Status(fiber.StatusOK).JSON(refs)
}

// GetProductStats handles GET /api/product/stats
// @Summary Product statistics
// @Tags Product
// @Produce json
// @Success 200 {object} services.ProductStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /product/stats [get]
func (h *ProductHandler) GetProductStats(c *fiber.Ctx) error {
	stats, err := services.GetProductStats(h.DB)
	if err != nil {
		return serviceError(c, err, "An error occurred while retrieving product statistics", "getProductStats")
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func parseProductForm(c *fiber.Ctx) services.ProductInput {
	var categoryID uint
	if id := formUint(c, "categoryId"); id != nil {
		categoryID = *id
	}
	return services.ProductInput{
		Name:           formValue(c, "name"),
		Description:    formValue(c, "description"),
		CategoryID:     categoryID,
		Specifications: formValue(c, "specifications"),
		Status:         formValue(c, "status"),
		Standards:      formValue(c, "standards"),
		IsHot:          formBool(c, "isHot", false),
	}
}

func formFiles(c *fiber.Ctx, key string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[key]
}

package handlers

import (
	"errors"
	"fmt"

	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes binds every product route to its rule set and handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", middleware.Validate(validation.ProductIDRules), h.HandleGetProductByID)
	productRoutes.Post("/", middleware.Validate(validation.CreateProductRules), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.Validate(validation.UpdateProductRules), h.HandleUpdateProduct)
	productRoutes.Patch("/:id", middleware.Validate(validation.ProductIDRules), h.HandleUpdateAvailability)
	productRoutes.Delete("/:id", middleware.Validate(validation.ProductIDRules), h.HandleDeleteProduct)
}

// HandleGetProducts godoc
// @Summary Get a list of products
// @Description Return every product, newest first
// @Tags Products
// @Produce json
// @Success 200 {object} ProductListResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	return c.JSON(ProductListResponse{Data: products})
}

// HandleGetProductByID godoc
// @Summary Get a product by ID
// @Description Return a product based on its unique ID
// @Tags Products
// @Produce json
// @Param id path int true "The ID of the product to retrieve"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} validation.ErrorResponse "Bad Request - Invalid ID"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /products/{id} [get]
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return notFound(c)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ProductResponse{Data: *product})
}

// HandleCreateProduct godoc
// @Summary Creates a new product
// @Description Stores a new, available product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product name and price"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} validation.ErrorResponse "Bad Request - invalid input data"
// @Router /products [post]
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in := middleware.ValidatedInput(c)
	price, err := in.Float("price")
	if err != nil {
		return fmt.Errorf("read validated price: %w", err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), in.String("name"), price)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(ProductResponse{Data: *product})
}

// HandleUpdateProduct godoc
// @Summary Updates a product with user input
// @Description Overwrites name and price, and availability when sent
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "The ID of the product to update"
// @Param product body ProductRequest true "New product values"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} validation.ErrorResponse "Bad Request - Invalid ID or Invalid input data"
// @Failure 404 {object} ErrorResponse "Product Not Found"
// @Router /products/{id} [put]
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return notFound(c)
	}

	in := middleware.ValidatedInput(c)
	price, err := in.Float("price")
	if err != nil {
		return fmt.Errorf("read validated price: %w", err)
	}
	update := services.ProductUpdate{
		Name:  in.String("name"),
		Price: price,
	}
	if available, ok := in.Bool("availability"); ok {
		update.Availability = &available
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ProductResponse{Data: *product})
}

// HandleUpdateAvailability godoc
// @Summary Update Product availability
// @Description Flips the availability of a product
// @Tags Products
// @Produce json
// @Param id path int true "The ID of the product to update"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} validation.ErrorResponse "Bad Request - Invalid ID"
// @Failure 404 {object} ErrorResponse "Product Not Found"
// @Router /products/{id} [patch]
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return notFound(c)
	}

	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ProductResponse{Data: *product})
}

// HandleDeleteProduct godoc
// @Summary Deletes a product by a given ID
// @Description Returns a confirmation message
// @Tags Products
// @Produce json
// @Param id path int true "The ID of the product to delete"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} validation.ErrorResponse "Bad Request - Invalid ID"
// @Failure 404 {object} ErrorResponse "Product Not Found"
// @Router /products/{id} [delete]
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return notFound(c)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(MessageResponse{Data: MsgProductDeleted})
}

// productID reads the validated id. Integers that cannot name a stored
// product (zero, negative) are reported so callers answer 404.
func productID(c *fiber.Ctx) (uint, error) {
	id, err := middleware.ValidatedInput(c).ParamInt("id")
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, repositories.ErrProductNotFound
	}
	return uint(id), nil
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: MsgProductNotFound})
}

// respondError answers 404 for missing products and hands everything else
// to the app error handler.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return notFound(c)
	}
	return err
}

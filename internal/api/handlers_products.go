package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pedrohqs/atrio/internal/models"
	"github.com/pedrohqs/atrio/internal/services"
)

// ListProducts returns the catalog filtered through the visibility resolver.
// Denied products are omitted, never errored.
func (handler *Handler) ListProducts(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))

	var products []models.Product
	var err error
	if category != "" {
		products, err = handler.repos.Products.ListByCategory(category)
	} else {
		products, err = handler.repos.Products.List()
	}
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(services.FilterVisible(products, currentUser(c)))
}

func (handler *Handler) GetProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	product, err := handler.repos.Products.FindByID(uint(productID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !services.IsVisible(product.Visibility(), currentUser(c)) {
		return handler.apiError(c, fiber.StatusNotFound, errNotFound)
	}
	return c.JSON(product)
}

func (handler *Handler) CreateProduct(c *fiber.Ctx) error {
	input, err := handler.parseProductInput(c)
	if err != nil {
		return handler.respondProductInputError(c, err)
	}

	product := models.Product{
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		PriceCents:   input.PriceCents,
		Category:     strings.TrimSpace(input.Category),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		VisibleRoles: input.VisibleRoles,
		Regions:      services.NormalizeRegions(input.Regions),
	}
	if err := handler.repos.Products.Create(&product); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("products", "insert")
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (handler *Handler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	product, err := handler.repos.Products.FindByID(uint(productID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	input, err := handler.parseProductInput(c)
	if err != nil {
		return handler.respondProductInputError(c, err)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.PriceCents = input.PriceCents
	product.Category = strings.TrimSpace(input.Category)
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.VisibleRoles = input.VisibleRoles
	product.Regions = services.NormalizeRegions(input.Regions)

	if err := handler.repos.Products.Save(&product); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("products", "update")
	return c.JSON(product)
}

func (handler *Handler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if _, err := handler.repos.Products.FindByID(uint(productID)); err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.repos.Products.DeleteByID(uint(productID)); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("products", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) parseProductInput(c *fiber.Ctx) (productInput, error) {
	var input productInput
	if err := c.BodyParser(&input); err != nil {
		return productInput{}, errBadPayload
	}
	if err := handler.validate.Struct(input); err != nil {
		return productInput{}, errBadPayload
	}
	if err := services.ValidateVisibilityRoles(input.VisibleRoles); err != nil {
		return productInput{}, err
	}
	if strings.TrimSpace(input.ImageURL) != "" {
		if err := services.ValidateExternalURL(input.ImageURL); err != nil {
			return productInput{}, err
		}
	}
	return input, nil
}

func (handler *Handler) respondProductInputError(c *fiber.Ctx, err error) error {
	if err == errBadPayload {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	return handler.respondServiceError(c, err)
}

package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pedrohqs/atrio/internal/models"
	"github.com/pedrohqs/atrio/internal/services"
)

func (handler *Handler) ListMaterials(c *fiber.Ctx) error {
	materials, err := handler.repos.Materials.List()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(services.FilterVisible(materials, currentUser(c)))
}

func (handler *Handler) GetMaterial(c *fiber.Ctx) error {
	materialID, err := c.ParamsInt("id")
	if err != nil || materialID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	material, err := handler.repos.Materials.FindByID(uint(materialID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !services.IsVisible(material.Visibility(), currentUser(c)) {
		return handler.apiError(c, fiber.StatusNotFound, errNotFound)
	}
	return c.JSON(material)
}

// CreateMaterial registers an externally hosted file. The storage key is
// minted here so the object path never depends on user input.
func (handler *Handler) CreateMaterial(c *fiber.Ctx) error {
	input, err := handler.parseMaterialInput(c)
	if err != nil {
		return handler.respondMaterialInputError(c, err)
	}

	material := models.Material{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		FileURL:      strings.TrimSpace(input.FileURL),
		StorageKey:   uuid.NewString(),
		ContentType:  strings.TrimSpace(input.ContentType),
		VisibleRoles: input.VisibleRoles,
		Regions:      services.NormalizeRegions(input.Regions),
		CreatedByID:  currentUser(c).ID,
	}
	if err := handler.repos.Materials.Create(&material); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("materials", "insert")
	return c.Status(fiber.StatusCreated).JSON(material)
}

func (handler *Handler) UpdateMaterial(c *fiber.Ctx) error {
	materialID, err := c.ParamsInt("id")
	if err != nil || materialID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	material, err := handler.repos.Materials.FindByID(uint(materialID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	input, err := handler.parseMaterialInput(c)
	if err != nil {
		return handler.respondMaterialInputError(c, err)
	}

	material.Title = strings.TrimSpace(input.Title)
	material.Description = strings.TrimSpace(input.Description)
	material.FileURL = strings.TrimSpace(input.FileURL)
	material.ContentType = strings.TrimSpace(input.ContentType)
	material.VisibleRoles = input.VisibleRoles
	material.Regions = services.NormalizeRegions(input.Regions)

	if err := handler.repos.Materials.Save(&material); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("materials", "update")
	return c.JSON(material)
}

func (handler *Handler) DeleteMaterial(c *fiber.Ctx) error {
	materialID, err := c.ParamsInt("id")
	if err != nil || materialID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if _, err := handler.repos.Materials.FindByID(uint(materialID)); err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.repos.Materials.DeleteByID(uint(materialID)); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("materials", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) parseMaterialInput(c *fiber.Ctx) (materialInput, error) {
	var input materialInput
	if err := c.BodyParser(&input); err != nil {
		return materialInput{}, errBadPayload
	}
	if err := handler.validate.Struct(input); err != nil {
		return materialInput{}, errBadPayload
	}
	if err := services.ValidateVisibilityRoles(input.VisibleRoles); err != nil {
		return materialInput{}, err
	}
	if err := services.ValidateExternalURL(input.FileURL); err != nil {
		return materialInput{}, err
	}
	return input, nil
}

func (handler *Handler) respondMaterialInputError(c *fiber.Ctx, err error) error {
	if err == errBadPayload {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	return handler.respondServiceError(c, err)
}

package cars

import (
	"encoding/json"
	"strconv"

	"github.com/inesh111/pj-motors/internal/application/carevents"
	carsvc "github.com/inesh111/pj-motors/internal/application/cars"
	"github.com/inesh111/pj-motors/internal/pkg/apperr"
	"github.com/inesh111/pj-motors/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *carsvc.Service
	Events  *carevents.Service
}

// List GET /cars?search=<substring>
func (h *Handlers) List(c *fiber.Ctx) error {
	cars, err := h.Service.List(c.Context(), c.Query("search"))
	if err != nil {
		return response.Error(c, "Failed to fetch cars", 500, nil)
	}
	return c.JSON(cars)
}

// Create POST /cars
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	if isMissing(body["chassisCode"]) || isMissing(body["make"]) || isMissing(body["model"]) || body["totalPurchasePriceAUD"] == nil {
		return response.Error(c, "chassisCode, make, model, totalPurchasePriceAUD are required", 400, nil)
	}

	purchase, ok := asNumber(body["totalPurchasePriceAUD"])
	if !ok {
		return response.Error(c, "totalPurchasePriceAUD must be a number", 400, nil)
	}

	sale, _, err := optionalNumber(body, "salePrice")
	if err != nil {
		return response.Error(c, "salePrice must be a number", 400, nil)
	}

	year, _, err := optionalInt(body, "year")
	if err != nil {
		return response.Error(c, "year must be a number", 400, nil)
	}

	car, err := h.Service.Create(c.Context(), carsvc.CreateCarInput{
		ChassisCode:           asString(body["chassisCode"]),
		Make:                  asString(body["make"]),
		Model:                 asString(body["model"]),
		Variant:               optionalString(body, "variant"),
		Year:                  year,
		Colour:                optionalString(body, "colour"),
		Grade:                 optionalString(body, "grade"),
		Status:                asString(body["status"]),
		TotalPurchasePriceAUD: purchase,
		SalePrice:             sale,
	})
	if err != nil {
		return respondError(c, err, "Failed to create car")
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// Get GET /cars/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid id", 400, nil)
	}
	car, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch car")
	}
	return c.JSON(car)
}

// Update PATCH /cars/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid id", 400, nil)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	patch := carsvc.UpdatePatch{}
	if v, present := body["make"]; present {
		s := asString(v)
		patch.Make = &s
	}
	if v, present := body["model"]; present {
		s := asString(v)
		patch.Model = &s
	}
	if _, present := body["variant"]; present {
		patch.VariantSet = true
		patch.Variant = optionalString(body, "variant")
	}
	if _, present := body["colour"]; present {
		patch.ColourSet = true
		patch.Colour = optionalString(body, "colour")
	}
	if _, present := body["grade"]; present {
		patch.GradeSet = true
		patch.Grade = optionalString(body, "grade")
	}
	if v, present := body["status"]; present {
		s := asString(v)
		patch.Status = &s
	}
	if _, present := body["year"]; present {
		year, _, err := optionalInt(body, "year")
		if err != nil {
			return response.Error(c, "year must be a number", 400, nil)
		}
		patch.YearSet = true
		patch.Year = year
	}
	if v, present := body["totalPurchasePriceAUD"]; present {
		purchase, ok := asNumber(v)
		if !ok {
			return response.Error(c, "totalPurchasePriceAUD must be a number", 400, nil)
		}
		patch.TotalPurchasePriceAUD = &purchase
	}
	if _, present := body["salePrice"]; present {
		sale, _, err := optionalNumber(body, "salePrice")
		if err != nil {
			return response.Error(c, "salePrice must be a number", 400, nil)
		}
		patch.SalePriceSet = true
		patch.SalePrice = sale
	}

	car, err := h.Service.Update(c.Context(), id, patch)
	if err != nil {
		return respondError(c, err, "Failed to update car")
	}
	return c.JSON(car)
}

// Delete DELETE /cars/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return respondError(c, err, "Failed to delete car")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ListEvents GET /cars/:id/events
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, "Invalid id", 400, nil)
	}
	events, err := h.Events.ListForCar(c.Context(), id)
	if err != nil {
		return response.Error(c, "Failed to fetch events", 500, nil)
	}
	return c.JSON(events)
}

func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func respondError(c *fiber.Ctx, err error, fallback string) error {
	code := apperr.StatusCode(err)
	msg := fallback
	if apperr.KindOf(err) != apperr.Unexpected {
		msg = err.Error()
	}
	return response.Error(c, msg, code, nil)
}

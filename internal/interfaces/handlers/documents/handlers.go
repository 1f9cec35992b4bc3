package documents

import (
	"io"
	"net/url"
	"strconv"

	"github.com/inesh111/pj-motors/internal/application/carevents"
	docsvc "github.com/inesh111/pj-motors/internal/application/documents"
	"github.com/inesh111/pj-motors/internal/models"
	"github.com/inesh111/pj-motors/internal/pkg/apperr"
	"github.com/inesh111/pj-motors/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *docsvc.Service
	Events  *carevents.Service
}

// Upload POST /cars/:id/documents — multipart form with "type" and "file".
func (h *Handlers) Upload(c *fiber.Ctx) error {
	carID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid car id", 400, nil)
	}

	docType := c.FormValue("type")
	if docType == "" {
		return response.Error(c, "Missing document type", 400, nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, "Missing file", 400, nil)
	}
	if fileHeader.Size == 0 {
		return response.Error(c, "File is empty", 400, nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, "Failed to read file", 400, nil)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return response.Error(c, "Failed to read file", 400, nil)
	}

	doc, err := h.Service.Attach(c.Context(), uint(carID), docType, fileHeader.Filename, data)
	if err != nil {
		code := apperr.StatusCode(err)
		msg := "Failed to store document"
		if apperr.KindOf(err) != apperr.Unexpected {
			msg = err.Error()
		}
		if code >= 500 {
			log.Error().Err(err).Uint64("car_id", carID).Str("type", docType).Msg("documents: attach failed")
		}
		return response.Error(c, msg, code, nil)
	}

	if h.Events != nil {
		h.Events.Record(c.Context(), doc.CarID, models.EventDocumentAttached, map[string]interface{}{
			"documentId": doc.ID,
			"type":       doc.Type,
			"name":       doc.Name,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// Fetch GET /documents/:id — streams the file bytes with an inferred
// content type.
func (h *Handlers) Fetch(c *fiber.Ctx) error {
	docID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid document id", 400, nil)
	}

	res, err := h.Service.Fetch(c.Context(), uint(docID))
	if err != nil {
		code := apperr.StatusCode(err)
		msg := "Failed to fetch document"
		if apperr.KindOf(err) != apperr.Unexpected {
			msg = err.Error()
		}
		return response.Error(c, msg, code, nil)
	}

	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+url.PathEscape(res.Name)+`"`)
	return c.Send(res.Data)
}

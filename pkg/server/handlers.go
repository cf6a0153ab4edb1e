package server

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"adprov/pkg/config"
	"adprov/pkg/parser"
	"adprov/pkg/provision"
	"adprov/pkg/record"
)

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "success", "status": "ok"})
}

func (h *Handler) variants(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "success", "variants": h.app.Settings.Variants})
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	log := h.log.Function("createSession")

	data, err := formFile(c, "config")
	if err != nil {
		log.Er("failed to read configuration upload", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "configuration file is required", "error": err.Error()})
	}

	sheet := c.FormValue("sheet")
	if sheet == "" {
		if name := c.FormValue("variant"); name != "" {
			variant, err := h.app.Service.Variant(name)
			if err != nil {
				return c.Status(fiber.StatusNotFound).
					JSON(fiber.Map{"message": "unknown variant", "error": err.Error()})
			}
			sheet = variant.Sheet
		}
	}

	cfg, err := config.Load(data, sheet)
	if err != nil {
		log.Er("failed to load configuration", err, "sheet", sheet)
		resp := fiber.Map{"message": "failed to load configuration", "error": err.Error()}
		if errors.Is(err, parser.ErrSheetNotFound) {
			if sheets, err := parser.SheetNames(data); err == nil {
				resp["sheets"] = sheets
			}
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}

	session := h.app.Sessions.Create(cfg)
	log.Info("session created", "session", session.ID, "sheet", sheet, "warnings", len(cfg.Warnings))
	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "id": session.ID, "warnings": cfg.Warnings})
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return configurationRequired(c)
	}
	return c.JSON(fiber.Map{
		"message":       "success",
		"session":       session,
		"directoryRows": directoryRows(session),
	})
}

func (h *Handler) deleteSession(c *fiber.Ctx) error {
	h.app.Sessions.Delete(c.Params("id"))
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *Handler) uploadDirectory(c *fiber.Ctx) error {
	log := h.log.Function("uploadDirectory")

	session, ok := h.session(c)
	if !ok {
		return configurationRequired(c)
	}

	data, err := formFile(c, "export")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "directory export is required", "error": err.Error()})
	}

	index, warnings, err := provision.LoadDirectory(data, c.FormValue("mapping"))
	if err != nil {
		log.Er("failed to load directory export", err, "session", session.ID)
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "failed to load directory export", "error": err.Error()})
	}
	h.app.Sessions.SetDirectory(session.ID, index)

	return c.JSON(fiber.Map{"message": "success", "stats": index.Stats, "warnings": warnings})
}

func (h *Handler) preview(c *fiber.Ctx) error {
	result, err := h.generate(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "success",
		"identity": result.Identity,
		"groups":   result.Groups,
		"review":   result.Review,
		"preview":  result.Preview,
		"messages": result.Messages,
		"files":    result.Artifacts,
	})
}

func (h *Handler) csv(c *fiber.Ctx) error {
	kind, ok := record.ParseKind(c.Query("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "kind must be user, computer or profiling"})
	}

	result, err := h.generate(c)
	if err != nil {
		return err
	}

	artifact, ok := result.Record(kind)
	if !ok {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": fmt.Sprintf("no %s record for this submission", kind)})
	}
	return download(c, artifact.Name, artifact.ContentType, artifact.Content)
}

func (h *Handler) bundle(c *fiber.Ctx) error {
	log := h.log.Function("bundle")

	result, err := h.generate(c)
	if err != nil {
		return err
	}
	data, err := result.Bundle()
	if err != nil {
		log.Er("failed to build bundle", err, "account", result.Identity.AccountName)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to build bundle", "error": err.Error()})
	}
	return download(c, result.BundleName(), "application/zip", data)
}

// generate runs the form for the request. Failures come back as
// *fiber.Error for the app error handler.
func (h *Handler) generate(c *fiber.Ctx) (*provision.Result, error) {
	log := h.log.Function("generate")

	session, ok := h.session(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusPreconditionFailed, config.ErrNoConfiguration.Error())
	}

	var form provision.Form
	if err := c.BodyParser(&form); err != nil {
		log.Er("failed to parse form", err)
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to parse form: "+err.Error())
	}

	result, err := h.app.Service.Generate(c.Context(), session.Config, c.Params("variant"), form, session.Directory)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, provision.ErrUnknownVariant):
		return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, config.ErrNoConfiguration):
		return nil, fiber.NewError(fiber.StatusPreconditionFailed, err.Error())
	default:
		log.Er("failed to generate", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) session(c *fiber.Ctx) (Session, bool) {
	return h.app.Sessions.Get(c.Params("id"))
}

func configurationRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusPreconditionFailed).
		JSON(fiber.Map{"message": "configuration required", "error": config.ErrNoConfiguration.Error()})
}

// errorHandler renders errors returned by handlers in the same shape as
// the handlers' own error responses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	message := "error"
	if code == fiber.StatusPreconditionFailed {
		message = "configuration required"
	}
	return c.Status(code).JSON(fiber.Map{"message": message, "error": err.Error()})
}

var errEmptyUpload = errors.New("uploaded file is empty")

func directoryRows(s Session) int {
	if s.Directory == nil {
		return 0
	}
	return s.Directory.Stats.TotalRecords
}

func formFile(c *fiber.Ctx, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errEmptyUpload
	}
	return data, nil
}

func download(c *fiber.Ctx, name, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, name, url.PathEscape(name)))
	return c.Send(data)
}

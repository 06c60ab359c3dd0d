package receiving

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"receiving-manager/core/logger"
	"receiving-manager/core/reconcile"
	"receiving-manager/feature/receiving/source"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ScanRequest is the body of a scan call.
type ScanRequest struct {
	Label string `json:"label" validate:"required,max=128"`
}

// FinalizeRequest is the optional body of a finalize call.
type FinalizeRequest struct {
	DryRun bool `json:"dry_run"`
}

// Handler handles HTTP requests for receiving sessions.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{service: service, validate: v}
}

// RegisterRoutes registers the receiving routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/receiving")
	group.Get("/", h.HandleListSessions)
	group.Post("/:document", h.HandleOpen)
	group.Get("/:document", h.HandleSummary)
	group.Delete("/:document", h.HandleDiscard)
	group.Post("/:document/scans", h.HandleScan)
	group.Post("/:document/reset", h.HandleReset)
	group.Post("/:document/finalize", h.HandleFinalize)
	group.Get("/:document/report", h.HandleReport)
}

// HandleListSessions lists open receiving sessions.
// @Summary List Sessions
// @Description Lists the documents that currently have an open receiving session.
// @Tags receiving
// @Produce json
// @Success 200 {object} map[string][]string "Open documents"
// @Router /receiving [get]
func (h *Handler) HandleListSessions(c *fiber.Ctx) error {
	docs := h.service.Documents()
	sort.Strings(docs)
	return c.JSON(fiber.Map{"documents": docs})
}

// HandleOpen opens or reloads a receiving session.
// @Summary Open Session
// @Description Loads the document's manifest and starts a fresh session. Reopening discards all scans.
// @Tags receiving
// @Produce json
// @Param document path string true "Document ID (e.g. 'PO-1001')"
// @Success 200 {object} Summary "Session summary"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 422 {object} map[string]string "Invalid manifest"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /receiving/{document} [post]
func (h *Handler) HandleOpen(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	document := c.Params("document")

	summary, err := h.service.Open(c.UserContext(), document)
	if err != nil {
		return h.fail(c, l, "Failed to open receiving session", err)
	}
	return c.JSON(summary)
}

// HandleSummary returns a session summary.
// @Summary Get Session
// @Description Returns totals, the finalize gate and the lines in working order.
// @Tags receiving
// @Produce json
// @Param document path string true "Document ID"
// @Success 200 {object} Summary "Session summary"
// @Failure 404 {object} map[string]string "Session not open"
// @Router /receiving/{document} [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Summary(c.Params("document"))
	if err != nil {
		return h.fail(c, l, "Failed to read receiving session", err)
	}
	return c.JSON(summary)
}

// HandleScan applies a scanned pack label.
// @Summary Scan Pack
// @Description Resolves the pack label and credits its contents to the matching manifest lines.
// @Tags receiving
// @Accept json
// @Produce json
// @Param document path string true "Document ID"
// @Param request body ScanRequest true "Scanned label"
// @Success 200 {object} reconcile.Result "Scan result"
// @Failure 400 {object} map[string]string "Invalid scan"
// @Failure 404 {object} map[string]string "Session not open or pack not recognized"
// @Failure 409 {object} map[string]string "Pack already scanned"
// @Router /receiving/{document}/scans [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	res, err := h.service.Scan(c.UserContext(), c.Params("document"), req.Label)
	if err != nil {
		return h.fail(c, l, "Scan rejected", err)
	}
	return c.JSON(res)
}

// HandleReset clears all scans of a session.
// @Summary Reset Session
// @Description Zeroes every observed quantity and forgets consumed packs.
// @Tags receiving
// @Produce json
// @Param document path string true "Document ID"
// @Success 200 {object} Summary "Session summary"
// @Failure 404 {object} map[string]string "Session not open"
// @Router /receiving/{document}/reset [post]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Reset(c.Params("document"))
	if err != nil {
		return h.fail(c, l, "Failed to reset receiving session", err)
	}
	return c.JSON(summary)
}

// HandleFinalize finalizes a reconciled session.
// @Summary Finalize Session
// @Description Persists the reconciled document. Use dry_run to only check the gate.
// @Tags receiving
// @Accept json
// @Produce json
// @Param document path string true "Document ID"
// @Param request body FinalizeRequest false "Finalize options"
// @Success 200 {object} FinalizeResult "Finalize result"
// @Failure 404 {object} map[string]string "Session not open"
// @Failure 409 {object} map[string]string "Discrepancies remain"
// @Failure 500 {object} map[string]string "Finalizer failed"
// @Router /receiving/{document}/finalize [post]
func (h *Handler) HandleFinalize(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req FinalizeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	if c.Query("dry_run") == "true" {
		req.DryRun = true
	}

	res, err := h.service.Finalize(c.UserContext(), c.Params("document"), req.DryRun)
	if err != nil {
		return h.fail(c, l, "Finalize failed", err)
	}
	return c.JSON(res)
}

// HandleReport downloads the discrepancy report.
// @Summary Download Report
// @Description Returns an XLSX workbook with the session totals and every line in working order.
// @Tags receiving
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param document path string true "Document ID"
// @Success 200 {file} file "XLSX report"
// @Failure 404 {object} map[string]string "Session not open"
// @Router /receiving/{document}/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	document := strings.TrimSpace(c.Params("document"))

	data, err := h.service.Report(document)
	if err != nil {
		return h.fail(c, l, "Failed to render report", err)
	}

	c.Set(fiber.HeaderContentType, ReportContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s-receiving.xlsx", document))
	return c.Send(data)
}

// HandleDiscard drops a session without finalizing.
// @Summary Discard Session
// @Description Drops the session and all of its scans.
// @Tags receiving
// @Param document path string true "Document ID"
// @Success 204 "Discarded"
// @Failure 404 {object} map[string]string "Session not open"
// @Router /receiving/{document} [delete]
func (h *Handler) HandleDiscard(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Discard(c.Params("document")); err != nil {
		return h.fail(c, l, "Failed to discard receiving session", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		validationErr *reconcile.ValidationError
		invalidErr    *reconcile.InvalidEventError
		unresolvedErr *reconcile.UnresolvedPackError
		duplicateErr  *reconcile.DuplicatePackError
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &invalidErr):
		return fiber.StatusBadRequest
	case errors.As(err, &unresolvedErr):
		return fiber.StatusNotFound
	case errors.As(err, &duplicateErr):
		return fiber.StatusConflict
	case errors.Is(err, ErrSessionNotOpen), errors.Is(err, source.ErrDocumentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrNotFinalizable), errors.Is(err, reconcile.ErrNotLoaded):
		return fiber.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

package handler

import (
	"errors"
	"io"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CVAnalysisHandler struct {
	uc usecase.CVAnalysisUsecase
}

type analyzeCVRequest struct {
	CVText string `json:"cv_text"`
}

func NewCVAnalysisHandler(uc usecase.CVAnalysisUsecase) *CVAnalysisHandler {
	return &CVAnalysisHandler{uc: uc}
}

func (h *CVAnalysisHandler) RegisterRoutes(r fiber.Router, me fiber.Router, requireAuth fiber.Handler) {
	if r != nil {
		grp := r.Group("/cv-analysis")
		grp.Post("/", requireAuth, h.AnalyzeText)
		grp.Post("/upload", requireAuth, h.AnalyzeUpload)
		grp.Get("/:id", requireAuth, h.Get)
	}
	if me != nil {
		me.Get("/cv-analysis", h.ListMine)
	}
}

func (h *CVAnalysisHandler) AnalyzeText(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req analyzeCVRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	rec, err := h.uc.AnalyzeText(c.Context(), userID, req.CVText)
	if err != nil {
		return mapCVAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewCVAnalysisResponse(rec))
}

func (h *CVAnalysisHandler) AnalyzeUpload(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return badRequest(err)
	}

	rec, err := h.uc.AnalyzeUpload(c.Context(), userID, usecase.CVUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return mapCVAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewCVAnalysisResponse(rec))
}

func (h *CVAnalysisHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID, limit, offset)
	if err != nil {
		return mapCVAnalysisUsecaseError(err)
	}

	res := make([]dto.CVAnalysisResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewCVAnalysisResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CVAnalysisHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapCVAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVAnalysisResponse(rec))
}

func mapCVAnalysisUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmptyCV):
		return middleware.NewAppError(fiber.StatusBadRequest, "CV text is empty", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Could not read the CV", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported file type", nil, err)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err)
	case errors.Is(err, usecase.ErrAnalysisFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "CV analysis failed", nil, err)
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "CV analysis not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"errors"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CourseHandler struct {
	uc usecase.CourseUsecase
}

type updateProgressRequest struct {
	Progress *int `json:"progress"`
}

func NewCourseHandler(uc usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(public fiber.Router, me fiber.Router) {
	if public != nil {
		public.Get("/courses", h.List)
	}
	if me != nil {
		grp := me.Group("/courses")
		grp.Get("/", h.ListMine)
		grp.Get("/recommendations", h.Recommend)
		grp.Post("/:course_id", h.Enroll)
		grp.Patch("/:enrollment_id", h.UpdateProgress)
	}
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCourses(c.Context())
	if err != nil {
		return mapCourseUsecaseError(err)
	}

	res := make([]dto.CourseResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewCourseResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CourseHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMyCourses(c.Context(), userID)
	if err != nil {
		return mapCourseUsecaseError(err)
	}

	res := make([]dto.EnrollmentResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewEnrollmentResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CourseHandler) Enroll(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	courseID, err := uuidParam(c, "course_id")
	if err != nil {
		return err
	}

	e, err := h.uc.Enroll(c.Context(), userID, courseID)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewEnrollmentResponse(e))
}

func (h *CourseHandler) UpdateProgress(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	enrollmentID, err := uuidParam(c, "enrollment_id")
	if err != nil {
		return err
	}

	var req updateProgressRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if req.Progress == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid progress", nil, nil)
	}

	e, err := h.uc.UpdateProgress(c.Context(), userID, enrollmentID, *req.Progress)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEnrollmentResponse(e))
}

func (h *CourseHandler) Recommend(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	recs, err := h.uc.Recommend(c.Context(), userID)
	if err != nil {
		return mapCourseUsecaseError(err)
	}

	res := make([]dto.CourseRecommendationResponse, 0, len(recs))
	for _, r := range recs {
		res = append(res, dto.NewCourseRecommendationResponse(r))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapCourseUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidProgress):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid progress", nil, err)
	case errors.Is(err, usecase.ErrAlreadyEnrolled):
		return middleware.NewAppError(fiber.StatusConflict, "Already enrolled", nil, err)
	case errors.Is(err, usecase.ErrCourseNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Course not found", nil, err)
	case errors.Is(err, usecase.ErrEnrollmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Enrollment not found", nil, err)
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No CV analysis yet", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

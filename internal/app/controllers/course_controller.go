package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/middleware"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// CourseService reads the catalog
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error)
}

// CourseController serves the course catalog
type CourseController struct {
	courseService CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// List godoc
// @Summary List courses
// @Description Every course with its features, modules and remaining seats
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}

// Get godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/v1/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id", apperrors.ErrCourseNotFound)
	if !ok {
		return
	}
	course, err := c.courseService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course})
}

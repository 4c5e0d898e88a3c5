package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// CourseService serves the public catalog
type CourseService struct {
	courses CourseStore
	logger  zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, logger zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, logger: logger}
}

// List returns every course, earliest batch first
func (s *CourseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list courses")
		return nil, apperrors.NewServiceError(err, "could not load courses")
	}
	return dto.FromCourses(courses), nil
}

// Get returns a single course
func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, apperrors.NewServiceError(err, "could not load course")
	}
	return dto.FromCourse(course), nil
}

package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/middleware"
	"github.com/yigit/javamaster/internal/pkg/helpers"
)

// DashboardService builds the landing page and dashboards
type DashboardService interface {
	HomePage(ctx context.Context) (*dto.HomePageResponse, error)
	StudentDashboard(ctx context.Context, student *models.Student) (*dto.StudentDashboardResponse, error)
	AdminDashboard(ctx context.Context, page, pageSize int) (*dto.AdminDashboardResponse, error)
}

// PageService serves static informational pages
type PageService interface {
	Get(slug string) (*dto.PageResponse, error)
}

// PageController serves the home page, static pages and dashboards
type PageController struct {
	dashboards DashboardService
	pages      PageService
	logger     zerolog.Logger
}

// NewPageController creates a new PageController
func NewPageController(dashboards DashboardService, pages PageService, logger zerolog.Logger) *PageController {
	return &PageController{dashboards: dashboards, pages: pages, logger: logger}
}

// Home godoc
// @Summary Landing page
// @Description Site statistics and the course catalog
// @Tags pages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HomePageResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router / [get]
func (c *PageController) Home(ctx *gin.Context) {
	home, err := c.dashboards.HomePage(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: home})
}

// Static returns a handler serving the page registered under slug
// @Summary Informational page
// @Description about, contact, privacy, terms and refund-policy
// @Tags pages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse}
// @Router /about [get]
func (c *PageController) Static(slug string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, err := c.pages.Get(slug)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: page})
	}
}

// StudentDashboard godoc
// @Summary Student dashboard
// @Description Profile and completed orders of the signed-in student
// @Tags pages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse}
// @Success 302 {string} string "Redirect to /login"
// @Router /dashboard [get]
func (c *PageController) StudentDashboard(ctx *gin.Context) {
	student, _ := middleware.CurrentStudent(ctx)
	dash, err := c.dashboards.StudentDashboard(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dash})
}

// AdminDashboard godoc
// @Summary Admin dashboard
// @Description Revenue, orders, pending checkouts and the paginated student list
// @Tags admin
// @Produce json
// @Param page query int false "Student list page (1-based)" default(1)
// @Param size query int false "Student list page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse}
// @Success 302 {string} string "Redirect to /login"
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (c *PageController) AdminDashboard(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	dash, err := c.dashboards.AdminDashboard(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dash})
}

// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/app/session"
	"github.com/yigit/javamaster/internal/middleware"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// isFormPost reports whether the request came from a plain HTML form
func isFormPost(ctx *gin.Context) bool {
	switch ctx.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	}
	return false
}

// respondRedirect sends browsers posting a form to location with 303 See Other.
// Other clients get data as JSON and follow its redirect field themselves.
func respondRedirect(ctx *gin.Context, status int, location string, data interface{}) {
	if isFormPost(ctx) {
		ctx.Redirect(http.StatusSeeOther, location)
		return
	}
	ctx.JSON(status, dto.APIResponse{Data: data})
}

// respondBindError reports a request body that failed binding or validation
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

// holder returns the request session, failing the request when the session middleware did not run
func holder(ctx *gin.Context) (*session.Holder, bool) {
	h, ok := middleware.HolderFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewServiceError(nil, "session unavailable"))
		return nil, false
	}
	return h, true
}

// parseUUIDParam reads a UUID path parameter. Malformed ids are reported as notFound.
func parseUUIDParam(ctx *gin.Context, name string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		middleware.HandleAPIError(ctx, notFound)
		return uuid.Nil, false
	}
	return id, true
}

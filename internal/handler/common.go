package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	mw "marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// usecaseのHTTPErrorをJSONに落とす。想定外はinternal_error
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Code: he.Code, Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:  usecase.CodeInternal,
		Error: "internal server error",
	})
}

// AuthJWTが保存したuser_id/roleを取り出す
func identityFromContext(c echo.Context) model.Identity {
	var id model.Identity
	if v, ok := c.Get(mw.CtxUserIDKey).(int64); ok {
		id.UserID = v
	}
	if v, ok := c.Get(mw.CtxUserRoleKey).(string); ok {
		id.Role = model.Role(v)
	}
	return id
}

package middleware

import (
	"net/http"

	"marketplace/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが許可リストに含まれるか確認します。

func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, allowed := range roles {
				if model.Role(role) == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorResponse{
				Code:  "forbidden",
				Error: "access denied for this role",
			})
		}
	}
}

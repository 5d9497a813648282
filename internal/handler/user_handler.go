package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	repo "app/internal/repository"

	"github.com/labstack/echo/v4"
)

// /usersのHTTP。参照と削除だけなのでusecaseを挟まずrepoを直接使う
type UserHandler struct {
	users repo.UserRepository
}

// DI
func NewUserHandler(users repo.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/users")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.DELETE("/:id", h.delete)
}

func (h *UserHandler) list(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	// 自分自身は消せない
	if me, ok := c.Get(middleware.CtxUserIDKey).(int64); ok && me == id {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot delete yourself"})
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		if err == repo.ErrNotFound {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /chatbotのHTTP
type ChatbotHandler struct {
	uc *usecase.ChatbotUsecase
}

// DI
func NewChatbotHandler(uc *usecase.ChatbotUsecase) *ChatbotHandler {
	return &ChatbotHandler{uc: uc}
}

type ChatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	UserID         *int64 `json:"user_id,omitempty"`
	Message        string `json:"message"`
}

func (h *ChatbotHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chatbot", h.chat)
}

func (h *ChatbotHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Handle(c.Request().Context(), usecase.ChatInput{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Message:        req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

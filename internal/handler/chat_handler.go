package handler

import (
	"net/http"

	"cosmeshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chats *usecase.ChatUsecase
}

func NewChatHandler(chats *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// GET /api/chat/room （顧客）
func (h *ChatHandler) MyRoom(c echo.Context) error {
	out, err := h.chats.OpenMyRoom(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /api/chat/messages （顧客）
func (h *ChatHandler) Send(c echo.Context) error {
	var in usecase.SendMessageInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	msg, err := h.chats.SendAsCustomer(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// GET /api/admin/chat/rooms
func (h *ChatHandler) ListRooms(c echo.Context) error {
	out, err := h.chats.ListRooms(c.Request().Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/admin/chat/rooms/:roomKey
func (h *ChatHandler) OpenRoom(c echo.Context) error {
	out, err := h.chats.OpenRoom(c.Request().Context(), actorFrom(c), c.Param("roomKey"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /api/admin/chat/rooms/:roomKey/messages
func (h *ChatHandler) Reply(c echo.Context) error {
	var in usecase.SendMessageInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	msg, err := h.chats.SendAsAdmin(c.Request().Context(), actorFrom(c), c.Param("roomKey"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

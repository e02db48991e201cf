package handler

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the realtime endpoint into the Echo instance.
func (h *WebSocketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.HandleWebSocket)
}

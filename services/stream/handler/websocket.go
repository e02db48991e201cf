package handler

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/models"
	pkgws "github.com/tawseel/dispatch/internal/pkg/websocket"
	"github.com/tawseel/dispatch/services/location"
	"github.com/tawseel/dispatch/services/stream"
)

const (
	RoleDriver    = "driver"
	RolePassenger = "passenger"
	RoleAdmin     = "admin"
)

// wsSubscriber adapts one WebSocket connection to the hub. Writes are
// serialized because the batcher goroutines and the read loop both send.
type wsSubscriber struct {
	id      string
	manager *pkgws.Manager
	conn    *websocket.Conn
	mu      sync.Mutex
}

func (s *wsSubscriber) ID() string { return s.id }

func (s *wsSubscriber) Send(event string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.SendMessage(s.conn, event, payload)
}

func (s *wsSubscriber) SendError(code, message string) error {
	return s.Send(constants.EventError, models.WSErrorMessage{Code: code, Message: message})
}

// WebSocketHandler serves the realtime endpoint: drivers push positions,
// passengers and dashboards subscribe to streams.
type WebSocketHandler struct {
	manager    *pkgws.Manager
	streamUC   stream.StreamUC
	locationUC location.LocationUC
}

func NewWebSocketHandler(manager *pkgws.Manager, streamUC stream.StreamUC, locationUC location.LocationUC) *WebSocketHandler {
	return &WebSocketHandler{
		manager:    manager,
		streamUC:   streamUC,
		locationUC: locationUC,
	}
}

// HandleWebSocket upgrades the connection after JWT auth and runs the
// message loop until the client disconnects.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	return h.manager.HandleConnection(c, h.handleClient)
}

func (h *WebSocketHandler) handleClient(client *models.WebSocketClient, conn *websocket.Conn) error {
	sub := &wsSubscriber{
		id:      uuid.NewString(),
		manager: h.manager,
		conn:    conn,
	}

	client.Conn = conn
	h.manager.AddClient(client)
	defer func() {
		h.streamUC.Drop(sub.ID())
		h.manager.RemoveClient(client.UserID)
	}()

	// Passengers receive their ride notifications without an explicit
	// subscribe message.
	if client.Role == RolePassenger {
		h.streamUC.SubscribePassenger(sub, client.UserID)
	}

	logger.Info("websocket client connected",
		logger.String("user_id", client.UserID),
		logger.String("role", client.Role))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			logger.Debug("websocket client disconnected",
				logger.String("user_id", client.UserID),
				logger.Err(err))
			return nil
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sub.SendError(constants.ErrorInvalidFormat, "invalid message format")
			continue
		}

		h.routeMessage(sub, client, msg)
	}
}

func (h *WebSocketHandler) routeMessage(sub *wsSubscriber, client *models.WebSocketClient, msg models.WSMessage) {
	switch msg.Event {
	case constants.EventLocationUpdate:
		h.handleLocationUpdate(sub, client, msg.Data)
	case constants.EventSubscribeDriver:
		h.handleSubscribeDriver(sub, msg.Data)
	case constants.EventUnsubscribeDriver:
		h.handleUnsubscribeDriver(sub, msg.Data)
	case constants.EventSubscribeAdmin:
		h.handleSubscribeAdmin(sub, client)
	default:
		sub.SendError(constants.ErrorInvalidFormat, "unknown event: "+msg.Event)
	}
}

func (h *WebSocketHandler) handleLocationUpdate(sub *wsSubscriber, client *models.WebSocketClient, data json.RawMessage) {
	if client.Role != RoleDriver {
		sub.SendError(constants.ErrorUnauthorized, "only drivers can push locations")
		return
	}

	var loc models.Location
	if err := json.Unmarshal(data, &loc); err != nil {
		sub.SendError(constants.ErrorInvalidFormat, "invalid location payload")
		return
	}

	if err := h.locationUC.UpdatePosition(client.UserID, loc.Latitude, loc.Longitude); err != nil {
		sub.SendError(constants.ErrorInvalidLocation, err.Error())
		return
	}
}

func (h *WebSocketHandler) handleSubscribeDriver(sub *wsSubscriber, data json.RawMessage) {
	var req models.SubscribeDriverRequest
	if err := json.Unmarshal(data, &req); err != nil || req.DriverID == "" {
		sub.SendError(constants.ErrorInvalidFormat, "invalid subscribe payload")
		return
	}

	last, ok := h.streamUC.SubscribeDriver(sub, req.DriverID)
	sub.Send(constants.EventSubscribed, models.SubscribeDriverRequest{DriverID: req.DriverID})

	// Replay the last known position so the subscriber is not blind until
	// the next batch cycle.
	if ok {
		sub.Send(constants.EventDriverPositions, models.DriverPositionBatch{
			Positions: []models.DriverPosition{last},
			CreatedAt: models.Now(),
		})
	}
}

func (h *WebSocketHandler) handleUnsubscribeDriver(sub *wsSubscriber, data json.RawMessage) {
	var req models.SubscribeDriverRequest
	if err := json.Unmarshal(data, &req); err != nil || req.DriverID == "" {
		sub.SendError(constants.ErrorInvalidFormat, "invalid unsubscribe payload")
		return
	}
	h.streamUC.UnsubscribeDriver(sub.ID(), req.DriverID)
}

func (h *WebSocketHandler) handleSubscribeAdmin(sub *wsSubscriber, client *models.WebSocketClient) {
	if client.Role != RoleAdmin {
		sub.SendError(constants.ErrorUnauthorized, "admin role required")
		return
	}

	positions := h.streamUC.SubscribeAdmin(sub)
	sub.Send(constants.EventSubscribed, map[string]string{"topic": constants.TopicAdmin})

	all := make([]models.DriverPosition, 0, len(positions))
	for _, pos := range positions {
		all = append(all, pos)
	}
	sub.Send(constants.EventDriverPositions, models.DriverPositionBatch{
		Positions: all,
		CreatedAt: models.Now(),
	})
}

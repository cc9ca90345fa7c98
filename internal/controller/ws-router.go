package controller

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/cineroom/client/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Handle("PLAY", c.wrap(c.handlePlay))
	mux.Handle("PAUSE", c.wrap(c.handlePause))
	mux.Handle("SEEK", c.wrap(c.handleSeek))
	mux.Handle("TIME_UPDATE", c.wrap(c.handleTimeUpdate))
	mux.Handle("ADD_ITEM", c.wrap(c.handleAddItem))
	mux.Handle("REMOVE_ITEM", c.wrap(c.handleRemoveItem))
	mux.Handle("SET_CURRENT", c.wrap(c.handleSetCurrent))
	mux.Handle("ADVANCE", c.wrap(c.handleAdvance))
	mux.Handle("MARK_COMPLETED", c.wrap(c.handleMarkCompleted))
	mux.Handle("SEND_MESSAGE", c.wrap(c.handleSendMessage))
	mux.Handle("SEND_REACTION", c.wrap(c.handleSendReaction))
	mux.Handle("SEND_SIGNAL", c.wrap(c.handleSendSignal))
	mux.HandleError(c.handleError)

	return mux
}

func (c *controller) wrap(handler func(ctx context.Context, payload json.RawMessage) error) wsrouter.HandlerFunc {
	return func(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
		return handler(ctx, payload)
	}
}

func (c *controller) handleError(ctx context.Context, conn *websocket.Conn, err error) {
	messageType := wsrouter.GetMessageTypeFromCtx(ctx)
	c.logger.InfoContext(ctx, "command failed", "type", messageType, "error", err)

	if err := conn.WriteJSON(&Output{
		Type: "ERROR",
		Payload: map[string]string{
			"command": messageType,
			"message": err.Error(),
		},
	}); err != nil {
		c.logger.DebugContext(ctx, "failed to write error to ui socket", "error", err)
	}
}

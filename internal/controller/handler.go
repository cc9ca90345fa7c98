package controller

import (
	"net/http"
)

// attach upgrades a UI connection and serves its command loop. The full room
// state is sent first so a freshly attached UI can render without waiting for
// the next change event.
func (c *controller) attach(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.InfoContext(ctx, "failed to upgrade connection", "error", err)
		return
	}

	if err := c.connRepo.Add(conn); err != nil {
		c.logger.InfoContext(ctx, "failed to register connection", "error", err)
		conn.Close()
		return
	}
	defer c.connRepo.Remove(conn)

	state, err := c.sessionService.GetRoomState(ctx)
	if err != nil {
		c.logger.InfoContext(ctx, "failed to get room state", "error", err)
		conn.Close()
		return
	}

	if err := conn.WriteJSON(&Output{Type: "ROOM_STATE", Payload: state}); err != nil {
		c.logger.InfoContext(ctx, "failed to send room state", "error", err)
		conn.Close()
		return
	}

	c.logger.InfoContext(ctx, "ui attached", "remote_addr", r.RemoteAddr)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "ui detached", "error", err)
	}
}

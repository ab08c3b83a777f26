package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	hub    *services.RealtimeHub
	alerts *services.AlertService
}

func NewRealtimeController(hub *services.RealtimeHub, alerts *services.AlertService) *RealtimeController {
	return &RealtimeController{hub: hub, alerts: alerts}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

func (rc *RealtimeController) EventsWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.hub.Register(cl)

	// ping to keep connections alive through some proxies; writes go
	// through the client so they serialize with hub broadcasts
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.hub.Unregister(cl)
			return
		}
	}
}

func (rc *RealtimeController) ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	alerts, err := rc.alerts.ListAlerts(uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

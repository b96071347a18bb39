package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/DyoneNunes/controlefinanceiro/utils"
)

type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive requis derriere les proxys cloud
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		if id, ok := s.Get("group_id"); ok {
			if gid, ok := id.(string); ok {
				utils.SafeLog("✅ Client connected to group: %s", utils.MaskID(gid))
			}
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		groupID, _ := s.Get("group_id")
		if id, ok := groupID.(string); ok {
			utils.SafeLog("🔌 Client disconnected from group: %s", utils.MaskID(id))
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS gère la connexion WebSocket d'un groupe. Le token arrive en query
// string car l'API WebSocket du navigateur ne transmet pas de headers.
func (h *WSHandler) HandleWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}

	claims, err := utils.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
		return
	}

	// Les cles de session sont posees par requete, jamais via un handler
	// global, pour que deux connexions simultanees ne se melangent pas.
	keys := map[string]interface{}{
		"group_id": c.Param("id"),
		"username": claims.Username,
	}

	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate signale aux clients du groupe qu'une donnée a changé.
func (h *WSHandler) BroadcastUpdate(groupID string, updateType string, userWhoUpdated string) {
	msg := []byte(`{"type": "` + updateType + `", "user": "` + userWhoUpdated + `"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("group_id")
		return exists && id == groupID
	})

	if err != nil {
		utils.SafeLog("⚠️ Error broadcasting to group %s: %v", utils.MaskID(groupID), err)
	}
}

package controllers

import (
    "log"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "github.com/gorilla/websocket"

    "health-chatbot-backend/chatbot"
    "health-chatbot-backend/models"
)

var upgrader = websocket.Upgrader{
    CheckOrigin: func(r *http.Request) bool {
        return true // Configure properly for production
    },
}

type WebSocketController struct {
    bot *chatbot.HealthBot
}

func NewWebSocketController(bot *chatbot.HealthBot) *WebSocketController {
    return &WebSocketController{
        bot: bot,
    }
}

// HandleWebSocket upgrades the connection and serves one chat session
// until the client disconnects
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
    conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
    if err != nil {
        log.Println("WebSocket upgrade error:", err)
        return
    }
    defer conn.Close()

    sessionID := c.Query("session_id")
    if sessionID == "" {
        sessionID = uuid.NewString()
    }

    for {
        var req models.ChatRequest
        if err := conn.ReadJSON(&req); err != nil {
            if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
                log.Println("WebSocket read error:", err)
            }
            break
        }

        if req.Message == "" {
            conn.WriteJSON(gin.H{"error": "Message is required"})
            continue
        }

        reply, err := wc.bot.Handle(c.Request.Context(), req.Message, req.Language)
        if err != nil {
            conn.WriteJSON(gin.H{"error": "Failed to process message"})
            continue
        }

        saveExchange(c.Request.Context(), sessionID, req.UserID, models.ChannelWeb, req.Message, reply, false)

        conn.WriteJSON(models.NewTextResponse(reply.Text, reply.Intent, reply.Language))
    }
}

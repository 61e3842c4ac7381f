package socket_io

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"LoveForTennis/models/dto"
	"LoveForTennis/services/identity"

	"github.com/gin-gonic/gin"
	eiolog "github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

const (
	EventBookingChanged = "booking:changed"
	EventWatchCourt     = "watch_court"
	EventUnwatchCourt   = "unwatch_court"
)

// Hub pushes booking changes to clients watching a court calendar.
type Hub struct {
	server   *socket.Server
	provider identity.Provider

	mutex sync.RWMutex
	// socket id -> user id ("" for anonymous watchers)
	connections map[socket.SocketId]string
}

func NewHub(provider identity.Provider) *Hub {
	return &Hub{
		server:      socket.NewServer(nil, nil),
		provider:    provider,
		connections: make(map[socket.SocketId]string),
	}
}

// CourtRoom names the room receiving events for one court.
func CourtRoom(courtID uint) socket.Room {
	return socket.Room("court:" + strconv.FormatUint(uint64(courtID), 10))
}

func (h *Hub) Start(router *gin.Engine, corsOrigins []string, debug bool) {
	eiolog.DEBUG = debug
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      strings.Join(corsOrigins, ","),
		Credentials: true,
	})

	h.server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		userID, ok := h.authenticate(client)
		if !ok {
			client.Disconnect(true)
			return
		}
		h.addConnection(client.Id(), userID)
		log.Printf("[SOCKET] Client %s connected (user %q)", client.Id(), userID)

		client.On(EventWatchCourt, func(args ...interface{}) {
			courtID, err := courtArg(args)
			if err != nil {
				client.Emit("error", gin.H{"error": err.Error()})
				return
			}
			client.Join(CourtRoom(courtID))
			client.Emit("court_watched", gin.H{"courtId": courtID})
		})

		client.On(EventUnwatchCourt, func(args ...interface{}) {
			courtID, err := courtArg(args)
			if err != nil {
				client.Emit("error", gin.H{"error": err.Error()})
				return
			}
			client.Leave(CourtRoom(courtID))
		})

		client.On("disconnecting", func(...interface{}) {
			h.removeConnection(client.Id())
			log.Printf("[SOCKET] Client %s disconnected", client.Id())
		})
	})

	router.POST("/socket.io/*f", gin.WrapH(h.server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(h.server.ServeHandler(c)))

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for range signalC {
			h.server.Close(nil)
			os.Exit(0)
		}
	}()

	log.Println("[SOCKET] Socket server started")
}

// authenticate accepts anonymous watchers. A client that sends an
// authorization token must send a valid one.
func (h *Hub) authenticate(client *socket.Socket) (string, bool) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		return "", true
	}
	raw, exists := authData["authorization"].(string)
	if !exists || raw == "" {
		return "", true
	}
	claims, err := h.provider.ParseAccessToken(strings.TrimPrefix(raw, "Bearer "))
	if err != nil {
		client.Emit("error", gin.H{"error": "Authentication failed: invalid token"})
		return "", false
	}
	return claims.UserID, true
}

func courtArg(args []interface{}) (uint, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing court id")
	}
	switch v := args[0].(type) {
	case float64:
		if v > 0 && v == float64(uint(v)) {
			return uint(v), nil
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			return uint(id), nil
		}
	case map[string]interface{}:
		return courtArg([]interface{}{v["courtId"]})
	}
	return 0, fmt.Errorf("invalid court id")
}

// BookingChanged is best-effort: emit failures are logged and dropped.
func (h *Hub) BookingChanged(event dto.BookingEvent) {
	if err := h.server.To(CourtRoom(event.CourtID)).Emit(EventBookingChanged, event); err != nil {
		log.Printf("[SOCKET] Error emitting %s for booking %d: %v", event.Action, event.BookingID, err)
	}
}

func (h *Hub) addConnection(id socket.SocketId, userID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.connections[id] = userID
}

func (h *Hub) removeConnection(id socket.SocketId) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.connections, id)
}

// Connections returns how many clients are connected.
func (h *Hub) Connections() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

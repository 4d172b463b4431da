// goldfish-web runs batches on demand and streams per-game progress and the
// final report to connected WebSocket clients.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/config"
	"github.com/magefree/goldfish-go/internal/sim"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	addr       = flag.String("addr", "", "listen address (overrides config)")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for demo
	},
}

// WSMessage is the wire envelope for both directions.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// RunRequest starts a batch.
type RunRequest struct {
	Runs int    `json:"runs"`
	Seed uint64 `json:"seed"`
}

// ProgressUpdate is sent as games finish.
type ProgressUpdate struct {
	BatchID string `json:"batch_id"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
}

// BatchReport carries the final aggregate.
type BatchReport struct {
	BatchID string     `json:"batch_id"`
	Report  sim.Report `json:"report"`
	Text    string     `json:"text"`
}

type Client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.Mutex
	running bool

	deck    []card.Card
	catalog *card.Catalog
	cfg     *config.Config
	logger  *zap.Logger
}

func newHub(deck []card.Card, catalog *card.Catalog, cfg *config.Config, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deck:       deck,
		catalog:    catalog,
		cfg:        cfg,
		logger:     logger,
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("client registered", zap.String("client", client.id))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("client unregistered", zap.String("client", client.id))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) broadcastJSON(msgType string, data any) {
	payload, err := json.Marshal(WSMessage{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal message", zap.Error(err))
		return
	}
	h.broadcast <- payload
}

func (h *Hub) handleMessage(client *Client, msg WSMessage) {
	switch msg.Type {
	case "run_batch":
		var req RunRequest
		raw, _ := json.Marshal(msg.Data)
		if err := json.Unmarshal(raw, &req); err != nil {
			h.sendError(client, fmt.Sprintf("bad run_batch payload: %v", err))
			return
		}
		h.startBatch(client, req)

	default:
		h.sendError(client, "unknown message type: "+msg.Type)
	}
}

func (h *Hub) sendError(client *Client, text string) {
	payload, _ := json.Marshal(WSMessage{Type: "error", Data: text})
	select {
	case client.send <- payload:
	default:
	}
}

// startBatch launches one batch at a time; progress and the final report go
// to every connected client.
func (h *Hub) startBatch(client *Client, req RunRequest) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.sendError(client, "a batch is already running")
		return
	}
	h.running = true
	h.mu.Unlock()

	if req.Runs <= 0 {
		req.Runs = h.cfg.Simulation.Runs
	}
	if req.Seed == 0 {
		req.Seed = h.cfg.Simulation.Seed
	}
	batchID := uuid.NewString()

	go func() {
		defer func() {
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
		}()

		runner := &sim.Runner{
			Deck:      h.deck,
			Catalog:   h.catalog,
			BaseSeed:  req.Seed,
			Runs:      req.Runs,
			Workers:   h.cfg.Simulation.Workers,
			TurnLimit: h.cfg.Simulation.TurnLimit,
			Logger:    h.logger,
			Progress: func(done, total int) {
				// Throttle to every 1% plus the final game.
				step := total / 100
				if step == 0 || done%step == 0 || done == total {
					h.broadcastJSON("progress", ProgressUpdate{
						BatchID: batchID, Done: done, Total: total,
					})
				}
			},
		}

		batch, err := runner.Run(context.Background())
		if err != nil {
			h.broadcastJSON("error", err.Error())
			return
		}
		report := sim.Aggregate(batch.Results)
		h.broadcastJSON("report", BatchReport{
			BatchID: batchID,
			Report:  report,
			Text:    report.String(),
		})
	}()
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			hub.logger.Warn("bad client message", zap.Error(err))
			continue
		}

		hub.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump(hub)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Web.Address = *addr
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	catalog, err := card.LoadEmbedded()
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	deck, err := card.ParseDeckList(card.SampleDeckList, catalog)
	if err != nil {
		logger.Fatal("failed to load deck", zap.Error(err))
	}

	hub := newHub(deck, catalog, cfg, logger)
	go hub.run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})

	logger.Info("progress server listening", zap.String("address", cfg.Web.Address))
	if err := http.ListenAndServe(cfg.Web.Address, nil); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

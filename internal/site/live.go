package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/render"
)

const writeWait = 10 * time.Second

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type     string `json:"type"` // navigate, query, toggle, clear or tab
	Fragment string `json:"fragment,omitempty"`
	Query    string `json:"query,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Value    string `json:"value,omitempty"`
	Index    int    `json:"index,omitempty"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type    string   `json:"type"` // render or error
	Mode    string   `json:"mode,omitempty"`
	HTML    string   `json:"html,omitempty"`
	Filters *filters `json:"filters,omitempty"`
	Message string   `json:"message,omitempty"`
}

type filters struct {
	Query string `json:"query"`
	Years []pill `json:"years"`
	Tags  []pill `json:"tags"`
}

type pill struct {
	Value  string `json:"value"`
	Active bool   `json:"active"`
}

// ParseEvent decodes one client message into a session event.
func ParseEvent(data []byte) (gallery.Event, error) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("invalid message format: %w", err)
	}
	switch msg.Type {
	case "navigate":
		return gallery.Navigate{Fragment: msg.Fragment}, nil
	case "query":
		return gallery.SetQuery{Query: msg.Query}, nil
	case "toggle":
		kind := gallery.PillKind(msg.Kind)
		if kind != gallery.PillYear && kind != gallery.PillTag {
			return nil, fmt.Errorf("unknown pill kind: %q", msg.Kind)
		}
		return gallery.TogglePill{Kind: kind, Value: msg.Value}, nil
	case "clear":
		return gallery.ClearFilters{}, nil
	case "tab":
		return gallery.SelectTab{Index: msg.Index}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %q", msg.Type)
	}
}

// liveConn serializes writes from the session loop and the read loop.
type liveConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *liveConn) send(msg serverMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

func (c *liveConn) sendError(message string) {
	if err := c.send(serverMessage{Type: "error", Message: message}); err != nil {
		log.Printf("site: websocket write error: %v", err)
	}
}

// viewSink renders each published view and pushes it to the browser.
type viewSink struct {
	renderer *render.Renderer
	conn     *liveConn
}

func (s *viewSink) Publish(ctx context.Context, v gallery.View) error {
	html, err := s.renderer.View(v)
	if err != nil {
		log.Printf("site: %v", err)
		s.conn.sendError("rendering failed")
		return nil
	}
	return s.conn.send(renderMessage(v, html))
}

func renderMessage(v gallery.View, html string) serverMessage {
	f := &filters{Query: v.Filter.Query, Years: []pill{}, Tags: []pill{}}
	for _, p := range v.YearPills {
		f.Years = append(f.Years, pill{Value: p.Value, Active: p.Active})
	}
	for _, p := range v.TagPills {
		f.Tags = append(f.Tags, pill{Value: p.Value, Active: p.Active})
	}
	return serverMessage{Type: "render", Mode: string(v.Mode), HTML: html, Filters: f}
}

// handleLive runs one gallery session per WebSocket connection.
func (s *Site) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("site: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	lc := &liveConn{conn: conn}
	sess := gallery.NewSession(s.source.Current(), s.loader, &viewSink{renderer: s.renderer, conn: lc})

	// The session outlives request-scoped deadlines; it ends with the socket.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("site: session %s: %v", sess.ID, err)
			conn.Close()
		}
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("site: websocket read: %v", err)
			}
			return
		}

		ev, err := ParseEvent(msg)
		if err != nil {
			lc.sendError(err.Error())
			continue
		}
		if err := sess.Dispatch(ctx, ev); err != nil {
			return
		}
	}
}

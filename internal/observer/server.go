package observer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/ecosim"
	"github.com/evocore/ecosim/internal/obslog"
)

var logger = obslog.New("observer")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
)

// Server exposes a running simulation to read-only websocket clients, per
// spec.md §6. Grounded on original_source/src/server/mod.rs's
// run_server/handle_client loop, with the HTTP upgrade handler shaped
// after niceyeti-tabular/server/server.go's Serve/serveWebsocket split.
type Server struct {
	addr   string
	cfg    config.Config
	stream *StateStream
}

// NewServer builds a Server bound to cfg's address and port, sampling
// coord at cfg.Server.UpdateRateHz.
func NewServer(cfg config.Config, coord *ecosim.Coordinator) *Server {
	return &Server{
		addr:   fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		cfg:    cfg,
		stream: NewStateStream(coord, cfg.Server.UpdateRateHz),
	}
}

// ListenAndServe starts the background sampling loop and blocks serving
// websocket connections at "/ws" until the process exits or the listener
// errors.
func (s *Server) ListenAndServe() error {
	go s.stream.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)

	logger.Infof("listening on %s", s.addr)
	if err := http.ListenAndServe(s.addr, mux); err != nil {
		return fmt.Errorf("observer: listen: %w", err)
	}
	return nil
}

// Stop halts the background sampling loop. Does not close the HTTP
// listener, matching http.ListenAndServe's lack of a shutdown hook in
// the teacher's style; callers that need graceful shutdown should wrap
// ListenAndServe's mux in an http.Server of their own.
func (s *Server) Stop() {
	s.stream.Stop()
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	logger.Infof("client connected: %s", r.RemoteAddr)

	var writeMu sync.Mutex
	writeJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	pulses := s.stream.Subscribe()
	defer s.stream.Unsubscribe(pulses)

	subscribedCreature, hasSubscription := uint64(0), false

	incoming := make(chan ClientRequest)
	readErrs := make(chan error, 1)
	go func() {
		defer close(incoming)
		for {
			var req ClientRequest
			if err := conn.ReadJSON(&req); err != nil {
				readErrs <- err
				return
			}
			incoming <- req
		}
	}()

	for {
		select {
		case <-pulses:
			var msg UpdateMessage
			s.stream.Snapshot(func(state *ecosim.SimulationState) {
				msg = NewUpdateMessage(state)
			})
			if err := writeJSON(msg); err != nil {
				logger.Warnf("write failed for %s: %v", r.RemoteAddr, err)
				return
			}
			if hasSubscription {
				var cu CreatureUpdateMessage
				s.stream.Snapshot(func(state *ecosim.SimulationState) {
					cu = NewCreatureUpdateMessage(state, s.cfg, subscribedCreature)
				})
				if err := writeJSON(cu); err != nil {
					logger.Warnf("write failed for %s: %v", r.RemoteAddr, err)
					return
				}
			}

		case req, ok := <-incoming:
			if !ok {
				return
			}
			s.handleRequest(req, writeJSON, &subscribedCreature, &hasSubscription)

		case <-readErrs:
			logger.Infof("client %s disconnected", r.RemoteAddr)
			return
		}
	}
}

func (s *Server) handleRequest(
	req ClientRequest,
	writeJSON func(any) error,
	subscribedCreature *uint64,
	hasSubscription *bool,
) {
	switch req.Type {
	case RequestGetState:
		var msg FullStateMessage
		s.stream.Snapshot(func(state *ecosim.SimulationState) {
			msg = NewFullStateMessage(state)
		})
		writeJSON(msg)

	case RequestGetRegion:
		var msg WorldRegionMessage
		s.stream.Snapshot(func(state *ecosim.SimulationState) {
			msg = NewWorldRegionMessage(state.World, req.X, req.Y, req.Width, req.Height)
		})
		writeJSON(msg)

	case RequestGetCreatureDetails:
		var msg CreatureDetailsMessage
		s.stream.Snapshot(func(state *ecosim.SimulationState) {
			msg = NewCreatureDetailsMessage(state, s.cfg, req.CreatureID)
		})
		writeJSON(msg)

	case RequestSubscribeCreature:
		*subscribedCreature = req.CreatureID
		*hasSubscription = true
	}
}

// decodeClientRequest is exposed for tests that exercise request parsing
// without a live websocket connection.
func decodeClientRequest(data []byte) (ClientRequest, error) {
	var req ClientRequest
	err := json.Unmarshal(data, &req)
	return req, err
}

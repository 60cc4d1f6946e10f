package web

import (
	"context"
	"encoding/json"
	"errors"
	"fenview/src"
	"fenview/src/base"
	"fenview/src/logic/convert/convfen"
	"fenview/src/logx"
	"fenview/ui/render"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap/zapcore"
)

const (
	defaultHistory = 20
	maxBodyBytes   = 1 << 16
)

type Server struct {
	router      *mux.Router
	session     *src.Session
	logger      logx.Logger
	renderer    *render.Renderer
	renderLock  sync.Mutex
	upgrader    websocket.Upgrader
	clients     map[*websocket.Conn]struct{}
	clientsLock sync.RWMutex
}

func NewServer(s *src.Session, opts render.Options, logger logx.Logger) (*Server, error) {
	r, err := render.NewRenderer(opts)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	srv := &Server{
		router:   mux.NewRouter(),
		session:  s,
		logger:   logger,
		renderer: r,
		clients:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	srv.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	srv.router.HandleFunc("/api/health", srv.healthHandler).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/validate", srv.validateHandler).Methods(http.MethodPost)
	srv.router.HandleFunc("/api/history", srv.historyHandler).Methods(http.MethodGet)
	srv.router.HandleFunc("/board.png", srv.pngHandler).Methods(http.MethodGet)
	srv.router.HandleFunc("/board.svg", srv.svgHandler).Methods(http.MethodGet)
	srv.router.HandleFunc("/ws", srv.wsHandler)
	return srv, nil
}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

// Handler wraps the router with the access log.
func (srv *Server) Handler() http.Handler {
	return handlers.LoggingHandler(srv.logger.Writer(zapcore.InfoLevel), srv.router)
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (srv *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Infof("listening on %s", addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.closeClients()
	err := hs.Shutdown(shutdownCtx)
	if errors.Is(<-errCh, http.ErrServerClosed) && err == nil {
		return nil
	}
	return err
}

func (srv *Server) Close() error {
	srv.closeClients()
	return srv.renderer.Close()
}

// ---- JSON ----

type positionJSON struct {
	Board       []string `json:"board"`
	ActiveColor string   `json:"active_color"`
	Castling    string   `json:"castling"`
	EnPassant   string   `json:"en_passant"`
	Halfmove    int      `json:"halfmove"`
	Fullmove    int      `json:"fullmove"`
}

type errorJSON struct {
	Field   string            `json:"field"`
	Kind    convfen.ErrorKind `json:"kind"`
	Message string            `json:"message"`
}

type validateResponse struct {
	Valid    bool          `json:"valid"`
	FEN      string        `json:"fen,omitempty"`
	Position *positionJSON `json:"position,omitempty"`
	Error    *errorJSON    `json:"error,omitempty"`
}

type validateRequest struct {
	FEN string `json:"fen"`
}

func newPositionJSON(pos base.Position) *positionJSON {
	rows := make([]string, 8)
	for r := 0; r < 8; r++ {
		buf := make([]byte, 8)
		for c := 0; c < 8; c++ {
			buf[c] = byte(pos.Board[r][c])
		}
		rows[r] = string(buf)
	}
	return &positionJSON{
		Board:       rows,
		ActiveColor: pos.ActiveColor.Letter(),
		Castling:    pos.Castling.String(),
		EnPassant:   pos.EnPassant.String(),
		Halfmove:    pos.Halfmove,
		Fullmove:    pos.Fullmove,
	}
}

func (srv *Server) validate(fen string) validateResponse {
	pos, err := srv.session.Validate(fen)
	if err != nil {
		resp := validateResponse{Valid: false, Error: &errorJSON{Message: err.Error()}}
		var fe *convfen.Error
		if errors.As(err, &fe) {
			resp.Error.Field = string(fe.Field)
			resp.Error.Kind = fe.Kind
		}
		return resp
	}
	return validateResponse{
		Valid:    true,
		FEN:      convfen.ConvertPositionToFEN(*pos),
		Position: newPositionJSON(*pos),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// ---- Handlers ----

func (srv *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (srv *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}
	resp := srv.validate(req.FEN)
	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (srv *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistory
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "Bad Request: limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := srv.session.History(r.Context(), limit)
	if err != nil {
		srv.logger.Errorf("error read history: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// boardFor parses ?fen= without touching the session, or falls back to the
// session board when the parameter is absent.
func (srv *Server) boardFor(w http.ResponseWriter, r *http.Request) (base.Board, bool) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		return srv.session.Board(), true
	}
	pos, err := convfen.ConvertFENToPosition(fen)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return base.Board{}, false
	}
	return pos.Board, true
}

func (srv *Server) pngHandler(w http.ResponseWriter, r *http.Request) {
	board, ok := srv.boardFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	srv.renderLock.Lock()
	defer srv.renderLock.Unlock()
	if err := srv.renderer.PNG(w, board); err != nil {
		srv.logger.Errorf("error render png: %v", err)
	}
}

func (srv *Server) svgHandler(w http.ResponseWriter, r *http.Request) {
	board, ok := srv.boardFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := srv.renderer.SVG(w, board); err != nil {
		srv.logger.Errorf("error render svg: %v", err)
	}
}

func (srv *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Warnf("websocket upgrade: %v", err)
		return
	}
	srv.logger.Debugf("new websocket connection from %s", conn.RemoteAddr())
	srv.clientsLock.Lock()
	srv.clients[conn] = struct{}{}
	srv.clientsLock.Unlock()

	go srv.serveClient(conn)
}

func (srv *Server) serveClient(conn *websocket.Conn) {
	defer func() {
		srv.clientsLock.Lock()
		delete(srv.clients, conn)
		srv.clientsLock.Unlock()
		conn.Close()
	}()
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				srv.logger.Warnf("error reading message: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := conn.WriteJSON(srv.validate(string(msg))); err != nil {
			srv.logger.Warnf("error writing message: %v", err)
			return
		}
	}
}

func (srv *Server) closeClients() {
	srv.clientsLock.RLock()
	defer srv.clientsLock.RUnlock()
	for conn := range srv.clients {
		conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

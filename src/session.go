package src

import (
	"context"
	"errors"
	"fenview/src/base"
	"fenview/src/logic/convert/convfen"
	"fenview/src/logic/history"
	"fenview/src/logx"
	"sync"
	"time"
)

type Status uint8

const (
	StatusWaiting Status = iota
	StatusValid
	StatusInvalid
	StatusCleared
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Session holds what the user currently sees: the last valid position and
// the outcome of the last attempt. A failed attempt never replaces the board.
type Session struct {
	mu       sync.RWMutex
	position *base.Position
	status   Status
	lastErr  error
	history  history.Store
	logger   logx.Logger
}

func NewSession(logger logx.Logger, store history.Store) *Session {
	if store == nil {
		store = history.NewMemoryStore(history.DefaultLimit)
	}
	return &Session{status: StatusWaiting, history: store, logger: logger}
}

func (s *Session) Validate(fen string) (*base.Position, error) {
	pos, err := convfen.ConvertFENToPosition(fen)

	entry := history.Entry{Time: time.Now().UTC(), FEN: fen, Valid: err == nil}
	if err != nil {
		var fe *convfen.Error
		if errors.As(err, &fe) {
			entry.Kind = fe.Kind
			entry.Message = fe.Message
			s.logger.Warnw("fen rejected", "field", string(fe.Field), "kind", fe.Kind.String(), "message", fe.Message, "input", fen)
		} else {
			entry.Message = err.Error()
			s.logger.Errorw("fen rejected", "error", err, "input", fen)
		}
	} else {
		s.logger.Debugw("fen accepted", "fen", convfen.ConvertPositionToFEN(*pos))
	}
	if herr := s.history.Push(context.Background(), entry); herr != nil {
		s.logger.Errorf("error push history: %v", herr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusInvalid
		s.lastErr = err
		return nil, err
	}
	s.position = pos
	s.status = StatusValid
	s.lastErr = nil

	cp := *pos
	return &cp, nil
}

// Current returns the last valid position.
func (s *Session) Current() (base.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.position == nil {
		return base.Position{}, false
	}
	return *s.position, true
}

// Board returns the board on display, empty before the first valid input.
func (s *Session) Board() base.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.position == nil {
		return base.EmptyBoard()
	}
	return s.position.Board
}

// FEN returns the canonical FEN of the current position, "" if none.
func (s *Session) FEN() string {
	pos, ok := s.Current()
	if !ok {
		return ""
	}
	return convfen.ConvertPositionToFEN(pos)
}

func (s *Session) Clear() {
	s.logger.Debug("clear session")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = nil
	s.status = StatusCleared
	s.lastErr = nil
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Session) History(ctx context.Context, n int) ([]history.Entry, error) {
	return s.history.Recent(ctx, n)
}

func (s *Session) Logger() logx.Logger {
	return s.logger
}

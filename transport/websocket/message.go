package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	actionNewGame  = "game:new"
	actionGetGame  = "game:get"
	actionGameTurn = "game:turn"
	actionGameHint = "game:hint"
	actionGameEval = "game:eval"
	actionLeave    = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Mark   string          `json:"mark,omitempty"`
	GameID string          `json:"game_id,omitempty"`
	Move   *tictactoe.Move `json:"move,omitempty"`
}

type ResponsePayload struct {
	Game   *entity.Game    `json:"game,omitempty"`
	GameID string          `json:"game_id,omitempty"`
	Move   *tictactoe.Move `json:"move,omitempty"`
	Value  *int            `json:"value,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action string, cause error) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: errorText(cause)})
}

// errorText - client-facing text; anything unexpected is reported as an internal error.
func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		return "invalid move"
	case errors.Is(err, apperror.ErrGameFinished):
		return apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrNotYourTurn):
		return apperror.ErrNotYourTurn.Error()
	case errors.Is(err, apperror.ErrGameNotFound):
		return apperror.ErrGameNotFound.Error()
	case errors.Is(err, apperror.ErrInvalidMark):
		return apperror.ErrInvalidMark.Error()
	case errors.Is(err, apperror.ErrConcurrentUpdate):
		return apperror.ErrConcurrentUpdate.Error()
	case errors.Is(err, errBadRequest):
		return err.Error()
	default:
		return "internal error"
	}
}

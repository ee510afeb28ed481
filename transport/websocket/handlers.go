package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

var errBadRequest = errors.New("bad request")

// Handlers reply with an error payload for client mistakes and return an error only when the
// connection itself fails.

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	req, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	game, err := that.uGame.NewGame(ctx, req.Mark)
	if err != nil {
		log.Warn("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	log.Info("game created", "game_id", game.ID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	game, err := that.uGame.GetGame(ctx, req.GameID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	req, err := decodeGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	if req.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: move is required", errBadRequest))
	}

	game, err := that.uGame.MakeTurn(ctx, req.GameID, *req.Move)
	if err != nil {
		log.Warn("turn rejected", "game_id", req.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameHint(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	move, err := that.uGame.Hint(ctx, req.GameID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Move: &move})
}

// handleGameEval - replies with the minimax value of the current board.
func (that *Server) handleGameEval(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, err := decodeGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	value, err := that.uGame.Evaluate(ctx, req.GameID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Value: &value})
}

func (that *Server) handleLeave(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleLeave")

	req, err := decodeGamePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	if err = that.uGame.Leave(ctx, req.GameID); err != nil {
		return that.sendErrorResponse(conn, msg.Action, err)
	}

	log.Info("game left", "game_id", req.GameID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{GameID: req.GameID})
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var req RequestPayload

	if len(msg.Payload) == 0 {
		return &req, nil
	}

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("%w: invalid payload", errBadRequest)
	}

	return &req, nil
}

func decodeGamePayload(msg *Message) (*RequestPayload, error) {
	req, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if req.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", errBadRequest)
	}

	return req, nil
}

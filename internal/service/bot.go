package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) (tictactoe.Move, error)
	Suggest(board tictactoe.Board) (tictactoe.Move, error)
	Evaluate(board tictactoe.Board) int
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn - plays the optimal move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) (tictactoe.Move, error) {
	move, err := that.Suggest(game.Board)
	if err != nil {
		return tictactoe.Move{}, err
	}

	if err = game.MakeTurn(game.BotMark, move); err != nil {
		return tictactoe.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}

// Suggest - returns the optimal move for whoever is to move on board.
func (that *botService) Suggest(board tictactoe.Board) (tictactoe.Move, error) {
	move, ok := tictactoe.Minimax(board)
	if !ok {
		return tictactoe.Move{}, ErrNoAvailableMoves
	}

	return move, nil
}

// Evaluate - outcome under perfect play: 1 X wins, -1 O wins, 0 draw.
func (that *botService) Evaluate(board tictactoe.Board) int {
	return tictactoe.Value(board)
}

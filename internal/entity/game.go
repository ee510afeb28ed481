package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

type Game struct {
	ID        string          `json:"id"`
	Board     tictactoe.Board `json:"board"`
	HumanMark tictactoe.Cell  `json:"human_mark"`
	BotMark   tictactoe.Cell  `json:"bot_mark"`
	Winner    string          `json:"winner"`
	Status    string          `json:"status"`
	Turn      tictactoe.Cell  `json:"player_turn"`
}

func NewGame(id string, humanMark tictactoe.Cell) *Game {
	return &Game{
		ID:        id,
		Board:     tictactoe.InitialState(),
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
		Turn:      tictactoe.MarkX,
		Status:    StatusOngoing,
	}
}

// UpdateGameState - derives status, winner and turn from the board.
func (that *Game) UpdateGameState() {
	if !tictactoe.Terminal(that.Board) {
		that.Status = StatusOngoing
		that.Winner = ""
		that.Turn = tictactoe.Player(that.Board)
		return
	}

	that.Status = StatusFinished
	that.Turn = tictactoe.Empty

	if winner := tictactoe.Winner(that.Board); winner != tictactoe.Empty {
		that.Winner = winner.String()
	} else {
		that.Winner = PlayerTie
	}
}

// MakeTurn - places mark on the board if it is that mark's turn.
func (that *Game) MakeTurn(mark tictactoe.Cell, move tictactoe.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if tictactoe.Player(that.Board) != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Result(that.Board, move)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

package apperror

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidMark  = errors.New("mark must be X or O")

	ErrConcurrentUpdate = errors.New("game was changed concurrently")

	ErrInvalidMove = tictactoe.ErrInvalidMove
)

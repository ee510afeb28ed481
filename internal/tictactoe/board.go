package tictactoe

import (
	"errors"
	"fmt"
)

// Size is the side length of the board.
const Size = 3

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

var ErrInvalidMove = errors.New("invalid move")

// winLines - rows, columns and both diagonals as (row, col) triples.
var winLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (c Cell) String() string {
	switch c {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

// Board is a row-major 3x3 grid. It is a value: assigning or passing it copies every cell.
type Board [Size][Size]Cell

// Move addresses the cell to fill.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) inRange() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

// Player returns the mark that moves next. X moves first, so X is returned on equal counts.
func Player(board Board) Cell {
	var xCount, oCount int

	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case MarkX:
				xCount++
			case MarkO:
				oCount++
			}
		}
	}

	if xCount <= oCount {
		return MarkX
	}

	return MarkO
}

// Actions returns every empty cell in row-major order.
func Actions(board Board) []Move {
	moves := make([]Move, 0, Size*Size)

	for row := range Size {
		for col := range Size {
			if board[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Result returns a new board with move filled by the player to move. The input is left untouched.
func Result(board Board, move Move) (Board, error) {
	if !move.inRange() {
		return board, fmt.Errorf("%w: (%d, %d) is off the board", ErrInvalidMove, move.Row, move.Col)
	}

	if board[move.Row][move.Col] != Empty {
		return board, fmt.Errorf("%w: (%d, %d) is already taken", ErrInvalidMove, move.Row, move.Col)
	}

	next := board
	next[move.Row][move.Col] = Player(board)

	return next, nil
}

// Winner returns the mark owning a full line, or Empty when no line is complete.
func Winner(board Board) Cell {
	for _, line := range winLines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]

		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// Terminal reports whether the game is over, by a win or a full board.
func Terminal(board Board) bool {
	if Winner(board) != Empty {
		return true
	}

	for _, row := range board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// Utility scores a terminal board: 1 if X has won, -1 if O has won, 0 otherwise.
func Utility(board Board) int {
	switch Winner(board) {
	case MarkX:
		return 1
	case MarkO:
		return -1
	default:
		return 0
	}
}

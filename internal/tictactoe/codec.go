package tictactoe

import (
	"errors"
	"fmt"
)

var ErrUnknownMark = errors.New("unknown mark")

// ParseCell converts "X", "O" or "" into a Cell.
func ParseCell(s string) (Cell, error) {
	switch s {
	case "X", "x":
		return MarkX, nil
	case "O", "o":
		return MarkO, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*c = cell

	return nil
}

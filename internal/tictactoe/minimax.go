package tictactoe

// Minimax returns an optimal move for the player to move. ok is false on a terminal board.
// Ties keep the first best move in Actions order.
func Minimax(board Board) (Move, bool) {
	if Terminal(board) {
		return Move{}, false
	}

	maximizing := Player(board) == MarkX

	var (
		best      Move
		bestScore int
		found     bool
	)

	for _, action := range Actions(board) {
		next := mustResult(board, action)

		var score int
		if maximizing {
			score = minValue(next)
		} else {
			score = maxValue(next)
		}

		if !found || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore, found = action, score, true
		}
	}

	return best, found
}

// Value returns the utility the board reaches under perfect play from both sides.
func Value(board Board) int {
	if Player(board) == MarkX {
		return maxValue(board)
	}

	return minValue(board)
}

func maxValue(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	value := -2
	for _, action := range Actions(board) {
		value = max(value, minValue(mustResult(board, action)))
	}

	return value
}

func minValue(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	value := 2
	for _, action := range Actions(board) {
		value = min(value, maxValue(mustResult(board, action)))
	}

	return value
}

// mustResult applies a move taken from Actions, which is always legal.
func mustResult(board Board, move Move) Board {
	next, err := Result(board, move)
	if err != nil {
		panic(err)
	}

	return next
}

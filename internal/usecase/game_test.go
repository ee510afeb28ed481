package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errStorageIsFull = errors.New("storage is full")

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) NewGame(humanMark tictactoe.Cell) *entity.Game {
	return m.Called(humanMark).Get(0).(*entity.Game)
}

func (m *mockGameService) CreateGame(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// ModifyGame - works on a copy of the stored game and writes it back only when fn succeeds.
func (m *mockGameService) ModifyGame(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	stored := args.Get(0).(*entity.Game)
	game := *stored
	if err := fn(&game); err != nil {
		return nil, err
	}

	*stored = game

	return &game, nil
}

func (m *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	return m.Called(ctx, gameID).Error(0)
}

func newUseCase(gameSvc *mockGameService) GameUseCase {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewGameUseCase(logger, gameSvc, service.NewBotService())
}

// stuckGame - a game saved while it was still the bot's (X) turn.
func stuckGame() *entity.Game {
	return entity.NewGame("g1", tictactoe.MarkO)
}

func TestGameUseCase_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human plays X and moves first", func(t *testing.T) {
		// Given: a game service building a game for X
		gameSvc := &mockGameService{}
		gameSvc.On("NewGame", tictactoe.MarkX).Return(entity.NewGame("g1", tictactoe.MarkX)).Once()
		gameSvc.On("CreateGame", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: starting a new game
		game, err := newUseCase(gameSvc).NewGame(ctx, "X")

		// Then: the board is empty and it is the human's turn
		require.NoError(t, err)
		assert.Equal(t, tictactoe.InitialState(), game.Board)
		assert.Equal(t, tictactoe.MarkX, game.Turn)
		gameSvc.AssertExpectations(t)
	})

	t.Run("Human plays O and the bot opens before the game is saved", func(t *testing.T) {
		// Given: a game service building a game for O
		gameSvc := &mockGameService{}
		gameSvc.On("NewGame", tictactoe.MarkO).Return(entity.NewGame("g1", tictactoe.MarkO)).Once()
		gameSvc.On("CreateGame", mock.Anything, mock.MatchedBy(func(game *entity.Game) bool {
			return len(tictactoe.Actions(game.Board)) == 8 && game.Turn == tictactoe.MarkO
		})).Return(nil).Once()

		// When: starting a new game
		game, err := newUseCase(gameSvc).NewGame(ctx, "o")

		// Then: the single save already holds the bot's X
		require.NoError(t, err)
		assert.Len(t, tictactoe.Actions(game.Board), 8)
		assert.Equal(t, tictactoe.MarkO, game.Turn)
		gameSvc.AssertExpectations(t)
	})

	t.Run("Invalid mark", func(t *testing.T) {
		for _, mark := range []string{"", "Z", "XO"} {
			_, err := newUseCase(&mockGameService{}).NewGame(ctx, mark)

			assert.ErrorIs(t, err, apperror.ErrInvalidMark, "mark %q", mark)
		}
	})

	t.Run("Storage failure leaves nothing half-made", func(t *testing.T) {
		// Given: storage rejects the new game
		gameSvc := &mockGameService{}
		gameSvc.On("NewGame", tictactoe.MarkO).Return(entity.NewGame("g1", tictactoe.MarkO)).Once()
		gameSvc.On("CreateGame", mock.Anything, mock.Anything).Return(errStorageIsFull).Once()

		// When: starting a new game
		game, err := newUseCase(gameSvc).NewGame(ctx, "O")

		// Then: the error surfaces and storage was written exactly once
		require.ErrorIs(t, err, errStorageIsFull)
		assert.Nil(t, game)
		gameSvc.AssertNumberOfCalls(t, "CreateGame", 1)
		gameSvc.AssertNotCalled(t, "ModifyGame", mock.Anything, mock.Anything)
	})
}

func TestGameUseCase_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human's turn is returned as stored", func(t *testing.T) {
		stored := entity.NewGame("g1", tictactoe.MarkX)
		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()

		game, err := newUseCase(gameSvc).GetGame(ctx, "g1")

		require.NoError(t, err)
		assert.Equal(t, stored, game)
		gameSvc.AssertNotCalled(t, "ModifyGame", mock.Anything, mock.Anything)
	})

	t.Run("Stuck bot turn is played", func(t *testing.T) {
		// Given: a game stored on the bot's turn
		stored := stuckGame()
		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(stored, nil).Once()

		// When: loading it
		game, err := newUseCase(gameSvc).GetGame(ctx, "g1")

		// Then: the bot has moved and the human is to play
		require.NoError(t, err)
		assert.Len(t, tictactoe.Actions(game.Board), 8)
		assert.Equal(t, tictactoe.MarkO, game.Turn)
		assert.Equal(t, game.Board, stored.Board)
	})
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot replies to the human move", func(t *testing.T) {
		// Given: a fresh game where the human plays X
		gameSvc := &mockGameService{}
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(entity.NewGame("g1", tictactoe.MarkX), nil).Once()

		// When: the human takes the centre
		game, err := newUseCase(gameSvc).MakeTurn(ctx, "g1", tictactoe.Move{Row: 1, Col: 1})

		// Then: both marks are on the board and X is to move again
		require.NoError(t, err)
		assert.Equal(t, tictactoe.MarkX, game.Board[1][1])
		assert.Len(t, tictactoe.Actions(game.Board), 7)
		assert.Equal(t, tictactoe.MarkX, game.Turn)
		gameSvc.AssertExpectations(t)
	})

	t.Run("Human move on a stuck game follows the bot's opening", func(t *testing.T) {
		// Given: a game stored before the bot's opening move
		stored := stuckGame()
		gameSvc := &mockGameService{}
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(stored, nil).Once()

		// When: the human (O) plays a cell the bot did not take
		move := tictactoe.Move{Row: 2, Col: 1}
		game, err := newUseCase(gameSvc).MakeTurn(ctx, "g1", move)

		// Then: the bot opened, the human moved, the bot replied
		require.NoError(t, err)
		assert.Equal(t, tictactoe.MarkO, game.Board[move.Row][move.Col])
		assert.Len(t, tictactoe.Actions(game.Board), 6)
		assert.Equal(t, tictactoe.MarkO, game.Turn)
	})

	t.Run("Human move finishes the game", func(t *testing.T) {
		// Given: the human (X) can complete the top row
		stored := &entity.Game{
			ID:        "g1",
			HumanMark: tictactoe.MarkX,
			BotMark:   tictactoe.MarkO,
			Board: tictactoe.Board{
				{tictactoe.MarkX, tictactoe.MarkX, tictactoe.Empty},
				{tictactoe.MarkO, tictactoe.MarkO, tictactoe.Empty},
				{tictactoe.Empty, tictactoe.Empty, tictactoe.Empty},
			},
		}
		stored.UpdateGameState()

		gameSvc := &mockGameService{}
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(stored, nil).Once()

		// When: the human plays the winning move
		game, err := newUseCase(gameSvc).MakeTurn(ctx, "g1", tictactoe.Move{Row: 0, Col: 2})

		// Then: the game is over and the bot did not move
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, "X", game.Winner)
		assert.Equal(t, tictactoe.Empty, game.Board[1][2])
	})

	t.Run("Occupied cell is not stored", func(t *testing.T) {
		stored := entity.NewGame("g1", tictactoe.MarkO)
		require.NoError(t, stored.MakeTurn(tictactoe.MarkX, tictactoe.Move{Row: 0, Col: 0}))
		before := *stored

		gameSvc := &mockGameService{}
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(stored, nil).Once()

		_, err := newUseCase(gameSvc).MakeTurn(ctx, "g1", tictactoe.Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, *stored)
	})

	t.Run("Unknown game", func(t *testing.T) {
		gameSvc := &mockGameService{}
		gameSvc.On("ModifyGame", mock.Anything, "404").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := newUseCase(gameSvc).MakeTurn(ctx, "404", tictactoe.Move{})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Full game against the bot ends without a human win", func(t *testing.T) {
		// Given: a stored game that the mock keeps in memory
		stored := entity.NewGame("g1", tictactoe.MarkX)
		gameSvc := &mockGameService{}
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(stored, nil)

		uc := newUseCase(gameSvc)

		// When: the human always plays the first free cell
		for !stored.IsFinished() {
			_, err := uc.MakeTurn(ctx, "g1", tictactoe.Actions(stored.Board)[0])
			require.NoError(t, err)
		}

		// Then: the bot never loses
		assert.NotEqual(t, "X", stored.Winner)
	})
}

func TestGameUseCase_Hint(t *testing.T) {
	ctx := context.Background()

	t.Run("Suggests the blocking move", func(t *testing.T) {
		// Given: the human plays O and X threatens the bottom row
		stored := &entity.Game{
			ID:        "g1",
			HumanMark: tictactoe.MarkO,
			BotMark:   tictactoe.MarkX,
			Board: tictactoe.Board{
				{tictactoe.Empty, tictactoe.Empty, tictactoe.Empty},
				{tictactoe.Empty, tictactoe.MarkO, tictactoe.Empty},
				{tictactoe.MarkX, tictactoe.MarkX, tictactoe.Empty},
			},
		}
		stored.UpdateGameState()

		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()

		move, err := newUseCase(gameSvc).Hint(ctx, "g1")

		require.NoError(t, err)
		assert.Equal(t, tictactoe.Move{Row: 2, Col: 2}, move)
	})

	t.Run("Stuck game hints for the human's mark", func(t *testing.T) {
		// Given: a game stored before the bot's opening move
		stored := stuckGame()
		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(stored, nil).Once()

		// When: the human (O) asks for a hint
		move, err := newUseCase(gameSvc).Hint(ctx, "g1")

		// Then: the hint is an O move on the board after the bot's opening
		require.NoError(t, err)
		assert.Equal(t, tictactoe.MarkO, tictactoe.Player(stored.Board))
		assert.Contains(t, tictactoe.Actions(stored.Board), move)
	})

	t.Run("Stuck game that cannot be caught up", func(t *testing.T) {
		// Given: a stuck game whose bot catch-up cannot be stored
		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stuckGame(), nil).Once()
		gameSvc.On("ModifyGame", mock.Anything, "g1").Return(nil, errStorageIsFull).Once()

		// When: the human asks for a hint
		_, err := newUseCase(gameSvc).Hint(ctx, "g1")

		// Then: no hint for the bot's side is handed out
		require.ErrorIs(t, err, errStorageIsFull)
	})

	t.Run("Not the human's turn", func(t *testing.T) {
		// Given: a stored record where the side to move is not the human's
		stored := &entity.Game{ID: "g1", HumanMark: tictactoe.MarkO}
		stored.UpdateGameState()

		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()

		_, err := newUseCase(gameSvc).Hint(ctx, "g1")

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Finished game", func(t *testing.T) {
		stored := &entity.Game{ID: "g1", Board: tictactoe.Board{
			{tictactoe.MarkX, tictactoe.MarkX, tictactoe.MarkX},
			{tictactoe.MarkO, tictactoe.MarkO, tictactoe.Empty},
			{tictactoe.Empty, tictactoe.Empty, tictactoe.Empty},
		}}
		stored.UpdateGameState()

		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()

		_, err := newUseCase(gameSvc).Hint(ctx, "g1")

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGameUseCase_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh game is a draw", func(t *testing.T) {
		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(entity.NewGame("g1", tictactoe.MarkX), nil).Once()

		value, err := newUseCase(gameSvc).Evaluate(ctx, "g1")

		require.NoError(t, err)
		assert.Equal(t, 0, value)
	})

	t.Run("Won game reports its winner", func(t *testing.T) {
		stored := &entity.Game{ID: "g1", HumanMark: tictactoe.MarkX, BotMark: tictactoe.MarkO, Board: tictactoe.Board{
			{tictactoe.MarkX, tictactoe.MarkX, tictactoe.MarkX},
			{tictactoe.MarkO, tictactoe.MarkO, tictactoe.Empty},
			{tictactoe.Empty, tictactoe.Empty, tictactoe.Empty},
		}}
		stored.UpdateGameState()

		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "g1").Return(stored, nil).Once()

		value, err := newUseCase(gameSvc).Evaluate(ctx, "g1")

		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})

	t.Run("Unknown game", func(t *testing.T) {
		gameSvc := &mockGameService{}
		gameSvc.On("GetGameByID", mock.Anything, "404").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := newUseCase(gameSvc).Evaluate(ctx, "404")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameUseCase_Leave(t *testing.T) {
	ctx := context.Background()

	gameSvc := &mockGameService{}
	gameSvc.On("DeleteGame", mock.Anything, "g1").Return(nil).Once()
	gameSvc.On("DeleteGame", mock.Anything, "404").Return(apperror.ErrGameNotFound).Once()

	uc := newUseCase(gameSvc)

	require.NoError(t, uc.Leave(ctx, "g1"))
	require.ErrorIs(t, uc.Leave(ctx, "404"), apperror.ErrGameNotFound)
	gameSvc.AssertExpectations(t)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type GameUseCase interface {
	NewGame(ctx context.Context, mark string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	Leave(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, move tictactoe.Move) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (tictactoe.Move, error)
	Evaluate(ctx context.Context, gameID string) (int, error)
}

type gameService interface {
	NewGame(humanMark tictactoe.Cell) *entity.Game
	CreateGame(ctx context.Context, game *entity.Game) error
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ModifyGame(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (tictactoe.Move, error)
	Suggest(board tictactoe.Board) (tictactoe.Move, error)
	Evaluate(board tictactoe.Board) int
}

type gameUseCase struct {
	logger *slog.Logger

	gameService gameService
	botService  botService
}

func NewGameUseCase(logger *slog.Logger, gameService gameService, botService botService) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		gameService: gameService,
		botService:  botService,
	}
}

// NewGame - starts a game against the bot. When the bot holds X it opens before the game is saved.
func (that *gameUseCase) NewGame(ctx context.Context, mark string) (*entity.Game, error) {
	humanMark, err := tictactoe.ParseCell(mark)
	if err != nil || humanMark == tictactoe.Empty {
		return nil, fmt.Errorf("%w: got %q", apperror.ErrInvalidMark, mark)
	}

	game := that.gameService.NewGame(humanMark)

	if err = that.botTurn(game); err != nil {
		return nil, err
	}

	if err = that.gameService.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	that.logger.Debug("game created", "game_id", game.ID, "human_mark", humanMark.String())

	return game, nil
}

// GetGame - returns the game, first letting the bot move if a previous reply was never stored.
func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if !game.IsBotTurn() {
		return game, nil
	}

	game, err = that.gameService.ModifyGame(ctx, gameID, that.botTurn)
	if err != nil {
		return nil, fmt.Errorf("failed to catch up bot turn: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move and the bot's reply as one atomic update.
func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, move tictactoe.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", gameID)

	game, err := that.gameService.ModifyGame(ctx, gameID, func(game *entity.Game) error {
		if err := that.botTurn(game); err != nil {
			return err
		}

		if err := game.MakeTurn(game.HumanMark, move); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		return that.botTurn(game)
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

// Hint - returns the optimal move for the human.
func (that *gameUseCase) Hint(ctx context.Context, gameID string) (tictactoe.Move, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return tictactoe.Move{}, err
	}

	if game.IsFinished() {
		return tictactoe.Move{}, apperror.ErrGameFinished
	}

	if game.Turn != game.HumanMark {
		return tictactoe.Move{}, apperror.ErrNotYourTurn
	}

	move, err := that.botService.Suggest(game.Board)
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return move, nil
}

// Evaluate - outcome of the game under perfect play from here: 1 X wins, -1 O wins, 0 draw.
func (that *gameUseCase) Evaluate(ctx context.Context, gameID string) (int, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return 0, err
	}

	return that.botService.Evaluate(game.Board), nil
}

// Leave - drops the game from storage.
func (that *gameUseCase) Leave(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to leave game: %w", err)
	}

	that.logger.Debug("game left", "game_id", gameID)

	return nil
}

// botTurn - plays the bot's move if it is the bot's turn, otherwise does nothing.
func (that *gameUseCase) botTurn(game *entity.Game) error {
	if !game.IsBotTurn() {
		return nil
	}

	move, err := that.botService.MakeTurn(game)
	if err != nil {
		return fmt.Errorf("bot turn failed: %w", err)
	}

	that.logger.Debug("bot moved", "game_id", game.ID, "row", move.Row, "col", move.Col, "status", game.Status)

	return nil
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship/internal/model"
)

const boardSize = model.BoardSize

// cellBody is the request body addressing a single cell
type cellBody struct {
	Index *int `json:"index,omitempty"`
	X     *int `json:"x,omitempty"`
	Y     *int `json:"y,omitempty"`
}

// parseCell accepts a linear index ("42") or coordinates ("2,4" as x,y)
func parseCell(s string) (cellBody, error) {
	s = strings.TrimSpace(s)
	if xs, ys, ok := strings.Cut(s, ","); ok {
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return cellBody{}, fmt.Errorf("invalid x coordinate %q", xs)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return cellBody{}, fmt.Errorf("invalid y coordinate %q", ys)
		}
		if x < 0 || x >= boardSize || y < 0 || y >= boardSize {
			return cellBody{}, fmt.Errorf("cell %d,%d is off the board", x, y)
		}
		return cellBody{X: &x, Y: &y}, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return cellBody{}, fmt.Errorf("cell must be an index 0-%d or x,y", boardSize*boardSize-1)
	}
	if i < 0 || i >= boardSize*boardSize {
		return cellBody{}, fmt.Errorf("index %d is off the board", i)
	}
	return cellBody{Index: &i}, nil
}

func strategyUsage() string {
	return "Computer targeting strategy: " + strings.Join(model.ValidStrategies(), ", ")
}

// requireGame returns the current game ID or an error explaining how to set one
func requireGame() (string, error) {
	if cfg.GameID == "" {
		return "", fmt.Errorf("no current game: run 'battleship game new' or pass --game")
	}
	return cfg.GameID, nil
}

func gamePath(id, suffix string) string {
	return "/api/v1/games/" + id + suffix
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameRotateCmd())
	cmd.AddCommand(newGamePreviewCmd())
	cmd.AddCommand(newGameClearPreviewCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameFireCmd())
	cmd.AddCommand(newGameReplyCmd())
	cmd.AddCommand(newGameEndCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game and make it the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			body := map[string]string{"strategy": strategy}
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveGame(result.ID); err != nil {
				return fmt.Errorf("failed to save game: %w", err)
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", model.StrategyRandom, strategyUsage())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireGame()
			if err != nil {
				return err
			}

			var result GameState
			if err := client.Get(gamePath(id, ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Toggle the orientation of the next ship",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameState("/rotate", nil)
		},
	}
}

func newGamePreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <cell>",
		Short: "Preview the next ship at a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseCell(args[0])
			if err != nil {
				return err
			}
			return postGameState("/preview", body)
		},
	}
}

func newGameClearPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-preview",
		Short: "Clear the placement preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireGame()
			if err != nil {
				return err
			}

			var result GameState
			if err := client.Delete(gamePath(id, "/preview"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <cell>",
		Short: "Place the next ship with its origin at a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireGame()
			if err != nil {
				return err
			}
			body, err := parseCell(args[0])
			if err != nil {
				return err
			}

			var result PlaceResult
			if err := client.Post(gamePath(id, "/place"), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <cell>",
		Short: "Fire at a cell on the computer's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireGame()
			if err != nil {
				return err
			}
			body, err := parseCell(args[0])
			if err != nil {
				return err
			}

			var result ShotResult
			if err := client.Post(gamePath(id, "/fire"), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameReplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reply",
		Short: "Make the computer take its pending shot now",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireGame()
			if err != nil {
				return err
			}

			var result ShotResult
			if err := client.Post(gamePath(id, "/opponent-turn"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireGame()
			if err != nil {
				return err
			}

			if err := client.Delete(gamePath(id, ""), nil); err != nil {
				return err
			}
			if err := cfg.ClearGame(id); err != nil {
				return fmt.Errorf("failed to clear game file: %w", err)
			}

			NewOutput(cfg.Output).PrintMessage("Game " + id + " ended")
			return nil
		},
	}
}

func postGameState(suffix string, body any) error {
	id, err := requireGame()
	if err != nil {
		return err
	}

	var result GameState
	if err := client.Post(gamePath(id, suffix), body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output).Print(result)
	return nil
}

package response

import (
	"time"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/game"
)

// Cursor is the human's placement progress
type Cursor struct {
	ShipIndex   int    `json:"ship_index"`
	ShipLength  int    `json:"ship_length,omitempty"`
	Orientation string `json:"orientation"`
}

// Board is one side's board as the human may see it
type Board struct {
	Ships  []int `json:"ships"`
	Hits   []int `json:"hits"`
	Misses []int `json:"misses"`
	// HitCount is the number of hits scored against this board
	HitCount int `json:"hit_count"`
}

// GameState represents the full state of a game
type GameState struct {
	ID            string    `json:"id"`
	Phase         string    `json:"phase"`
	Turn          string    `json:"turn,omitempty"`
	Winner        string    `json:"winner,omitempty"`
	Strategy      string    `json:"strategy"`
	Status        string    `json:"status"`
	Cursor        *Cursor   `json:"cursor,omitempty"`
	Preview       []int     `json:"preview,omitempty"`
	PlayerBoard   Board     `json:"player_board"`
	OpponentBoard Board     `json:"opponent_board"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameStateFromModel builds the human's view of a game. Opponent ships are
// only revealed once the game is over.
func GameStateFromModel(g *model.Game) GameState {
	state := GameState{
		ID:            string(g.ID),
		Phase:         string(g.Phase),
		Winner:        string(g.Winner),
		Strategy:      g.OpponentStrategy,
		Status:        g.Status,
		Preview:       indices(g.PreviewCells),
		PlayerBoard:   boardFromModel(g, model.SidePlayer, true),
		OpponentBoard: boardFromModel(g, model.SideOpponent, g.IsOver()),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	if g.Phase == model.PhaseActivePlay {
		state.Turn = string(g.Turn)
	}
	if g.Phase == model.PhasePlacement {
		state.Cursor = &Cursor{
			ShipIndex:   g.Cursor.ShipIdx,
			ShipLength:  g.Cursor.ShipLength(),
			Orientation: string(g.Cursor.Orientation),
		}
	}
	return state
}

func boardFromModel(g *model.Game, owner model.Side, revealShips bool) Board {
	b := Board{Ships: []int{}, Hits: []int{}, Misses: []int{}}
	if revealShips {
		b.Ships = indices(g.Fleets[owner].Cells.Sorted())
	}
	attacker := owner.Other()
	for _, target := range g.Shots[attacker].Targets.Sorted() {
		if g.Fleets[owner].Cells.Contains(target) {
			b.Hits = append(b.Hits, int(target))
		} else {
			b.Misses = append(b.Misses, int(target))
		}
	}
	b.HitCount = g.HitsFor(attacker)
	return b
}

func indices(in []model.Index) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, idx := range in {
		out[i] = int(idx)
	}
	return out
}

// GameSummary is a short form of a game for listings
type GameSummary struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	Winner    string    `json:"winner,omitempty"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameList is the response for listing games
type GameList struct {
	Games []GameSummary `json:"games"`
}

// GameListFromModel converts a slice of games
func GameListFromModel(games []*model.Game) GameList {
	list := GameList{Games: make([]GameSummary, 0, len(games))}
	for _, g := range games {
		list.Games = append(list.Games, GameSummary{
			ID:        string(g.ID),
			Phase:     string(g.Phase),
			Winner:    string(g.Winner),
			Status:    g.Status,
			UpdatedAt: g.UpdatedAt,
		})
	}
	return list
}

// Ship is a placed ship
type Ship struct {
	Origin      int    `json:"origin"`
	Length      int    `json:"length"`
	Orientation string `json:"orientation"`
	Cells       []int  `json:"cells"`
}

// PlacementResponse is the response for placing a ship
type PlacementResponse struct {
	Ship     Ship      `json:"ship"`
	Complete bool      `json:"complete"`
	Game     GameState `json:"game"`
}

// PlacementResponseFromResult converts a controller placement result
func PlacementResponseFromResult(r *game.PlacementResult) PlacementResponse {
	return PlacementResponse{
		Ship: Ship{
			Origin:      int(r.Ship.Origin),
			Length:      r.Ship.Length,
			Orientation: string(r.Ship.Orientation),
			Cells:       indices(r.Ship.Cells),
		},
		Complete: r.Complete,
		Game:     GameStateFromModel(r.Game),
	}
}

// ShotResponse is the response for a resolved shot
type ShotResponse struct {
	Attacker string    `json:"attacker"`
	Index    int       `json:"index"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Outcome  string    `json:"outcome"`
	Hits     int       `json:"hits"`
	Winner   string    `json:"winner,omitempty"`
	Game     GameState `json:"game"`
}

// ShotResponseFromResult converts a controller shot result
func ShotResponseFromResult(r *game.ShotResult) ShotResponse {
	coord := model.ToCoords(r.Target)
	return ShotResponse{
		Attacker: string(r.Attacker),
		Index:    int(r.Target),
		X:        coord.X,
		Y:        coord.Y,
		Outcome:  string(r.Outcome),
		Hits:     r.Hits,
		Winner:   string(r.Winner),
		Game:     GameStateFromModel(r.Game),
	}
}

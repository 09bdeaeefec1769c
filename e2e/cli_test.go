package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship/internal/api"
	"github.com/mcoot/battleship/internal/factory"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	gameFile   string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "battleship-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/battleship")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		gameFile:   filepath.Join(t.TempDir(), "game"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--game-file", r.gameFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "BATTLESHIP_GAME=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer serves a deterministic app on a free local port.
// Random values must be queued on the returned app before the first request.
func startTestServer(t *testing.T) (*factory.TestApp, string, func()) {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})
	server := api.NewServer(router, api.DefaultServerConfig(), testutil.NopLogger())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = server.Serve(listener)
	}()

	return app, "http://" + listener.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		app.HubManager.Close()
	}
}

// Response types for JSON parsing
type boardResponse struct {
	Ships    []int `json:"ships"`
	Hits     []int `json:"hits"`
	Misses   []int `json:"misses"`
	HitCount int   `json:"hit_count"`
}

type gameStateResponse struct {
	ID            string        `json:"id"`
	Phase         string        `json:"phase"`
	Turn          string        `json:"turn"`
	Winner        string        `json:"winner"`
	Status        string        `json:"status"`
	PlayerBoard   boardResponse `json:"player_board"`
	OpponentBoard boardResponse `json:"opponent_board"`
}

type placeResponse struct {
	Complete bool              `json:"complete"`
	Game     gameStateResponse `json:"game"`
}

type shotResponse struct {
	Attacker string            `json:"attacker"`
	Index    int               `json:"index"`
	Outcome  string            `json:"outcome"`
	Hits     int               `json:"hits"`
	Winner   string            `json:"winner"`
	Game     gameStateResponse `json:"game"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func unmarshal[T any](t *testing.T, output string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(output), &out), "output: %s", output)
	return out
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	_, url, shutdown := startTestServer(t)
	defer shutdown()

	cli := newCLIRunner(t, url)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "ok", unmarshal[healthResponse](t, output).Status)
}

func TestCLI_FullGameFlow(t *testing.T) {
	app, url, shutdown := startTestServer(t)
	defer shutdown()

	// The computer's fleet runs down columns 5-8; its shots walk back from 99
	app.MockRandom.QueueString("GAME01")
	for _, origin := range []model.Index{5, 6, 7, 8} {
		app.MockRandom.QueueShip(model.Vertical, origin)
	}
	for i := range model.TotalShipCells {
		app.MockRandom.QueueTargets(model.Index(99 - i))
	}

	cli := newCLIRunner(t, url)

	output, err := cli.run("game", "new")
	require.NoError(t, err, "output: %s", output)
	created := unmarshal[gameStateResponse](t, output)
	assert.Equal(t, "GAME01", created.ID)
	assert.Equal(t, "placement", created.Phase)

	// The game file now names the current game
	saved, err := os.ReadFile(cli.gameFile)
	require.NoError(t, err)
	assert.Equal(t, "GAME01", string(saved))

	for i, cell := range []string{"0", "0,1", "0,2", "30"} {
		output, err = cli.run("game", "place", cell)
		require.NoError(t, err, "place %s: %s", cell, output)
		placed := unmarshal[placeResponse](t, output)
		assert.Equal(t, i == 3, placed.Complete)
	}

	output, err = cli.run("game", "show")
	require.NoError(t, err, "output: %s", output)
	state := unmarshal[gameStateResponse](t, output)
	assert.Equal(t, "active_play", state.Phase)
	assert.Equal(t, "player", state.Turn)
	assert.Len(t, state.PlayerBoard.Ships, model.TotalShipCells)
	assert.Empty(t, state.OpponentBoard.Ships)

	// Sink the computer: column by column, a reply after every shot
	var targets []int
	for col, length := range map[int]int{5: 2, 6: 3, 7: 4, 8: 5} {
		for row := range length {
			targets = append(targets, row*model.BoardSize+col)
		}
	}

	for i, target := range targets {
		output, err = cli.run("game", "fire", strconv.Itoa(target))
		require.NoError(t, err, "fire %d: %s", target, output)
		shot := unmarshal[shotResponse](t, output)
		assert.Equal(t, "hit", shot.Outcome)

		if i == len(targets)-1 {
			assert.Equal(t, "player", shot.Winner)
			assert.Equal(t, "You win!", shot.Game.Status)
			assert.Len(t, shot.Game.OpponentBoard.Ships, model.TotalShipCells)
			break
		}

		output, err = cli.run("game", "reply")
		require.NoError(t, err, "reply: %s", output)
		reply := unmarshal[shotResponse](t, output)
		assert.Equal(t, "opponent", reply.Attacker)
		assert.Equal(t, 99-i, reply.Index)
	}

	// Game over rejects further shots
	output, err = cli.run("game", "fire", "9,9")
	assert.Error(t, err)
	assert.Contains(t, output, "GAME_OVER")

	output, err = cli.run("game", "end")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "Game GAME01 ended", unmarshal[messageResponse](t, output).Message)

	_, err = os.Stat(cli.gameFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_PlacementCommands(t *testing.T) {
	app, url, shutdown := startTestServer(t)
	defer shutdown()
	app.MockRandom.QueueString("GAME01")

	cli := newCLIRunner(t, url)

	_, err := cli.run("game", "new")
	require.NoError(t, err)

	output, err := cli.run("game", "rotate")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, unmarshal[gameStateResponse](t, output).Status, "vertical")

	output, err = cli.run("game", "preview", "4,2")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"preview"`)

	output, err = cli.run("game", "clear-preview")
	require.NoError(t, err, "output: %s", output)
	assert.NotContains(t, output, `"preview"`)

	// Vertical size 2 from the bottom row runs off the board
	output, err = cli.run("game", "place", "95")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_PLACEMENT")
}

func TestCLI_ErrorHandling(t *testing.T) {
	app, url, shutdown := startTestServer(t)
	defer shutdown()
	app.MockRandom.QueueString("GAME01")

	cli := newCLIRunner(t, url)

	// No current game yet
	output, err := cli.run("game", "show")
	assert.Error(t, err)
	assert.Contains(t, output, "no current game")

	output, err = cli.run("--game", "NOPE", "game", "show")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	_, err = cli.run("game", "new")
	require.NoError(t, err)

	output, err = cli.run("game", "fire", "0")
	assert.Error(t, err)
	assert.Contains(t, output, "PLACEMENT_IN_PROGRESS")

	output, err = cli.run("game", "fire", "10,0")
	assert.Error(t, err)
	assert.Contains(t, output, "off the board")
}

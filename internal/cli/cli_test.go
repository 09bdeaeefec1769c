package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	body, err := parseCell("42")
	require.NoError(t, err)
	require.NotNil(t, body.Index)
	assert.Equal(t, 42, *body.Index)
	assert.Nil(t, body.X)

	body, err = parseCell(" 3, 7 ")
	require.NoError(t, err)
	require.NotNil(t, body.X)
	assert.Equal(t, 3, *body.X)
	assert.Equal(t, 7, *body.Y)
	assert.Nil(t, body.Index)

	for _, bad := range []string{"", "abc", "100", "-1", "10,0", "0,10", "a,1", "1,b"} {
		_, err := parseCell(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestConfigGameFile(t *testing.T) {
	c := &Config{GameFile: filepath.Join(t.TempDir(), "nested", "game")}

	// Missing file is not an error
	require.NoError(t, c.LoadGame())
	assert.Empty(t, c.GameID)

	require.NoError(t, c.SaveGame("GAME01"))

	loaded := &Config{GameFile: c.GameFile}
	require.NoError(t, loaded.LoadGame())
	assert.Equal(t, "GAME01", loaded.GameID)

	// An explicit game wins over the file
	explicit := &Config{GameFile: c.GameFile, GameID: "OTHER"}
	require.NoError(t, explicit.LoadGame())
	assert.Equal(t, "OTHER", explicit.GameID)

	// Clearing a different game leaves the file alone
	require.NoError(t, c.ClearGame("OTHER"))
	require.NoError(t, loaded.LoadGame())
	assert.Equal(t, "GAME01", loaded.GameID)

	require.NoError(t, c.ClearGame("GAME01"))
	cleared := &Config{GameFile: c.GameFile}
	require.NoError(t, cleared.LoadGame())
	assert.Empty(t, cleared.GameID)
}

func TestRenderBoard(t *testing.T) {
	board := Board{Ships: []int{0, 1}, Hits: []int{1}, Misses: []int{99}}

	lines := strings.Split(strings.TrimRight(renderBoard(board, []int{10, 11}), "\n"), "\n")

	require.Len(t, lines, boardSize+1)
	assert.Equal(t, "    0 1 2 3 4 5 6 7 8 9", lines[0])
	assert.Equal(t, " 0  S X . . . . . . . .", lines[1])
	assert.Equal(t, " 1  + + . . . . . . . .", lines[2])
	assert.Equal(t, " 9  . . . . . . . . . o", lines[10])
}

func TestOutputText(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutputTo("text", &buf)

	out.Print(ShotResult{Attacker: "opponent", X: 3, Y: 4, Outcome: "miss", Game: GameState{Status: "Computer missed."}})
	assert.Equal(t, "Computer fired at 3,4: miss (0 hits)\nComputer missed.\n", buf.String())

	buf.Reset()
	out.Print(GameList{})
	assert.Equal(t, "No games\n", buf.String())
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutputTo("json", &buf)

	out.Print(HealthResult{Status: "ok"})
	assert.JSONEq(t, `{"status":"ok"}`, buf.String())

	buf.Reset()
	out.PrintMessage("Game GAME01 ended")
	assert.JSONEq(t, `{"message":"Game GAME01 ended"}`, buf.String())
}

func TestReadEvents(t *testing.T) {
	stream := "event: connected\ndata: {\"client_id\":\"abc\"}\n\n" +
		": keepalive\n\n" +
		"event: hit\ndata: {\"type\":\"hit\",\"board\":\"opponent\",\"index\":54,\"x\":4,\"y\":5}\n\n"

	var names, descriptions []string
	err := readEvents(strings.NewReader(stream), func(event, data string) {
		names = append(names, event)
		descriptions = append(descriptions, describeEvent(event, data))
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"connected", "hit"}, names)
	assert.Equal(t, "hit: opponent board 4,5", descriptions[1])
}

func TestDescribeEvent(t *testing.T) {
	assert.Equal(t, "status: You win!", describeEvent("status", `{"message":"You win!"}`))
	assert.Equal(t, "phase-changed: game_over", describeEvent("phase-changed", `{"phase":"game_over"}`))
	assert.Equal(t, "input-disabled: opponent board", describeEvent("input-disabled", `{"board":"opponent"}`))
	assert.Equal(t, "odd: not json", describeEvent("odd", "not json"))
}

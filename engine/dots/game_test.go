package dots

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dotsboxes-local/engine"
	"dotsboxes-local/types"
)

func newTestGame(t *testing.T, size, players int) *Game {
	t.Helper()
	g := NewGame(zap.NewNop())
	names := make([]string, players)
	g.start(engine.GameConfig{GridSize: size, PlayerNames: names})
	return g
}

// helper to apply a sequence of moves that must all be accepted
func playLines(t *testing.T, g *Game, lines ...types.Line) []types.MoveResult {
	t.Helper()
	results := make([]types.MoveResult, 0, len(lines))
	for i, l := range lines {
		r := g.ApplyMove(l)
		if !r.Applied {
			t.Fatalf("move %d (%v) was not applied", i, l)
		}
		results = append(results, r)
	}
	return results
}

func allLines(size int) []types.Line {
	var lines []types.Line
	for r := 0; r < size; r++ {
		for c := 0; c < size-1; c++ {
			lines = append(lines, types.H(r, c))
		}
	}
	for r := 0; r < size-1; r++ {
		for c := 0; c < size; c++ {
			lines = append(lines, types.V(r, c))
		}
	}
	return lines
}

func ownedBoxes(g *Game) int {
	count := 0
	for _, row := range g.State().Boxes {
		for _, owner := range row {
			if owner != types.NoOwner {
				count++
			}
		}
	}
	return count
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestNewGameStartsInSetup(t *testing.T) {
	g := NewGame(nil)
	if g.Phase() != types.Setup {
		t.Fatalf("expected setup phase, got %v", g.Phase())
	}
	if r := g.ApplyMove(types.H(0, 0)); r.Applied {
		t.Fatal("moves during setup must be ignored")
	}
	if g.Undo() || g.Redo() {
		t.Fatal("undo/redo during setup must be ignored")
	}
}

func TestStartGame(t *testing.T) {
	g := NewGame(nil)
	err := g.StartGame(engine.GameConfig{GridSize: 8, PlayerNames: []string{"Ada", "", "Lin"}})
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if g.Phase() != types.Playing {
		t.Fatalf("expected playing, got %v", g.Phase())
	}
	if g.ID() == "" {
		t.Fatal("expected a game id")
	}
	if g.GridSize() != 8 {
		t.Fatalf("expected grid size 8, got %d", g.GridSize())
	}
	players := g.Players()
	if len(players) != 3 || players[1].Name != "Player 2" || players[2].Color != types.PlayerColors[2] {
		t.Fatalf("unexpected players %+v", players)
	}
	if !reflect.DeepEqual(g.Scores(), []int{0, 0, 0}) {
		t.Fatalf("expected zero scores, got %v", g.Scores())
	}
	if g.Current() != 0 {
		t.Fatalf("first seat should move first, got %d", g.Current())
	}
	if g.CanUndo() || g.CanRedo() {
		t.Fatal("fresh game has no history")
	}
	state := g.State()
	if len(state.Horizontal) != 8 || len(state.Vertical) != 7 || len(state.Boxes) != 7 {
		t.Fatalf("unexpected grid shapes %d/%d/%d", len(state.Horizontal), len(state.Vertical), len(state.Boxes))
	}
}

func TestStartGameRejectsBadConfig(t *testing.T) {
	g := NewGame(nil)
	if err := g.StartGame(engine.GameConfig{GridSize: 13, PlayerNames: []string{"a", "b"}}); !errors.Is(err, engine.ErrGridSize) {
		t.Fatalf("expected ErrGridSize, got %v", err)
	}
	if err := g.StartGame(engine.GameConfig{GridSize: 6, PlayerNames: []string{"solo"}}); !errors.Is(err, engine.ErrPlayerCount) {
		t.Fatalf("expected ErrPlayerCount, got %v", err)
	}
	if g.Phase() != types.Setup {
		t.Fatalf("rejected config must not start a game, phase=%v", g.Phase())
	}
}

func TestSingleBoxThreePlayers(t *testing.T) {
	g := newTestGame(t, 2, 3)
	results := playLines(t, g, types.H(0, 0), types.V(0, 0), types.V(0, 1))
	for i, r := range results {
		if r.Move.Player != i {
			t.Fatalf("move %d made by %d, want %d", i, r.Move.Player, i)
		}
		if r.BoxesCompleted() != 0 || r.ExtraTurn() {
			t.Fatalf("move %d should not complete a box", i)
		}
		if r.Next != (i+1)%3 {
			t.Fatalf("move %d: next = %d, want %d", i, r.Next, (i+1)%3)
		}
	}
	if g.Current() != 0 {
		t.Fatalf("turn should wrap to seat 0, got %d", g.Current())
	}

	r := g.ApplyMove(types.H(1, 0))
	if r.BoxesCompleted() != 1 || !r.Finished {
		t.Fatalf("fourth edge should complete the box and finish, got %+v", r)
	}
	if owner, ok := g.BoxAt(types.BoxPos{}); !ok || owner != 0 {
		t.Fatalf("box should belong to seat 0, got %d (owned=%v)", owner, ok)
	}
	if g.Phase() != types.Finished {
		t.Fatalf("expected finished, got %v", g.Phase())
	}
	if !reflect.DeepEqual(g.Scores(), []int{1, 0, 0}) {
		t.Fatalf("unexpected scores %v", g.Scores())
	}
	if !reflect.DeepEqual(g.Winners(), []int{0}) {
		t.Fatalf("unexpected winners %v", g.Winners())
	}
}

func TestSingleBoxTwoPlayersWraps(t *testing.T) {
	g := newTestGame(t, 2, 2)
	playLines(t, g, types.V(0, 1), types.H(0, 0), types.V(0, 0))
	if g.Current() != 1 {
		t.Fatalf("after three misses seat 1 should move, got %d", g.Current())
	}
	playLines(t, g, types.H(1, 0))
	if !reflect.DeepEqual(g.Scores(), []int{0, 1}) {
		t.Fatalf("unexpected scores %v", g.Scores())
	}
}

func TestDoubleBoxCompletion(t *testing.T) {
	g := newTestGame(t, 6, 2)
	// Three sides of (1,2) and of (2,2); the shared edge H(2,2) is left open.
	playLines(t, g,
		types.H(1, 2), types.V(1, 2), types.V(1, 3),
		types.H(3, 2), types.V(2, 2), types.V(2, 3),
	)
	mover := g.Current()
	before := g.Scores()[mover]

	r := g.ApplyMove(types.H(2, 2))
	if r.BoxesCompleted() != 2 {
		t.Fatalf("expected 2 boxes, got %v", r.Completed)
	}
	if g.Current() != mover || r.Next != mover {
		t.Fatalf("turn should stay with %d, got %d", mover, g.Current())
	}
	if g.Scores()[mover] != before+2 {
		t.Fatalf("score should rise by 2, got %d -> %d", before, g.Scores()[mover])
	}
	for _, p := range []types.BoxPos{{Row: 1, Col: 2}, {Row: 2, Col: 2}} {
		if owner, ok := g.BoxAt(p); !ok || owner != mover {
			t.Fatalf("box %v should belong to %d, got %d", p, mover, owner)
		}
	}

	// Only one extra turn: a miss now passes the turn on.
	g.ApplyMove(types.H(0, 0))
	if g.Current() != (mover+1)%2 {
		t.Fatalf("miss after a double should advance, got %d", g.Current())
	}
}

func TestApplyMoveOnDrawnLineIsIgnored(t *testing.T) {
	g := newTestGame(t, 6, 2)
	playLines(t, g, types.H(0, 0))
	before := g.State()
	if r := g.ApplyMove(types.H(0, 0)); r.Applied {
		t.Fatal("redrawing a line should be ignored")
	}
	if !reflect.DeepEqual(before, g.State()) {
		t.Fatal("ignored move changed state")
	}
}

func TestApplyMoveOffBoardPanics(t *testing.T) {
	g := newTestGame(t, 6, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an off-board line")
		}
	}()
	g.ApplyMove(types.V(5, 0))
}

func TestApplyMoveAfterFinishIsIgnored(t *testing.T) {
	g := newTestGame(t, 2, 2)
	playLines(t, g, allLines(2)...)
	if g.Phase() != types.Finished {
		t.Fatalf("expected finished, got %v", g.Phase())
	}
	before := g.State()
	g.ApplyMove(types.H(0, 0))
	if !reflect.DeepEqual(before, g.State()) {
		t.Fatal("move after finish changed state")
	}
}

func TestUndoWithEmptyHistory(t *testing.T) {
	g := newTestGame(t, 6, 2)
	before := g.State()
	if g.Undo() {
		t.Fatal("undo on empty history should report no change")
	}
	if !reflect.DeepEqual(before, g.State()) {
		t.Fatal("undo on empty history changed state")
	}
}

func TestUndoStopsAtFirstMove(t *testing.T) {
	g := newTestGame(t, 6, 2)
	playLines(t, g, types.H(0, 0))
	if g.CanUndo() || g.Undo() {
		t.Fatal("the first move cannot be undone")
	}
	playLines(t, g, types.H(0, 1))
	if !g.CanUndo() || !g.Undo() {
		t.Fatal("second move should be undoable")
	}
	if g.IsLineDrawn(types.H(0, 1)) || !g.IsLineDrawn(types.H(0, 0)) {
		t.Fatal("undo restored the wrong position")
	}
	if g.Current() != 1 {
		t.Fatalf("turn should be back with seat 1, got %d", g.Current())
	}
	if g.Undo() {
		t.Fatal("undo past the first move should fail")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	g := newTestGame(t, 6, 3)
	playLines(t, g,
		types.H(0, 0), types.V(0, 0), types.V(0, 1), types.H(1, 0),
		types.H(4, 4), types.V(2, 3), types.H(5, 0),
	)
	states := []types.GameState{g.State()}
	for g.CanUndo() {
		g.Undo()
		states = append(states, g.State())
	}
	if len(states) != 7 {
		t.Fatalf("expected 7 positions, got %d", len(states))
	}
	for i := len(states) - 2; i >= 0; i-- {
		if !g.Redo() {
			t.Fatalf("redo %d failed", i)
		}
		if !reflect.DeepEqual(states[i], g.State()) {
			t.Fatalf("redo did not restore position %d", i)
		}
	}
	if g.CanRedo() || g.Redo() {
		t.Fatal("redo at the end should fail")
	}
}

func TestMoveAfterUndoDropsRedo(t *testing.T) {
	g := newTestGame(t, 6, 2)
	playLines(t, g, types.H(0, 0), types.H(0, 1), types.H(0, 2))
	g.Undo()
	g.Undo()
	playLines(t, g, types.V(3, 3))
	if g.CanRedo() {
		t.Fatal("a new move must discard the redo branch")
	}
	if g.IsLineDrawn(types.H(0, 1)) || g.IsLineDrawn(types.H(0, 2)) {
		t.Fatal("undone lines came back")
	}
	moves := g.Moves()
	if len(moves) != 2 || moves[1].Line != types.V(3, 3) {
		t.Fatalf("unexpected moves %v", moves)
	}
}

func TestUndoOutOfFinishedAndRedoBack(t *testing.T) {
	g := newTestGame(t, 2, 2)
	playLines(t, g, allLines(2)...)
	if !g.Undo() {
		t.Fatal("undo after finish should work")
	}
	if g.Phase() != types.Playing {
		t.Fatalf("undoing the last box should resume play, got %v", g.Phase())
	}
	if _, owned := g.BoxAt(types.BoxPos{}); owned {
		t.Fatal("undo should unown the box")
	}
	if !g.Redo() || g.Phase() != types.Finished {
		t.Fatalf("redo should finish the game again, got %v", g.Phase())
	}
}

func TestRandomGameInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, size := range []int{2, 3, 6, 9} {
		g := newTestGame(t, size, 4)
		lines := allLines(size)
		rng.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })

		total := (size - 1) * (size - 1)
		owners := map[types.BoxPos]int{}
		for i, l := range lines {
			before := g.Current()
			r := g.ApplyMove(l)
			if !r.Applied {
				t.Fatalf("size %d move %d (%v) rejected", size, i, l)
			}
			if sum(g.Scores()) != ownedBoxes(g) {
				t.Fatalf("size %d move %d: scores %v do not match %d owned boxes", size, i, g.Scores(), ownedBoxes(g))
			}
			if r.BoxesCompleted() > 0 && g.Current() != before {
				t.Fatalf("size %d move %d: turn moved after a capture", size, i)
			}
			if r.BoxesCompleted() == 0 && g.Current() != (before+1)%4 {
				t.Fatalf("size %d move %d: turn did not advance after a miss", size, i)
			}
			for _, p := range r.Completed {
				if _, seen := owners[p]; seen {
					t.Fatalf("size %d: box %v awarded twice", size, p)
				}
				owners[p] = before
			}
			for p, owner := range owners {
				if got, _ := g.BoxAt(p); got != owner {
					t.Fatalf("size %d: box %v changed owner %d -> %d", size, p, owner, got)
				}
			}
			finished := ownedBoxes(g) == total
			if finished != (g.Phase() == types.Finished) {
				t.Fatalf("size %d move %d: finished=%v but phase=%v", size, i, finished, g.Phase())
			}
		}
		if g.Phase() != types.Finished {
			t.Fatalf("size %d: drawing every line should finish the game", size)
		}
	}
}

func TestPlayAgainKeepsPlayers(t *testing.T) {
	g := NewGame(nil)
	if err := g.StartGame(engine.GameConfig{GridSize: 7, PlayerNames: []string{"Ada", "Lin"}}); err != nil {
		t.Fatal(err)
	}
	firstID := g.ID()
	playLines(t, g, types.H(0, 0), types.V(0, 0))
	players := g.Players()

	g.PlayAgain()
	if g.Phase() != types.Playing || g.GridSize() != 7 {
		t.Fatalf("play again should restart a 7x7 game, got %v/%d", g.Phase(), g.GridSize())
	}
	if !reflect.DeepEqual(players, g.Players()) {
		t.Fatalf("players changed: %v -> %v", players, g.Players())
	}
	if g.IsLineDrawn(types.H(0, 0)) || len(g.Moves()) != 0 || g.Current() != 0 {
		t.Fatal("play again should clear the board and history")
	}
	if g.ID() == firstID {
		t.Fatal("play again should start a new session id")
	}
}

func TestNewGameReturnsToSetup(t *testing.T) {
	g := newTestGame(t, 6, 2)
	playLines(t, g, types.H(0, 0))
	g.NewGame()
	if g.Phase() != types.Setup || g.GridSize() != 0 || g.Players() != nil {
		t.Fatalf("new game should forget everything, got %v/%d/%v", g.Phase(), g.GridSize(), g.Players())
	}
	g.NewGame()
	if g.Phase() != types.Setup {
		t.Fatal("new game should be idempotent")
	}
	g.PlayAgain()
	if g.Phase() != types.Setup {
		t.Fatal("play again without a previous game should be ignored")
	}
}

func TestCallbacks(t *testing.T) {
	g := newTestGame(t, 2, 2)
	var moves []types.MoveResult
	var ends []types.GameState
	g.OnMove(func(r types.MoveResult) { moves = append(moves, r) })
	g.OnGameEnd(func(s types.GameState) { ends = append(ends, s) })

	playLines(t, g, allLines(2)...)
	if len(moves) != 4 {
		t.Fatalf("expected 4 move callbacks, got %d", len(moves))
	}
	if !moves[3].Finished || moves[3].BoxesCompleted() != 1 {
		t.Fatalf("last callback should report the finishing capture, got %+v", moves[3])
	}
	if len(ends) != 1 || !ends[0].Finished() {
		t.Fatalf("expected one game end callback, got %d", len(ends))
	}
	if ends[0].LastMove == nil || ends[0].LastMove.Line != types.V(0, 1) {
		t.Fatalf("final state should carry the last move, got %v", ends[0].LastMove)
	}
}

func TestStateIsACopy(t *testing.T) {
	g := newTestGame(t, 6, 2)
	playLines(t, g, types.H(0, 0))
	s := g.State()
	s.Horizontal[1][1] = true
	s.Boxes[0][0] = 1
	s.Scores[0] = 5
	s.Players[0].Name = "mallory"
	if g.IsLineDrawn(types.H(1, 1)) {
		t.Fatal("state leaked a line grid")
	}
	if _, owned := g.BoxAt(types.BoxPos{}); owned {
		t.Fatal("state leaked the box grid")
	}
	if g.Scores()[0] != 0 || g.Players()[0].Name == "mallory" {
		t.Fatal("state leaked scores or players")
	}
}

func TestLogsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGame(zap.New(core))
	g.start(engine.GameConfig{GridSize: 2, PlayerNames: []string{"a", "b"}})
	playLines(t, g, allLines(2)...)

	started := logs.FilterMessage("game started").All()
	if len(started) != 1 {
		t.Fatalf("expected one start entry, got %d", len(started))
	}
	if started[0].ContextMap()["game_id"] != g.ID() {
		t.Fatalf("start entry has wrong game id: %v", started[0].ContextMap())
	}
	if logs.FilterMessage("move").Len() != 4 {
		t.Fatalf("expected 4 move entries, got %d", logs.FilterMessage("move").Len())
	}
	if logs.FilterMessage("game finished").Len() != 1 {
		t.Fatal("expected a finish entry")
	}
}

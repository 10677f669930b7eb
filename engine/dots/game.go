// Package dots implements the dots-and-boxes rules engine: line placement,
// box completion, the extra turn after a capture, scores, and a linear
// undo/redo history.
package dots

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dotsboxes-local/board"
	"dotsboxes-local/engine"
	"dotsboxes-local/types"
)

// Game owns the only live copy of the board, turn and scores. It is not safe
// for concurrent use; the UI calls it from its event loop one input at a
// time.
type Game struct {
	log     *zap.Logger
	id      string
	phase   types.Phase
	cfg     engine.GameConfig
	players []types.Player
	board   *board.Board
	current int
	scores  []int
	history *History

	onMove    func(types.MoveResult)
	onGameEnd func(types.GameState)
}

var _ engine.GameEngine = (*Game)(nil)

// NewGame creates an engine in the setup phase. A nil logger disables logging.
func NewGame(logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		log:     logger,
		phase:   types.Setup,
		history: NewHistory(),
	}
}

// StartGame validates cfg and begins a fresh game from any phase.
func (g *Game) StartGame(cfg engine.GameConfig) error {
	if err := cfg.Validate(); err != nil {
		g.log.Warn("rejected game config", zap.Error(err))
		return err
	}
	g.start(cfg)
	return nil
}

// start resets all state without validating cfg. Tests use it directly for
// grids smaller than players may pick.
func (g *Game) start(cfg engine.GameConfig) {
	cfg.PlayerNames = append([]string(nil), cfg.PlayerNames...)
	g.cfg = cfg
	g.id = uuid.NewString()
	g.players = cfg.Players()
	g.board = board.New(cfg.GridSize)
	g.current = 0
	g.scores = make([]int, len(g.players))
	g.history.Clear()
	g.phase = types.Playing

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	g.log.Info("game started",
		zap.String("game_id", g.id),
		zap.Int("grid_size", cfg.GridSize),
		zap.Strings("players", names),
	)
}

// ApplyMove draws l for the current player. It is a no-op outside the playing
// phase or when l is already drawn. A line off the board can only come from a
// broken caller and panics.
func (g *Game) ApplyMove(l types.Line) types.MoveResult {
	if g.phase != types.Playing {
		return types.MoveResult{}
	}
	if !g.board.InBounds(l) {
		panic(fmt.Sprintf("dots: %v is off a %dx%d grid", l, g.board.Size, g.board.Size))
	}
	if g.board.IsLineDrawn(l) {
		return types.MoveResult{}
	}

	mover := g.current
	g.board.SetLine(l)

	var awarded []types.BoxPos
	for _, p := range CompletedBoxes(g.board, l) {
		if g.board.SetOwner(p, mover) {
			awarded = append(awarded, p)
		}
	}
	g.scores[mover] += len(awarded)

	// One extra turn per capturing move, however many boxes it closed.
	if len(awarded) == 0 {
		g.current = (mover + 1) % len(g.players)
	}

	move := types.Move{Line: l, Player: mover}
	g.history.Push(snapshot{board: g.board, current: g.current, scores: g.scores, move: move})

	result := types.MoveResult{
		Applied:   true,
		Move:      move,
		Completed: awarded,
		Next:      g.current,
	}
	if g.board.Full() {
		g.phase = types.Finished
		result.Finished = true
	}

	g.log.Debug("move",
		zap.String("game_id", g.id),
		zap.Stringer("line", l),
		zap.Int("player", mover),
		zap.Int("boxes", len(awarded)),
		zap.Int("next", g.current),
	)

	if g.onMove != nil {
		g.onMove(result)
	}
	if result.Finished {
		g.log.Info("game finished",
			zap.String("game_id", g.id),
			zap.Ints("scores", g.scores),
			zap.Ints("winners", g.Winners()),
		)
		if g.onGameEnd != nil {
			g.onGameEnd(g.State())
		}
	}
	return result
}

// Undo restores the snapshot before the current one. It does nothing while
// the cursor is on the first snapshot or the history is empty.
func (g *Game) Undo() bool {
	if g.phase == types.Setup {
		return false
	}
	s, ok := g.history.Back()
	if !ok {
		return false
	}
	g.restore(s)
	g.log.Debug("undo", zap.String("game_id", g.id), zap.Int("cursor", g.history.Cursor()))
	return true
}

// Redo restores the snapshot after the current one, if there is one.
func (g *Game) Redo() bool {
	if g.phase == types.Setup {
		return false
	}
	s, ok := g.history.Forward()
	if !ok {
		return false
	}
	g.restore(s)
	g.log.Debug("redo", zap.String("game_id", g.id), zap.Int("cursor", g.history.Cursor()))
	return true
}

// restore takes ownership of s, which History has already copied. The phase
// follows the board, so undoing the last capture reopens a finished game.
func (g *Game) restore(s snapshot) {
	g.board = s.board
	g.current = s.current
	g.scores = s.scores
	if g.board.Full() {
		g.phase = types.Finished
	} else {
		g.phase = types.Playing
	}
}

// PlayAgain restarts with the same grid and players. Ignored during setup.
func (g *Game) PlayAgain() {
	if g.phase == types.Setup {
		return
	}
	g.log.Info("play again", zap.String("previous_game_id", g.id))
	g.start(g.cfg)
}

// NewGame returns to setup and forgets the grid and players.
func (g *Game) NewGame() {
	if g.phase != types.Setup {
		g.log.Info("new game", zap.String("previous_game_id", g.id))
	}
	g.phase = types.Setup
	g.id = ""
	g.cfg = engine.GameConfig{}
	g.players = nil
	g.board = nil
	g.current = 0
	g.scores = nil
	g.history.Clear()
}

// OnMove registers a callback run after every accepted move.
func (g *Game) OnMove(fn func(result types.MoveResult)) {
	g.onMove = fn
}

// OnGameEnd registers a callback run when the last box is taken.
func (g *Game) OnGameEnd(fn func(final types.GameState)) {
	g.onGameEnd = fn
}

// ID returns the session id of the running game, empty during setup.
func (g *Game) ID() string {
	return g.id
}

func (g *Game) Phase() types.Phase {
	return g.phase
}

// GridSize returns the dots per side, 0 during setup.
func (g *Game) GridSize() int {
	return g.cfg.GridSize
}

func (g *Game) Players() []types.Player {
	return append([]types.Player(nil), g.players...)
}

// Current returns the seat index of the player to move.
func (g *Game) Current() int {
	return g.current
}

func (g *Game) Scores() []int {
	return append([]int(nil), g.scores...)
}

func (g *Game) IsLineDrawn(l types.Line) bool {
	if g.board == nil {
		return false
	}
	return g.board.IsLineDrawn(l)
}

// BoxAt returns the owner of the box at p, if any.
func (g *Game) BoxAt(p types.BoxPos) (int, bool) {
	if g.board == nil {
		return types.NoOwner, false
	}
	return g.board.BoxAt(p)
}

// Winners returns every seat holding the top score. More than one means a tie.
func (g *Game) Winners() []int {
	return types.Winners(g.scores)
}

func (g *Game) CanUndo() bool {
	return g.phase != types.Setup && g.history.CanBack()
}

func (g *Game) CanRedo() bool {
	return g.phase != types.Setup && g.history.CanForward()
}

// Moves returns the moves leading to the current position.
func (g *Game) Moves() []types.Move {
	return g.history.PathFromRoot()
}

// State returns a deep copy of everything the presentation layer draws.
func (g *Game) State() types.GameState {
	state := types.GameState{
		ID:       g.id,
		Phase:    g.phase,
		GridSize: g.cfg.GridSize,
		Players:  g.Players(),
		Scores:   g.Scores(),
		Current:  g.current,
		CanUndo:  g.CanUndo(),
		CanRedo:  g.CanRedo(),
		Moves:    g.Moves(),
	}
	if n := len(state.Moves); n > 0 {
		last := state.Moves[n-1]
		state.LastMove = &last
	}
	if g.board != nil {
		cp := g.board.Clone()
		state.Horizontal = cp.Horizontal
		state.Vertical = cp.Vertical
		state.Boxes = cp.Boxes
	}
	return state
}

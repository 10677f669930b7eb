// dotsboxes-local is a terminal application to play dots and boxes with
// friends on one keyboard.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dotsboxes-local/config"
	"dotsboxes-local/engine"
	"dotsboxes-local/engine/dots"
	"dotsboxes-local/types"
	"dotsboxes-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagGridSize   = flag.Int("size", 0, "Dots per side (6-12)")
	flagPlayers    = flag.Int("players", 0, "Number of players (2-6)")
	flagNames      = flag.String("names", "", "Comma-separated player names")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagMoves      = flag.String("moves", "", "Opening lines to play, e.g. \"h0,0 v0,1\"")
	flagNoSound    = flag.Bool("nosound", false, "Start with the bell turned off")
	flagDebug      = flag.Bool("debug", false, "Log every move")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.DotsBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *zap.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("dotsboxes-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagNoSound {
		cfg.Game.Sound = false
	}

	opening, err := dots.ParseLines(*flagMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -moves: %s\n", err)
		os.Exit(1)
	}

	logger = newLogger(*flagDebug)
	defer logger.Sync()

	quickStart := *flagQuickStart || *flagGridSize > 0 || *flagPlayers > 0 || *flagNames != "" || len(opening) > 0

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬚ dots & boxes ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewDotsBoard(cfg, gameHint)
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	eng := dots.NewGame(logger)
	gameBoard.ConnectEngine(eng)
	gameBoard.SetGameEndFunc(showGameOver)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyDown:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyRight:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyEnter:
			gameBoard.PlaySelected()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(0, -1)
			case 'j':
				gameBoard.MoveSelection(1, 0)
			case 'k':
				gameBoard.MoveSelection(-1, 0)
			case 'l':
				gameBoard.MoveSelection(0, 1)
			case 't':
				gameBoard.ToggleOrientation()
			case ' ':
				gameBoard.PlaySelected()
			case 'u':
				gameBoard.Undo()
			case 'r':
				gameBoard.Redo()
			case 's':
				cfg.Game.Sound = gameBoard.ToggleSound()
			case 'n':
				backToSetup()
			case 'q':
				if gameBoard.SelectedLine() != nil {
					gameBoard.ResetSelection()
				} else {
					backToSetup()
				}
			}
		}
		return nil
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig, sound bool) {
			cfg.Game.GridSize = gameCfg.GridSize
			cfg.Game.PlayerCount = len(gameCfg.PlayerNames)
			cfg.Game.PlayerNames = mergeNames(cfg.Game.PlayerNames, gameCfg.PlayerNames)
			cfg.Game.Sound = sound
			if err := cfg.Save(); err != nil {
				logger.Warn("could not save preferences", zap.Error(err))
			}
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)
	setupUI.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			app.Stop()
			return nil
		}
		return event
	})

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func(err error) {
		if err != nil {
			logger.Warn("could not save colors", zap.Error(err))
		}
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		gameCfg := buildGameConfigFromFlags()
		if startGame(gameCfg) {
			playOpening(opening)
		}
	}

	if err := app.SetRoot(rootPage, true).EnableMouse(true).Run(); err != nil {
		logger.Error("terminal UI stopped", zap.Error(err))
		panic(err)
	}
}

// newLogger writes JSON logs to the state directory. Logging is off when the
// file cannot be opened, since the terminal belongs to the UI.
func newLogger(debug bool) *zap.Logger {
	path, err := config.LogPath()
	if err != nil {
		return zap.NewNop()
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.With(zap.String("version", Version))
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) bool {
	gameBoard.SetSound(cfg.Game.Sound)
	if err := gameBoard.StartGame(gameCfg); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
				rootPage.SwitchToPage("setup")
			})
		rootPage.AddPage("error", modal, true, true)
		return false
	}
	rootPage.SwitchToPage("gameview")
	return true
}

func backToSetup() {
	gameBoard.NewGame()
	rootPage.SwitchToPage("setup")
}

func showGameOver(final types.GameState) {
	modal := ui.NewGameOverModal(final,
		func() {
			rootPage.RemovePage("gameover")
			gameBoard.PlayAgain()
		},
		func() {
			rootPage.RemovePage("gameover")
			backToSetup()
		},
	)
	rootPage.AddPage("gameover", modal, true, true)
}

// playOpening applies lines given on the command line. Lines that do not fit
// the grid are skipped.
func playOpening(lines []types.Line) {
	size := gameBoard.State.GridSize
	for _, l := range lines {
		if !dots.FitsGrid(l, size) {
			logger.Warn("opening line off the grid", zap.String("line", dots.FormatLine(l)), zap.Int("grid_size", size))
			continue
		}
		gameBoard.PlayLine(l)
	}
}

// buildGameConfigFromFlags creates a GameConfig from command-line flags.
func buildGameConfigFromFlags() engine.GameConfig {
	gameCfg := cfg.GameConfig()

	if *flagGridSize > 0 {
		gameCfg.GridSize = *flagGridSize
	}

	var names []string
	if *flagNames != "" {
		for _, n := range strings.Split(*flagNames, ",") {
			names = append(names, strings.TrimSpace(n))
		}
	}

	count := len(gameCfg.PlayerNames)
	if *flagPlayers > 0 {
		count = *flagPlayers
	} else if len(names) > 0 {
		count = len(names)
	}

	players := make([]string, count)
	copy(players, mergeNames(cfg.Game.PlayerNames, names))
	gameCfg.PlayerNames = players
	return gameCfg
}

// mergeNames overlays names on base, keeping base's entries past the end of
// names.
func mergeNames(base, names []string) []string {
	out := append([]string(nil), base...)
	for i, n := range names {
		if i < len(out) {
			out[i] = n
		} else {
			out = append(out, n)
		}
	}
	return out
}

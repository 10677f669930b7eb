package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawBoxBackground: true,
		ShowEmptyLines:    true,
		Colors: ConfigColors{
			BoardColor:    236,
			DotColor:      250,
			EmptyLine:     239,
			CursorColorFG: 255,
			CursorColorBG: 4,
			LastPlayedBG:  238,
		},
		Symbols: ConfigSymbols{
			Dot:        '●',
			Horizontal: '━',
			Vertical:   '┃',
			EmptyH:     '╌',
			EmptyV:     '╎',
			BoxFill:    '░',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			GridSize:    6,
			PlayerCount: 2,
			PlayerNames: []string{"Player 1", "Player 2", "Player 3", "Player 4", "Player 5", "Player 6"},
			Sound:       true,
		},
	}
}

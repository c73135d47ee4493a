package x_log

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

//
// ---------- Palette ----------

const (
	ColorTeal40   = "#3ddbd9"
	ColorBlue60   = "#4589ff"
	ColorBlue40   = "#78a9ff"
	ColorBlueBase = "#0f62fe"
	ColorRed60    = "#da1e28"
	ColorRedHard  = "#ff0000"
	ColorOrange40 = "#ff832b"
	ColorGray60   = "#8d8d8d"
	ColorGray10   = "#f4f4f4"
	ColorGray90   = "#262626"
)

//
// ---------- Styles ----------

// Styles holds the lipgloss styles applied by the console writer.
type Styles struct {
	Out             io.Writer
	Timestamp       lipgloss.Style
	Message         lipgloss.Style
	Levels          map[Level]lipgloss.Style
	Keys            map[string]lipgloss.Style
	DefaultKeyStyle lipgloss.Style
}

// DefaultStylesByName returns the "light" theme or, for anything else, the dark one.
func DefaultStylesByName(name string) *Styles {
	if strings.EqualFold(name, "light") {
		return DefaultStylesLight()
	}
	return DefaultStylesDark()
}

func DefaultStylesDark() *Styles {
	return newStyles(ColorBlue40, ColorGray10)
}

func DefaultStylesLight() *Styles {
	return newStyles(ColorBlueBase, ColorGray90)
}

func newStyles(keyColor, msgColor string) *Styles {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color(keyColor))
	return &Styles{
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60)),
		Message:   lipgloss.NewStyle().Foreground(lipgloss.Color(msgColor)),
		Levels: map[Level]lipgloss.Style{
			DebugLevel: levelBadge(ColorTeal40),
			InfoLevel:  levelBadge(ColorBlue60),
			WarnLevel:  levelBadge(ColorOrange40),
			ErrorLevel: levelBadge(ColorRed60),
			FatalLevel: levelBadge(ColorRedHard),
		},
		Keys: map[string]lipgloss.Style{
			"module":  key.Bold(true),
			"session": key.Italic(true),
			"key":     key,
			"bf":      key,
			"error":   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
		},
		DefaultKeyStyle: key,
	}
}

func levelBadge(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

//
// ---------- Console Writer ----------

// ConsoleWriterWithStyles builds a zerolog.ConsoleWriter rendering through styles.
func ConsoleWriterWithStyles(styles *Styles) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        styles.Out,
		TimeFormat: "01-02 15:04:05",

		FormatLevel: func(i any) string {
			name := strings.ToLower(fmt.Sprint(i))
			lvl, err := zerolog.ParseLevel(name)
			label := strings.ToUpper(name)
			if len(label) > 3 {
				label = label[:3]
			}
			if style, ok := styles.Levels[lvl]; ok && err == nil {
				return style.Render(label)
			}
			return label
		},

		FormatTimestamp: func(i any) string {
			return styles.Timestamp.Render(fmt.Sprintf("[%s]", i))
		},

		FormatFieldName: func(i any) string {
			name := fmt.Sprint(i)
			style, ok := styles.Keys[name]
			if !ok {
				style = styles.DefaultKeyStyle
			}
			return style.Render(name) + "="
		},

		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return styles.Message.Render(fmt.Sprint(i))
		},
	}
}

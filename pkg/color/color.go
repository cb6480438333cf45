package color

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	output       = termenv.NewOutput(os.Stdout)
	colorEnabled = true
)

func init() {
	if os.Getenv("NO_COLOR") != "" || output.Profile == termenv.Ascii {
		colorEnabled = false
	}
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

// Colorize renders text in an ANSI color ("1".."15"), or plain when disabled.
func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return termenv.String(text).Foreground(termenv.ANSI256.Color(color)).String()
}

func GreenText(text string) string {
	return Colorize("2", text)
}

func YellowText(text string) string {
	return Colorize("3", text)
}

func CyanText(text string) string {
	return Colorize("6", text)
}

package shell

import (
	"fmt"
	"strings"

	"github.com/mazznoer/colorgrad"
)

func getBanner() string {
	banner := `
 _                    _                               _
| |_   ___    ___    | |  __ _   __ _   ___   _ __   | |_
| __| / _ \  / _ \   | | / _' | / _' | / _ \ | '_ \  | __|
| |_ | (_) || (_) |  | || (_| || (_| ||  __/ | | | | | |_
 \__| \___/  \___/   |_| \__,_| \__, | \___| |_| |_|  \__|
 .  .  .  an llm with  hands    |___/
`
	grad, _ := colorgrad.NewGradient().
		HtmlColors("#10c469ff", "#fdfdfdff").
		Build()

	lines := strings.Split(banner, "\n")

	// Find max line length for gradient spread
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	colors := grad.Colors(uint(maxLen))
	var coloredBanner strings.Builder

	for _, line := range lines {
		for i, ch := range line {
			r, g, b, _ := colors[i].RGBA255()
			coloredBanner.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm%c", r, g, b, ch))
		}
		coloredBanner.WriteString("\x1b[0m\n")
	}

	return coloredBanner.String()
}

package banner

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Print renders the startup banner.
func Print() {
	figure.NewColorFigure("stegtriage", "doom", "cyan", true).Print()

	cyan := color.New(color.FgCyan)
	_, _ = cyan.Println("Hidden payload triage and extraction engine")
	_, _ = cyan.Println("-------------------------------------------")
}

package render

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/status"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleName  = lipgloss.NewStyle().Foreground(colorWhite).Width(12)
	styleKind  = lipgloss.NewStyle().Foreground(colorGray).Width(7)
	styleValue = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 20

// Summary writes a styled per-vessel report of the world
func Summary(w io.Writer, world *engine.World, title string) error {
	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	for _, v := range world.Vessels() {
		b.WriteString(styleName.Render(v.Name))
		b.WriteString(styleKind.Render(v.Kind.String()))

		if v.Container == nil {
			c, _ := v.Emitter.Color()
			b.WriteString(swatch(c.Hex(), 2))
			b.WriteString(" ")
			b.WriteString(styleDim.Render(c.Hex()))
			b.WriteString("\n")
			continue
		}

		ct := v.Container
		ratio := ct.FillRatio()
		filled := int(ratio*barWidth + 0.5)
		mixed, ok := ct.MixedColor()
		if ok && filled > 0 {
			b.WriteString(swatch(mixed.Hex(), filled))
		}
		b.WriteString(styleDim.Render(strings.Repeat("·", barWidth-filled)))
		b.WriteString(" ")
		b.WriteString(styleValue.Render(fmt.Sprintf("%5.1f/%.0f", ct.Level(), ct.Capacity())))
		if ok {
			b.WriteString(" ")
			b.WriteString(styleDim.Render(mixed.HexA()))
		}
		if comp := ct.Composition(); len(comp) > 0 {
			b.WriteString(" ")
			b.WriteString(styleDim.Render(composition(comp)))
		}
		b.WriteString("\n")
	}

	label := lipgloss.NewStyle().Foreground(colorGray).Width(20)
	world.Status.Ints.Range(func(key string, v *atomic.Int64) {
		b.WriteString(label.Render(key))
		b.WriteString(styleValue.Render(fmt.Sprintf("%d", v.Load())))
		b.WriteString("\n")
	})
	world.Status.Gauges.Range(func(key string, g *status.Gauge) {
		b.WriteString(label.Render(key))
		b.WriteString(styleValue.Render(fmt.Sprintf("%.2f", g.Load())))
		b.WriteString("\n")
	})

	_, err := io.WriteString(w, b.String())
	return err
}

func swatch(hex string, n int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", n))
}

func composition(comp fluid.Composition) string {
	parts := make([]string, 0, len(comp))
	for _, c := range comp.Colors() {
		parts = append(parts, fmt.Sprintf("%s×%d", c.Hex(), comp[c]))
	}
	return strings.Join(parts, " ")
}

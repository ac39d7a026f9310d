package tasks

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	id      lipgloss.Style
	open    lipgloss.Style
	done    lipgloss.Style
	check   lipgloss.Style
	created lipgloss.Style
	empty   lipgloss.Style
}

type palette struct {
	title, header, id, text, done, check, meta lipgloss.Color
}

var (
	darkPalette = palette{
		title:  "255",
		header: "245",
		id:     "39",
		text:   "252",
		done:   "242",
		check:  "114",
		meta:   "241",
	}
	lightPalette = palette{
		title:  "232",
		header: "240",
		id:     "25",
		text:   "235",
		done:   "247",
		check:  "28",
		meta:   "244",
	}
)

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.title),
		header:  lipgloss.NewStyle().Foreground(p.header),
		id:      lipgloss.NewStyle().Foreground(p.id),
		open:    lipgloss.NewStyle().Foreground(p.text),
		done:    lipgloss.NewStyle().Strikethrough(true).Foreground(p.done),
		check:   lipgloss.NewStyle().Bold(true).Foreground(p.check),
		created: lipgloss.NewStyle().Foreground(p.meta),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}

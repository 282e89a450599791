package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/joshuapare/gogscan/gog"
)

type styles struct {
	header lipgloss.Style
	id     lipgloss.Style
	name   lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		header: r.NewStyle().Bold(true).Underline(true),
		id:     r.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		name:   r.NewStyle().Bold(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("240")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#FFAA00")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#FF5555")),
	}
}

// renderText prints games with their DLC, then diagnostics, then a one-line
// summary.
func renderText(w io.Writer, out gog.Outcome, st styles) {
	games := out.Records()
	diags := out.Diagnostics()

	if len(games) > 0 {
		fmt.Fprintln(w, st.header.Render("Games"))
		for _, g := range games {
			fmt.Fprintf(w, "  %s  %s\n", st.id.Render(g.ID.String()), st.name.Render(g.Name))
			fmt.Fprintf(w, "      %s\n", st.dim.Render(recordDetail(g)))
			for i, d := range g.Children {
				branch := "├─"
				if i == len(g.Children)-1 {
					branch = "└─"
				}
				fmt.Fprintf(w, "    %s %s  %s\n", branch, st.id.Render(d.ID.String()), d.Name)
				if verbose {
					fmt.Fprintf(w, "         %s\n", st.dim.Render(recordDetail(d)))
				}
			}
		}
	}

	if len(diags) > 0 {
		if len(games) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, st.header.Render("Diagnostics"))
		for _, d := range diags {
			style := st.warn
			if d.Severity == gog.SeverityScan || d.Severity == gog.SeverityFault {
				style = st.err
			}
			fmt.Fprintf(w, "  %s %s\n", style.Render("["+d.Severity.String()+"]"), d.Error())
		}
	}

	sum := out.Summary()
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("%d game(s), %d dlc, %d diagnostic(s)", sum.Games, sum.DLC, sum.Diagnostics())))
}

func recordDetail(r gog.Record) string {
	parts := []string{r.InstallPath, fmt.Sprintf("build %d", r.BuildMarker)}
	if r.Version != "" {
		parts = append(parts, "v"+r.Version)
	}
	if verbose {
		if r.Executable != "" {
			parts = append(parts, "exe "+r.Executable)
		}
		parts = append(parts, r.Source)
	}
	return strings.Join(parts, "  ")
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"
)

const rule = "───────────────────────────────────────────────────────────────"

// WriteText writes the sectioned plain-text report
func WriteText(w io.Writer, r *Report, p *message.Printer) error {
	style := lipgloss.NewRenderer(w)
	title := style.NewStyle().Bold(true)
	ok := style.NewStyle().Foreground(lipgloss.Color("10"))
	warn := style.NewStyle().Foreground(lipgloss.Color("11"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w, title.Render("     "+p.Sprintf("SANITARY DRAINAGE SIZING - NBR 8160")))
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	section(w, p.Sprintf("MODEL:"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s:\t%s\n", p.Sprintf("File"), r.Model)
	fmt.Fprintf(tw, "  %s:\t%s\n", p.Sprintf("Schema"), r.Schema)
	p.Fprintf(tw, "  %s:\t%d\n", p.Sprintf("Elements reached"), len(r.Nodes))
	p.Fprintf(tw, "  %s:\t%d\n", p.Sprintf("Sinks"), len(r.Sinks))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	idx := r.index()
	section(w, p.Sprintf("SINKS:"))
	if len(r.Sinks) == 0 {
		fmt.Fprintf(w, "  %s\n", warn.Render("⚠ "+p.Sprintf("No sink found")))
	} else {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Sprintf("Name"), p.Sprintf("Id"), p.Sprintf("Accumulated UHC"))
		for _, id := range r.Sinks {
			n := idx[id]
			p.Fprintf(tw, "  %s\t%s\t%.2f\n", displayName(n, p), n.ID, n.AccumulatedUHC)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)

	section(w, p.Sprintf("NETWORK:"))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		p.Sprintf("Name"), p.Sprintf("Kind"), p.Sprintf("Level"),
		p.Sprintf("Base UHC"), p.Sprintf("Accumulated UHC"), p.Sprintf("DN"), p.Sprintf("Slope"))
	for _, n := range r.Nodes {
		p.Fprintf(tw, "  %s\t%s\t%d\t%.2f\t%.2f\t%s\t%s\n",
			displayName(n, p), strings.TrimPrefix(n.Kind, "Ifc"), n.Level,
			n.BaseUHC, n.AccumulatedUHC, dash(n.DN), dash(n.Slope))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	pipes := r.Pipes()
	section(w, p.Sprintf("PIPES:")+" "+p.Sprintf("%d pipes", len(pipes)))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
		p.Sprintf("Pipe"), p.Sprintf("Accumulated UHC"), p.Sprintf("Suggested DN"), p.Sprintf("Suggested slope"))
	for _, n := range pipes {
		dn := dash(n.DN)
		if strings.HasPrefix(n.DN, ">") {
			dn = warn.Render(n.DN + " ⚠ " + p.Sprintf("exceeds table"))
		}
		p.Fprintf(tw, "  %s\t%.2f\t%s\t%s\n", displayName(n, p), n.AccumulatedUHC, dn, dash(n.Slope))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		section(w, p.Sprintf("WARNINGS:"))
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n\n", warn.Render("⚠ "+p.Sprintf("Analysis complete with %d warnings", len(r.Warnings))))
		return nil
	}
	_, err := fmt.Fprintf(w, "  %s\n\n", ok.Render("✓ "+p.Sprintf("Analysis complete")))
	return err
}

func section(w io.Writer, heading string) {
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, rule)
}

func displayName(n NodeRow, p *message.Printer) string {
	if n.Name == "" {
		return p.Sprintf("Unnamed")
	}
	return n.Name
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

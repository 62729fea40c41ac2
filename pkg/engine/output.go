package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wildfunctions/sci_calculator/pkg/calc"
)

// Evaluation is one computed expression.
type Evaluation struct {
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	LaTeX      string    `json:"latex,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Report summarizes a session.
type Report struct {
	Config      Config       `json:"config"`
	Layout      string       `json:"layout"`
	Evaluations []Evaluation `json:"evaluations"`
	Final       calc.State   `json:"final"`
}

// WriteDisplay writes the expression display and the result display.
func WriteDisplay(w io.Writer, s calc.State) {
	fmt.Fprintf(w, "  %s\n", s.Expression)
	fmt.Fprintf(w, "= %s\n", s.Result)
}

// WriteHistory writes one line per evaluation.
func WriteHistory(w io.Writer, history []Evaluation) {
	if len(history) == 0 {
		fmt.Fprintln(w, "(no history)")
		return
	}
	for i, ev := range history {
		fmt.Fprintf(w, "%3d: %s = %s\n", i+1, ev.Expression, ev.Result)
	}
}

// WriteTextReport writes the report in human-readable format.
func WriteTextReport(w io.Writer, r Report) {
	fmt.Fprintln(w, "\n========== SESSION ==========")
	fmt.Fprintf(w, "Layout:      %s\n", r.Layout)
	fmt.Fprintf(w, "Evaluations: %d\n", len(r.Evaluations))
	WriteHistory(w, r.Evaluations)
	fmt.Fprintln(w, "=============================")
}

// WriteJSONReport writes the report as JSON.
func WriteJSONReport(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes characters that are special in LaTeX text mode.
func latexEscape(s string) string {
	r := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"{", `\{`,
		"}", `\}`,
		"_", `\_`,
		"%", `\%`,
		"&", `\&`,
		"#", `\#`,
		"$", `\$`,
		"^", `\^{}`,
		"~", `\textasciitilde{}`,
		"|", `\textbar{}`,
	)
	return r.Replace(s)
}

// WriteLaTeXReport writes a compilable LaTeX document listing every
// evaluation that parsed.
func WriteLaTeXReport(w io.Writer, r Report) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintf(w, "\\title{Calculator session --- layout \\texttt{%s}}\n", latexEscape(r.Layout))
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)

	for i, ev := range r.Evaluations {
		fmt.Fprintf(w, "\\subsection*{\\#%d (%s)}\n", i+1, ev.Timestamp.Format("2006-01-02 15:04:05 UTC"))
		if ev.LaTeX == "" {
			fmt.Fprintf(w, "\\noindent\\texttt{%s} = %s\n\n", latexEscape(ev.Expression), latexEscape(ev.Result))
			continue
		}
		fmt.Fprintln(w, `\[`)
		if ev.Result == calc.ErrorMarker {
			fmt.Fprintf(w, "  %s = \\text{Error}\n", ev.LaTeX)
		} else {
			fmt.Fprintf(w, "  %s = %s\n", ev.LaTeX, ev.Result)
		}
		fmt.Fprintln(w, `\]`)
	}

	fmt.Fprintln(w, `\end{document}`)
}

// WriteReport writes r in the given format.
func WriteReport(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		return WriteJSONReport(w, r)
	case "latex":
		WriteLaTeXReport(w, r)
	default:
		WriteTextReport(w, r)
	}
	return nil
}

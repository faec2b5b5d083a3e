// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/quadra/config"
	"github.com/katalvlaran/quadra/integrand"
	"github.com/katalvlaran/quadra/quadrature"
	"github.com/katalvlaran/quadra/refine"
)

// report is the rendered outcome of one `quadra run`.
type report struct {
	Integrand int          `json:"integrand"`
	Formula   string       `json:"formula"`
	A         float64      `json:"a"`
	B         float64      `json:"b"`
	Epsilon   float64      `json:"epsilon"`
	Results   []ruleReport `json:"results"`
}

type ruleReport struct {
	Rule   quadrature.Kind `json:"rule"`
	Result *refine.Result  `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// integrandEntry is one line of `quadra list`.
type integrandEntry struct {
	ID      int    `json:"id"`
	Formula string `json:"formula"`
	Exact   bool   `json:"exact"`
}

func render(w io.Writer, format string, rep report, withTable bool) error {
	switch format {
	case config.OutputJSON:
		return writeJSON(w, rep)
	case config.OutputYAML:
		return writeYAML(w, rep)
	}

	return writeText(w, rep, withTable)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)

	return err
}

func writeText(w io.Writer, rep report, withTable bool) error {
	fmt.Fprintf(w, "#%d %s on [%g, %g], eps=%g\n\n", rep.Integrand, rep.Formula, rep.A, rep.B, rep.Epsilon)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tSTATE\tN\tVALUE\tEXACT\tDELTA\tPERCENT\tRUNGE")
	for _, rr := range rep.Results {
		res := rr.Result
		if res == nil || res.State != refine.Converged {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t-\t%s\n", rr.Rule, refine.Failed, rr.Error)
			continue
		}
		exact, delta, percent := "-", "-", "-"
		if res.HasExact {
			exact = fmt.Sprintf("%.10f", res.Exact)
			delta = fmt.Sprintf("%.10f", res.Delta)
			percent = fmt.Sprintf("%.6f%%", res.Percent)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.10f\t%s\t%s\t%s\t%.3e\n",
			rr.Rule, res.State, res.N, res.Value, exact, delta, percent, res.RungeError)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !withTable {
		return nil
	}
	for _, rr := range rep.Results {
		if rr.Result == nil || rr.Result.State != refine.Converged {
			continue
		}
		fmt.Fprintf(w, "\n%s, n=%d\n", rr.Rule, rr.Result.N)
		if err := writeSamples(w, rr.Result); err != nil {
			return err
		}
	}

	return nil
}

func writeSamples(w io.Writer, res *refine.Result) error {
	if res.Oversized != nil {
		_, err := fmt.Fprintln(w, res.Oversized.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, h := range res.Table.Headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw, "\t")
	for _, r := range res.Table.Rows {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t\n", r.I, r.X, r.Y)
	}

	return tw.Flush()
}

func renderList(w io.Writer, format string, items []integrand.Integrand) error {
	entries := make([]integrandEntry, 0, len(items))
	for _, in := range items {
		entries = append(entries, integrandEntry{ID: in.ID, Formula: in.Formula, Exact: in.HasAntiderivative()})
	}

	switch format {
	case config.OutputJSON:
		return writeJSON(w, entries)
	case config.OutputYAML:
		return writeYAML(w, entries)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEXACT\tFORMULA")
	for _, e := range entries {
		exact := "no"
		if e.Exact {
			exact = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, exact, e.Formula)
	}

	return tw.Flush()
}

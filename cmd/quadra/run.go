// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/quadra/config"
	"github.com/katalvlaran/quadra/metrics"
	"github.com/katalvlaran/quadra/refine"
)

// errRunFailed is returned when at least one rule did not converge; each
// failure has already been logged and rendered.
var errRunFailed = errors.New("one or more rules failed")

type runOpts struct {
	table   bool
	metrics bool
}

func newRunCommand(a *app) *cobra.Command {
	opts := runOpts{}
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Integrate one built-in integrand with one or more rules",
		Long: `Run doubles the partition count of every selected rule until the Runge
error estimate is at or below --eps, then prints the converged value, the
exact value and the deviation. Numbers accept a decimal comma (0,01).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(opts)
		},
	}

	flags := cmd.Flags()
	flags.Int("integrand", d.Integrand, "integrand ID (see `quadra list`)")
	flags.String("a", formatFloat(d.A), "lower bound")
	flags.String("b", formatFloat(d.B), "upper bound")
	flags.String("eps", formatFloat(d.Epsilon), "tolerance on the Runge estimate")
	flags.StringSlice("rule", d.Rules, "rule: left, right, mid, trapezoid or simpson (repeatable)")
	flags.Int("max-partitions", d.MaxPartitions, "partition ceiling")
	flags.Int("table-limit", d.TableLimit, "largest sample table printed")
	flags.BoolVar(&opts.table, "table", false, "print the sample table of every rule (text output)")
	flags.BoolVar(&opts.metrics, "metrics", false, "print run metrics after the results")

	bindFlags(a.v, flags, map[string]string{
		config.KeyIntegrand:     "integrand",
		config.KeyA:             "a",
		config.KeyB:             "b",
		config.KeyEpsilon:       "eps",
		config.KeyRules:         "rule",
		config.KeyMaxPartitions: "max-partitions",
		config.KeyTableLimit:    "table-limit",
	})

	return cmd
}

// run evaluates every configured rule and renders the report. Failures are
// logged per rule; the report is always written.
func (a *app) run(opts runOpts) error {
	in, err := a.reg.Lookup(a.cfg.Integrand)
	if err != nil {
		return err
	}
	kinds, err := a.cfg.Kinds()
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(promReg)

	rep := report{
		Integrand: in.ID,
		Formula:   in.Formula,
		A:         a.cfg.A,
		B:         a.cfg.B,
		Epsilon:   a.cfg.Epsilon,
	}
	failed := false
	for _, kind := range kinds {
		ro := append(a.cfg.RefineOptions(a.logger.With("integrand", in.ID)), rec.Options(kind)...)
		res, err := refine.RunIntegrand(in, a.cfg.A, a.cfg.B, a.cfg.Epsilon, kind, ro...)
		entry := ruleReport{Rule: kind, Result: res}
		if err != nil {
			failed = true
			entry.Error = err.Error()
			a.logger.Error("quadra: rule failed", "rule", kind.String(), "err", err)
		}
		rep.Results = append(rep.Results, entry)
	}

	if err := render(a.out, a.cfg.Output, rep, opts.table); err != nil {
		return err
	}
	if opts.metrics {
		if err := writeMetrics(a.out, promReg); err != nil {
			return err
		}
	}
	if failed {
		return errRunFailed
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeMetrics encodes every gathered family in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}

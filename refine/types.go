// SPDX-License-Identifier: MIT

// Package refine provides tunable options, result types and error
// definitions for the adaptive refinement loop.
package refine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/quadra/integrand"
	"github.com/katalvlaran/quadra/quadrature"
)

// Defaults.
const (
	// DefaultMaxPartitions is the ceiling on the partition count checked at
	// the start of every iteration.
	DefaultMaxPartitions = 1_000_000

	// DefaultTableLimit is the largest sample table materialised; above it
	// a Placeholder is returned.
	DefaultTableLimit = 500

	// DefaultCacheSize is the number of converged results a Session keeps.
	DefaultCacheSize = 64
)

// Sentinel errors owned by this package.
var (
	// ErrInvalidTolerance is returned when epsilon is not a finite positive number.
	ErrInvalidTolerance = errors.New("refine: epsilon must be finite and positive")

	// ErrCeilingExceeded is returned when the partition count passes MaxPartitions.
	ErrCeilingExceeded = errors.New("refine: maximum number of partitions exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("refine: invalid option supplied")

	// ErrNoParams is returned by a Session stepped before SetParams.
	ErrNoParams = errors.New("refine: no parameters set")
)

// Errors raised by collaborators, re-exported so callers can match every
// failure of a run against this package alone.
var (
	ErrInvalidBounds     = quadrature.ErrInvalidBounds
	ErrOddPartition      = quadrature.ErrOddPartition
	ErrEvaluation        = quadrature.ErrEvaluation
	ErrIntegrandNotFound = integrand.ErrIntegrandNotFound
)

// State is the phase of a refinement loop.
type State int

const (
	// Initializing: trace empty, partition count at its starting value.
	Initializing State = iota

	// Iterating: at least one step ran and none was terminal.
	Iterating

	// Converged: the Runge estimate fell to epsilon; the result is frozen.
	Converged

	// Failed: a validation or evaluation error halted the loop.
	Failed
)

var stateNames = [...]string{
	Initializing: "initializing",
	Iterating:    "iterating",
	Converged:    "converged",
	Failed:       "failed",
}

// String returns the lower-case state name.
func (s State) String() string {
	if s < Initializing || s > Failed {
		return fmt.Sprintf("state(%d)", int(s))
	}

	return stateNames[s]
}

// MarshalText encodes s as its name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further step will change the loop.
func (s State) Terminal() bool {
	return s == Converged || s == Failed
}

// Iteration is one doubling step: the rule evaluated at N (the refined
// count), its step size, value, Runge estimate against N/2 and the rule's
// auxiliary sums.
type Iteration struct {
	N     int             `json:"n"`
	Step  float64         `json:"h"`
	Value float64         `json:"value"`
	Error float64         `json:"error"`
	Sums  quadrature.Sums `json:"sums"`
}

// Row is one sample point of the converged partition.
type Row struct {
	I int     `json:"i"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SampleTable lists the (i, x_i, f(x_i)) points of the converged partition.
type SampleTable struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Placeholder stands in for a SampleTable that would exceed the row limit.
type Placeholder struct {
	Rows    int    `json:"rows"`
	Limit   int    `json:"limit"`
	Message string `json:"message"`
}

// Result is the outcome of one refinement run.
//
// On failure every numeric field is zero, Table and Oversized are nil and
// State is Failed; Iterations still holds the steps completed before the
// failure.
type Result struct {
	Rule       quadrature.Kind `json:"rule"`
	State      State           `json:"state"`
	N          int             `json:"n"`
	Step       float64         `json:"h"`
	Value      float64         `json:"value"`
	Exact      float64         `json:"exact"`
	HasExact   bool            `json:"hasExact"`
	Delta      float64         `json:"delta"`
	Percent    float64         `json:"percent"`
	RungeError float64         `json:"rungeError"`
	Table      *SampleTable    `json:"table,omitempty"`
	Oversized  *Placeholder    `json:"placeholder,omitempty"`
	Iterations []Iteration     `json:"iterations"`
}

// Option configures a run via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when the
// run starts.
type Option func(*Options)

// Options holds the effective configuration of a run.
type Options struct {
	// Ctx is checked once per iteration.
	Ctx context.Context

	// MaxPartitions is the ceiling on the partition count (> 0).
	MaxPartitions int

	// TableLimit is the largest row count materialised (≥ 0).
	TableLimit int

	// InitialPartitions overrides the rule's starting count when > 0.
	InitialPartitions int

	// Antiderivative enables exact-value reporting for Run.
	Antiderivative func(float64) float64

	// OnIteration is called after every appended Iteration. Returning an
	// error stops the run and propagates that error.
	OnIteration func(Iteration) error

	// OnFinish is called once when the run becomes terminal.
	OnFinish func(*Result, error)

	// Logger receives per-iteration Debug records and the outcome.
	Logger *slog.Logger

	// CacheSize bounds a Session's memo of converged results; 0 disables it.
	CacheSize int

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - MaxPartitions = DefaultMaxPartitions, TableLimit = DefaultTableLimit
//   - the rule's own starting partition count
//   - no antiderivative, no-op hooks, a discarding logger
//   - CacheSize = DefaultCacheSize.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MaxPartitions: DefaultMaxPartitions,
		TableLimit:    DefaultTableLimit,
		OnIteration:   func(Iteration) error { return nil },
		OnFinish:      func(*Result, error) {},
		Logger:        slog.New(slog.DiscardHandler),
		CacheSize:     DefaultCacheSize,
	}
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxPartitions sets the partition ceiling; n must be > 0.
func WithMaxPartitions(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxPartitions must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPartitions = n
	}
}

// WithTableLimit sets the largest materialised table; 0 always yields a
// Placeholder, negative values are a violation.
func WithTableLimit(rows int) Option {
	return func(o *Options) {
		if rows < 0 {
			o.err = fmt.Errorf("%w: TableLimit cannot be negative (%d)", ErrOptionViolation, rows)
			return
		}
		o.TableLimit = rows
	}
}

// WithInitialPartitions overrides the rule's starting partition count.
// Parity is not checked here: an odd start for Simpson fails on the first
// step with ErrOddPartition.
func WithInitialPartitions(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: InitialPartitions must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.InitialPartitions = n
	}
}

// WithAntiderivative enables exact-value reporting for Run.
func WithAntiderivative(fn func(float64) float64) Option {
	return func(o *Options) {
		o.Antiderivative = fn
	}
}

// WithOnIteration registers a per-iteration hook.
func WithOnIteration(fn func(Iteration) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnIteration = fn
		}
	}
}

// WithOnFinish registers a hook called once the run is terminal.
func WithOnFinish(fn func(*Result, error)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFinish = fn
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCacheSize bounds the Session memo; 0 disables caching.
func WithCacheSize(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: CacheSize cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.CacheSize = n
	}
}

// Package pipeline drives one generation request from raw parameters to
// assembled parts: resolve the slide, derive dimensions, validate, and
// assemble only when no error-severity rule fired.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/constraint"
	"github.com/chazu/slidecase/pkg/dims"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/slide"
)

// Result is the outcome of one request. Parts is empty whenever Report
// holds an error finding.
type Result struct {
	Name     string            `json:"name,omitempty"`
	Params   params.Params     `json:"params"`
	Slide    slide.Standard    `json:"slide"`
	Geometry dims.Geometry     `json:"geometry"`
	Report   constraint.Report `json:"report"`
	Parts    []assemble.Part   `json:"parts,omitempty"`
}

// Generate runs the pipeline for p. A *constraint.Error is returned, along
// with the report-bearing result, when validation blocks assembly.
func Generate(p params.Params) (Result, error) {
	if _, err := params.ParseMode(string(p.Mode)); err != nil {
		return Result{Params: p}, err
	}

	std := p.Slide()
	res := Result{
		Params:   p,
		Slide:    std,
		Geometry: dims.Derive(std, p),
		Report:   constraint.Validate(p),
	}
	if err := res.Report.Err(); err != nil {
		return res, err
	}

	parts, err := assemble.Assemble(p.Mode, std, res.Geometry, p)
	if err != nil {
		return res, err
	}
	res.Parts = parts
	return res, nil
}

// Request names one parameter set of a batch.
type Request struct {
	Name   string
	Params params.Params
}

// Outcome pairs a batch result with its own error.
type Outcome struct {
	Result
	Err error `json:"-"`
}

// GenerateAll runs independent requests in parallel. Per-request failures
// are reported in each Outcome; the returned error is only set when ctx is
// done before every request ran.
func GenerateAll(ctx context.Context, reqs []Request) ([]Outcome, error) {
	out := make([]Outcome, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Generate(req.Params)
			res.Name = req.Name
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("batch interrupted: %w", err)
	}
	return out, nil
}

// AllModes builds one request per mode from a shared parameter set.
func AllModes(p params.Params) []Request {
	reqs := make([]Request, 0, len(params.Modes))
	for _, m := range params.Modes {
		q := p
		q.Mode = m
		reqs = append(reqs, Request{Name: string(m), Params: q})
	}
	return reqs
}

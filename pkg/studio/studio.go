// Package studio backs interactive editors. One call turns design script
// source into meshes, constraint findings and editor-positioned errors.
package studio

import (
	"context"
	"fmt"

	"github.com/chazu/slidecase/pkg/constraint"
	"github.com/chazu/slidecase/pkg/engine"
	"github.com/chazu/slidecase/pkg/export"
	"github.com/chazu/slidecase/pkg/kernel"
	"github.com/chazu/slidecase/pkg/kernel/sdfx"
	"github.com/chazu/slidecase/pkg/pipeline"
	"github.com/chazu/slidecase/pkg/realize"
)

// ErrorData is a JSON-serializable error for the editor. Line and Col are
// zero when the error has no source position.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Design  string `json:"design,omitempty"`
	RuleID  string `json:"ruleId,omitempty"`
	Message string `json:"message"`
}

// DesignSummary describes one design of the script.
type DesignSummary struct {
	Name    string `json:"name"`
	Mode    string `json:"mode"`
	Parts   int    `json:"parts"`
	Blocked bool   `json:"blocked"`
}

// EvalResult is the full result returned to the editor.
type EvalResult struct {
	Designs  []DesignSummary   `json:"designs"`
	Meshes   []export.MeshData `json:"meshes"`
	Errors   []ErrorData       `json:"errors"`
	Warnings []ErrorData       `json:"warnings"`
}

// Studio pairs a script engine with a geometry kernel.
type Studio struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// New creates a Studio meshing with the sdfx kernel.
func New() *Studio {
	return NewWithKernel(sdfx.New())
}

// NewWithKernel creates a Studio meshing with k.
func NewWithKernel(k kernel.Kernel) *Studio {
	return &Studio{engine: engine.NewEngine(), kernel: k}
}

// Evaluate runs source and meshes every design that passes validation.
// Designs blocked by error findings contribute errors but no meshes; the
// remaining designs still render.
func (s *Studio) Evaluate(ctx context.Context, source string) EvalResult {
	result := EvalResult{
		Designs:  []DesignSummary{},
		Meshes:   []export.MeshData{},
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}

	designs, evalErrs, err := s.engine.Evaluate(source)
	if err != nil {
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	for i, d := range designs {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("design%d", i+1)
		}
		res, genErr := pipeline.Generate(d.Params)
		result.Designs = append(result.Designs, DesignSummary{
			Name:    name,
			Mode:    string(d.Params.Mode),
			Parts:   len(res.Parts),
			Blocked: genErr != nil,
		})
		result.Warnings = append(result.Warnings, findings(name, res.Report.Warnings())...)
		if genErr != nil {
			if res.Report.HasErrors() {
				result.Errors = append(result.Errors, findings(name, res.Report.Errors())...)
			} else {
				result.Errors = append(result.Errors, ErrorData{Design: name, Message: genErr.Error()})
			}
			continue
		}

		meshes, err := realize.New(s.kernel, d.Params.FN).Parts(ctx, res.Parts)
		if err != nil {
			result.Errors = append(result.Errors, ErrorData{Design: name, Message: "meshing failed: " + err.Error()})
			continue
		}
		for _, m := range export.Meshes(meshes, res.Parts) {
			m.Design = name
			result.Meshes = append(result.Meshes, m)
		}
	}
	return result
}

func findings(design string, fs []constraint.Finding) []ErrorData {
	out := make([]ErrorData, len(fs))
	for i, f := range fs {
		out[i] = ErrorData{Design: design, RuleID: f.RuleID, Message: f.Message}
	}
	return out
}

// Package engine turns an extracted intent into an ordered iptables rule
// list, a least-privilege score, warnings, a secure/insecure comparison and
// teaching notes. Every call is independent; a Generator holds no
// per-request state and is safe for concurrent use.
package engine

import (
	"firewall-rule-generator/internal/intent"
	"firewall-rule-generator/internal/model"
)

type Generator struct {
	extractor *intent.Extractor
}

func NewGenerator() (*Generator, error) {
	extractor, err := intent.NewExtractor()
	if err != nil {
		return nil, err
	}
	return &Generator{extractor: extractor}, nil
}

// Intent exposes the extraction step on its own.
func (g *Generator) Intent(req model.Request) model.Intent {
	return g.extractor.Extract(req)
}

// Generate never fails: unknown protocols are skipped and a missing source
// value is treated as unrestricted.
func (g *Generator) Generate(req model.Request) model.Result {
	return Assemble(g.extractor.Extract(req))
}

// Assemble builds a Result from an already extracted intent.
func Assemble(in model.Intent) model.Result {
	rules, breakdown := synthesize(in)
	warnings := detectWarnings(in)

	return model.Result{
		Rules:          rules,
		Warnings:       warnings,
		Score:          total(breakdown),
		ScoreBreakdown: breakdown,
		Comparison:     compare(in.Protocols),
		LearningPoints: advise(in, warnings),
	}
}

// Package intent derives the protocol set and source restriction a request
// asks for. Free-text inference is a fixed table of CEL predicates evaluated
// against the lower-cased description and the server role.
package intent

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"firewall-rule-generator/internal/model"
	"firewall-rule-generator/pkg/wellknown"
)

// Inference adds Protocols to the intent when Expression evaluates to true.
// Expressions see two string variables: role and description (lower-cased).
type Inference struct {
	Name       string
	Expression string
	Protocols  []string
}

// Inferences run in this order. The keyword rows at the end overlap the role
// rows on purpose; adding a protocol that is already present is a no-op.
var Inferences = []Inference{
	{Name: "web-role", Expression: `role == "web" || description.contains("web server")`, Protocols: []string{"HTTP", "HTTPS"}},
	{Name: "database-mysql", Expression: `(role == "db" || description.contains("database")) && description.contains("mysql")`, Protocols: []string{"MySQL"}},
	{Name: "database-postgres", Expression: `(role == "db" || description.contains("database")) && description.contains("postgres")`, Protocols: []string{"PostgreSQL"}},
	{Name: "database-mongo", Expression: `(role == "db" || description.contains("database")) && description.contains("mongo")`, Protocols: []string{"MongoDB"}},
	{Name: "database-redis", Expression: `(role == "db" || description.contains("database")) && description.contains("redis")`, Protocols: []string{"Redis"}},
	{Name: "bastion-role", Expression: `role == "bastion" || description.contains("ssh") || description.contains("bastion")`, Protocols: []string{"SSH"}},
	{Name: "keyword-http", Expression: `description.contains("http")`, Protocols: []string{"HTTP"}},
	{Name: "keyword-https", Expression: `description.contains("https")`, Protocols: []string{"HTTPS"}},
	{Name: "keyword-ssh", Expression: `description.contains("ssh")`, Protocols: []string{"SSH"}},
	{Name: "keyword-ftp", Expression: `description.contains("ftp")`, Protocols: []string{"FTP"}},
}

type compiledInference struct {
	Inference
	program cel.Program
}

type Extractor struct {
	inferences []compiledInference
}

// NewExtractor compiles the built-in inference table.
func NewExtractor() (*Extractor, error) {
	return Compile(Inferences)
}

// Compile builds an Extractor from an arbitrary inference table.
func Compile(table []Inference) (*Extractor, error) {
	env, err := cel.NewEnv(
		cel.Variable("role", cel.StringType),
		cel.Variable("description", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env failed: %w", err)
	}

	e := &Extractor{}
	for _, inf := range table {
		ast, iss := env.Compile(inf.Expression)
		if iss.Err() != nil {
			return nil, fmt.Errorf("compile inference %s failed: %w", inf.Name, iss.Err())
		}
		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("create program for inference %s failed: %w", inf.Name, err)
		}
		e.inferences = append(e.inferences, compiledInference{Inference: inf, program: program})
	}
	return e, nil
}

// Extract returns the ordered protocol set and source descriptor for req.
func (e *Extractor) Extract(req model.Request) model.Intent {
	var set orderedSet
	for _, p := range req.Protocols {
		set.add(wellknown.Canonical(strings.TrimSpace(p)))
	}

	vars := bindings(req)
	for _, inf := range e.inferences {
		if !inf.fires(vars) {
			continue
		}
		for _, p := range inf.Protocols {
			set.add(p)
		}
	}

	return model.Intent{
		Protocols: set.items(),
		Source:    DeriveSource(req),
	}
}

// Matched lists the names of the inferences that fire for req, in table order.
func (e *Extractor) Matched(req model.Request) []string {
	vars := bindings(req)
	var names []string
	for _, inf := range e.inferences {
		if inf.fires(vars) {
			names = append(names, inf.Name)
		}
	}
	return names
}

func bindings(req model.Request) map[string]any {
	return map[string]any{
		"role":        string(req.Role),
		"description": strings.ToLower(req.Description),
	}
}

// A predicate that fails at runtime or yields a non-bool does not fire.
func (c compiledInference) fires(vars map[string]any) bool {
	out, _, err := c.program.Eval(vars)
	if err != nil {
		return false
	}
	matched, ok := out.Value().(bool)
	return ok && matched
}

type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *orderedSet) items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

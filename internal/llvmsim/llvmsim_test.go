package llvmsim

import (
	"strings"
	"testing"

	"abccore/internal/gia"
)

func buildAndCone() (*gia.GIA, gia.Lit) {
	g := gia.New()
	x1 := g.AppendPi("x1")
	x2 := g.AppendPi("x2")
	n := g.AppendAnd(x1, x2)
	return g, n
}

func TestCompileConeEmitsAFunctionNamedForTheCone(t *testing.T) {
	g, out := buildAndCone()
	mod, err := CompileCone("and_cone", g, []int{1, 2}, []gia.Lit{out})
	if err != nil {
		t.Fatalf("CompileCone: %v", err)
	}
	ir := mod.String()
	if !strings.Contains(ir, "and_cone") {
		t.Fatalf("expected emitted IR to reference the function name, got:\n%s", ir)
	}
	if !strings.Contains(ir, "and") {
		t.Fatalf("expected emitted IR to contain an and instruction, got:\n%s", ir)
	}
}

func TestCompileConeRejectsEmptyInputs(t *testing.T) {
	g, out := buildAndCone()
	if _, err := CompileCone("no_inputs", g, nil, []gia.Lit{out}); err == nil {
		t.Fatalf("expected an error for a cone with no declared inputs")
	}
}

func TestCompileConeHandlesMultipleOutputs(t *testing.T) {
	g := gia.New()
	x1 := g.AppendPi("x1")
	x2 := g.AppendPi("x2")
	and := g.AppendAnd(x1, x2)
	notAnd := and.Not()

	mod, err := CompileCone("two_out", g, []int{1, 2}, []gia.Lit{and, notAnd})
	if err != nil {
		t.Fatalf("CompileCone: %v", err)
	}
	if !strings.Contains(mod.String(), "insertvalue") {
		t.Fatalf("expected a struct-return function to use insertvalue, got:\n%s", mod.String())
	}
}

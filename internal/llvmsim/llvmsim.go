// Package llvmsim translates a GIA cone into an LLVM IR function
// (github.com/llir/llvm) as an alternative to repeated interpreted
// truth-table simulation: the function is one basic block of and/xor
// over 64-bit words, so one call of it evaluates 64 minterms. The
// package only builds the IR module and renders it as text; it does not
// compile, JIT or execute it.
package llvmsim

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"abccore/internal/coreerr"
	"abccore/internal/gia"
)

// Module wraps the compiled LLVM IR module for one cone, along with
// the order of the function's i64 input parameters.
type Module struct {
	IR     *ir.Module
	Func   *ir.Func
	Inputs []int // GIA object ids, in the order the function's parameters expect them
}

// CompileCone builds an LLVM IR function computing, for every output
// in outputs, the bitwise simulation of the cone rooted at that
// literal over the named cone inputs. Each input and each output is
// one i64 parameter/return word (a packed batch of 64 simulation
// patterns), so one call evaluates 64 minterms instead of one.
func CompileCone(name string, g *gia.GIA, inputs []int, outputs []gia.Lit) (*Module, error) {
	site := coreerr.Site{Package: "llvmsim", Operation: "CompileCone"}
	if len(inputs) == 0 {
		return nil, coreerr.New(coreerr.Precondition, site, "cone has no declared inputs")
	}

	m := ir.NewModule()

	params := make([]*ir.Param, len(inputs))
	for i, id := range inputs {
		params[i] = ir.NewParam(fmt.Sprintf("in%d", id), types.I64)
	}

	retType := types.I64
	if len(outputs) > 1 {
		fields := make([]types.Type, len(outputs))
		for i := range fields {
			fields[i] = types.I64
		}
		retType = types.NewStruct(fields...)
	}

	fn := m.NewFunc(name, retType, params...)
	block := fn.NewBlock("entry")

	values := make(map[int]value.Value, len(g.Objs))
	for i, id := range inputs {
		values[id] = params[i]
	}

	var compile func(id int) value.Value
	compile = func(id int) value.Value {
		if v, ok := values[id]; ok {
			return v
		}
		obj := g.Objs[id]
		a := compileLit(block, compile, obj.Fanin0)
		b := compileLit(block, compile, obj.Fanin1)
		v := block.NewAnd(a, b)
		values[id] = v
		return v
	}

	results := make([]value.Value, len(outputs))
	for i, lit := range outputs {
		results[i] = compileLit(block, compile, lit)
	}

	if len(results) == 1 {
		block.NewRet(results[0])
	} else {
		var cur value.Value = constZeroStruct(retType.(*types.StructType))
		for i, r := range results {
			cur = block.NewInsertValue(cur, r, uint64(i))
		}
		block.NewRet(cur)
	}

	return &Module{IR: m, Func: fn, Inputs: inputs}, nil
}

func compileLit(block *ir.Block, compile func(int) value.Value, l gia.Lit) value.Value {
	v := compile(l.Var())
	if l.IsCompl() {
		return block.NewXor(v, constAllOnes())
	}
	return v
}

func constAllOnes() value.Value {
	return constant.NewInt(types.I64, -1)
}

func constZeroStruct(t *types.StructType) value.Value {
	fields := make([]constant.Constant, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = constant.NewInt(f.(*types.IntType), 0)
	}
	return constant.NewStruct(t, fields...)
}

// String renders the compiled module's textual LLVM IR, mainly for
// debugging and golden-file tests; abccore never shells out to llc or
// a real JIT engine itself.
func (m *Module) String() string {
	return m.IR.String()
}

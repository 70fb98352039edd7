package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wired-desktop/shimejictl/lang/compiler"
	"github.com/wired-desktop/shimejictl/lang/parser"
	"github.com/wired-desktop/shimejictl/lang/scanner"
)

func compile(t *testing.T, body string, evaluateOnce bool) *compiler.Program {
	t.Helper()
	toks := scanner.Scan(body)
	n, err := parser.Parse(toks)
	require.NoError(t, err)
	return compiler.Compile(n, evaluateOnce)
}

func TestCompileLiteralEndsWithRet(t *testing.T) {
	p := compile(t, "1", true)
	require.Len(t, p.Instructions, 2)
	assert.Equal(t, compiler.STORE, p.Instructions[0].Op)
	assert.Equal(t, 1.0, p.Instructions[0].Float)
	assert.Equal(t, compiler.RET, p.Instructions[1].Op)
}

func TestCompileForcedLocalCanonicalizesName(t *testing.T) {
	p := compile(t, "x", true)
	require.Contains(t, p.Locals, "mascot.x")
	assert.Equal(t, compiler.LOADL, p.Instructions[0].Op)
}

func TestCompileForcedExternalLoadsGlobalOnly(t *testing.T) {
	p := compile(t, "mascot.anchor", true)
	require.Len(t, p.Instructions, 2)
	assert.Equal(t, compiler.LOADE, p.Instructions[0].Op)
	assert.Contains(t, p.Globals, "mascot.anchor")
}

func TestCompileMathPrefixLoadsGlobal(t *testing.T) {
	p := compile(t, "math.pi", true)
	assert.Equal(t, compiler.LOADE, p.Instructions[0].Op)
	assert.Contains(t, p.Globals, "math.pi")
}

func TestCompileDeepChainAlwaysGlobal(t *testing.T) {
	p := compile(t, "a.b.c", true)
	assert.Equal(t, compiler.LOADE, p.Instructions[0].Op)
	assert.Contains(t, p.Globals, "a.b.c")
}

func TestCompileUnaryMinusEmitsZeroSubtract(t *testing.T) {
	p := compile(t, "-mascot.x", true)
	require.Len(t, p.Instructions, 4)
	assert.Equal(t, compiler.STORE, p.Instructions[0].Op)
	assert.Equal(t, 0.0, p.Instructions[0].Float)
	assert.Equal(t, compiler.LOADL, p.Instructions[1].Op)
	assert.Equal(t, compiler.SUB, p.Instructions[2].Op)
	assert.Equal(t, compiler.RET, p.Instructions[3].Op)
}

func TestCompileTernaryBranchOffsetsAreInstructionDeltas(t *testing.T) {
	p := compile(t, "1?2:3", true)
	// STORE 1, BQZ, STORE 2, JMP, STORE 3, RET
	require.Len(t, p.Instructions, 6)
	assert.Equal(t, compiler.BQZ, p.Instructions[1].Op)
	assert.Equal(t, 3, p.Instructions[1].BranchTo) // to the STORE 3 instruction
	assert.Equal(t, compiler.JMP, p.Instructions[3].Op)
	assert.Equal(t, 2, p.Instructions[3].BranchTo) // to RET
}

func TestCompileFunctionCallAppendsToFunctionTable(t *testing.T) {
	p := compile(t, "sin(1)", true)
	require.Contains(t, p.Functions, "sin")
	last := p.Instructions[len(p.Instructions)-2]
	assert.Equal(t, compiler.CALL, last.Op)
}

func TestCompileEvaluateOnceFlag(t *testing.T) {
	p := compile(t, "1", false)
	assert.False(t, p.EvaluateOnce)
}

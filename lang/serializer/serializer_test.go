package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wired-desktop/shimejictl/lang/compiler"
	"github.com/wired-desktop/shimejictl/lang/parser"
	"github.com/wired-desktop/shimejictl/lang/scanner"
	"github.com/wired-desktop/shimejictl/lang/serializer"
)

func compileHex(t *testing.T, body string) string {
	t.Helper()
	toks := scanner.Scan(body)
	n, err := parser.Parse(toks)
	require.NoError(t, err)
	p := compiler.Compile(n, true)
	hex, err := serializer.Emit(p)
	require.NoError(t, err)
	return hex
}

func TestEmitLiteralStoreInterleavesContinuationMarkers(t *testing.T) {
	hex := compileHex(t, "1")
	assert.Equal(t, "120013001480153F80000100", hex)
}

func TestEmitSimpleLoadAndReturn(t *testing.T) {
	hex := compileHex(t, "mascot.x")
	// LOADL index 0 (2 bytes) + RET (2 bytes)
	assert.Equal(t, "10000100", hex)
}

func TestEmitTernaryBranchOffsetsAreByteCounts(t *testing.T) {
	hex := compileHex(t, "1?2:3")
	store1 := "120013001480153F8000"
	bqz := "600C"    // skips STORE 2 (10 bytes) + JMP (2 bytes) = 0x0C
	store2 := "12001300140015408000"
	jmp := "620A" // skips STORE 3 (10 bytes) = 0x0A
	store3 := "12001300144015408000"
	ret := "0100"
	assert.Equal(t, store1+bqz+store2+jmp+store3+ret, hex)
}

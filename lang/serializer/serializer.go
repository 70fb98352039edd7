// Package serializer encodes a compiler.Program into the hex
// instruction-stream format consumed by the overlay daemon: each
// instruction is one or more 2-hex-digit bytes, with STORE's 4-byte
// little-endian float interleaved with fixed continuation markers and
// branch instructions carrying a 1-byte offset counted in wire bytes
// rather than instruction slots.
package serializer

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/wired-desktop/shimejictl/lang/compiler"
)

// opcodeHex is the wire byte for each opcode, matching the fixed table
// baked into the overlay daemon's bytecode interpreter.
var opcodeHex = map[compiler.Opcode]string{
	compiler.ERR:    "00",
	compiler.RET:    "01",
	compiler.LOADL:  "10",
	compiler.LOADE:  "11",
	compiler.STORE:  "12",
	compiler.ADD:    "20",
	compiler.SUB:    "21",
	compiler.MUL:    "22",
	compiler.DIV:    "23",
	compiler.MOD:    "24",
	compiler.POW:    "25",
	compiler.AND:    "30",
	compiler.OR:     "31",
	compiler.XOR:    "32",
	compiler.NOT:    "33",
	compiler.LSHIFT: "34",
	compiler.RSHIFT: "35",
	compiler.LT:     "40",
	compiler.LE:     "41",
	compiler.GT:     "42",
	compiler.GE:     "43",
	compiler.EQ:     "44",
	compiler.NE:     "45",
	compiler.LAND:   "50",
	compiler.LOR:    "51",
	compiler.LNOT:   "52",
	compiler.BQZ:    "60",
	compiler.BNZ:    "61",
	compiler.JMP:    "62",
	compiler.CALL:   "70",
}

// instrWireBytes is the number of wire bytes an instruction occupies,
// used to translate a branch's instruction-count delta into the
// byte-count offset the interpreter actually steps over. Every
// instruction is 2 bytes (one opcode byte plus one immediate byte, or
// a bare opcode byte padded to "00") except STORE, which is 10.
func instrWireBytes(op compiler.Opcode) int {
	if op == compiler.STORE {
		return 10
	}
	return 2
}

// Emit serializes p's instruction stream into the hex wire format.
func Emit(p *compiler.Program) (string, error) {
	var b strings.Builder
	for i, instr := range p.Instructions {
		hex, ok := opcodeHex[instr.Op]
		if !ok {
			return "", fmt.Errorf("serializer: unknown opcode %v at instruction %d", instr.Op, i)
		}
		b.WriteString(hex)

		switch instr.Op {
		case compiler.LOADL, compiler.LOADE, compiler.CALL:
			b.WriteString(byteHex(uint8(instr.Index)))

		case compiler.STORE:
			b.WriteString(storeOperandHex(float32(instr.Float)))

		case compiler.BQZ, compiler.BNZ, compiler.JMP:
			offset := branchByteOffset(p.Instructions, i, instr.BranchTo)
			b.WriteString(byteHex(uint8(offset)))

		default:
			b.WriteString("00")
		}
	}
	return b.String(), nil
}

func byteHex(b uint8) string {
	return fmt.Sprintf("%02X", b)
}

// storeOperandHex packs a float32 little-endian, then splices "13",
// "14", "15" continuation markers between its four bytes and appends a
// trailing "8000" push marker, matching the overlay daemon's
// multi-byte immediate convention for STORE.
func storeOperandHex(f float32) string {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))

	var b strings.Builder
	b.WriteString(byteHex(buf[0]))
	b.WriteString("13")
	b.WriteString(byteHex(buf[1]))
	b.WriteString("14")
	b.WriteString(byteHex(buf[2]))
	b.WriteString("15")
	b.WriteString(byteHex(buf[3]))
	b.WriteString("8000")
	return b.String()
}

// branchByteOffset sums the wire-byte width of the instructions from
// from+1 up to but not including from+branchTo (the branch instruction
// itself is not counted), since the interpreter's instruction pointer
// advances by bytes, not instruction slots.
func branchByteOffset(instrs []compiler.Instr, from, branchTo int) int {
	offset := 0
	for _, instr := range instrs[from+1 : from+branchTo] {
		offset += instrWireBytes(instr.Op)
	}
	return offset
}

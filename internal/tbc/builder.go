// Package tbc is a minimal bytecode assembler for the turingvm bytecode
// format. It uses a label table with deferred patching for forward
// references, the same approach a text-to-bytecode assembler uses for jump
// targets it can't resolve until the whole program has been scanned, but
// collapses the label-resolution and text-preprocessing into a small
// fluent builder instead of a full text assembly pipeline.
//
// It does not parse a high-level Turing-machine description language — it
// only emits the already-linear bytecode the VM consumes. It exists to give
// the test suite and the cmd/tvmrun demonstration a way to build programs
// without hand-indexing byte offsets.
package tbc

import (
	"encoding/binary"
	"fmt"

	tvm "turingvm/vm"
)

type addrPatch struct {
	pos   uint32
	label string
}

// Builder assembles a single bytecode program: a 6-byte header followed by
// a sequence of state-arm regions, addressed by caller-chosen labels.
type Builder struct {
	buf       []byte
	labels    map[string]uint32
	patches   []addrPatch
	headerSet bool
}

// New returns an empty Builder. Callers should call Header first, then
// Label/arm-emitting calls in the order the bytecode should appear.
func New() *Builder {
	return &Builder{labels: make(map[string]uint32)}
}

func (b *Builder) pos() uint32 { return uint32(len(b.buf)) }

func (b *Builder) putU8(v uint8) { b.buf = append(b.buf, v) }

func (b *Builder) putU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) putU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// putU32Label reserves 4 bytes for an address that will be resolved against
// a label at Finish time, the same deferred-patch approach an assembler
// uses for jump targets that aren't known until the whole program has been
// scanned.
func (b *Builder) putU32Label(label string) {
	b.patches = append(b.patches, addrPatch{pos: b.pos(), label: label})
	b.putU32(0)
}

// Header emits the 2-byte reserved field and the 4-byte entry address,
// resolved against entryLabel at Finish. It must be called exactly once,
// before any other emission.
func (b *Builder) Header(entryLabel string) *Builder {
	if b.headerSet {
		panic("tbc: Header called twice")
	}
	b.headerSet = true
	b.putU16(0)
	b.putU32Label(entryLabel)
	return b
}

// Label marks the current position as the address state arm regions
// referencing name should jump to. A state's arm chain normally begins
// immediately after its Label call.
func (b *Builder) Label(name string) *Builder {
	if _, exists := b.labels[name]; exists {
		panic(fmt.Sprintf("tbc: label %q defined twice", name))
	}
	b.labels[name] = b.pos()
	return b
}

// armPatch is the deferred u16 skip-length field of a COMPARE_ARG/COMPARE_VAL
// arm header, to be resolved once the arm's RHS has been fully emitted.
type armPatch struct {
	pos uint32
}

// CompareArg opens an arm matching the tape symbol under the head against
// symbol argument register argIndex. The caller emits the arm's RHS next,
// then calls EndArm with the returned armPatch.
func (b *Builder) CompareArg(argIndex uint8) armPatch {
	b.putU8(byte(tvm.OpCompareArg))
	b.putU8(argIndex)
	p := armPatch{pos: b.pos()}
	b.putU16(0)
	return p
}

// CompareVal opens an arm matching the tape symbol under the head against
// the literal value v. See CompareArg.
func (b *Builder) CompareVal(v uint16) armPatch {
	b.putU8(byte(tvm.OpCompareVal))
	b.putU16(v)
	p := armPatch{pos: b.pos()}
	b.putU16(0)
	return p
}

// Other opens a wildcard arm that always matches and binds the symbol under
// the head. It has no skip field: a miss is impossible.
func (b *Builder) Other() *Builder {
	b.putU8(byte(tvm.OpOther))
	return b
}

// Halt ends the current arm chain with a HALT arm, which has no RHS.
func (b *Builder) Halt() *Builder {
	b.putU8(byte(tvm.OpHalt))
	return b
}

// EndArm patches a CompareArg/CompareVal arm's skip field now that its RHS
// has been fully emitted.
func (b *Builder) EndArm(p armPatch) *Builder {
	skip := b.pos() - (p.pos + 2)
	binary.LittleEndian.PutUint16(b.buf[p.pos:], uint16(skip))
	return b
}

// --- RHS opcodes ---

func (b *Builder) Left() *Builder  { b.putU8(byte(tvm.OpLeft)); return b }
func (b *Builder) Right() *Builder { b.putU8(byte(tvm.OpRight)); return b }

func (b *Builder) LeftN(n uint8) *Builder {
	b.putU8(byte(tvm.OpLeftN))
	b.putU8(n)
	return b
}

func (b *Builder) RightN(n uint8) *Builder {
	b.putU8(byte(tvm.OpRightN))
	b.putU8(n)
	return b
}

func (b *Builder) WriteArg(i uint8) *Builder {
	b.putU8(byte(tvm.OpWriteArg))
	b.putU8(i)
	return b
}

func (b *Builder) WriteVal(v uint16) *Builder {
	b.putU8(byte(tvm.OpWriteVal))
	b.putU16(v)
	return b
}

func (b *Builder) WriteBound() *Builder { b.putU8(byte(tvm.OpWriteBound)); return b }

func (b *Builder) SymbolArg(i uint8) *Builder {
	b.putU8(byte(tvm.OpSymbolArg))
	b.putU8(i)
	return b
}

func (b *Builder) SymbolVal(v uint16) *Builder {
	b.putU8(byte(tvm.OpSymbolVal))
	b.putU16(v)
	return b
}

func (b *Builder) SymbolBound() *Builder { b.putU8(byte(tvm.OpSymbolBound)); return b }

func (b *Builder) TakeArg(i uint8) *Builder {
	b.putU8(byte(tvm.OpTakeArg))
	b.putU8(i)
	return b
}

func (b *Builder) CloneArg(i uint8) *Builder {
	b.putU8(byte(tvm.OpCloneArg))
	b.putU8(i)
	return b
}

func (b *Builder) FreeArg(i uint8) *Builder {
	b.putU8(byte(tvm.OpFreeArg))
	b.putU8(i)
	return b
}

// MakeState pops the top k entries of the state scratch (in push order) and
// drains the symbol scratch to build a new StateValue at targetLabel,
// pushed onto the state scratch.
func (b *Builder) MakeState(k uint8, targetLabel string) *Builder {
	b.putU8(byte(tvm.OpMakeState))
	b.putU8(k)
	b.putU32Label(targetLabel)
	return b
}

// FinalState ends the current RHS, jumping to targetLabel with the whole
// scratch envelope becoming the next state's argument registers.
func (b *Builder) FinalState(targetLabel string) *Builder {
	b.putU8(byte(tvm.OpFinalState))
	b.putU32Label(targetLabel)
	return b
}

// FinalArg ends the current RHS by taking state argument i as the successor
// state.
func (b *Builder) FinalArg(i uint8) *Builder {
	b.putU8(byte(tvm.OpFinalArg))
	b.putU8(i)
	return b
}

// Finish resolves every label reference and returns the assembled bytecode
// buffer. It returns an error if Header was never called or a referenced
// label was never defined.
func (b *Builder) Finish() ([]byte, error) {
	if !b.headerSet {
		return nil, fmt.Errorf("tbc: Header was never called")
	}

	out := append([]byte(nil), b.buf...)
	for _, p := range b.patches {
		addr, ok := b.labels[p.label]
		if !ok {
			return nil, fmt.Errorf("tbc: undefined label %q", p.label)
		}
		binary.LittleEndian.PutUint32(out[p.pos:], addr)
	}
	return out, nil
}

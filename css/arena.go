package css

import (
	"fmt"

	"go.uber.org/zap"
)

// recordSize is the fixed per-node record layout (spec §3.2): 36
// little-endian bytes packed into one contiguous buffer so a megabyte-scale
// stylesheet parses with near-zero per-node allocation.
const recordSize = 36

// Field byte offsets within a record.
const (
	offKind               = 0
	offFlags              = 1
	offLength             = 2
	offFirstChild         = 4
	offNextSibling        = 8
	offStartOffset        = 12
	offContentStartDelta  = 16
	offValueStartDelta    = 18
	offContentLength      = 20
	offValueLength        = 22
	offStartLine          = 24
	offStartColumn        = 28
	offAttrOperator       = 32
	offAttrFlags          = 33
)

const lengthSaturation = 0xFFFF

// Arena backs all nodes of one parse in a single contiguous byte buffer,
// addressed by 32-bit index rather than pointer. Index 0 is the null
// sentinel; the first real allocation returns index 1.
//
// Grounded on the fixed-record design in lukehoban-browser/css/parser.go's
// pointer-tree Stylesheet/Rule/Selector/Declaration types, reshaped from a
// pointer graph into an index-addressed byte buffer per spec §3.2/§4.3 —
// there is no teacher precedent for an arena, so the record layout and
// growth policy are built directly from the spec's byte table.
type Arena struct {
	buf      []byte
	count    uint32
	overflow map[uint32]uint32 // index -> true length, for LENGTH_OVERFLOW nodes
	growths  int
	log      *zap.Logger // nil unless attached by newParser; always nil-checked before use
}

// NewArena allocates a buffer sized from the expected source length, per
// the heuristic in spec §4.3: source_len/1024 * 325 * 1.2, floor 16 nodes.
func NewArena(sourceLen int) *Arena {
	capNodes := int(float64(sourceLen) / 1024 * 325 * 1.2)
	if capNodes < 16 {
		capNodes = 16
	}
	a := &Arena{buf: make([]byte, recordSize)} // index 0 reserved
	a.grow(capNodes)
	a.count = 1
	return a
}

func (a *Arena) capacity() uint32 { return uint32(len(a.buf) / recordSize) }

// grow ensures the buffer can hold at least minNodes records, reallocating
// it to exactly minNodes records when it is smaller (NewArena uses this for
// the initial sizing; growIfFull does the geometric growth). Existing indices remain
// valid across growth because the buffer is copied, not replaced by a
// different addressing scheme.
func (a *Arena) grow(minNodes int) {
	if uint32(minNodes) <= a.capacity() {
		return
	}
	newCap := minNodes
	buf := make([]byte, newCap*recordSize)
	copy(buf, a.buf)
	a.buf = buf
}

// growIfFull grows capacity by a factor of about 1.3 (plus one record) when
// the next allocation would exceed it. It always returns nil: a failed
// allocation panics, and the deferred handler re-panics with an error that
// names the capacity reached, which ends the parse as the fatal error spec
// §7 describes.
func (a *Arena) growIfFull() error {
	if a.count < a.capacity() {
		return nil
	}
	oldCap := a.capacity()
	newCap := uint32(float64(oldCap)*1.3) + 1
	if newCap <= oldCap {
		newCap = oldCap + 1
	}
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Errorf("css: arena growth failed at %d nodes: %v", a.capacity(), r))
		}
	}()
	buf := make([]byte, int(newCap)*recordSize)
	copy(buf, a.buf)
	a.buf = buf
	a.growths++
	if a.log != nil {
		a.log.Debug("arena growth", zap.Uint32("old_capacity", oldCap), zap.Uint32("new_capacity", newCap))
	}
	return nil
}

// Growths returns the number of times the arena has grown past its initial
// capacity, exposed for telemetry per spec §4.3.
func (a *Arena) Growths() int { return a.growths }

func (a *Arena) record(index uint32) []byte {
	start := index * recordSize
	return a.buf[start : start+recordSize]
}

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}

func getU16(b []byte, off int) uint16 {
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func getU32(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

// CreateNode allocates a new node, zero-initializes its record, and writes
// the core fields. It returns the node's stable 32-bit index.
func (a *Arena) CreateNode(kind Kind, startOffset, length, line, column int) uint32 {
	if err := a.growIfFull(); err != nil {
		panic(err)
	}
	index := a.count
	a.count++

	b := a.record(index)
	for i := range b {
		b[i] = 0
	}
	b[offKind] = byte(kind)
	putU32(b, offStartOffset, uint32(startOffset))
	putU32(b, offStartLine, uint32(line))
	putU32(b, offStartColumn, uint32(column))
	a.SetLength(index, length)
	return index
}

// SetLength sets a node's byte length, saturating the inline 16-bit field
// and recording the true length in the sidecar map when it overflows.
func (a *Arena) SetLength(index uint32, length int) {
	b := a.record(index)
	if length > lengthSaturation {
		putU16(b, offLength, lengthSaturation)
		b[offFlags] |= byte(FlagLengthOverflow)
		if a.overflow == nil {
			a.overflow = make(map[uint32]uint32)
		}
		a.overflow[index] = uint32(length)
		return
	}
	putU16(b, offLength, uint16(length))
}

// Length returns a node's true byte length, consulting the sidecar map
// when LENGTH_OVERFLOW is set.
func (a *Arena) Length(index uint32) int {
	b := a.record(index)
	if Flags(b[offFlags])&FlagLengthOverflow != 0 {
		return int(a.overflow[index])
	}
	return int(getU16(b, offLength))
}

func (a *Arena) Kind(index uint32) Kind { return Kind(a.record(index)[offKind]) }

func (a *Arena) Flags(index uint32) Flags { return Flags(a.record(index)[offFlags]) }

// SetFlags ORs want into a node's flag set.
func (a *Arena) SetFlags(index uint32, want Flags) {
	b := a.record(index)
	b[offFlags] |= byte(want)
}

// ClearFlags ANDs the complement of want into a node's flag set.
func (a *Arena) ClearFlags(index uint32, want Flags) {
	b := a.record(index)
	b[offFlags] &^= byte(want)
}

func (a *Arena) StartOffset(index uint32) int { return int(getU32(a.record(index), offStartOffset)) }

func (a *Arena) StartLine(index uint32) int { return int(getU32(a.record(index), offStartLine)) }

func (a *Arena) StartColumn(index uint32) int { return int(getU32(a.record(index), offStartColumn)) }

func (a *Arena) FirstChild(index uint32) uint32 { return getU32(a.record(index), offFirstChild) }

func (a *Arena) NextSibling(index uint32) uint32 { return getU32(a.record(index), offNextSibling) }

func (a *Arena) SetFirstChild(index, child uint32) {
	putU32(a.record(index), offFirstChild, child)
}

func (a *Arena) SetNextSibling(index, sibling uint32) {
	putU32(a.record(index), offNextSibling, sibling)
}

func (a *Arena) ContentStartDelta(index uint32) int {
	return int(getU16(a.record(index), offContentStartDelta))
}

func (a *Arena) SetContentStartDelta(index uint32, delta int) {
	putU16(a.record(index), offContentStartDelta, uint16(delta))
}

func (a *Arena) ContentLength(index uint32) int {
	return int(getU16(a.record(index), offContentLength))
}

func (a *Arena) SetContentLength(index uint32, length int) {
	putU16(a.record(index), offContentLength, uint16(length))
}

func (a *Arena) ValueStartDelta(index uint32) int {
	return int(getU16(a.record(index), offValueStartDelta))
}

func (a *Arena) SetValueStartDelta(index uint32, delta int) {
	putU16(a.record(index), offValueStartDelta, uint16(delta))
}

func (a *Arena) ValueLength(index uint32) int {
	return int(getU16(a.record(index), offValueLength))
}

func (a *Arena) SetValueLength(index uint32, length int) {
	putU16(a.record(index), offValueLength, uint16(length))
}

func (a *Arena) AttrOperator(index uint32) AttrOperator {
	return AttrOperator(a.record(index)[offAttrOperator])
}

func (a *Arena) SetAttrOperator(index uint32, op AttrOperator) {
	a.record(index)[offAttrOperator] = byte(op)
}

func (a *Arena) AttrFlags(index uint32) AttrCase {
	return AttrCase(a.record(index)[offAttrFlags])
}

func (a *Arena) SetAttrFlags(index uint32, c AttrCase) {
	a.record(index)[offAttrFlags] = byte(c)
}

// AppendChildren sets parent.first_child to the first entry of children and
// chains each child's next_sibling to the following one. It is O(n) in the
// child list and allocates nothing.
func (a *Arena) AppendChildren(parent uint32, children []uint32) {
	if len(children) == 0 {
		return
	}
	a.SetFirstChild(parent, children[0])
	for i := 0; i < len(children)-1; i++ {
		a.SetNextSibling(children[i], children[i+1])
	}
}

// HasChildren reports whether index has at least one child.
func (a *Arena) HasChildren(index uint32) bool { return a.FirstChild(index) != 0 }

// HasNextSibling reports whether index has a following sibling.
func (a *Arena) HasNextSibling(index uint32) bool { return a.NextSibling(index) != 0 }

// Children returns index's children in source order. Callers needing a
// zero-allocation walk should prefer FirstChild/NextSibling directly; this
// helper exists for façade convenience where a materialized slice reads
// more naturally.
func (a *Arena) Children(index uint32) []uint32 {
	var out []uint32
	for c := a.FirstChild(index); c != 0; c = a.NextSibling(c) {
		out = append(out, c)
	}
	return out
}

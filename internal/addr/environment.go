// Package addr implements the scoped symbol environment and the three
// monotonic address counters (variable, signal, component-address) that
// the body translator allocates against, plus the fresh-component-id
// counter used by subcomponent creation.
package addr

import (
	"fmt"

	"fortio.org/safecast"

	"arcc/internal/ir"
)

// SymbolInfo is an environment entry: a name's fixed shape and the
// instruction that produces its base address. Both are fixed for the
// symbol's entire lexical lifetime.
type SymbolInfo struct {
	Shape  []int
	Access *ir.Instr
}

// frame is one lexical scope: a mapping from name to SymbolInfo.
type frame map[string]SymbolInfo

// Environment is a LIFO stack of scopes. Shadowing is allowed; Lookup
// scans frames top-down (innermost first).
type Environment struct {
	frames []frame
}

// NewEnvironment returns an environment with a single base frame.
func NewEnvironment() *Environment {
	return &Environment{frames: []frame{make(frame)}}
}

// PushBlock opens a new lexical scope.
func (e *Environment) PushBlock() {
	e.frames = append(e.frames, make(frame))
}

// PopBlock closes the innermost lexical scope. Panics if called on the
// base frame: that would be a program-invariant violation (unbalanced
// block enter/exit).
func (e *Environment) PopBlock() {
	if len(e.frames) <= 1 {
		panic("addr: PopBlock called with no open block")
	}
	e.frames = e.frames[:len(e.frames)-1]
}

// Declare installs name in the innermost scope, shadowing any outer
// declaration of the same name.
func (e *Environment) Declare(name string, info SymbolInfo) {
	e.frames[len(e.frames)-1][name] = info
}

// Lookup resolves name by scanning frames from innermost to outermost.
func (e *Environment) Lookup(name string) (SymbolInfo, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if info, ok := e.frames[i][name]; ok {
			return info, true
		}
	}
	return SymbolInfo{}, false
}

// MustLookup resolves name or panics: every name reaching the body
// translator has already passed semantic analysis, so a missing symbol
// here is a compiler bug, not a user-facing error.
func (e *Environment) MustLookup(name string) SymbolInfo {
	info, ok := e.Lookup(name)
	if !ok {
		panic(fmt.Errorf("addr: unresolved symbol %q", name))
	}
	return info
}

// Counters holds the three monotonic address spaces plus the
// fresh-component-id counter, all scoped to a single body.
type Counters struct {
	variableStack         int
	maxStackDepth         int
	signalStack           int
	componentAddressStack int
	freshCmpID            int
}

// ReserveVariable allocates n contiguous variable addresses and returns
// the pre-increment watermark (the base address of the reservation). It
// updates MaxStackDepth, the only counter whose high-water mark is
// tracked, since variable addresses are the only ones recycled at block
// exit.
func (c *Counters) ReserveVariable(n int) int {
	base := c.variableStack
	c.variableStack += n
	if c.variableStack > c.maxStackDepth {
		c.maxStackDepth = c.variableStack
	}
	return base
}

// ReserveSignal allocates n contiguous signal addresses. Signal addresses
// are never recycled, so this never feeds MaxStackDepth.
func (c *Counters) ReserveSignal(n int) int {
	base := c.signalStack
	c.signalStack += n
	return base
}

// ReserveComponentAddress allocates n contiguous component addresses.
// Never recycled.
func (c *Counters) ReserveComponentAddress(n int) int {
	base := c.componentAddressStack
	c.componentAddressStack += n
	return base
}

// ReserveComponentIDs allocates n fresh component ids in bulk (used by
// uniform-cluster creation) or one at a time (mixed-cluster creation).
// Never recycled.
func (c *Counters) ReserveComponentIDs(n int) int {
	base := c.freshCmpID
	c.freshCmpID += n
	return base
}

// VariableWatermark returns the current variable-stack pointer, to be
// restored on block exit via RestoreVariableWatermark.
func (c *Counters) VariableWatermark() int { return c.variableStack }

// RestoreVariableWatermark rewinds the variable address space to a
// previously observed watermark, recycling addresses allocated since.
// MaxStackDepth is never rewound: it records the supremum ever reached.
func (c *Counters) RestoreVariableWatermark(mark int) {
	c.variableStack = mark
}

// MaxStackDepth returns the supremum of the variable stack across the
// whole body.
func (c *Counters) MaxStackDepth() int { return c.maxStackDepth }

// SignalDepth returns the final signal-address watermark.
func (c *Counters) SignalDepth() int { return c.signalStack }

// ComponentAddressDepth returns the final component-address watermark.
func (c *Counters) ComponentAddressDepth() int { return c.componentAddressStack }

// NextComponentID returns the next fresh component id that would be
// allocated.
func (c *Counters) NextComponentID() int { return c.freshCmpID }

// AddressValue converts an address (or any other non-negative counter) to
// the width used by ir.ValueInstr.ID, panicking on overflow: a negative or
// out-of-range address here means a counter invariant was violated
// upstream, not a legitimate large-field computation.
func AddressValue(address int) uint64 {
	v, err := safecast.Conv[uint64](address)
	if err != nil {
		panic(fmt.Errorf("addr: address %d does not fit the IR value width: %w", address, err))
	}
	return v
}

// BaseAccess builds the ir.Instr a SymbolInfo uses as its fixed access
// instruction: a plain U32 value carrying the base address.
func BaseAccess(address int) *ir.Instr {
	return &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueU32, ID: AddressValue(address)}}
}

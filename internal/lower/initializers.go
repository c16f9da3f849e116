package lower

import (
	"arcc/internal/addr"
	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// initializeComponents, initializeSignals, initializeConstants and
// initializeParameters run in this fixed order at the start of every
// body: components first (so signal access to a subcomponent output
// never races a not-yet-reserved component address), then signals, then
// constants (which need their own Store instructions emitted before any
// statement can reference them), then parameters last (reserved only,
// their values arrive from the caller rather than from an emitted
// store).

func initializeComponents(components []vcp.Component, s *state) {
	for _, c := range components {
		base := s.counters.ReserveComponentAddress(c.Size())
		s.env.Declare(c.Name, addr.SymbolInfo{Shape: c.Shape, Access: addr.BaseAccess(base)})
	}
}

func initializeSignals(signals []vcp.Signal, s *state) {
	for _, sig := range signals {
		base := s.counters.ReserveSignal(sig.Size())
		s.env.Declare(sig.Name, addr.SymbolInfo{Shape: sig.Shape, Access: addr.BaseAccess(base)})
		s.signalToType[sig.Name] = sig.Type
	}
}

func initializeConstants(constants []vcp.Constant, s *state) {
	for _, k := range constants {
		base := s.counters.ReserveVariable(k.Size())
		s.env.Declare(k.Name, addr.SymbolInfo{Shape: k.Shape, Access: addr.BaseAccess(base)})

		for i, decimal := range k.Values {
			fieldID := s.fieldTracker.Insert(decimal)
			src := &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueBigInt, ID: uint64(fieldID)}}
			dest := ir.LocationRule{Kind: ir.LocIndexed, Location: addr.BaseAccess(base + i)}
			s.emit(&ir.Instr{
				Kind: ir.KindStore,
				Store: ir.StoreInstr{
					AddressType: ir.Variable,
					Dest:        dest,
					Src:         src,
					Size:        1,
				},
			})
		}
	}
}

func initializeParameters(params []vcp.Param, s *state) {
	for _, p := range params {
		base := s.counters.ReserveVariable(p.Size())
		s.env.Declare(p.Name, addr.SymbolInfo{Shape: p.Shape, Access: addr.BaseAccess(base)})
	}
}

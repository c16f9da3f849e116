package lower

import (
	"fmt"

	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// ProcessedSymbol is the resolved address/location pair produced by
// walking a SymbolDef's access list. It is built once per reference and
// finalized into exactly one of a Load, a Store, or a call's destination
// descriptor; those three finalizers share this single resolution so a
// reference like `c[i].out[j]` is walked the same way regardless of
// whether it appears as a load, a store target, or a call destination.
type ProcessedSymbol struct {
	addrType ir.AddressType
	location ir.LocationRule
	size     int // element count still denoted after the consumed indices
}

func (p *ProcessedSymbol) intoLoad() *ir.Instr {
	return &ir.Instr{Kind: ir.KindLoad, Load: ir.LoadInstr{AddressType: p.addrType, Src: p.location}}
}

func (p *ProcessedSymbol) intoStore(src *ir.Instr) *ir.Instr {
	return &ir.Instr{
		Kind: ir.KindStore,
		Store: ir.StoreInstr{
			AddressType:  p.addrType,
			Dest:         p.location,
			Src:          src,
			Size:         p.size,
			DestIsOutput: p.addrType.IsOutput,
		},
	}
}

func (p *ProcessedSymbol) intoCallAssign() ir.DestDescriptor {
	return ir.DestDescriptor{AddressType: p.addrType, Location: p.location, IsOutput: p.addrType.IsOutput}
}

// resolveSymbol walks def's access list, splitting it at the (at most
// one) component access: everything before it indexes the named symbol's
// own shape, everything after it indexes the referenced signal's shape
// within the subcomponent instance.
func resolveSymbol(def vcp.SymbolDef, s *state, c *ctx) *ProcessedSymbol {
	var preIdx []*vcp.Expr
	var compName string
	var hasComp bool
	var postIdx []*vcp.Expr

	for _, a := range def.Access {
		switch a.Kind {
		case vcp.AccessArray:
			if hasComp {
				postIdx = append(postIdx, a.Index)
			} else {
				preIdx = append(preIdx, a.Index)
			}
		case vcp.AccessComponent:
			if hasComp {
				panic(fmt.Errorf("lower[%s]: symbol %q has more than one component access, which the translator does not support", c.header, def.Name))
			}
			hasComp = true
			compName = a.Name
		}
	}

	if !hasComp {
		return resolveLocal(def.Name, preIdx, s, c)
	}
	return resolveSubcomponent(def.Name, preIdx, compName, postIdx, s, c)
}

func resolveLocal(name string, idxExprs []*vcp.Expr, s *state, c *ctx) *ProcessedSymbol {
	info := s.env.MustLookup(name)
	indices := indexingInstructionsFilter(idxExprs, s, c)
	full := computeFullAddress(info.Access, info.Shape, indices)

	addrType := ir.Variable
	if _, isSignal := s.signalToType[name]; isSignal {
		addrType = ir.Signal
	}
	return &ProcessedSymbol{
		addrType: addrType,
		location: ir.LocationRule{Kind: ir.LocIndexed, Location: full},
		size:     productFrom(info.Shape, len(indices)),
	}
}

func resolveSubcomponent(cmpName string, cmpIdx []*vcp.Expr, sigName string, sigIdx []*vcp.Expr, s *state, c *ctx) *ProcessedSymbol {
	owner, ok := s.cmpToType[cmpName]
	if !ok {
		panic(fmt.Errorf("lower[%s]: component %q has no recorded cluster owner", c.header, cmpName))
	}
	cmpInfo := s.env.MustLookup(cmpName)
	cmpBase := computeFullAddress(cmpInfo.Access, cmpInfo.Shape, indexingInstructionsFilter(cmpIdx, s, c))
	isParallel := s.componentToParallel[cmpName]

	// Every trigger, Mixed or Uniform, addresses exactly one TDB instance;
	// that instance's own environment carries the signal's shape and type
	// regardless of which cluster strategy created the component.
	instEnv := c.tdb.GetInstanceAddresses(owner.InstanceID)
	sigInfo := instEnv.MustLookup(sigName)
	isOutput := c.tdb.GetSignalType(owner.InstanceID, sigName) == vcp.SignalOutput
	indices := indexingInstructionsFilter(sigIdx, s, c)
	size := productFrom(sigInfo.Shape, len(indices))

	addrType := ir.AddressType{
		Kind:       ir.AddrSubcmpSignal,
		IsParallel: isParallel,
		CmpAddress: cmpBase,
		IsOutput:   isOutput,
		Input:      inputInformationFor(isOutput),
	}

	switch owner.Type {
	case vcp.ClusterMixed:
		signalCode := c.tdb.GetSignalID(owner.TemplateName, sigName)
		return &ProcessedSymbol{
			addrType: addrType,
			location: ir.LocationRule{Kind: ir.LocMapped, SignalCode: signalCode, Indexes: indices},
			size:     size,
		}

	case vcp.ClusterUniform:
		full := computeFullAddress(sigInfo.Access, sigInfo.Shape, indices)
		return &ProcessedSymbol{
			addrType: addrType,
			location: ir.LocationRule{
				Kind:              ir.LocIndexed,
				Location:          full,
				TemplateHeader:    owner.Header,
				HasTemplateHeader: true,
			},
			size: size,
		}

	default:
		panic(fmt.Errorf("lower[%s]: unknown cluster type for component %q", c.header, cmpName))
	}
}

func inputInformationFor(isOutput bool) ir.InputInformation {
	if isOutput {
		return ir.NoInput
	}
	return ir.InputUnknown
}

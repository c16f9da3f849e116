package lower

import (
	"fmt"
	"strconv"
	"strings"

	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// createComponents emits the CreateCmp instructions for every trigger
// cluster and populates componentToInstance, the component-name to
// TDB-instance-id map every later signal access resolves against.
func createComponents(triggers []vcp.Trigger, clusters []vcp.TriggerCluster, s *state) {
	for _, trig := range triggers {
		s.componentToInstance[trig.ComponentName] = trig.TemplateID
	}

	for _, cl := range clusters {
		members := cl.Triggers(triggers)
		if len(members) == 0 {
			continue
		}
		switch cl.Type {
		case vcp.ClusterUniform:
			createUniformCluster(cl, members, s)
		case vcp.ClusterMixed:
			createMixedCluster(members, s)
		default:
			panic(fmt.Errorf("lower: unknown trigger cluster type %v", cl.Type))
		}
	}
}

// createUniformCluster emits a single CreateCmp covering the whole dense
// grid described by cl.Dimensions. DefinedPositions is the row-major
// linearization (§4.4's jump algorithm) of each member trigger's
// IndicesUsed against cl.Dimensions, letting a sparse grid (not every
// position has a trigger) be represented without inflating NumberOfCmp.
func createUniformCluster(cl vcp.TriggerCluster, members []vcp.Trigger, s *state) {
	numberOfCmp := product(cl.Dimensions)
	base := s.counters.ReserveComponentIDs(numberOfCmp)

	positions := make([]int, len(members))
	hasInputs := false
	for i, t := range members {
		positions[i] = linearizePosition(cl.Dimensions, t.IndicesUsed)
		hasInputs = hasInputs || t.HasInputs
	}

	first := members[0]
	info := s.env.MustLookup(first.ComponentName)
	subCmpBase := computeFullAddress(info.Access, info.Shape, constantIndices(first.IndicesUsed))
	s.emit(&ir.Instr{
		Kind: ir.KindCreateCmp,
		CreateCmp: ir.CreateCmpInstr{
			SubCmpBase:          subCmpBase,
			Name:                first.ComponentName,
			DefinedPositions:    positions,
			TemplateID:          first.TemplateID,
			SignalOffset:        first.SignalOffset,
			ComponentOffset:     first.ComponentOffset,
			SignalOffsetJump:    cl.OffsetJump,
			ComponentOffsetJump: cl.ComponentOffsetJump,
			HasInputs:           hasInputs,
			NumberOfCmp:         numberOfCmp,
			Dimensions:          cl.Dimensions,
			UniqueID:            base,
		},
	})
}

// createMixedCluster emits one CreateCmp per trigger, each addressing a
// single component instance under a synthetic name built from its
// indices (e.g. orig[1][2]) so every instance of the cluster gets a
// distinct, stable identity even though they don't share a uniform grid.
func createMixedCluster(members []vcp.Trigger, s *state) {
	for _, t := range members {
		id := s.counters.ReserveComponentIDs(1)
		info := s.env.MustLookup(t.ComponentName)
		subCmpBase := computeFullAddress(info.Access, info.Shape, constantIndices(t.IndicesUsed))
		s.emit(&ir.Instr{
			Kind: ir.KindCreateCmp,
			CreateCmp: ir.CreateCmpInstr{
				SubCmpBase:       subCmpBase,
				Name:             syntheticMixedName(t.ComponentName, t.IndicesUsed),
				DefinedPositions: []int{0},
				TemplateID:       t.TemplateID,
				SignalOffset:     t.SignalOffset,
				ComponentOffset:  t.ComponentOffset,
				HasInputs:        t.HasInputs,
				NumberOfCmp:      1,
				Dimensions:       info.Shape,
				UniqueID:         id,
			},
		})
	}
}

func syntheticMixedName(base string, indices []int) string {
	var b strings.Builder
	b.WriteString(base)
	for _, i := range indices {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(']')
	}
	return b.String()
}

// linearizePosition computes Σ_j indices[j] * ∏_{m>j} dims[m], the same
// row-major jump formula computeFullAddress uses for runtime indices, but
// over compile-time-known integers.
func linearizePosition(dims []int, indices []int) int {
	pos := 0
	for j, idx := range indices {
		pos += idx * productFrom(dims, j+1)
	}
	return pos
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

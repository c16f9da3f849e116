// Package tdb builds and serves the Template Database: a precomputed,
// read-only-after-construction catalog of every specialized template
// instance's signal address layout, the per-generic-template
// signal-name-to-index map, and the per-instance signal-type table.
package tdb

import (
	"fmt"

	"arcc/internal/addr"
	"arcc/internal/vcp"
)

// TemplateDB is immutable after Build returns.
type TemplateDB struct {
	// Per template-instance (indexed by position in the instances slice
	// passed to Build, i.e. the instance-id), the address environment
	// produced by replaying that instance's signal layout, and a
	// name-to-type map.
	instanceAddresses []*addr.Environment
	instanceTypes     []map[string]vcp.SignalType

	// Per distinct template-name, in order of first appearance across the
	// instance list (not sorted): a dense generic-template index, and that
	// template's signal-name-to-dense-id map, populated once from the
	// first instance seen for that template name.
	templateIndex map[string]int
	signalsID     []map[string]int
}

// Build constructs a TemplateDB from every specialized instance. For each
// instance: if its template-name is new, a fresh generic-template index
// and signal-id map are recorded (order of first appearance, not sorted,
// per the source compiler's signals_id population rule). Unconditionally,
// a fresh environment is allocated for the instance and its signals are
// laid out into it with the signal-address counter restarted at 0, so
// per-instance addresses reflect that instance's own layout regardless of
// what other instances of the same template look like.
func Build(instances []vcp.TemplateInstance) *TemplateDB {
	db := &TemplateDB{
		templateIndex: make(map[string]int),
	}

	for _, inst := range instances {
		genericIdx, known := db.templateIndex[inst.TemplateName]
		if !known {
			genericIdx = len(db.signalsID)
			db.templateIndex[inst.TemplateName] = genericIdx
			db.signalsID = append(db.signalsID, make(map[string]int))
			for _, sig := range inst.Signals {
				if _, exists := db.signalsID[genericIdx][sig.Name]; !exists {
					db.signalsID[genericIdx][sig.Name] = len(db.signalsID[genericIdx])
				}
			}
		}

		env := addr.NewEnvironment()
		var counters addr.Counters
		types := make(map[string]vcp.SignalType, len(inst.Signals))
		for _, sig := range inst.Signals {
			base := counters.ReserveSignal(sig.Size())
			env.Declare(sig.Name, addr.SymbolInfo{Shape: sig.Shape, Access: addr.BaseAccess(base)})
			types[sig.Name] = sig.Type
		}

		db.instanceAddresses = append(db.instanceAddresses, env)
		db.instanceTypes = append(db.instanceTypes, types)
	}

	return db
}

// GetSignalID returns the dense signal code for signalName within the
// generic template templateName. Missing entries are a program-invariant
// violation: every signal name reaching this call has already been
// validated by semantic analysis.
func (db *TemplateDB) GetSignalID(templateName, signalName string) int {
	genericIdx, ok := db.templateIndex[templateName]
	if !ok {
		panic(fmt.Errorf("tdb: unknown template %q", templateName))
	}
	id, ok := db.signalsID[genericIdx][signalName]
	if !ok {
		panic(fmt.Errorf("tdb: template %q has no signal %q", templateName, signalName))
	}
	return id
}

// GetInstanceAddresses returns the address environment built for a
// specific template instance.
func (db *TemplateDB) GetInstanceAddresses(instanceID int) *addr.Environment {
	if instanceID < 0 || instanceID >= len(db.instanceAddresses) {
		panic(fmt.Errorf("tdb: instance id %d out of range", instanceID))
	}
	return db.instanceAddresses[instanceID]
}

// GetSignalType returns the declared SignalType of signalName within a
// specific template instance.
func (db *TemplateDB) GetSignalType(instanceID int, signalName string) vcp.SignalType {
	if instanceID < 0 || instanceID >= len(db.instanceTypes) {
		panic(fmt.Errorf("tdb: instance id %d out of range", instanceID))
	}
	t, ok := db.instanceTypes[instanceID][signalName]
	if !ok {
		panic(fmt.Errorf("tdb: instance %d has no signal %q", instanceID, signalName))
	}
	return t
}

package tdb

import (
	"testing"

	"arcc/internal/vcp"
)

func twoInstances() []vcp.TemplateInstance {
	sigs := []vcp.Signal{
		{Name: "a", Shape: nil, Type: vcp.SignalInput},
		{Name: "b", Shape: []int{2}, Type: vcp.SignalOutput},
	}
	return []vcp.TemplateInstance{
		{TemplateName: "Mul", TemplateID: 0, Signals: sigs},
		{TemplateName: "Mul", TemplateID: 0, Signals: sigs},
		{TemplateName: "Add", TemplateID: 1, Signals: []vcp.Signal{{Name: "x", Type: vcp.SignalIntermediate}}},
	}
}

func TestBuildAssignsIndexOncePerTemplateName(t *testing.T) {
	db := Build(twoInstances())

	if id := db.GetSignalID("Mul", "a"); id != 0 {
		t.Fatalf("GetSignalID(Mul, a) = %d, want 0", id)
	}
	if id := db.GetSignalID("Mul", "b"); id != 1 {
		t.Fatalf("GetSignalID(Mul, b) = %d, want 1", id)
	}
	if id := db.GetSignalID("Add", "x"); id != 0 {
		t.Fatalf("GetSignalID(Add, x) = %d, want 0 (separate generic template)", id)
	}
}

func TestGetInstanceAddressesRestartsPerInstance(t *testing.T) {
	db := Build(twoInstances())

	env0 := db.GetInstanceAddresses(0)
	env1 := db.GetInstanceAddresses(1)

	infoA0 := env0.MustLookup("a")
	infoA1 := env1.MustLookup("a")
	if infoA0.Access.Value.ID != infoA1.Access.Value.ID {
		t.Fatalf("signal %q should get the same base address (0) in every instance of the same template, got %d and %d",
			"a", infoA0.Access.Value.ID, infoA1.Access.Value.ID)
	}
}

func TestGetSignalTypeLooksUpPerInstance(t *testing.T) {
	db := Build(twoInstances())
	if typ := db.GetSignalType(0, "b"); typ != vcp.SignalOutput {
		t.Fatalf("GetSignalType(0, b) = %v, want SignalOutput", typ)
	}
}

func TestGetSignalIDPanicsOnUnknownTemplate(t *testing.T) {
	db := Build(twoInstances())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown template")
		}
	}()
	db.GetSignalID("Nope", "a")
}

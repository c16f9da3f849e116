package ir

import "testing"

func TestDefaultCallArenaSize(t *testing.T) {
	if DefaultCallArenaSize != 200 {
		t.Fatalf("DefaultCallArenaSize = %d, want 200", DefaultCallArenaSize)
	}
}

func TestNoInputAndInputUnknownAreDistinct(t *testing.T) {
	if NoInput.HasInput {
		t.Fatalf("NoInput.HasInput should be false")
	}
	if !InputUnknown.HasInput || InputUnknown.Status != StatusUnknown {
		t.Fatalf("InputUnknown should be HasInput=true, Status=StatusUnknown, got %+v", InputUnknown)
	}
}

func TestVariableAndSignalAddressTypes(t *testing.T) {
	if Variable.Kind != AddrVariable {
		t.Fatalf("Variable.Kind = %v, want AddrVariable", Variable.Kind)
	}
	if Signal.Kind != AddrSignal {
		t.Fatalf("Signal.Kind = %v, want AddrSignal", Signal.Kind)
	}
}

func TestStoreInstrHoldsDestAndSrc(t *testing.T) {
	src := &Instr{Kind: KindValue, Value: ValueInstr{ParseAs: ValueU32, ID: 7}}
	st := StoreInstr{
		AddressType: Signal,
		Dest: LocationRule{
			Kind:     LocIndexed,
			Location: &Instr{Kind: KindValue, Value: ValueInstr{ParseAs: ValueU32, ID: 1}},
		},
		Src:          src,
		Size:         1,
		DestIsOutput: true,
	}
	if st.Dest.Kind != LocIndexed {
		t.Fatalf("Dest.Kind = %v, want LocIndexed", st.Dest.Kind)
	}
	if st.Src.Value.ID != 7 {
		t.Fatalf("Src.Value.ID = %d, want 7", st.Src.Value.ID)
	}
}

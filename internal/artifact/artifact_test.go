package artifact

import (
	"path/filepath"
	"testing"

	"arcc/internal/fieldstr"
	"arcc/internal/ir"
	"arcc/internal/lower"
)

func sampleOutput() lower.CodeOutput {
	ft := fieldstr.NewFieldTracker()
	ft.Insert("7")
	st := fieldstr.NewStringTable()
	st.Intern("hello")

	code := []*ir.Instr{
		{Kind: ir.KindStore, Store: ir.StoreInstr{
			AddressType: ir.Variable,
			Dest:        ir.LocationRule{Kind: ir.LocIndexed, Location: &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueU32, ID: 0}}},
			Src:         &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueBigInt, ID: 0}},
			Size:        1,
		}},
	}
	return lower.CodeOutput{
		Code:                code,
		StackDepth:          3,
		SignalDepth:         1,
		NextCmpID:           2,
		FieldTracker:        ft,
		StringTable:         st,
		ComponentToInstance: map[string]int{"sub": 0},
	}
}

func TestBuildPackRejectsLengthMismatch(t *testing.T) {
	_, err := BuildPack([]lower.CodeOutput{sampleOutput()}, nil)
	if err == nil {
		t.Fatalf("expected an error for mismatched identities/outputs lengths")
	}
}

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	out := sampleOutput()
	pack, err := BuildPack([]lower.CodeOutput{out}, []BodyIdentity{{Header: "Main", MessageID: 1}})
	if err != nil {
		t.Fatalf("BuildPack: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.irpack")
	if err := WriteFile(path, pack); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Bodies) != 1 || got.Bodies[0].Header != "Main" || got.Bodies[0].MessageID != 1 {
		t.Fatalf("unexpected bodies: %+v", got.Bodies)
	}
	if got.Bodies[0].StackDepth != 3 || got.Bodies[0].NextCmpID != 2 {
		t.Fatalf("unexpected metrics: %+v", got.Bodies[0])
	}
	if decimal, ok := got.FieldTracker().Get(0); !ok || decimal != "7" {
		t.Fatalf("FieldTracker round-trip failed: %q ok=%v", decimal, ok)
	}
	if s, ok := got.StringTable().Get(0); !ok || s != "hello" {
		t.Fatalf("StringTable round-trip failed: %q ok=%v", s, ok)
	}
	if len(got.Bodies[0].Code) != 1 || got.Bodies[0].Code[0].Kind != ir.KindStore {
		t.Fatalf("Code round-trip failed: %+v", got.Bodies[0].Code)
	}
}

func TestReadFileRejectsUnknownSchema(t *testing.T) {
	pack, err := BuildPack([]lower.CodeOutput{sampleOutput()}, []BodyIdentity{{Header: "Main"}})
	if err != nil {
		t.Fatalf("BuildPack: %v", err)
	}
	pack.Schema = schemaVersion + 1

	path := filepath.Join(t.TempDir(), "out.irpack")
	if err := WriteFile(path, pack); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatalf("expected ReadFile to reject an unrecognized schema version")
	}
}

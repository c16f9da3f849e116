package driver

import (
	"testing"

	"arcc/internal/vcp"
)

func TestLowerProducesOnePackedBodyPerSpec(t *testing.T) {
	instances := []vcp.TemplateInstance{
		{TemplateName: "Main", TemplateID: 0, Signals: []vcp.Signal{
			{Name: "a", Type: vcp.SignalInput},
			{Name: "out", Type: vcp.SignalOutput},
		}},
	}
	program := Program{
		Instances: instances,
		Bodies: []BodySpec{
			{
				InstanceIndex: 0,
				Constants:     []vcp.Constant{{Name: "k", Shape: []int{1}, Values: []string{"3"}}},
			},
		},
	}

	pack, err := Lower(program, nil)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(pack.Bodies) != 1 {
		t.Fatalf("expected 1 packed body, got %d", len(pack.Bodies))
	}
	if pack.Bodies[0].Header != "Main" {
		t.Fatalf("Header = %q, want Main", pack.Bodies[0].Header)
	}
	if len(pack.Bodies[0].Code) != 1 {
		t.Fatalf("expected exactly one Store instruction for the constant, got %d", len(pack.Bodies[0].Code))
	}
}

func TestLowerRejectsOutOfRangeInstanceIndex(t *testing.T) {
	program := Program{
		Bodies: []BodySpec{{InstanceIndex: 0}},
	}
	if _, err := Lower(program, nil); err == nil {
		t.Fatalf("expected an error for an instance index with no matching TemplateInstance")
	}
}

package vcp

import "testing"

func TestSizeIsProductOfShape(t *testing.T) {
	cases := []struct {
		name  string
		shape []int
		want  int
	}{
		{"scalar", nil, 1},
		{"vector", []int{4}, 4},
		{"matrix", []int{2, 3}, 6},
		{"cube", []int{2, 3, 5}, 30},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := (Signal{Shape: c.shape}).Size(); got != c.want {
				t.Fatalf("Signal.Size() = %d, want %d", got, c.want)
			}
			if got := (Component{Shape: c.shape}).Size(); got != c.want {
				t.Fatalf("Component.Size() = %d, want %d", got, c.want)
			}
			if got := (Constant{Shape: c.shape}).Size(); got != c.want {
				t.Fatalf("Constant.Size() = %d, want %d", got, c.want)
			}
			if got := (Param{Shape: c.shape}).Size(); got != c.want {
				t.Fatalf("Param.Size() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestTriggerClusterTriggersSlicesByRange(t *testing.T) {
	all := []Trigger{
		{ComponentName: "a"},
		{ComponentName: "b"},
		{ComponentName: "c"},
	}
	cluster := TriggerCluster{Start: 1, End: 3}
	got := cluster.Triggers(all)
	if len(got) != 2 || got[0].ComponentName != "b" || got[1].ComponentName != "c" {
		t.Fatalf("Triggers(all) = %+v, want [b c]", got)
	}
}

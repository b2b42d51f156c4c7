package telemetry

import "testing"

func TestPhaseRegistryOrder(t *testing.T) {
	reg := NewPhaseRegistry()
	ids := reg.IDs()

	want := []string{PhaseSpatialGrid, PhasePerception, PhaseBehavior, PhaseGeneration, PhaseTelemetry}
	if len(ids) != len(want) {
		t.Fatalf("len(IDs()) = %d, want %d", len(ids), len(want))
	}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, id, want[i])
		}
	}
}

func TestPhaseRegistryNames(t *testing.T) {
	reg := NewPhaseRegistry()

	tests := []struct {
		id   string
		want string
	}{
		{PhaseSpatialGrid, "Spatial Grid"},
		{PhaseBehavior, "Behavior"},
		{"unknown_phase", "unknown_phase"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := reg.GetName(tt.id); got != tt.want {
				t.Errorf("GetName(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}

	if _, ok := reg.Get(PhaseTelemetry); !ok {
		t.Error("Get(PhaseTelemetry) not found")
	}
}

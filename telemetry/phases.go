package telemetry

// Phase IDs for the simulation step.
const (
	PhaseSpatialGrid = "spatial_grid"
	PhasePerception  = "perception"
	PhaseBehavior    = "behavior"
	PhaseGeneration  = "generation"
	PhaseTelemetry   = "telemetry"
)

// tickPhases lists every phase in tick order.
var tickPhases = []PhaseInfo{
	{ID: PhaseSpatialGrid, Name: "Spatial Grid", Description: "Loads agents and rebuilds the candidate grid"},
	{ID: PhasePerception, Name: "Perception", Description: "Offers food to agents that could see it"},
	{ID: PhaseBehavior, Name: "Behavior", Description: "Steers, moves and feeds every agent"},
	{ID: PhaseGeneration, Name: "Generation", Description: "Evaluates and breeds the population"},
	{ID: PhaseTelemetry, Name: "Telemetry", Description: "Flushes stats and writes output"},
}

// PhaseInfo describes a tick phase for display.
type PhaseInfo struct {
	ID          string // Phase name used by PerfCollector
	Name        string // Display name
	Description string // What the phase does
}

// PhaseRegistry holds metadata about the tick phases so the perf panel and
// the collector agree on names and order.
type PhaseRegistry struct {
	phases []PhaseInfo
	byID   map[string]PhaseInfo
}

// NewPhaseRegistry creates a registry with every phase in tick order.
func NewPhaseRegistry() *PhaseRegistry {
	reg := &PhaseRegistry{
		byID: make(map[string]PhaseInfo),
	}
	for _, info := range tickPhases {
		reg.Register(info)
	}
	return reg
}

// Register adds a phase to the registry.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.phases = append(r.phases, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *PhaseRegistry) Get(id string) (PhaseInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *PhaseRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *PhaseRegistry) All() []PhaseInfo {
	return r.phases
}

// IDs returns all phase IDs in registration order.
func (r *PhaseRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, info := range r.phases {
		ids[i] = info.ID
	}
	return ids
}

package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/feeders/systems"
	"github.com/pthm-cable/feeders/telemetry"
)

// Update runs StepsPerUpdate simulation steps.
func (g *Game) Update() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Step advances the simulation by one tick. Paused games do nothing.
//
// Every active food item is offered to every agent that could see it, in
// population order; agents that perceive it react. Then every agent steers,
// moves and eats. When the generation's ticks are used up the population is
// evaluated and replaced.
func (g *Game) Step() {
	if g.state == Paused {
		return
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSpatialGrid)
	g.loadAgents()

	g.perfCollector.StartPhase(telemetry.PhasePerception)
	g.updatePerception()

	g.perfCollector.StartPhase(telemetry.PhaseBehavior)
	g.updateBehavior()

	g.tick++
	g.totalTicks++
	g.collector.RecordTick()

	if g.tick >= g.cfg.Simulation.TicksPerGeneration {
		g.perfCollector.StartPhase(telemetry.PhaseGeneration)
		g.AdvanceGeneration()
	}

	g.perfCollector.EndTick()
}

// loadAgents resolves component pointers for every agent and rebuilds the
// spatial index. Pointers stay valid until the next entity is created or
// removed.
func (g *Game) loadAgents() {
	g.agentViews = g.agentViews[:0]
	g.grid.Clear()

	for i, e := range g.agents {
		pos, motion, tr, feeder := g.feederMapper.Get(e)
		g.agentViews = append(g.agentViews, systems.Agent{
			Entity: e,
			Pos:    pos,
			Motion: motion,
			Traits: tr,
			Feeder: feeder,
		})
		g.grid.Insert(i, pos.Vec())
	}
}

// updatePerception offers each active food item to the agents within reach.
// Candidates come back sorted, so agents react in population order.
func (g *Game) updatePerception() {
	radius := g.maxReach + 1

	for _, e := range g.foods {
		pos, food := g.foodMapper.Get(e)
		if !food.Active {
			continue
		}
		target := systems.Target{Entity: e, Pos: pos, Food: food}

		g.candidates = g.grid.QueryRadiusInto(g.candidates[:0], pos.Vec(), radius)
		for _, i := range g.candidates {
			agent := g.agentViews[i]
			if !systems.Perceives(agent, target) {
				continue
			}
			g.collector.RecordPerception()
			if g.behavior.React(agent, target) {
				g.collector.RecordRecognition()
			}
		}
	}
}

// updateBehavior steers, moves and feeds every agent.
func (g *Game) updateBehavior() {
	for _, agent := range g.agentViews {
		out := g.behavior.Update(agent, g.lookupFood)
		if out.Has(systems.OutcomeAte) {
			g.collector.RecordMeal()
		}
		if out.Has(systems.OutcomeRejected) {
			g.collector.RecordRejection()
		}
		if out.Has(systems.OutcomeReflected) {
			g.collector.RecordReflection()
		}
	}
}

// lookupFood resolves a food entity from an agent's observed set.
func (g *Game) lookupFood(e ecs.Entity) (systems.Target, bool) {
	if !g.world.Alive(e) {
		return systems.Target{}, false
	}
	pos, food := g.foodMapper.Get(e)
	if food == nil {
		return systems.Target{}, false
	}
	return systems.Target{Entity: e, Pos: pos, Food: food}, true
}

// NumFood returns the number of active food items.
func (g *Game) NumFood() int {
	n := 0
	query := g.foodFilter.Query()
	for query.Next() {
		if query.Get().Active {
			n++
		}
	}
	return n
}

package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/feeders/components"
	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/systems"
	"github.com/pthm-cable/feeders/telemetry"
	"github.com/pthm-cable/feeders/traits"
)

// Reset discards all agents, food and records, then starts over with a fresh
// random population at the configured feeder and food counts.
func (g *Game) Reset() {
	g.clearAgents()
	g.clearFood()

	g.engine.Initialize(g.feederCount, g.cfg.Genetics.ChromosomeLength)
	g.nextFeederID = 0
	g.nextFoodID = 0
	g.spawnAgents()
	g.spawnFood(g.foodCount)

	g.tick = 0
	g.totalTicks = 0
	g.state = Running

	g.collector.Reset()
	g.perfCollector.Reset()
	g.milestones.Reset()
	g.hallOfFame.Reset()
}

// AdvanceGeneration ends the current generation: the population is scored by
// food eaten, telemetry is flushed, a new population is bred and the arena is
// restocked with fresh agents and food.
func (g *Game) AdvanceGeneration() {
	g.fitness = g.fitness[:0]
	for range g.engine.Size() {
		g.fitness = append(g.fitness, 0)
	}
	for _, e := range g.agents {
		_, _, _, feeder := g.feederMapper.Get(e)
		if feeder.Genotype < len(g.fitness) {
			g.fitness[feeder.Genotype] = float64(feeder.Eaten)
		}
	}

	// Chromosomes by index, captured before Evaluate reorders the population.
	pop := g.engine.Population()
	chromosomes := make([]string, len(pop))
	for i, gen := range pop {
		chromosomes[i] = gen.String()
	}

	rec := g.engine.Evaluate(func(i int, _ *genetics.Genotype) float64 {
		return g.fitness[i]
	})
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry(rec, chromosomes)
	g.perfCollector.StartPhase(telemetry.PhaseGeneration)

	g.engine.NextGeneration(g.cfg.Genetics.CrossoverProbability, g.cfg.Genetics.MutationProbability)

	g.clearAgents()
	g.clearFood()
	g.spawnAgents()
	g.spawnFood(g.foodCount)
	g.tick = 0

	if g.onGeneration != nil {
		g.onGeneration(rec)
	}
}

// SetFeederCount sets the population size used by the next Reset.
// n is clamped to [0, MaxFeeders].
func (g *Game) SetFeederCount(n int) {
	g.feederCount = clampCount(n, config.MaxFeeders)
}

// SetFoodCount sets the number of food items spawned at the next generation
// or reset. n is clamped to [0, MaxFood].
func (g *Game) SetFoodCount(n int) {
	g.foodCount = clampCount(n, config.MaxFood)
}

// AddFeeder adds an agent with the given raw traits at a random position.
// Values are clamped to the trait range. Returns false at capacity.
func (g *Game) AddFeeder(speed, eyesight, intelligence int) bool {
	c := traits.Encode(speed, eyesight, intelligence, g.cfg.Derived.BitsPerTrait)
	return g.addGenotype(genetics.NewGenotype(c))
}

// AddRandomFeeder adds an agent with a random chromosome. Returns false at
// capacity.
func (g *Game) AddRandomFeeder() bool {
	return g.addGenotype(genetics.RandomGenotype(g.rng, g.engine.ChromosomeLength()))
}

func (g *Game) addGenotype(gen *genetics.Genotype) bool {
	if len(g.agents) >= config.MaxFeeders || !g.engine.Add(gen) {
		return false
	}
	g.spawnAgent(gen, g.engine.Size()-1)
	return true
}

// AddFood places an active food item centered at (x, y), clamped to the
// arena. Returns false when MaxFood active items already exist.
func (g *Game) AddFood(x, y float64) bool {
	if g.NumFood() >= config.MaxFood {
		return false
	}
	p := g.Arena().Clamp(components.Position{X: x, Y: y}.Vec())
	g.createFood(components.Position{X: p.X, Y: p.Y}, components.Food{
		Size:   g.cfg.Simulation.FoodSize,
		Active: true,
	})
	return true
}

// AddRandomFood places an active food item at a random position. Returns
// false when MaxFood active items already exist.
func (g *Game) AddRandomFood() bool {
	if g.NumFood() >= config.MaxFood {
		return false
	}
	pos, food := systems.SpawnFood(g.Arena(), g.cfg.Simulation.FoodSize, g.rng)
	g.createFood(pos, food)
	return true
}

// spawnAgents builds one agent per genotype, in population order.
func (g *Game) spawnAgents() {
	for i, gen := range g.engine.Population() {
		g.spawnAgent(gen, i)
	}
}

func (g *Game) spawnAgent(gen *genetics.Genotype, index int) ecs.Entity {
	tr := traits.Decode(gen.Chromosome(), g.modifiers)
	pos := g.Arena().RandomPosition(g.rng)
	motion := systems.RandomMotion(g.rng, tr)

	g.nextFeederID++
	feeder := components.Feeder{
		ID:       g.nextFeederID,
		Genotype: index,
	}

	e := g.feederMapper.NewEntity(&pos, &motion, &tr, &feeder)
	g.agents = append(g.agents, e)
	return e
}

func (g *Game) spawnFood(n int) {
	for i := 0; i < n; i++ {
		pos, food := systems.SpawnFood(g.Arena(), g.cfg.Simulation.FoodSize, g.rng)
		g.createFood(pos, food)
	}
}

func (g *Game) createFood(pos components.Position, food components.Food) ecs.Entity {
	g.nextFoodID++
	food.ID = g.nextFoodID
	e := g.foodMapper.NewEntity(&pos, &food)
	g.foods = append(g.foods, e)
	return e
}

func (g *Game) clearAgents() {
	for _, e := range g.agents {
		g.world.RemoveEntity(e)
	}
	g.agents = g.agents[:0]
	g.agentViews = g.agentViews[:0]
}

func (g *Game) clearFood() {
	for _, e := range g.foods {
		g.world.RemoveEntity(e)
	}
	g.foods = g.foods[:0]
}

func clampCount(n, maxCount int) int {
	if n < 0 {
		return 0
	}
	if n > maxCount {
		return maxCount
	}
	return n
}

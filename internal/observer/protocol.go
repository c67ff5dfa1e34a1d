// Package observer is the read-only websocket window onto a running
// simulation (spec.md §6), grounded on
// _examples/original_source/src/server/{mod,protocol,state_stream}.rs,
// with connection handling and the HTTP upgrade adapted from
// _examples/niceyeti-tabular/server/server.go.
package observer

import (
	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/creature"
	"github.com/evocore/ecosim/internal/ecosim"
	"github.com/evocore/ecosim/internal/gridworld"
	"github.com/evocore/ecosim/internal/metrics"
)

// Inbound client request kinds, matching original protocol.rs's
// ClientMessage variants.
const (
	RequestGetState           = "get_state"
	RequestGetRegion          = "get_region"
	RequestGetCreatureDetails = "get_creature_details"
	RequestSubscribeCreature  = "subscribe_creature"
)

// ClientRequest is the inbound envelope. Go lacks serde's tagged-union
// decoding, so every request's optional fields live on one flat struct;
// Type selects which are meaningful.
type ClientRequest struct {
	Type       string `json:"type"`
	X          int    `json:"x,omitempty"`
	Y          int    `json:"y,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	CreatureID uint64 `json:"creatureId,omitempty"`
}

// Outbound server message kinds, matching original protocol.rs's
// ServerMessage variants plus the creature-detail/subscription messages
// spec.md §6 adds.
const (
	ResponseUpdate          = "update"
	ResponseWorldRegion     = "world_region"
	ResponseFullState       = "full_state"
	ResponseCreatureDetails = "creature_details"
	ResponseCreatureUpdate  = "creature_update"
)

// CreatureSnapshot is the thin, wire-safe projection of a Creature sent
// in bulk updates.
type CreatureSnapshot struct {
	ID         uint64  `json:"id"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Energy     float64 `json:"energy"`
	Generation uint64  `json:"generation"`
}

func snapshotOf(c *creature.Creature) CreatureSnapshot {
	return CreatureSnapshot{
		ID:         c.ID,
		X:          c.X,
		Y:          c.Y,
		Energy:     c.Energy(),
		Generation: c.Genome.Generation,
	}
}

func snapshotsOf(cs map[uint64]*creature.Creature) []CreatureSnapshot {
	out := make([]CreatureSnapshot, 0, len(cs))
	for _, c := range cs {
		out = append(out, snapshotOf(c))
	}
	return out
}

// CreatureDetail is the full per-creature projection sent in response to
// get_creature_details and creature subscriptions: identity and
// metabolism state plus the controller's own view of the world — the
// genome it was built from, the sensor vector it last saw, the raw
// network outputs, and the softmax distribution derived from them
// (spec.md §6's creature detail contract).
type CreatureDetail struct {
	ID                   uint64    `json:"id"`
	X                    int       `json:"x"`
	Y                    int       `json:"y"`
	Energy               float64   `json:"energy"`
	Health               float64   `json:"health"`
	Age                  uint64    `json:"age"`
	Generation           uint64    `json:"generation"`
	OffspringCount       uint64    `json:"offspringCount"`
	LastReproduceTick    uint64    `json:"lastReproduceTick"`
	Genes                []byte    `json:"genes"`
	SensorInputs         []float64 `json:"sensorInputs"`
	NetworkOutputs       []float64 `json:"networkOutputs"`
	NetworkProbabilities []float64 `json:"networkProbabilities"`
}

// detailOf builds a CreatureDetail for c, re-running its controller on a
// freshly recomputed sensor vector. This re-runs (not replays) the
// forward pass: the controller's weights are fixed, so feeding it the
// same inputs it would see this tick reproduces its current
// outputs/probabilities deterministically. The pass overwrites the
// controller's own scratch buffers; the creature's weights, metabolism and
// position are left unchanged.
func detailOf(s *ecosim.SimulationState, cfg config.Config, c *creature.Creature) CreatureDetail {
	d := CreatureDetail{
		ID:                c.ID,
		X:                 c.X,
		Y:                 c.Y,
		Energy:            c.Energy(),
		Health:            c.Metabolism.Health,
		Age:               c.Age,
		Generation:        c.Genome.Generation,
		OffspringCount:    c.OffspringCount,
		LastReproduceTick: c.LastReproduceTick,
		Genes:             append([]byte(nil), c.Genome.Genes...),
	}

	inputs, ok := s.SensorInputsFor(c.ID, cfg)
	if !ok {
		return d
	}
	d.SensorInputs = inputs
	outputs := c.Brain.Forward(inputs)
	d.NetworkOutputs = append([]float64(nil), outputs...)
	d.NetworkProbabilities = append([]float64(nil), c.Brain.ComputeProbabilities(outputs)...)
	return d
}

// UpdateMessage is the periodic push sent to every connected client.
type UpdateMessage struct {
	Type      string             `json:"type"`
	Metrics   metrics.Snapshot   `json:"metrics"`
	Creatures []CreatureSnapshot `json:"creatures"`
}

// NewUpdateMessage builds an UpdateMessage from a simulation state.
func NewUpdateMessage(s *ecosim.SimulationState) UpdateMessage {
	return UpdateMessage{
		Type:      ResponseUpdate,
		Metrics:   metrics.Compute(s),
		Creatures: snapshotsOf(s.Creatures),
	}
}

// FoodSnapshot is the wire-safe projection of one occupied food cell.
type FoodSnapshot struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Amount uint32 `json:"amount"`
	IsMeat bool   `json:"isMeat"`
}

func foodSnapshotsOf(world *gridworld.World) []FoodSnapshot {
	var out []FoodSnapshot
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			cell, ok := world.Get(x, y)
			if !ok || !cell.IsFood() {
				continue
			}
			out = append(out, FoodSnapshot{
				X:      x,
				Y:      y,
				Amount: cell.FoodAmount(),
				IsMeat: cell.Kind == gridworld.Meat,
			})
		}
	}
	return out
}

// FullStateMessage is the response to get_state: a complete snapshot
// including world dimensions, every creature, and every occupied food
// cell (spec.md §6: "full_state{metrics, world_width, world_height,
// creatures[], food[]}").
type FullStateMessage struct {
	Type        string             `json:"type"`
	Metrics     metrics.Snapshot   `json:"metrics"`
	WorldWidth  int                `json:"worldWidth"`
	WorldHeight int                `json:"worldHeight"`
	Creatures   []CreatureSnapshot `json:"creatures"`
	Food        []FoodSnapshot     `json:"food"`
}

// NewFullStateMessage builds a FullStateMessage from a simulation state.
func NewFullStateMessage(s *ecosim.SimulationState) FullStateMessage {
	return FullStateMessage{
		Type:        ResponseFullState,
		Metrics:     metrics.Compute(s),
		WorldWidth:  s.World.Width,
		WorldHeight: s.World.Height,
		Creatures:   snapshotsOf(s.Creatures),
		Food:        foodSnapshotsOf(s.World),
	}
}

// WorldRegionMessage carries a rectangular slice of the food grid, cell
// kind and amount packed into a single byte per cell: the high bit marks
// meat, the low 7 bits the food amount (clamped to 127).
type WorldRegionMessage struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []byte `json:"cells"`
}

const meatBit = 0x80

// NewWorldRegionMessage packs the region [x,x+width) x [y,y+height) of
// world. The region is not clamped: cells outside the grid are packed as
// 0, so Cells always holds width*height bytes.
func NewWorldRegionMessage(world *gridworld.World, x, y, width, height int) WorldRegionMessage {
	cells := make([]byte, 0, width*height)
	for gy := y; gy < y+height; gy++ {
		for gx := x; gx < x+width; gx++ {
			cell, ok := world.Get(gx, gy)
			if !ok {
				cells = append(cells, 0)
				continue
			}
			amount := cell.FoodAmount()
			if amount > 127 {
				amount = 127
			}
			b := byte(amount)
			if cell.Kind == gridworld.Meat {
				b |= meatBit
			}
			cells = append(cells, b)
		}
	}
	return WorldRegionMessage{
		Type:   ResponseWorldRegion,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// CreatureDetailsMessage is the response to get_creature_details.
type CreatureDetailsMessage struct {
	Type     string          `json:"type"`
	Found    bool            `json:"found"`
	Creature *CreatureDetail `json:"creature,omitempty"`
}

// NewCreatureDetailsMessage looks up id in state and builds the response.
func NewCreatureDetailsMessage(s *ecosim.SimulationState, cfg config.Config, id uint64) CreatureDetailsMessage {
	c, ok := s.Creatures[id]
	if !ok {
		return CreatureDetailsMessage{Type: ResponseCreatureDetails, Found: false}
	}
	d := detailOf(s, cfg, c)
	return CreatureDetailsMessage{Type: ResponseCreatureDetails, Found: true, Creature: &d}
}

// CreatureUpdateMessage is pushed to clients subscribed to a specific
// creature on every update pulse of the state stream. After the creature
// is gone the pushes continue with Alive set to false.
type CreatureUpdateMessage struct {
	Type     string          `json:"type"`
	Alive    bool            `json:"alive"`
	Creature *CreatureDetail `json:"creature,omitempty"`
}

// NewCreatureUpdateMessage looks up id in state and builds a subscription
// push; Alive is false once the creature is gone.
func NewCreatureUpdateMessage(s *ecosim.SimulationState, cfg config.Config, id uint64) CreatureUpdateMessage {
	c, ok := s.Creatures[id]
	if !ok {
		return CreatureUpdateMessage{Type: ResponseCreatureUpdate, Alive: false}
	}
	d := detailOf(s, cfg, c)
	return CreatureUpdateMessage{Type: ResponseCreatureUpdate, Alive: true, Creature: &d}
}

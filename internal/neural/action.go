package neural

// Action is a decision the controller's output layer can select (spec.md
// §4.2, §4.8). Output neuron positions map to Actions through
// actionFromIndex; an Action's integer value is not its output position.
// Grounded on
// _examples/original_source/src/creature/neural_net.rs's Action enum,
// expanded here only in the sense that every variant it defines is kept
// verbatim; the original's index-to-action switch is reproduced exactly.
type Action int

const (
	Stay Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Attack
	Reproduce
	ShareEnergy
	SprintUp
	SprintDown
	SprintLeft
	SprintRight
	Rest
)

var actionNames = map[Action]string{
	Stay:        "Stay",
	MoveUp:      "MoveUp",
	MoveDown:    "MoveDown",
	MoveLeft:    "MoveLeft",
	MoveRight:   "MoveRight",
	Attack:      "Attack",
	Reproduce:   "Reproduce",
	ShareEnergy: "ShareEnergy",
	SprintUp:    "SprintUp",
	SprintDown:  "SprintDown",
	SprintLeft:  "SprintLeft",
	SprintRight: "SprintRight",
	Rest:        "Rest",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// actionFromIndex maps a softmax output index to an Action, falling back to
// Stay for any index beyond the twelve defined slots.
func actionFromIndex(i int) Action {
	switch i {
	case 0:
		return MoveUp
	case 1:
		return MoveDown
	case 2:
		return MoveLeft
	case 3:
		return MoveRight
	case 4:
		return Attack
	case 5:
		return Reproduce
	case 6:
		return ShareEnergy
	case 7:
		return SprintUp
	case 8:
		return SprintDown
	case 9:
		return SprintLeft
	case 10:
		return SprintRight
	case 11:
		return Rest
	default:
		return Stay
	}
}

// Delta returns the (dx, dy) grid displacement an action causes. Only the
// movement and sprint actions move the creature; sprint moves the same one
// cell as its non-sprint counterpart, just at a higher energy cost applied
// by the tick engine.
func (a Action) Delta() (int, int) {
	switch a {
	case MoveUp, SprintUp:
		return 0, -1
	case MoveDown, SprintDown:
		return 0, 1
	case MoveLeft, SprintLeft:
		return -1, 0
	case MoveRight, SprintRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// IsMovement reports whether a is one of the eight directional actions.
func (a Action) IsMovement() bool {
	switch a {
	case MoveUp, MoveDown, MoveLeft, MoveRight, SprintUp, SprintDown, SprintLeft, SprintRight:
		return true
	default:
		return false
	}
}

// IsSprint reports whether a is one of the four sprint actions.
func (a Action) IsSprint() bool {
	switch a {
	case SprintUp, SprintDown, SprintLeft, SprintRight:
		return true
	default:
		return false
	}
}

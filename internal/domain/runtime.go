package domain

// RuntimeSpec types: the compiled, world-unit representation a game client
// consumes. Mini-golf uses Ball/Hole plus surface fields; archery and
// basketball use Actor/Target with Walls as their obstacle set.

// WorldSpec describes the playable world.
type WorldSpec struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Friction float64 `json:"friction,omitempty"`
}

// CircleSpec is a positioned circle in world units.
type CircleSpec struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// RectSpec is an axis-aligned rectangle in world units.
type RectSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CurrentSpec is a direction-tagged rectangle compiled from directional
// hazard tiles.
type CurrentSpec struct {
	RectSpec
	Direction string `json:"direction"`
}

// PortalSpec pairs an entrance and exit with transit parameters.
type PortalSpec struct {
	Entrance               CircleSpec `json:"entrance"`
	Exit                   CircleSpec `json:"exit"`
	CooldownMs             int        `json:"cooldownMs"`
	ExitVelocityMultiplier float64    `json:"exitVelocityMultiplier"`
}

// MovingBlockSpec is a resolved moving obstacle in world units.
type MovingBlockSpec struct {
	RectSpec
	Axis             string  `json:"axis"`
	RangeUnits       float64 `json:"rangeUnits"`
	SpeedUnitsPerSec float64 `json:"speedUnitsPerSec"`
	Mode             string  `json:"mode"`
	Phase            float64 `json:"phase"`
}

// RuntimeSpec is the compiled form of a validated GridLevel.
type RuntimeSpec struct {
	Version int       `json:"version"`
	GameID  GameID    `json:"gameId"`
	World   WorldSpec `json:"world"`

	Ball   *CircleSpec `json:"ball,omitempty"`
	Hole   *CircleSpec `json:"hole,omitempty"`
	Actor  *CircleSpec `json:"actor,omitempty"`
	Target *CircleSpec `json:"target,omitempty"`

	Walls        []RectSpec        `json:"walls"`
	Sand         []RectSpec        `json:"sand,omitempty"`
	Water        []RectSpec        `json:"water,omitempty"`
	Currents     []CurrentSpec     `json:"currents,omitempty"`
	Portals      []PortalSpec      `json:"portals,omitempty"`
	MovingBlocks []MovingBlockSpec `json:"movingBlocks,omitempty"`
}

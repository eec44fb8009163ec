package component

import "github.com/glitchzeros/zonefall/common"

// AIState names one state of the bot state machine.
type AIState string

const (
	AIStatePatrol  AIState = "patrol"
	AIStateSearch  AIState = "search"
	AIStateCombat  AIState = "combat"
	AIStateRetreat AIState = "retreat"
	AIStateLoot    AIState = "loot"
)

// AI drives one bot. Perception runs every update; decisions are only
// re-evaluated once per ReactionTime to simulate reaction latency.
type AI struct {
	State           AIState `json:"state"`
	Aggression      float64 `json:"aggression"`
	DetectionRadius float64 `json:"detectionRadius"`
	CombatRange     float64 `json:"combatRange"`
	ReactionTime    float64 `json:"reactionTime"` // seconds between decisions
	RetreatHealth   float64 `json:"retreatHealth"`
	SearchTimeout   float64 `json:"searchTimeout"` // seconds
	LootTimeout     float64 `json:"lootTimeout"`

	LastDecisionMS float64 `json:"lastDecisionMs"`
	StateSinceMS   float64 `json:"stateSinceMs"`

	Target      EntityRef   `json:"target"`
	LastSeen    common.Vec3 `json:"lastSeen"`
	HasLastSeen bool        `json:"hasLastSeen"`

	Home         common.Vec3 `json:"home"`
	PatrolTarget common.Vec3 `json:"patrolTarget"`
	HasPatrol    bool        `json:"hasPatrol"`

	LootTarget EntityRef `json:"lootTarget"`

	// ScriptPath, when set, points at a tengo script whose onEnter/update/
	// onExit functions drive the state machine instead of the built-in one.
	ScriptPath string `json:"scriptPath"`
}

var AIComponent = NewComponent[AI]("ai")

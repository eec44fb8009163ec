package component

// PlayerTag marks an entity as a battle-royale participant (human or bot)
// and carries its match bookkeeping.
type PlayerTag struct {
	Alive     bool `json:"alive"`
	Kills     int  `json:"kills"`
	Placement int  `json:"placement"` // 0 until eliminated or victorious
	XP        int  `json:"xp"`
}

var PlayerTagComponent = NewComponent[PlayerTag]("player_tag")

// HumanTag marks the locally controlled player.
type HumanTag struct{}

var HumanTagComponent = NewComponent[HumanTag]("human_tag")

// Team groups participants that should not target each other. ID 0 means
// unaffiliated; solo matches give every participant a distinct ID.
type Team struct {
	ID int `json:"id"`
}

var TeamComponent = NewComponent[Team]("team")

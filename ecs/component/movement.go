package component

type Movement struct {
	Speed            float64 `json:"speed"`
	SprintMultiplier float64 `json:"sprintMultiplier"`
}

var MovementComponent = NewComponent[Movement]("movement")

package component

type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]("transform")

// Velocity is applied to Transform once per tick.
type Velocity struct {
	VX float64
	VY float64
}

var VelocityComponent = NewComponent[Velocity]("velocity")

package component

// AuraParticle is a short-lived mote emitted around a boss.
type AuraParticle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Size    float64
}

// Orb circles the boss at a fixed radius.
type Orb struct {
	Angle  float64
	Radius float64
}

type Aura struct {
	Phase     float64
	Intensity float64
	Particles []AuraParticle
	Orbs      []Orb
}

var AuraComponent = NewComponent[Aura]("aura")

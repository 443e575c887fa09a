package component

type Health struct {
	Current float64
	Max     float64
}

var HealthComponent = NewComponent[Health]("health")

// Damage is the contact or projectile damage an entity deals.
type Damage struct {
	Amount float64
}

var DamageComponent = NewComponent[Damage]("damage")

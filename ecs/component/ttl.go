package component

// TTL is a frame-based time-to-live. Entities carrying it are destroyed once
// Frames reaches zero.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]("ttl")

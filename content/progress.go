package content

// Progress is the player progress a request is generated for.
type Progress struct {
	Level           int
	EnemiesDefeated int
	Score           int
}

type ProgressSource interface {
	CurrentProgress() Progress
}

// ProgressFunc adapts a function to ProgressSource.
type ProgressFunc func() Progress

func (f ProgressFunc) CurrentProgress() Progress {
	return f()
}

package content

import (
	"log"
	"time"

	"github.com/milk9111/bossgen/boss"
)

// ScenarioDisplay shows scenario text to the player.
type ScenarioDisplay interface {
	Show(text string)
}

// Archive persists generated content. Failures are logged, never fatal.
type Archive interface {
	SaveScenario(rec ScenarioRecord) error
	SaveBoss(d boss.Descriptor) error
}

// Interpreter applies settled responses to State.
type Interpreter struct {
	State    *State
	Catalog  *boss.Catalog
	Progress ProgressSource
	Display  ScenarioDisplay
	Archive  Archive
	Now      func() time.Time
}

func (in *Interpreter) now() time.Time {
	if in.Now != nil {
		return in.Now()
	}
	return time.Now()
}

// InterpretBoss interprets text and queues the resulting descriptor.
func (in *Interpreter) InterpretBoss(text string) boss.Result {
	res := boss.Interpret(text, in.now().UnixMilli())
	d := res.Descriptor
	in.State.Enqueue(d)
	log.Printf("boss: queued %q (difficulty %d, %d structured fields, pending %d)",
		d.Name, d.Difficulty, res.Sources.Count(boss.SourceStructured), len(in.State.Pending))
	in.archiveBoss(d)
	return res
}

// Fallback queues a descriptor from the fallback catalog.
func (in *Interpreter) Fallback() boss.Descriptor {
	catalog := in.Catalog
	if catalog == nil {
		catalog = boss.DefaultCatalog(nil)
	}
	d := catalog.Pick()
	in.State.Enqueue(d)
	log.Printf("boss: queued fallback %q (pending %d)", d.Name, len(in.State.Pending))
	return d
}

// InterpretScenario records text with the current progress and shows it
// immediately. Empty text is shown as an empty overlay.
func (in *Interpreter) InterpretScenario(text string) ScenarioRecord {
	rec := ScenarioRecord{Text: text, Timestamp: in.now()}
	if in.Progress != nil {
		p := in.Progress.CurrentProgress()
		rec.Level, rec.EnemiesDefeated = p.Level, p.EnemiesDefeated
	}
	in.State.Scenarios = append(in.State.Scenarios, rec)
	if in.Display != nil {
		in.Display.Show(text)
	}
	if in.Archive != nil {
		if err := in.Archive.SaveScenario(rec); err != nil {
			log.Printf("scenario: archive: %v", err)
		}
	}
	return rec
}

func (in *Interpreter) archiveBoss(d boss.Descriptor) {
	if in.Archive == nil {
		return
	}
	if err := in.Archive.SaveBoss(d); err != nil {
		log.Printf("boss: archive %q: %v", d.Name, err)
	}
}

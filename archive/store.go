// Package archive persists generated scenarios and bosses between runs.
package archive

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/content"
)

const (
	DefaultAppName = "bossgen"
	DefaultLimit   = 100

	archiveObject = "archive"
	scenariosProp = "scenarios"
	bossesProp    = "bosses"
)

// Store keeps the most recent records in memory and mirrors them to gdata.
// A nil Store, or one without a manager, only keeps records in memory.
type Store struct {
	mu        sync.Mutex
	manager   *gdata.Manager
	limit     int
	scenarios []content.ScenarioRecord
	bosses    []boss.Descriptor
}

// Open loads the archive of appName.
func Open(appName string, limit int) (*Store, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{limit: limit}, fmt.Errorf("archive: open %s: %w", appName, err)
	}
	s := &Store{manager: m, limit: limit}
	if err := s.load(scenariosProp, &s.scenarios); err != nil {
		log.Printf("archive: %v", err)
	}
	if err := s.load(bossesProp, &s.bosses); err != nil {
		log.Printf("archive: %v", err)
	}
	return s, nil
}

func (s *Store) load(prop string, dst any) error {
	if !s.manager.ObjectPropExists(archiveObject, prop) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(archiveObject, prop)
	if err != nil {
		return fmt.Errorf("load %s: %w", prop, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", prop, err)
	}
	return nil
}

func (s *Store) save(prop string, v any) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("archive: encode %s: %w", prop, err)
	}
	if err := s.manager.SaveObjectProp(archiveObject, prop, data); err != nil {
		return fmt.Errorf("archive: save %s: %w", prop, err)
	}
	return nil
}

func (s *Store) SaveScenario(rec content.ScenarioRecord) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = trim(append(s.scenarios, rec), s.limit)
	return s.save(scenariosProp, s.scenarios)
}

func (s *Store) SaveBoss(d boss.Descriptor) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bosses = trim(append(s.bosses, d.Clone()), s.limit)
	return s.save(bossesProp, s.bosses)
}

// Scenarios returns the archived scenarios, oldest first.
func (s *Store) Scenarios() []content.ScenarioRecord {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]content.ScenarioRecord(nil), s.scenarios...)
}

// Bosses returns the archived generated bosses, oldest first.
func (s *Store) Bosses() []boss.Descriptor {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]boss.Descriptor, len(s.bosses))
	for i, d := range s.bosses {
		out[i] = d.Clone()
	}
	return out
}

// Persistent reports whether records reach disk.
func (s *Store) Persistent() bool {
	return s != nil && s.manager != nil
}

func trim[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return append([]T(nil), items[len(items)-limit:]...)
	}
	return items
}

package prefabs

import (
	"fmt"
	"image/color"
	"time"

	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/bossgen/boss"
)

const (
	GeminiFile   = "gemini.yaml"
	BossFile     = "boss.yaml"
	OverlayFile  = "overlay.yaml"
	FallbackFile = "fallback_bosses.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GeminiSpec configures the content requester and the request cycle.
type GeminiSpec struct {
	Endpoint          string `yaml:"endpoint"`
	APIKeyEnv         string `yaml:"api_key_env"`
	CooldownMS        int    `yaml:"cooldown_ms"`
	TimeoutMS         int    `yaml:"timeout_ms"`
	MilestoneInterval int    `yaml:"milestone_interval"`
	ScenarioDelayMS   int    `yaml:"scenario_delay_ms"`
	SpawnDelayMS      int    `yaml:"spawn_delay_ms"`
	BossScript        string `yaml:"boss_script"`
	ScenarioScript    string `yaml:"scenario_script"`
}

func (s GeminiSpec) Cooldown() time.Duration {
	return time.Duration(s.CooldownMS) * time.Millisecond
}

func (s GeminiSpec) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

func (s GeminiSpec) ScenarioDelay() time.Duration {
	return time.Duration(s.ScenarioDelayMS) * time.Millisecond
}

func (s GeminiSpec) SpawnDelay() time.Duration {
	return time.Duration(s.SpawnDelayMS) * time.Millisecond
}

func LoadGeminiSpec() (*GeminiSpec, error) {
	spec, err := LoadSpec[GeminiSpec](GeminiFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// BossSpec holds boss spawn stats, AI timings and attack tuning.
type BossSpec struct {
	Spawn        BossSpawnSpec        `yaml:"spawn"`
	AI           BossAISpec           `yaml:"ai"`
	Keywords     BossKeywordSpec      `yaml:"keywords"`
	Projectiles  BossProjectileSpecs  `yaml:"projectiles"`
	Aura         BossAuraSpec         `yaml:"aura"`
	Announcement BossAnnouncementSpec `yaml:"announcement"`
	Sounds       BossSoundSpecs       `yaml:"sounds"`
}

type BossSpawnSpec struct {
	OffsetX    float64 `yaml:"offset_x"`
	BandMargin float64 `yaml:"band_margin"`
	SpeedX     float64 `yaml:"speed_x"`
	Health     float64 `yaml:"health"`
	Damage     float64 `yaml:"damage"`
	CullMargin float64 `yaml:"cull_margin"`
}

type BossAISpec struct {
	InitialSpecialFrames int     `yaml:"initial_special_frames"`
	SpecialResetMin      int     `yaml:"special_reset_min"`
	SpecialResetMax      int     `yaml:"special_reset_max"`
	LockoutFrames        int     `yaml:"lockout_frames"`
	ShootChance          float64 `yaml:"shoot_chance"`
	ShootCooldownMin     int     `yaml:"shoot_cooldown_min"`
	ShootCooldownMax     int     `yaml:"shoot_cooldown_max"`
	SineFrequency        float64 `yaml:"sine_frequency"`
	SineAmplitude        float64 `yaml:"sine_amplitude"`
	DriftFrequency       float64 `yaml:"drift_frequency"`
	DriftAmplitude       float64 `yaml:"drift_amplitude"`
	DriftWobble          float64 `yaml:"drift_wobble"`
}

// BossKeywordSpec maps attack-name keywords to behaviors. Matching is a
// case-insensitive substring test; the first matching set wins in the order
// multi, beam, homing.
type BossKeywordSpec struct {
	Multi  []string `yaml:"multi"`
	Beam   []string `yaml:"beam"`
	Homing []string `yaml:"homing"`
}

type ProjectileSpec struct {
	Speed       float64   `yaml:"speed"`
	Spread      float64   `yaml:"spread"`
	AnglesDeg   []float64 `yaml:"angles_deg"`
	DamageScale float64   `yaml:"damage_scale"`
	Size        float64   `yaml:"size"`
	Life        int       `yaml:"life"`
	Color       string    `yaml:"color"`
	Explosive   bool      `yaml:"explosive"`
	Piercing    bool      `yaml:"piercing"`
	Homing      bool      `yaml:"homing"`
}

type BossProjectileSpecs struct {
	Regular ProjectileSpec `yaml:"regular"`
	Multi   ProjectileSpec `yaml:"multi"`
	Beam    ProjectileSpec `yaml:"beam"`
	Homing  ProjectileSpec `yaml:"homing"`
	Triple  ProjectileSpec `yaml:"triple"`
}

type BossAuraSpec struct {
	PhaseStep      float64 `yaml:"phase_step"`
	ParticleChance float64 `yaml:"particle_chance"`
	ParticleOffset float64 `yaml:"particle_offset"`
	ParticleSpeed  float64 `yaml:"particle_speed"`
	ParticleLife   int     `yaml:"particle_life"`
	ParticleMin    float64 `yaml:"particle_size_min"`
	ParticleMax    float64 `yaml:"particle_size_max"`
	OrbCount       int     `yaml:"orb_count"`
	OrbRadius      float64 `yaml:"orb_radius"`
	OrbSpeed       float64 `yaml:"orb_speed"`
}

type BossAnnouncementSpec struct {
	Count   int        `yaml:"count"`
	Color   *YAMLColor `yaml:"color"`
	Speed   float64    `yaml:"speed"`
	Life    int        `yaml:"life"`
	SizeMin float64    `yaml:"size_min"`
	SizeMax float64    `yaml:"size_max"`
}

type SoundSpec struct {
	Name       string  `yaml:"name"`
	Frequency  float64 `yaml:"frequency"`
	DurationMS int     `yaml:"duration_ms"`
}

func (s SoundSpec) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

type BossSoundSpecs struct {
	Special SoundSpec `yaml:"special"`
	Arrival SoundSpec `yaml:"arrival"`
}

func LoadBossSpec() (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec](BossFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// OverlaySpec configures the scenario overlay timings and look.
type OverlaySpec struct {
	TotalFrames      int        `yaml:"total_frames"`
	FadeInThreshold  float64    `yaml:"fade_in_threshold"`
	FadeOutThreshold float64    `yaml:"fade_out_threshold"`
	Step             float64    `yaml:"step"`
	FadeInRate       float64    `yaml:"fade_in_rate"`
	HoldRate         float64    `yaml:"hold_rate"`
	FadeOutRate      float64    `yaml:"fade_out_rate"`
	MaxLines         int        `yaml:"max_lines"`
	Title            string     `yaml:"title"`
	Footer           string     `yaml:"footer"`
	Backdrop         *YAMLColor `yaml:"backdrop"`
	Panel            *YAMLColor `yaml:"panel"`
	Accent           *YAMLColor `yaml:"accent"`
	Text             *YAMLColor `yaml:"text"`
}

func LoadOverlaySpec() (*OverlaySpec, error) {
	spec, err := LoadSpec[OverlaySpec](OverlayFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// FallbackCatalogSpec is the hand-authored fallback boss set.
type FallbackCatalogSpec struct {
	Bosses []boss.Descriptor `yaml:"bosses"`
}

func LoadFallbackCatalogSpec() (*FallbackCatalogSpec, error) {
	spec, err := LoadSpec[FallbackCatalogSpec](FallbackFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts any CSS color string.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := csscolorparser.Parse(value.Value)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", value.Value, err)
	}
	r, g, b, a := parsed.RGBA255()
	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the color, or def when unset.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

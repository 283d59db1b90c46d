package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/gonewx/gravity-jump/pkg/physics"
	"gopkg.in/yaml.v3"
)

// defaultPlanetsYAML 内置的行星常量表
// 所有可执行程序（游戏、终端版、API 服务）共用同一份数据
//
//go:embed data/planets.yaml
var defaultPlanetsYAML []byte

// Planet 行星物理常量（不可变记录）
//
// 物理核心只使用 Gravity，其余字段供渲染层和 UI 展示使用。
type Planet struct {
	Key                   string      `yaml:"key" json:"key" msgpack:"key"`
	Name                  string      `yaml:"name" json:"name" msgpack:"name"`
	Gravity               float64     `yaml:"gravity" json:"gravity" msgpack:"gravity"` // 表面重力加速度 (m/s²)
	Color                 string      `yaml:"color" json:"color" msgpack:"color"`       // 行星主色，也用作着陆粒子颜色
	GroundColor           string      `yaml:"groundColor" json:"groundColor" msgpack:"groundColor"`
	SkyColor              string      `yaml:"skyColor" json:"skyColor" msgpack:"skyColor"`
	Description           string      `yaml:"description" json:"description" msgpack:"description"`
	Mass                  string      `yaml:"mass" json:"mass" msgpack:"mass"`
	Radius                string      `yaml:"radius" json:"radius" msgpack:"radius"`
	ScientificExplanation string      `yaml:"scientificExplanation" json:"scientificExplanation" msgpack:"scientificExplanation"`
	SurfaceTexture        string      `yaml:"surfaceTexture" json:"surfaceTexture" msgpack:"surfaceTexture"`
	SurfaceRepeat         int         `yaml:"surfaceRepeat" json:"surfaceRepeat" msgpack:"surfaceRepeat"`
	SkyGradient           SkyGradient `yaml:"skyGradient" json:"skyGradient" msgpack:"skyGradient"`
	FogColor              string      `yaml:"fogColor" json:"fogColor" msgpack:"fogColor"`
	StarDensity           int         `yaml:"starDensity" json:"starDensity" msgpack:"starDensity"`
	Ring                  *RingConfig `yaml:"ring,omitempty" json:"ring,omitempty" msgpack:"ring,omitempty"`
}

// SkyGradient 天空渐变色（上 -> 下）
type SkyGradient struct {
	Top    string `yaml:"top" json:"top" msgpack:"top"`
	Bottom string `yaml:"bottom" json:"bottom" msgpack:"bottom"`
}

// RingConfig 行星环配置（仅土星）
type RingConfig struct {
	InnerRadius float64 `yaml:"innerRadius" json:"innerRadius" msgpack:"innerRadius"`
	OuterRadius float64 `yaml:"outerRadius" json:"outerRadius" msgpack:"outerRadius"`
	Color       string  `yaml:"color" json:"color" msgpack:"color"`
	Opacity     float64 `yaml:"opacity,omitempty" json:"opacity,omitempty" msgpack:"opacity,omitempty"`
	Tilt        float64 `yaml:"tilt,omitempty" json:"tilt,omitempty" msgpack:"tilt,omitempty"`
}

// planetFile 行星配置文件的顶层结构
type planetFile struct {
	Default   string   `yaml:"default"`
	Reference string   `yaml:"reference"`
	Planets   []Planet `yaml:"planets"`
}

// PlanetRegistry 只读的行星查找表
//
// 查找未知 key 时回退到默认行星（earth），保证物理核心永远拿到合法的重力值。
type PlanetRegistry struct {
	planets      []Planet       // 按配置文件顺序（也是 UI 显示顺序）
	index        map[string]int // key -> planets 下标
	defaultKey   string
	referenceKey string
}

// ComparisonEntry 跳跃高度对比表的一行
type ComparisonEntry struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Gravity   float64 `json:"gravity"`
	MaxHeight float64 `json:"maxHeight"` // v²/(2g)
	Fraction  float64 `json:"fraction"`  // 相对最高一项的比例 (0, 1]
	Color     string  `json:"color"`
}

// DefaultPlanetRegistry 返回内置行星表
//
// 内置数据在编译期嵌入，解析失败属于编程错误，直接 panic。
func DefaultPlanetRegistry() *PlanetRegistry {
	registry, err := ParsePlanetRegistry(defaultPlanetsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in planet table is invalid: %v", err))
	}
	return registry
}

// LoadPlanetRegistry 从指定路径加载 YAML 格式的行星表
//
// 参数:
//   - path: 配置文件路径（如 "data/planets.yaml"）
//
// 返回:
//   - *PlanetRegistry: 加载并验证成功后的查找表
//   - error: 读取、解析或验证失败时返回错误
func LoadPlanetRegistry(path string) (*PlanetRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read planet config: %w", err)
	}
	return ParsePlanetRegistry(data)
}

// ParsePlanetRegistry 从 YAML 数据构建行星表
func ParsePlanetRegistry(data []byte) (*PlanetRegistry, error) {
	var file planetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse planet config: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planet config: %w", err)
	}

	registry := &PlanetRegistry{
		planets:      file.Planets,
		index:        make(map[string]int, len(file.Planets)),
		defaultKey:   file.Default,
		referenceKey: file.Reference,
	}
	for i, p := range file.Planets {
		registry.index[p.Key] = i
	}
	return registry, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 至少一个行星
//   - key 和 name 非空，key 不重复
//   - 重力必须为正数
//   - default 和 reference 指向存在的行星
func (f *planetFile) Validate() error {
	if len(f.Planets) == 0 {
		return fmt.Errorf("no planets defined")
	}

	seen := make(map[string]bool, len(f.Planets))
	for i, p := range f.Planets {
		if p.Key == "" {
			return fmt.Errorf("planet #%d has empty key", i)
		}
		if p.Name == "" {
			return fmt.Errorf("planet %q has empty name", p.Key)
		}
		if seen[p.Key] {
			return fmt.Errorf("duplicate planet key %q", p.Key)
		}
		seen[p.Key] = true
		if !(p.Gravity > 0) {
			return fmt.Errorf("planet %q gravity must be positive, got %.3f", p.Key, p.Gravity)
		}
		if p.Ring != nil && p.Ring.InnerRadius > p.Ring.OuterRadius {
			return fmt.Errorf("planet %q ring invalid: inner(%.2f) > outer(%.2f)",
				p.Key, p.Ring.InnerRadius, p.Ring.OuterRadius)
		}
	}

	if f.Default == "" {
		f.Default = f.Planets[0].Key
	}
	if !seen[f.Default] {
		return fmt.Errorf("default planet %q not defined", f.Default)
	}
	if f.Reference == "" {
		f.Reference = f.Default
	}
	if !seen[f.Reference] {
		return fmt.Errorf("reference planet %q not defined", f.Reference)
	}
	return nil
}

// Get 按 key 获取行星，key 不存在时回退到默认行星
func (r *PlanetRegistry) Get(key string) Planet {
	if p, ok := r.Lookup(key); ok {
		return p
	}
	return r.Default()
}

// Lookup 按 key 精确查找行星
func (r *PlanetRegistry) Lookup(key string) (Planet, bool) {
	i, ok := r.index[key]
	if !ok {
		return Planet{}, false
	}
	return r.planets[i], true
}

// Has 检查 key 是否存在
func (r *PlanetRegistry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Resolve 返回 key 本身（存在时）或默认行星的 key
func (r *PlanetRegistry) Resolve(key string) string {
	if r.Has(key) {
		return key
	}
	return r.defaultKey
}

// Default 返回默认行星
func (r *PlanetRegistry) Default() Planet {
	return r.planets[r.index[r.defaultKey]]
}

// Reference 返回重力比值的参考行星
func (r *PlanetRegistry) Reference() Planet {
	return r.planets[r.index[r.referenceKey]]
}

// Keys 按显示顺序返回所有行星 key
func (r *PlanetRegistry) Keys() []string {
	keys := make([]string, len(r.planets))
	for i, p := range r.planets {
		keys[i] = p.Key
	}
	return keys
}

// Planets 按显示顺序返回所有行星（副本）
func (r *PlanetRegistry) Planets() []Planet {
	planets := make([]Planet, len(r.planets))
	copy(planets, r.planets)
	return planets
}

// Len 返回行星数量
func (r *PlanetRegistry) Len() int {
	return len(r.planets)
}

// GravityRatio 当前行星重力 / 参考行星重力
// 仅用于 UI 展示，物理核心不使用
func (r *PlanetRegistry) GravityRatio(key string) float64 {
	return r.Get(key).Gravity / r.Reference().Gravity
}

// Next 返回显示顺序中的下一个行星 key（循环）
func (r *PlanetRegistry) Next(key string) string {
	i := r.index[r.Resolve(key)]
	return r.planets[(i+1)%len(r.planets)].Key
}

// Prev 返回显示顺序中的上一个行星 key（循环）
func (r *PlanetRegistry) Prev(key string) string {
	i := r.index[r.Resolve(key)]
	return r.planets[(i-1+len(r.planets))%len(r.planets)].Key
}

// Comparison 计算所有行星在相同起跳速度下的最大跳跃高度
//
// 参数:
//   - launchVelocity: 起跳速度 (m/s)，对比图默认使用 ComparisonLaunchVelocity
//
// 返回:
//   - []ComparisonEntry: 按显示顺序排列，Fraction 为相对最高一项的比例
func (r *PlanetRegistry) Comparison(launchVelocity float64) []ComparisonEntry {
	entries := make([]ComparisonEntry, len(r.planets))
	tallest := 0.0
	for i, p := range r.planets {
		h := physics.MaxHeight(launchVelocity, p.Gravity)
		entries[i] = ComparisonEntry{
			Key:       p.Key,
			Name:      p.Name,
			Gravity:   p.Gravity,
			MaxHeight: h,
			Color:     p.Color,
		}
		if h > tallest {
			tallest = h
		}
	}
	if tallest > 0 {
		for i := range entries {
			entries[i].Fraction = entries[i].MaxHeight / tallest
		}
	}
	return entries
}

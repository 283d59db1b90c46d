package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPlanetRegistry(t *testing.T) {
	registry := DefaultPlanetRegistry()

	wantKeys := []string{"earth", "moon", "mars", "jupiter", "saturn"}
	keys := registry.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("expected %d planets, got %d", len(wantKeys), len(keys))
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Errorf("key[%d]: got %q, want %q", i, keys[i], k)
		}
	}

	wantGravity := map[string]float64{
		"earth":   9.81,
		"moon":    1.62,
		"mars":    3.71,
		"jupiter": 24.79,
		"saturn":  10.44,
	}
	for k, g := range wantGravity {
		p, ok := registry.Lookup(k)
		if !ok {
			t.Errorf("planet %q not found", k)
			continue
		}
		if p.Gravity != g {
			t.Errorf("%s gravity: got %v, want %v", k, p.Gravity, g)
		}
	}

	saturn := registry.Get("saturn")
	if saturn.Ring == nil {
		t.Fatal("saturn should have a ring")
	}
	if saturn.Ring.InnerRadius != 2.5 || saturn.Ring.OuterRadius != 4 {
		t.Errorf("saturn ring radii: got (%v, %v)", saturn.Ring.InnerRadius, saturn.Ring.OuterRadius)
	}
	if registry.Get("earth").Ring != nil {
		t.Error("earth should not have a ring")
	}
}

func TestPlanetRegistryFallback(t *testing.T) {
	registry := DefaultPlanetRegistry()

	for _, key := range []string{"", "pluto", "EARTH"} {
		p := registry.Get(key)
		if p.Key != DefaultPlanetKey {
			t.Errorf("Get(%q) should fall back to %q, got %q", key, DefaultPlanetKey, p.Key)
		}
		if registry.Resolve(key) != DefaultPlanetKey {
			t.Errorf("Resolve(%q) should return %q", key, DefaultPlanetKey)
		}
	}

	if _, ok := registry.Lookup("pluto"); ok {
		t.Error("Lookup should report missing planets")
	}
}

func TestGravityRatio(t *testing.T) {
	registry := DefaultPlanetRegistry()

	if got := registry.GravityRatio("earth"); got != 1 {
		t.Errorf("earth ratio: got %v, want 1", got)
	}
	if got := registry.GravityRatio("moon"); math.Abs(got-1.62/9.81) > 1e-12 {
		t.Errorf("moon ratio: got %v", got)
	}
	if got := registry.GravityRatio("unknown"); got != 1 {
		t.Errorf("unknown planet ratio should use fallback, got %v", got)
	}
}

func TestNextPrevCycle(t *testing.T) {
	registry := DefaultPlanetRegistry()

	if got := registry.Next("saturn"); got != "earth" {
		t.Errorf("Next(saturn): got %q, want earth", got)
	}
	if got := registry.Prev("earth"); got != "saturn" {
		t.Errorf("Prev(earth): got %q, want saturn", got)
	}
	if got := registry.Next("moon"); got != "mars" {
		t.Errorf("Next(moon): got %q, want mars", got)
	}

	key := "earth"
	for i := 0; i < registry.Len(); i++ {
		key = registry.Next(key)
	}
	if key != "earth" {
		t.Errorf("full cycle should return to earth, got %q", key)
	}
}

func TestComparison(t *testing.T) {
	registry := DefaultPlanetRegistry()
	entries := registry.Comparison(ComparisonLaunchVelocity)

	if len(entries) != registry.Len() {
		t.Fatalf("expected %d entries, got %d", registry.Len(), len(entries))
	}

	var moon, earth ComparisonEntry
	for _, e := range entries {
		switch e.Key {
		case "moon":
			moon = e
		case "earth":
			earth = e
		}
		if e.Fraction <= 0 || e.Fraction > 1 {
			t.Errorf("%s fraction out of range: %v", e.Key, e.Fraction)
		}
	}

	// 月球重力最小，跳得最高
	if moon.Fraction != 1 {
		t.Errorf("moon should be the tallest bar, got fraction %v", moon.Fraction)
	}
	if math.Abs(earth.MaxHeight-64/(2*9.81)) > 1e-9 {
		t.Errorf("earth max height: got %v", earth.MaxHeight)
	}
}

func TestLoadPlanetRegistry(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
	}{
		{
			name: "valid minimal config",
			yamlContent: `
planets:
  - key: earth
    name: Earth
    gravity: 9.81
  - key: moon
    name: Moon
    gravity: 1.62
`,
		},
		{
			name:        "no planets",
			yamlContent: "default: earth\nplanets: []\n",
			wantErr:     true,
			errContains: "no planets",
		},
		{
			name: "zero gravity",
			yamlContent: `
planets:
  - key: void
    name: Void
    gravity: 0
`,
			wantErr:     true,
			errContains: "gravity must be positive",
		},
		{
			name: "duplicate key",
			yamlContent: `
planets:
  - key: earth
    name: Earth
    gravity: 9.81
  - key: earth
    name: Earth Again
    gravity: 9.81
`,
			wantErr:     true,
			errContains: "duplicate planet key",
		},
		{
			name: "unknown default",
			yamlContent: `
default: pluto
planets:
  - key: earth
    name: Earth
    gravity: 9.81
`,
			wantErr:     true,
			errContains: "default planet",
		},
		{
			name: "invalid ring",
			yamlContent: `
planets:
  - key: saturn
    name: Saturn
    gravity: 10.44
    ring:
      innerRadius: 5
      outerRadius: 4
`,
			wantErr:     true,
			errContains: "ring invalid",
		},
		{
			name:        "malformed yaml",
			yamlContent: "planets: [\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "planets.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			registry, err := LoadPlanetRegistry(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// 未指定 default 时使用第一个行星
			if registry.Default().Key != "earth" {
				t.Errorf("default planet: got %q, want earth", registry.Default().Key)
			}
		})
	}
}

func TestLoadPlanetRegistryMissingFile(t *testing.T) {
	_, err := LoadPlanetRegistry(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestTargetFractionsIncreasing(t *testing.T) {
	for i := 1; i < len(TargetFractions); i++ {
		if TargetFractions[i] <= TargetFractions[i-1] {
			t.Errorf("TargetFractions must be strictly increasing: %v", TargetFractions)
		}
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/physics"
)

func main() {
	path := "pkg/config/data/planets.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	registry, err := config.LoadPlanetRegistry(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确\n")
	fmt.Printf("✅ 行星数量: %d (默认 %s, 参考 %s)\n", registry.Len(), registry.Default().Key, registry.Reference().Key)

	for _, p := range registry.Planets() {
		fmt.Printf("   %-8s g=%6.2f  最高 %.3f m  滞空 %.3f s  比值 %.2fx\n",
			p.Key, p.Gravity,
			physics.MaxHeight(config.LaunchVelocity, p.Gravity),
			physics.HangTime(config.LaunchVelocity, p.Gravity),
			registry.GravityRatio(p.Key))
	}
}

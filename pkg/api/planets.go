package api

import (
	"net/http"

	"github.com/gonewx/gravity-jump/pkg/config"
	"github.com/gonewx/gravity-jump/pkg/physics"
)

// planetInfo GET /api/planets 中的一项
type planetInfo struct {
	config.Planet
	GravityRatio float64 `json:"gravityRatio"`
	MaxHeight    float64 `json:"maxHeight"` // 默认起跳速度下
	HangTime     float64 `json:"hangTime"`
}

// planetsResponse GET /api/planets 响应
type planetsResponse struct {
	Default        string                   `json:"default"`
	Reference      string                   `json:"reference"`
	LaunchVelocity float64                  `json:"launchVelocity"`
	Planets        []planetInfo             `json:"planets"`
	Comparison     []config.ComparisonEntry `json:"comparison"`
}

func (s *Server) handlePlanets(w http.ResponseWriter, _ *http.Request) {
	planets := s.registry.Planets()
	resp := planetsResponse{
		Default:        s.registry.Default().Key,
		Reference:      s.registry.Reference().Key,
		LaunchVelocity: config.LaunchVelocity,
		Planets:        make([]planetInfo, len(planets)),
		Comparison:     s.registry.Comparison(config.ComparisonLaunchVelocity),
	}
	for i, p := range planets {
		resp.Planets[i] = planetInfo{
			Planet:       p,
			GravityRatio: s.registry.GravityRatio(p.Key),
			MaxHeight:    physics.MaxHeight(config.LaunchVelocity, p.Gravity),
			HangTime:     physics.HangTime(config.LaunchVelocity, p.Gravity),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

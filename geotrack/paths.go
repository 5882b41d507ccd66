// Package geotrack derives per-operator movement traces from captured
// survey points.
package geotrack

import (
	"sort"

	"github.com/georeconexion/campo-api/models"
)

// OperatorPath is the ordered coordinate trace of one operator's captures
type OperatorPath struct {
	Operator    string              `json:"operator"`
	Coordinates []models.Coordinate `json:"coordinates"`
}

// Drawable reports whether the path has enough points to connect. Single
// points are retained in the result but must not be drawn.
func (p OperatorPath) Drawable() bool {
	return len(p.Coordinates) >= 2
}

// BuildPaths sorts the input by capture timestamp ascending (stable, so ties
// keep their input order) and groups coordinates by operator display name in
// first-seen order. Operator names are compared by exact string equality;
// whitespace or case drift splits a real operator into separate traces.
func BuildPaths(points []models.SurveyPoint) []OperatorPath {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]models.SurveyPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CapturedAt.Before(sorted[j].CapturedAt)
	})

	paths := make([]OperatorPath, 0, 4)
	index := make(map[string]int, 4)
	for _, p := range sorted {
		i, ok := index[p.SurveyorName]
		if !ok {
			i = len(paths)
			index[p.SurveyorName] = i
			paths = append(paths, OperatorPath{Operator: p.SurveyorName})
		}
		paths[i].Coordinates = append(paths[i].Coordinates, p.Coordinate())
	}
	return paths
}

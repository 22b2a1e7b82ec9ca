package service

import (
	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
)

// MissingObservations returns the required observation keys that are not yet
// recorded true for the stage. An empty result means the gate is open.
func MissingObservations(stage *models.TemplateStage, tracking *models.StageTracking) []string {
	var missing []string
	for _, req := range stage.ObservationRequired {
		if tracking == nil {
			missing = append(missing, req.Key)
			continue
		}
		value, ok := tracking.ObservationValue(req.Key)
		if !ok || !value {
			missing = append(missing, req.Key)
		}
	}
	return missing
}

// ObservationsSatisfied reports whether every required observation for the
// stage has been recorded true. A stage without required observations is
// always satisfied and may complete purely on day-based progression.
func ObservationsSatisfied(stage *models.TemplateStage, tracking *models.StageTracking) bool {
	return len(MissingObservations(stage, tracking)) == 0
}

package service

import (
	"math"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/database/models"
)

// StageWeights distributes 100 points across n stages using integers only.
// base = floor(100/n); the first (100 - base*n) stages get base+1, the rest
// get base. The weights always sum to exactly 100, so progress can never
// drift from float rounding.
func StageWeights(n int) []int {
	if n <= 0 {
		return nil
	}
	base := 100 / n
	remainder := 100 - base*n
	weights := make([]int, n)
	for i := range weights {
		if i < remainder {
			weights[i] = base + 1
		} else {
			weights[i] = base
		}
	}
	return weights
}

// StageCompletion estimates how far along a single stage is, 0-100.
// A completed stage is always 100. Otherwise the stage's daily log values
// are summed and divided by the stage duration in days; daily logs are
// assumed to average at most 100 per day, which RecordDailyLog enforces at
// write time.
func StageCompletion(stage *models.TemplateStage, tracking *models.StageTracking) int {
	if tracking == nil {
		return 0
	}
	if tracking.Status == models.StageStatusCompleted {
		return 100
	}

	duration := stage.Duration()
	if duration <= 0 || len(tracking.DailyLogs) == 0 {
		return 0
	}

	sum := 0
	for _, log := range tracking.DailyLogs {
		sum += log.DailyProgress
	}

	completion := int(math.Round(float64(sum) / float64(duration)))
	return clampPercent(completion)
}

// ComputeProgress converts a notebook's stage tracking and its template into
// a 0-100 completion percentage. Completed stages contribute their full
// weight; the current stage contributes a fraction of its weight based on
// StageCompletion; stages not yet started contribute nothing. Idempotent:
// unchanged inputs always produce the same value.
func ComputeProgress(template *models.GrowthTemplate, notebook *models.Notebook) int {
	if template == nil || len(template.Stages) == 0 {
		return 0
	}

	weights := StageWeights(len(template.Stages))
	total := 0
	for i := range template.Stages {
		stage := &template.Stages[i]
		tracking := notebook.TrackingFor(stage.StageNumber)

		switch {
		case tracking != nil && tracking.CompletedAt != nil:
			total += weights[i]
		case stage.StageNumber == notebook.CurrentStage:
			completion := StageCompletion(stage, tracking)
			total += int(math.Round(float64(weights[i]) * float64(completion) / 100))
		}
	}

	return clampPercent(total)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

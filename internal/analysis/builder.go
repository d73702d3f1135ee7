package analysis

import (
	"errors"

	"github.com/neonyanbbcode/MarketAnly/models"
)

// ErrNoImages is returned when an analysis is requested without any chart.
var ErrNoImages = errors.New("analysis requires at least one chart image")

// BuildAnalysisRequest assembles the multimodal payload for one analysis
// run: the uploaded images in order, followed by the single fixed
// instruction part. The request is built fresh per run and not mutated
// afterwards.
func BuildAnalysisRequest(images []models.ImagePayload) (models.AnalysisRequest, error) {
	if len(images) == 0 {
		return models.AnalysisRequest{}, ErrNoImages
	}
	for _, img := range images {
		if len(img.Data) == 0 {
			return models.AnalysisRequest{}, errors.New("analysis image has no data")
		}
	}
	ordered := make([]models.ImagePayload, len(images))
	copy(ordered, images)
	return models.AnalysisRequest{
		Images:      ordered,
		Instruction: analysisInstruction,
	}, nil
}

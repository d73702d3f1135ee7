package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/neonyanbbcode/MarketAnly/models"
)

func TestBuildAnalysisRequestOrderAndInstruction(t *testing.T) {
	images := []models.ImagePayload{
		{Data: []byte{0x89, 0x50}, MIMEType: "image/png"},
		{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"},
		{Data: []byte{0x47, 0x49}, MIMEType: "image/gif"},
	}

	req, err := BuildAnalysisRequest(images)
	if err != nil {
		t.Fatalf("BuildAnalysisRequest: %v", err)
	}

	if len(req.Images) != len(images) {
		t.Fatalf("expected %d images, got %d", len(images), len(req.Images))
	}
	for i := range images {
		if req.Images[i].MIMEType != images[i].MIMEType {
			t.Fatalf("image %d out of order: %s", i, req.Images[i].MIMEType)
		}
	}
	if req.Instruction != analysisInstruction {
		t.Fatalf("instruction must be the fixed analysis prompt")
	}
	if !strings.Contains(req.Instruction, "```json") {
		t.Fatalf("instruction must mandate the fenced json block")
	}
}

func TestBuildAnalysisRequestCopiesInput(t *testing.T) {
	images := []models.ImagePayload{{Data: []byte{1}, MIMEType: "image/png"}}
	req, err := BuildAnalysisRequest(images)
	if err != nil {
		t.Fatalf("BuildAnalysisRequest: %v", err)
	}
	images[0] = models.ImagePayload{Data: []byte{2}, MIMEType: "image/webp"}
	if req.Images[0].MIMEType != "image/png" {
		t.Fatalf("request must not alias the caller's slice")
	}
}

func TestBuildAnalysisRequestNoImages(t *testing.T) {
	if _, err := BuildAnalysisRequest(nil); !errors.Is(err, ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
}

func TestBuildAnalysisRequestEmptyImage(t *testing.T) {
	_, err := BuildAnalysisRequest([]models.ImagePayload{{MIMEType: "image/png"}})
	if err == nil {
		t.Fatalf("expected error for image without data")
	}
}

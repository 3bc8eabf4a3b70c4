package api

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
)

// ClassifyFoodRequest carries the food items to classify.
type ClassifyFoodRequest struct {
	FoodItems []models.FoodItem `json:"food_items"`
}

// ClassifiedFood pairs a classification with the item's nutrition sub-factors.
type ClassifiedFood struct {
	models.FoodClassification
	FSI models.FSIParameters `json:"fsi_parameters"`
}

// ClassifyFoodResponse lists one classification per requested item.
type ClassifyFoodResponse struct {
	Classifications []ClassifiedFood `json:"classifications"`
}

// PredictRetentionRequest is one day of input plus the body type used for
// sensitivity scaling.
type PredictRetentionRequest struct {
	Input    models.LifestyleInput         `json:"input"`
	BodyType models.BodyTypeClassification `json:"body_type"`
}

// AnalyzeBodyTypeRequest is the declared body type and the day's intake.
type AnalyzeBodyTypeRequest struct {
	BodyType models.BodyType       `json:"body_type"`
	Input    models.LifestyleInput `json:"input"`
}

// AnalyzeSleepRequest is one day of input; sleep_data is required.
type AnalyzeSleepRequest struct {
	Input models.LifestyleInput `json:"input"`
}

// AssessRequest is a raw lifestyle document plus the declared body type. The
// document is validated and sanitized before analysis.
type AssessRequest struct {
	Input    json.RawMessage `json:"input"`
	BodyType models.BodyType `json:"body_type"`
}

// HealthResponse reports liveness and recent latency.
type HealthResponse struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	Samples    int     `json:"samples"`
	LatencyP50 float64 `json:"latency_p50_ms"`
	LatencyP95 float64 `json:"latency_p95_ms"`
}

// DecodeStruct converts a structpb payload into out via its JSON form.
func DecodeStruct(in *structpb.Struct, out any) error {
	if in == nil {
		return utils.NewAppError("api.DecodeStruct", "request is nil", utils.ErrInvalidInput)
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return utils.NewAppError("api.DecodeStruct", err.Error(), utils.ErrInvalidInput)
	}
	return nil
}

// EncodeStruct converts v, which must marshal to a JSON object, into a
// structpb payload.
func EncodeStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("convert response: %w", err)
	}
	return out, nil
}

// Milliseconds renders a duration as fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

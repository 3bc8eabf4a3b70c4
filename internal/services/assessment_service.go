package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jeevanfit/jeevanfit-engine/internal/api"
	"github.com/jeevanfit/jeevanfit-engine/internal/cache"
	"github.com/jeevanfit/jeevanfit-engine/internal/engine"
	"github.com/jeevanfit/jeevanfit-engine/internal/metrics"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/trends"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
	"github.com/jeevanfit/jeevanfit-engine/internal/validation"
)

const (
	analysisFood      = "food"
	analysisRetention = "retention"
	analysisBodyType  = "body_type"
	analysisSleep     = "sleep"
	analysisTrends    = "trends"
	analysisAssess    = "assess"
	analysisValidate  = "validate"

	trendsCachePrefix = "trends:"
)

// AssessmentService implements the gRPC AssessmentEngine service.
type AssessmentService struct {
	logger    *slog.Logger
	pipeline  *engine.Pipeline
	trends    *trends.Analyzer
	validator *validation.Validator
	cache     cache.Provider
	trendsTTL time.Duration
	latencies *utils.LatencyTracker
	started   time.Time
}

var _ api.AssessmentEngineServer = (*AssessmentService)(nil)

// NewAssessmentService constructs the service facade. A nil cacheProvider
// disables trend result caching.
func NewAssessmentService(logger *slog.Logger, pipeline *engine.Pipeline, analyzer *trends.Analyzer, validator *validation.Validator, cacheProvider cache.Provider, trendsTTL time.Duration) *AssessmentService {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheProvider == nil {
		cacheProvider = cache.NoopProvider{}
	}
	return &AssessmentService{
		logger:    logger,
		pipeline:  pipeline,
		trends:    analyzer,
		validator: validator,
		cache:     cacheProvider,
		trendsTTL: trendsTTL,
		latencies: utils.NewLatencyTracker(1024),
		started:   time.Now(),
	}
}

// ClassifyFood classifies every requested food item.
func (s *AssessmentService) ClassifyFood(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.ClassifyFoodRequest
	return s.run(ctx, analysisFood, in, &req, func(ctx context.Context) (any, error) {
		if len(req.FoodItems) == 0 {
			return nil, invalidInput("services.ClassifyFood", "food_items must not be empty")
		}
		food := s.pipeline.Food()
		resp := api.ClassifyFoodResponse{Classifications: make([]api.ClassifiedFood, 0, len(req.FoodItems))}
		for _, item := range req.FoodItems {
			resp.Classifications = append(resp.Classifications, api.ClassifiedFood{
				FoodClassification: food.Classify(item),
				FSI:                food.FSIParameters(item),
			})
		}
		return resp, nil
	})
}

// PredictRetention estimates the day's water retention.
func (s *AssessmentService) PredictRetention(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.PredictRetentionRequest
	return s.run(ctx, analysisRetention, in, &req, func(ctx context.Context) (any, error) {
		return s.pipeline.Retention().Predict(req.Input, req.BodyType), nil
	})
}

// AnalyzeBodyType resolves the body type and tailors guidance to the intake.
func (s *AssessmentService) AnalyzeBodyType(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.AnalyzeBodyTypeRequest
	return s.run(ctx, analysisBodyType, in, &req, func(ctx context.Context) (any, error) {
		return s.pipeline.BodyType().Analyze(req.BodyType, req.Input), nil
	})
}

// AnalyzeSleep rates the night and correlates it with the day's habits.
func (s *AssessmentService) AnalyzeSleep(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.AnalyzeSleepRequest
	return s.run(ctx, analysisSleep, in, &req, func(ctx context.Context) (any, error) {
		if req.Input.SleepData == nil {
			return nil, invalidInput("services.AnalyzeSleep", "input.sleep_data is required")
		}
		return s.pipeline.Sleep().Analyze(*req.Input.SleepData, req.Input), nil
	})
}

// AnalyzeTrends runs the trend sweep, serving repeated requests from cache.
func (s *AssessmentService) AnalyzeTrends(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req trends.Request
	return s.run(ctx, analysisTrends, in, &req, func(ctx context.Context) (any, error) {
		key, err := trendsCacheKey(req)
		if err != nil {
			return nil, err
		}
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached models.TrendAnalysis
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.ObserveCacheLookup(true)
				return cached, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("trend cache lookup failed", slog.Any("error", err))
		}
		metrics.ObserveCacheLookup(false)

		analysis, err := s.trends.Analyze(ctx, req)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(analysis); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.trendsTTL); err != nil {
				s.logger.Warn("trend cache store failed", slog.Any("error", err))
			}
		}
		return analysis, nil
	})
}

// Assess validates a raw lifestyle document and runs the full daily pipeline.
func (s *AssessmentService) Assess(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req api.AssessRequest
	return s.run(ctx, analysisAssess, in, &req, func(ctx context.Context) (any, error) {
		if len(req.Input) == 0 || string(req.Input) == "null" {
			return nil, invalidInput("services.Assess", "input is required")
		}
		res := s.validator.Validate(req.Input)
		if !res.Valid {
			return nil, res.Err()
		}
		bodyType := req.BodyType
		if bodyType.UserID == "" {
			bodyType.UserID = res.Input.UserID
		}
		return s.pipeline.Assess(ctx, *res.Input, bodyType)
	})
}

// Validate checks a raw lifestyle document. Invalid documents are reported in
// the response, not as an error.
func (s *AssessmentService) Validate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var raw json.RawMessage
	return s.run(ctx, analysisValidate, in, &raw, func(ctx context.Context) (any, error) {
		return s.validator.Validate(raw), nil
	})
}

// HealthCheck returns the current health state and recent latency.
func (s *AssessmentService) HealthCheck(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	p := s.latencies.Percentiles(50, 95)
	return api.EncodeStruct(api.HealthResponse{
		Status:     "SERVING",
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Samples:    s.latencies.Count(),
		LatencyP50: api.Milliseconds(p[0]),
		LatencyP95: api.Milliseconds(p[1]),
	})
}

// LatencyP95 returns the current p95 analysis latency.
func (s *AssessmentService) LatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}

// run decodes in into req, invokes fn and encodes its result, recording
// metrics and mapping errors onto gRPC status codes.
func (s *AssessmentService) run(ctx context.Context, kind string, in *structpb.Struct, req any, fn func(context.Context) (any, error)) (*structpb.Struct, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, s.fail(kind, start, err)
	}
	if err := api.DecodeStruct(in, req); err != nil {
		return nil, s.fail(kind, start, err)
	}

	result, err := fn(ctx)
	if err != nil {
		return nil, s.fail(kind, start, err)
	}
	out, err := api.EncodeStruct(result)
	if err != nil {
		return nil, s.fail(kind, start, err)
	}

	duration := time.Since(start)
	s.latencies.Observe(duration)
	metrics.ObserveAnalysis(kind, duration, metrics.OutcomeSuccess)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		p95 := s.latencies.Percentile(95)
		s.logger.Info("analysis latency", slog.Duration("p95", p95), slog.Int("samples", count))
	}
	return out, nil
}

func (s *AssessmentService) fail(kind string, start time.Time, err error) error {
	duration := time.Since(start)
	st := toStatus(err)
	if st.Code() == codes.InvalidArgument {
		metrics.ObserveAnalysis(kind, duration, metrics.OutcomeInvalid)
		s.logger.Debug("rejected request", slog.String("analysis", kind), slog.Any("error", err))
	} else {
		metrics.ObserveAnalysis(kind, duration, metrics.OutcomeError)
		s.logger.Error("analysis failed", slog.String("analysis", kind), slog.Any("error", err))
	}
	return st.Err()
}

func toStatus(err error) *status.Status {
	switch {
	case errors.Is(err, utils.ErrInvalidInput):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	default:
		return status.New(codes.Internal, fmt.Sprintf("analysis failed: %v", err))
	}
}

func invalidInput(op, msg string) error {
	return utils.NewAppError(op, msg, utils.ErrInvalidInput)
}

// trendsCacheKey hashes the request's JSON form; map keys marshal sorted.
func trendsCacheKey(req trends.Request) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal trend request: %w", err)
	}
	sum := sha256.Sum256(data)
	return trendsCachePrefix + hex.EncodeToString(sum[:]), nil
}

package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "jeevanfit.v1.AssessmentEngine"

// Full method names, usable with grpc.ClientConn.Invoke.
const (
	MethodClassifyFood     = "/" + ServiceName + "/ClassifyFood"
	MethodPredictRetention = "/" + ServiceName + "/PredictRetention"
	MethodAnalyzeBodyType  = "/" + ServiceName + "/AnalyzeBodyType"
	MethodAnalyzeSleep     = "/" + ServiceName + "/AnalyzeSleep"
	MethodAnalyzeTrends    = "/" + ServiceName + "/AnalyzeTrends"
	MethodAssess           = "/" + ServiceName + "/Assess"
	MethodValidate         = "/" + ServiceName + "/Validate"
	MethodHealthCheck      = "/" + ServiceName + "/HealthCheck"
)

// AssessmentEngineServer is the server API for the assessment engine. Every
// message is a JSON object carried as a structpb.Struct.
type AssessmentEngineServer interface {
	ClassifyFood(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PredictRetention(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AnalyzeBodyType(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AnalyzeSleep(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AnalyzeTrends(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Assess(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	HealthCheck(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterAssessmentEngineServer registers srv on s.
func RegisterAssessmentEngineServer(s grpc.ServiceRegistrar, srv AssessmentEngineServer) {
	s.RegisterService(&AssessmentEngineServiceDesc, srv)
}

type structMethod func(AssessmentEngineServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AssessmentEngineServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AssessmentEngineServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AssessmentEngineServiceDesc is the grpc.ServiceDesc for the assessment engine.
var AssessmentEngineServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssessmentEngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ClassifyFood", Handler: unaryHandler(MethodClassifyFood, AssessmentEngineServer.ClassifyFood)},
		{MethodName: "PredictRetention", Handler: unaryHandler(MethodPredictRetention, AssessmentEngineServer.PredictRetention)},
		{MethodName: "AnalyzeBodyType", Handler: unaryHandler(MethodAnalyzeBodyType, AssessmentEngineServer.AnalyzeBodyType)},
		{MethodName: "AnalyzeSleep", Handler: unaryHandler(MethodAnalyzeSleep, AssessmentEngineServer.AnalyzeSleep)},
		{MethodName: "AnalyzeTrends", Handler: unaryHandler(MethodAnalyzeTrends, AssessmentEngineServer.AnalyzeTrends)},
		{MethodName: "Assess", Handler: unaryHandler(MethodAssess, AssessmentEngineServer.Assess)},
		{MethodName: "Validate", Handler: unaryHandler(MethodValidate, AssessmentEngineServer.Validate)},
		{MethodName: "HealthCheck", Handler: unaryHandler(MethodHealthCheck, AssessmentEngineServer.HealthCheck)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jeevanfit/v1/assessment.proto",
}

// Client calls the assessment engine over an established connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with req and decodes the reply into out (may be nil).
func (c *Client) Call(ctx context.Context, method string, req, out any, opts ...grpc.CallOption) error {
	in, err := EncodeStruct(req)
	if err != nil {
		return err
	}
	reply := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, reply, opts...); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return DecodeStruct(reply, out)
}

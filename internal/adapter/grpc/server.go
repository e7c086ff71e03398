package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

// PlanStore defines the gateway operations the server needs
type PlanStore interface {
	Load(ctx context.Context, key domain.PlanKey) (domain.PlanSnapshot, error)
	Save(ctx context.Context, key domain.PlanKey, req domain.SaveRequest) error
}

// Server implements the RetirementService gRPC server
type Server struct {
	Plans PlanStore

	logger *slog.Logger
}

var _ RetirementServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(plans PlanStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{Plans: plans, logger: logger}
}

// LoadPlan handles the LoadPlan RPC
func (s *Server) LoadPlan(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.Plans.Load(ctx, PlanKeyFromContext(ctx))
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to fetch data")
	}

	return toStruct(wire.FromSnapshot(snapshot))
}

// SavePlan handles the SavePlan RPC
func (s *Server) SavePlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body wire.Plan
	if err := fromStruct(req, &body); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid plan: %v", err)
	}

	if err := s.Plans.Save(ctx, PlanKeyFromContext(ctx), body.SaveRequest()); err != nil {
		s.logger.ErrorContext(ctx, "save plan failed", "error", err)
		return nil, mapError(err)
	}

	return structpb.NewStruct(map[string]interface{}{"success": true})
}

// Calculate handles the Calculate RPC. Nothing is stored.
func (s *Server) Calculate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body wire.Plan
	if err := fromStruct(req, &body); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid plan: %v", err)
	}

	return toStruct(wire.Analyze(body.Snapshot()))
}

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// fromStruct decodes a protobuf Struct into a JSON-tagged value
func fromStruct(s *structpb.Struct, dst interface{}) error {
	if s == nil {
		return nil
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to read struct: %w", err)
	}
	return json.Unmarshal(raw, dst)
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPlanKey), errors.Is(err, domain.ErrInvalidInput):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "failed to save data")
	default:
		return status.Error(codes.Internal, "failed to save data")
	}
}

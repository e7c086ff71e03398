package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

// Client calls a remote RetirementService
type Client struct {
	cc    grpc.ClientConnInterface
	token string
}

// NewClient creates a client over an established connection.
// A non-empty token is sent as the authorization metadata of every call.
func NewClient(cc grpc.ClientConnInterface, token string) *Client {
	return &Client{cc: cc, token: token}
}

func (c *Client) outgoing(ctx context.Context, key domain.PlanKey) context.Context {
	pairs := []string{PlanKeyMetadata, key.String()}
	if c.token != "" {
		pairs = append(pairs, "authorization", c.token)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

// Load fetches the plan stored under key
func (c *Client) Load(ctx context.Context, key domain.PlanKey) (wire.Plan, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(c.outgoing(ctx, key), loadPlanMethod, &emptypb.Empty{}, out); err != nil {
		return wire.Plan{}, err
	}

	var plan wire.Plan
	if err := fromStruct(out, &plan); err != nil {
		return wire.Plan{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	return plan, nil
}

// Save writes the slots present in plan
func (c *Client) Save(ctx context.Context, key domain.PlanKey, plan wire.Plan) error {
	in, err := toStruct(plan)
	if err != nil {
		return err
	}
	return c.cc.Invoke(c.outgoing(ctx, key), savePlanMethod, in, new(structpb.Struct))
}

// Calculate runs the remote engine over plan
func (c *Client) Calculate(ctx context.Context, plan wire.Plan) (wire.Analysis, error) {
	in, err := toStruct(plan)
	if err != nil {
		return wire.Analysis{}, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(c.outgoing(ctx, domain.DefaultPlanKey), calculateMethod, in, out); err != nil {
		return wire.Analysis{}, err
	}

	var analysis wire.Analysis
	if err := fromStruct(out, &analysis); err != nil {
		return wire.Analysis{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return analysis, nil
}

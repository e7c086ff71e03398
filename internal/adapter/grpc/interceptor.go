package grpc

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// PlanKeyMetadata is the metadata key that selects the plan of a call
const PlanKeyMetadata = "x-plan-key"

type planKeyCtxKey struct{}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// If the token is missing or invalid, it returns status.Unauthenticated.
// A "Bearer " prefix is accepted. An empty validToken disables the check.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if validToken == "" {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		supplied := strings.TrimPrefix(authHeaders[0], "Bearer ")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(validToken)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// PlanKeyInterceptor resolves the x-plan-key metadata into a domain.PlanKey
// and stores it in the context. Missing metadata selects domain.DefaultPlanKey.
func PlanKeyInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		var raw string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(PlanKeyMetadata); len(values) > 0 {
				raw = values[0]
			}
		}

		key, err := domain.ParsePlanKey(raw)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		return handler(context.WithValue(ctx, planKeyCtxKey{}, key), req)
	}
}

// PlanKeyFromContext returns the key stored by PlanKeyInterceptor, or the default key
func PlanKeyFromContext(ctx context.Context) domain.PlanKey {
	if key, ok := ctx.Value(planKeyCtxKey{}).(domain.PlanKey); ok {
		return key
	}
	return domain.DefaultPlanKey
}

package auth

import (
	"context"
	"slices"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const (
	PlayerIDKey contextKey = "player_id"
	RolesKey    contextKey = "roles"
)

// UnaryInterceptor validates the bearer token of every call but the public methods
// and injects the player identity into the context.
func (m *TokenManager) UnaryInterceptor(publicMethods ...string) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(publicMethods))
	for _, method := range publicMethods {
		public[method] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := public[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		claims, err := m.FromMetadata(ctx)
		if err != nil {
			return nil, err
		}
		return handler(WithClaims(ctx, claims), req)
	}
}

// FromMetadata reads and validates the "authorization: Bearer <token>" header.
func (m *TokenManager) FromMetadata(ctx context.Context) (*CustomClaims, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "metadata is missing")
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
	}
	claims, err := m.ValidateToken(strings.TrimPrefix(values[0], "Bearer "))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
	}
	return claims, nil
}

func WithClaims(ctx context.Context, claims *CustomClaims) context.Context {
	ctx = context.WithValue(ctx, PlayerIDKey, claims.PlayerID)
	return context.WithValue(ctx, RolesKey, claims.Roles)
}

func PlayerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(PlayerIDKey).(string)
	return id, ok && id != ""
}

func HasRole(ctx context.Context, role string) bool {
	roles, _ := ctx.Value(RolesKey).([]string)
	return slices.Contains(roles, role)
}

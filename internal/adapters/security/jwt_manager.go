// Package security implements token issuance and password hashing
package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const signingAlgorithm = "HS256"

// Claims is the JWT payload
type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates HMAC-signed access tokens
type JWTManager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
	tracer trace.Tracer
}

type JWTManagerParams struct {
	Secret string
	Expiry time.Duration
	Issuer string
	// Now defaults to time.Now
	Now func() time.Time
}

func NewJWTManager(params JWTManagerParams) (*JWTManager, error) {
	if params.Secret == "" {
		return nil, errors.NewConfigurationError("JWT secret is required", nil)
	}
	if params.Expiry <= 0 {
		return nil, errors.NewConfigurationError("JWT expiry must be positive", nil)
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &JWTManager{
		secret: []byte(params.Secret),
		expiry: params.Expiry,
		issuer: params.Issuer,
		now:    now,
		tracer: otel.Tracer("travel-planner/security"),
	}, nil
}

func (m *JWTManager) Generate(ctx context.Context, identity ports.TokenClaims) (string, error) {
	_, span := m.tracer.Start(ctx, "jwt.generate_token")
	defer span.End()

	span.SetAttributes(attribute.Int64("user.id", int64(identity.UserID)))

	now := m.now()
	claims := &Claims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(identity.UserID), 10),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(signingAlgorithm), claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign failed")
		return "", errors.NewTokenError("failed to sign token", err)
	}
	return signed, nil
}

func (m *JWTManager) Validate(ctx context.Context, tokenString string) (*ports.TokenClaims, error) {
	_, span := m.tracer.Start(ctx, "jwt.validate_token")
	defer span.End()

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingAlgorithm}),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		options = append(options, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, options...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid token")
		return nil, errors.NewTokenError("invalid or expired token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, errors.NewTokenError("invalid token claims", nil)
	}

	span.SetAttributes(
		attribute.Int64("user.id", int64(claims.UserID)),
		attribute.String("jwt.id", claims.ID),
	)

	result := &ports.TokenClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

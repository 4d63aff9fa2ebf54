package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/domain/user"
	"github.com/personachat/server/internal/utils/apperrors"
)

const identityKey = "auth_identity"

// devSubject identifies requests when auth is disabled, so the rest of the
// stack behaves the same in local development.
const devSubject = "dev-user"

// Validator validates JWTs using JWKS.
type Validator struct {
	cfg  *config.Config
	log  zerolog.Logger
	jwks *keyfunc.JWKS
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	if !cfg.AuthEnabled {
		return &Validator{cfg: cfg, log: log}, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}

	return &Validator{
		cfg:  cfg,
		log:  log,
		jwks: jwks,
	}, nil
}

// Ready reports whether the validator can verify tokens.
func (v *Validator) Ready() bool {
	if v == nil || !v.cfg.AuthEnabled {
		return true
	}
	return v.jwks != nil
}

// RequireAuth rejects requests without a valid bearer token. Handlers behind
// it can rely on Identity being present.
func (v *Validator) RequireAuth() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			c.Set(identityKey, &user.Identity{Subject: devSubject})
			c.Next()
		}
	}

	return func(c *gin.Context) {
		identity, err := v.verify(c.GetHeader("Authorization"))
		if err != nil {
			apperrors.WriteUnauthorized(c, err.Error())
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid bearer token is present and
// lets everything else through as a guest. It never rejects a request.
func (v *Validator) OptionalAuth() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			if bearerToken(c.GetHeader("Authorization")) != "" {
				c.Set(identityKey, &user.Identity{Subject: devSubject})
			}
			c.Next()
		}
	}

	return func(c *gin.Context) {
		identity, err := v.verify(c.GetHeader("Authorization"))
		if err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func (v *Validator) verify(header string) (*user.Identity, error) {
	tokenString := bearerToken(header)
	if tokenString == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "missing bearer token", nil)
	}

	parseOptions := []jwt.ParserOption{
		jwt.WithIssuer(v.cfg.AuthIssuer),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
	}
	if v.cfg.AuthAudience != "" {
		parseOptions = append(parseOptions, jwt.WithAudience(v.cfg.AuthAudience))
	}

	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc, parseOptions...)
	if err != nil || !token.Valid {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid token claims", nil)
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, "token has no subject", nil)
	}
	email, _ := claims["email"].(string)

	return &user.Identity{Subject: subject, Email: email}, nil
}

// Identity returns the resolved identity from the request context, or nil
// for guest requests.
func Identity(c *gin.Context) *user.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*user.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var middlewareTracer = otel.Tracer("auth-middleware")

// Gin context keys populated by the auth middleware.
const (
	UserIDKey    = "user_id"
	UsernameKey  = "username"
	UserRolesKey = "user_roles"
	ClaimsKey    = "claims"
)

// RequireAuth is a Gin middleware that validates JWT tokens.
// The token comes from the Authorization header, or from the "token" query
// parameter as a fallback for WebSocket clients that cannot set headers.
func RequireAuth(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := middlewareTracer.Start(c.Request.Context(), "auth.require_auth")
		defer span.End()

		token := extractToken(c)
		if token == "" {
			span.SetAttributes(attribute.Bool("auth.token_present", false))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			c.Abort()
			return
		}

		span.SetAttributes(attribute.Bool("auth.token_present", true))

		claims, err := jwtManager.ValidateToken(ctx, token)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("auth.token_valid", false))
			log.Printf(`{"level":"warn","message":"Invalid token","error":"%v"}`, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		span.SetAttributes(
			attribute.Bool("auth.token_valid", true),
			attribute.String("user.id", claims.UserID),
			attribute.String("user.username", claims.Username),
		)

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserRolesKey, claims.Roles)
		c.Set(ClaimsKey, claims)

		log.Printf(`{"level":"info","message":"User authenticated","user_id":"%s","username":"%s","path":"%s","method":"%s"}`,
			claims.UserID, claims.Username, c.Request.URL.Path, c.Request.Method)

		c.Next()
	}
}

// OptionalAuth is a Gin middleware that validates JWT tokens if present
func OptionalAuth(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := middlewareTracer.Start(c.Request.Context(), "auth.optional_auth")
		defer span.End()

		token := extractToken(c)
		if token == "" {
			span.SetAttributes(attribute.Bool("auth.authenticated", false))
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(ctx, token)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("auth.authenticated", false))
			log.Printf(`{"level":"warn","message":"Invalid optional token","error":"%v"}`, err)
			c.Next()
			return
		}

		span.SetAttributes(
			attribute.Bool("auth.authenticated", true),
			attribute.String("user.id", claims.UserID),
		)

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserRolesKey, claims.Roles)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// RequireRole is a Gin middleware that checks if the authenticated user has
// the required role. Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := middlewareTracer.Start(c.Request.Context(), "auth.require_role")
		defer span.End()

		span.SetAttributes(attribute.String("required.role", role))

		rolesValue, exists := c.Get(UserRolesKey)
		if !exists {
			span.SetAttributes(attribute.Bool("auth.role_authorized", false))
			c.JSON(http.StatusForbidden, gin.H{"error": "User roles not found"})
			c.Abort()
			return
		}

		roles, ok := rolesValue.([]string)
		if !ok {
			span.SetAttributes(attribute.Bool("auth.role_authorized", false))
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid user roles"})
			c.Abort()
			return
		}

		hasRole := false
		for _, userRole := range roles {
			if userRole == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			userID, _ := c.Get(UserIDKey)
			span.SetAttributes(attribute.Bool("auth.role_authorized", false))
			log.Printf(`{"level":"warn","message":"Insufficient permissions","user_id":"%v","required_role":"%s"}`,
				userID, role)
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		span.SetAttributes(attribute.Bool("auth.role_authorized", true))
		c.Next()
	}
}

// extractToken pulls the JWT from the Authorization header, falling back to
// the "token" query parameter.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(authHeader, prefix) {
		return strings.TrimSpace(authHeader[len(prefix):])
	}
	return strings.TrimSpace(c.Query("token"))
}

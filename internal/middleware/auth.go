package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/jwtutil"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// AuthMiddleware verifies the JWT token and extracts claims
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Track authentication attempts
		prometheus.AuthAttemptsCounter.Inc()

		// Extract the token from the Authorization header
		tokenString := c.Request().Header.Get("Authorization")
		if tokenString == "" {
			log.Warn("Missing authorization header")
			prometheus.RecordAuthError("missing_header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		// Remove "Bearer " prefix if present
		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
			tokenString = tokenString[7:]
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Warn("Invalid or expired token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		prometheus.AuthSuccessCounter.Inc()

		// Store user information in the context
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("canteen", claims.Canteen)

		// Update logger with user information
		log = log.With(
			zap.Uint("user_id", claims.UserID),
			zap.String("role", string(claims.Role)),
			zap.String("canteen", string(claims.Canteen)),
		)
		c.Set("logger", log)

		return next(c)
	}
}

// RequireCanteenContext ensures the request carries a valid canteen claim
func RequireCanteenContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		canteen, ok := c.Get("canteen").(model.Canteen)
		if !ok || !canteen.Valid() {
			log.Warn("Missing canteen context")
			prometheus.CanteenContextMissingCounter.Inc()
			return c.JSON(http.StatusForbidden, echo.Map{
				"error":   "canteen context required",
				"message": "The token does not carry a valid canteen scope",
			})
		}

		return next(c)
	}
}

// RequireRole guards an endpoint so only the given role may pass
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			current, ok := c.Get("role").(model.Role)
			if !ok || current != role {
				log.Warn("Access denied for role",
					zap.String("required_role", string(role)))
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "access denied: " + string(role) + " role required",
				})
			}

			return next(c)
		}
	}
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/database"
	"github.com/rems1212/Employee-Canteen/pkg/jwtutil"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// Register creates a new user account scoped to one canteen
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Name     string        `json:"name"`
		Email    string        `json:"email"`
		Password string        `json:"password"`
		Role     model.Role    `json:"role"`
		Canteen  model.Canteen `json:"canteen"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data",
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	if !req.Canteen.Valid() {
		log.Error("Invalid or missing canteen", zap.String("canteen", string(req.Canteen)))
		prometheus.RecordAuthError("invalid_canteen")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or missing canteen"})
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		log.Error("Invalid role", zap.String("role", string(req.Role)))
		prometheus.RecordAuthError("invalid_role")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
		Canteen:  req.Canteen,
	}

	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.String("email", req.Email), zap.Error(result.Error))
		// Unique index on email can still race the existence check
		if strings.Contains(result.Error.Error(), "duplicate") {
			prometheus.RecordAuthError("email_already_exists")
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists"})
		}
		prometheus.RecordAuthError("user_create_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("canteen", string(user.Canteen)))
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

// Login authenticates a user against one canteen and issues a token
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string        `json:"email"`
		Password string        `json:"password"`
		Canteen  model.Canteen `json:"canteen"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ? AND canteen = ?", req.Email, req.Canteen).First(&user)
	if result.Error != nil {
		log.Error("User not found or canteen mismatch",
			zap.String("email", req.Email),
			zap.String("canteen", string(req.Canteen)))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User not found or canteen mismatch"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(&user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("canteen", string(user.Canteen)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
			"canteen": user.Canteen,
		},
	})
}

// VerifyToken checks the bearer token and reports the identity it carries
func VerifyToken(c echo.Context) error {
	log := logger.FromContext(c)

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization header missing"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token missing"})
	}

	claims, err := jwtutil.ValidateToken(parts[1])
	if err != nil {
		log.Warn("Token verification failed", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"valid":  true,
		"userId": claims.UserID,
		"role":   claims.Role,
	})
}

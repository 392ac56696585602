package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(userID string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"employee_id": returnValueOrNil(employeeID),
		"role":        string(role),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromClaims reads the caller out of verified access token claims.
func IdentityFromClaims(claims map[string]interface{}) (user.Identity, error) {
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return user.Identity{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return user.Identity{}, auth.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if !role.IsValid() {
		return user.Identity{}, auth.ErrInvalidToken
	}

	identity := user.Identity{UserID: userID, Role: role}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		identity.EmployeeID = &employeeID
	}
	return identity, nil
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

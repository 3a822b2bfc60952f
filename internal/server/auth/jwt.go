package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Principal identifies the caller behind a valid session token.
type Principal struct {
	UserID   int
	UserName string
}

// Claims are the session token claims: the standard registered claims plus
// the user id and name.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"userId"`
	UserName string `json:"username"`
}

// GenerateToken signs an HS256 session token for p, issued at now and
// expiring after validityDuration.
func GenerateToken(p Principal, secretKey []byte, validityDuration time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   p.UserID,
		UserName: p.UserName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString against secretKey as of now.
//
// Errors:
//   - common.ErrMissingToken: empty token
//   - common.ErrTokenExpired: well-formed, correctly signed, past exp
//   - common.ErrInvalidToken: anything else (malformed, bad signature,
//     unexpected algorithm, missing exp or user id)
func ParseToken(tokenString string, secretKey []byte, now time.Time) (Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Principal{}, common.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, common.ErrTokenExpired
		}
		return Principal{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == 0 {
		return Principal{}, common.ErrInvalidToken
	}

	return Principal{UserID: claims.UserID, UserName: claims.UserName}, nil
}

// BearerToken extracts the token from an Authorization header value.
// It returns an empty string when the header is absent or not a bearer.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, strings.TrimSpace(common.BearerPrefix)) {
		return ""
	}
	return strings.TrimSpace(token)
}

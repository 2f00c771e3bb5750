package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lms-backend/pkg/config"
)

// Issuer mints and verifies the three token classes used by the platform:
// short-lived access tokens, long-lived refresh tokens and five-minute
// activation tokens carrying a pending registration. Each class is signed
// with its own secret. Issuer is stateless; a token's effectiveness is
// decided by the session store, not here.
type Issuer struct {
	accessSecret     []byte
	refreshSecret    []byte
	activationSecret []byte
	accessExpiry     time.Duration
	refreshExpiry    time.Duration
}

func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{
		accessSecret:     []byte(cfg.AccessTokenSecret),
		refreshSecret:    []byte(cfg.RefreshTokenSecret),
		activationSecret: []byte(cfg.ActivationSecret),
		accessExpiry:     cfg.AccessTokenExpiry,
		refreshExpiry:    cfg.RefreshTokenExpiry,
	}
}

type SessionClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// PendingUser is the registration payload embedded in an activation token.
// The user document is only created once the matching code is presented.
type PendingUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

type ActivationClaims struct {
	User PendingUser `json:"user"`
	Code string      `json:"activationCode"`
	jwt.RegisteredClaims
}

const activationExpiry = 5 * time.Minute

func (i *Issuer) SignAccessToken(userID string) (string, error) {
	return i.sign(userID, i.accessSecret, i.accessExpiry, "")
}

// SignRefreshToken returns the signed token and its jti. The session stores
// the jti so that rotation invalidates every previously issued refresh token.
func (i *Issuer) SignRefreshToken(userID string) (string, string, error) {
	jti := uuid.New().String()
	signed, err := i.sign(userID, i.refreshSecret, i.refreshExpiry, jti)
	return signed, jti, err
}

func (i *Issuer) sign(userID string, secret []byte, expiry time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) ParseAccessToken(tokenString string) (*SessionClaims, error) {
	return parseSession(tokenString, i.accessSecret)
}

func (i *Issuer) ParseRefreshToken(tokenString string) (*SessionClaims, error) {
	return parseSession(tokenString, i.refreshSecret)
}

// parseSession treats every verification failure the same way; callers map
// the error to a single 401 class.
func parseSession(tokenString string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token: verification failed")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token: missing user id claim")
	}
	return &claims, nil
}

// SignActivationToken embeds the pending registration and a random four
// digit code into a short-lived token. The code is mailed to the user, the
// token is returned to the client; activation presents both.
func (i *Issuer) SignActivationToken(user PendingUser) (string, string, error) {
	code, err := activationCode()
	if err != nil {
		return "", "", err
	}
	now := time.Now()
	claims := ActivationClaims{
		User: user,
		Code: code,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(activationExpiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.activationSecret)
	if err != nil {
		return "", "", err
	}
	return signed, code, nil
}

func (i *Issuer) ParseActivationToken(tokenString string) (*ActivationClaims, error) {
	var claims ActivationClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.activationSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token: verification failed")
	}
	return &claims, nil
}

// activationCode draws a code in [1000, 9999].
func activationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

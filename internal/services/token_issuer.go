package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Configuration keys read by the token issuer.
const (
	KeyJWTSecret      = "jwtkey.secret"
	KeyJWTIssuer      = "jwtkey.validissuer"
	KeyJWTAudience    = "jwtkey.validaudience"
	KeyJWTExpiryHours = "jwtkey.tokenexpirytimeinhour"
)

// ConfigSource exposes string settings. *viper.Viper satisfies it.
type ConfigSource interface {
	GetString(key string) string
}

// Claims are the JWT claims issued on login.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.StandardClaims
}

// HasRole reports whether the token carries role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type tokenSettings struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
}

// TokenIssuer signs and verifies HS256 access tokens. Settings are read on
// every call so rotated configuration takes effect without a restart.
type TokenIssuer struct {
	config ConfigSource
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer reading its settings from config.
func NewTokenIssuer(config ConfigSource) *TokenIssuer {
	return &TokenIssuer{config: config, now: time.Now}
}

func (t *TokenIssuer) settings() (*tokenSettings, error) {
	secret := t.config.GetString(KeyJWTSecret)
	if strings.TrimSpace(secret) == "" {
		return nil, newError(ErrConfigurationMissing, MsgJWTSecretEmpty)
	}
	issuer := t.config.GetString(KeyJWTIssuer)
	if strings.TrimSpace(issuer) == "" {
		return nil, newError(ErrConfigurationMissing, MsgJWTIssuerEmpty)
	}
	audience := t.config.GetString(KeyJWTAudience)
	if strings.TrimSpace(audience) == "" {
		return nil, newError(ErrConfigurationMissing, MsgJWTAudienceEmpty)
	}
	rawExpiry := strings.TrimSpace(t.config.GetString(KeyJWTExpiryHours))
	if rawExpiry == "" {
		return nil, newError(ErrConfigurationMissing, MsgJWTExpiryEmpty)
	}
	hours, err := strconv.ParseFloat(rawExpiry, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, newError(ErrConfigurationMissing, MsgJWTExpiryNotNumeric)
	}
	return &tokenSettings{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   time.Duration(hours * float64(time.Hour)),
	}, nil
}

// Issue signs a token for email carrying one roles element per label.
func (t *TokenIssuer) Issue(email string, roles []string) (string, error) {
	cfg, err := t.settings()
	if err != nil {
		return "", err
	}
	issuedAt := t.now().UTC()
	claims := Claims{
		Email: email,
		Roles: append([]string{}, roles...),
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Issuer:    cfg.issuer,
			Audience:  cfg.audience,
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(cfg.expiry).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.secret)
	if err != nil {
		return "", internalError("failed to sign token", err)
	}
	return signed, nil
}

// Validate parses tokenString and checks its signature, lifetime, issuer and
// audience.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	cfg, err := t.settings()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.secret, nil
	})
	if err != nil {
		return nil, newError(ErrInvalidCredentials, "invalid token: "+err.Error())
	}
	if !token.Valid {
		return nil, newError(ErrInvalidCredentials, "invalid token")
	}
	if !claims.VerifyIssuer(cfg.issuer, true) {
		return nil, newError(ErrInvalidCredentials, fmt.Sprintf("invalid token: unexpected issuer %q", claims.Issuer))
	}
	if !claims.VerifyAudience(cfg.audience, true) {
		return nil, newError(ErrInvalidCredentials, fmt.Sprintf("invalid token: unexpected audience %q", claims.Audience))
	}
	return claims, nil
}

package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier validates session tokens issued by the external identity
// provider. Tokens are HS256-signed with a shared key; the subject identifier
// travels in the standard sub claim.
type JWTVerifier struct {
	Secret []byte
	Issuer string // optional; enforced when non-empty
}

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{Secret: []byte(secret), Issuer: issuer}
}

// ResolveSubject reads the token from the Authorization header (Bearer
// scheme), falling back to the access_token cookie for browser clients.
func (v *JWTVerifier) ResolveSubject(r *http.Request) (string, error) {
	token := tokenFromRequest(r)
	if token == "" {
		return "", ErrNoSubject
	}

	claims := &jwt.RegisteredClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return "", ErrNoSubject
	}
	if claims.Subject == "" {
		return "", ErrNoSubject
	}
	return claims.Subject, nil
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie("access_token"); err == nil {
		return c.Value
	}
	return ""
}

var _ Verifier = (*JWTVerifier)(nil)

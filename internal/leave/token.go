package leave

import (
	"os"
	"time"

	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/golang-jwt/jwt/v5"
)

// decisionTokenTTL bounds how long an emailed approve/reject link
// stays usable.
const decisionTokenTTL = 7 * 24 * time.Hour

const decisionTokenType = "leave_approval"

// DecisionClaims is the payload of the one-click decision link mailed
// to approvers. It is single purpose: the token type keeps it from
// doubling as a login token.
type DecisionClaims struct {
	TokenType string `json:"typ"`
	LeaveID   string `json:"leave_id"`
	Decision  string `json:"decision"`
	jwt.RegisteredClaims
}

func signDecisionToken(leaveID, decision string, now time.Time) (string, error) {
	claims := DecisionClaims{
		TokenType: decisionTokenType,
		LeaveID:   leaveID,
		Decision:  decision,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(decisionTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func parseDecisionToken(raw string) (*DecisionClaims, error) {
	claims := &DecisionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, leaveerrors.ErrInvalidDecisionToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, leaveerrors.ErrInvalidDecisionToken
	}
	if claims.TokenType != decisionTokenType {
		return nil, leaveerrors.ErrInvalidDecisionToken
	}
	if claims.Decision != StatusApproved && claims.Decision != StatusRejected {
		return nil, leaveerrors.ErrInvalidDecisionToken
	}
	return claims, nil
}

package gateway

import (
	"net/http"
	"strings"

	. "github.com/dapplist/registry/src/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
)

const callerKey = "caller"

// authenticate resolves the caller's account from a bearer token.
// Tokens are HS256 signed by the deployment operator, the subject claim
// carries the account id.
func (self *Server) authenticate() gin.HandlerFunc {
	secret := []byte(self.Config.Gateway.TokenSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		payload, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			LOGE(c, nil, http.StatusUnauthorized).Debug("Missing bearer token")
			return
		}

		token, err := jwt.Parse([]byte(payload), jwt.WithVerify(jwa.HS256, secret), jwt.WithValidate(true))
		if err != nil {
			LOGE(c, err, http.StatusUnauthorized).Debug("Invalid bearer token")
			return
		}

		if token.Subject() == "" {
			LOGE(c, nil, http.StatusUnauthorized).Debug("Token has no subject")
			return
		}

		c.Set(callerKey, token.Subject())
		c.Next()
	}
}

func caller(c *gin.Context) string {
	return c.GetString(callerKey)
}

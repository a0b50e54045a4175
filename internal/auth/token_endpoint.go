package auth

import (
	"github.com/gin-gonic/gin"
)

// HandleToken issues tokens for the password, client_credentials and refresh_token grants
// @Summary Token Endpoint
// @Description Obtain an access token. The first-party web client uses the password grant with the account email as username; API clients use client_credentials.
// @Tags user
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "password, client_credentials or refresh_token"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string false "Client secret (confidential clients only)"
// @Param username formData string false "Account email (password grant)"
// @Param password formData string false "Account password (password grant)"
// @Param refresh_token formData string false "Refresh token (refresh_token grant)"
// @Param scope formData string false "Requested scope"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/user/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	if err := o.server.HandleTokenRequest(c.Writer, c.Request); err != nil {
		log.WithError(err).Error("Failed to write token response")
	}
}

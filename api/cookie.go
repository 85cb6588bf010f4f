package api

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/config"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
)

// escapeLikeValue escapes the LIKE wildcards % and _ so user input matches literally
func escapeLikeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// getCookieOptions Secure only in release mode; SameSite=Lax everywhere
func getCookieOptions() (secure bool, sameSite http.SameSite) {
	cfg := config.GetConfig()
	if cfg != nil && cfg.Server.Mode == "release" {
		secure = true
	}
	sameSite = http.SameSiteLaxMode
	return
}

// setAuthCookie stores the session token as an httpOnly cookie
func setAuthCookie(c *gin.Context, token string, maxAge int) {
	secure, sameSite := getCookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", secure, true)
}

func clearAuthCookie(c *gin.Context) {
	setAuthCookie(c, "", -1)
}

// parseID reads the :id path parameter; writes a 400 and returns false when invalid
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// queryInt parses an optional integer query parameter; empty means 0
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		BadRequest(c, key+" must be a number")
		return 0, false
	}
	return v, true
}

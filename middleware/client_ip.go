package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP returns the caller address as seen through the trusted proxies,
// with IPv4-mapped IPv6 addresses reduced to plain IPv4.
func ClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if strings.HasPrefix(ip, "::ffff:") && strings.Count(ip, ".") == 3 {
		ip = strings.TrimPrefix(ip, "::ffff:")
	}
	if ip == "" {
		return "unknown"
	}
	return ip
}

// TrustProxies limits which peers may supply X-Forwarded-For. With no proxies
// configured only the socket address identifies the client.
func TrustProxies(r *gin.Engine, proxies []string) error {
	if len(proxies) == 0 {
		return r.SetTrustedProxies(nil)
	}
	return r.SetTrustedProxies(proxies)
}

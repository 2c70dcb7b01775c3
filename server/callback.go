package server

import (
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// NormalizeHost rewrites every spelling of the IPv6 loopback address to localhost.
// IPv4 loopback and all other hosts are returned unchanged.
func NormalizeHost(host string) string {
	ip := net.ParseIP(host)
	if ip != nil && ip.To4() == nil && ip.Equal(net.IPv6loopback) {
		return "localhost"
	}
	return host
}

// CallbackURL builds the URL the editor service exports the mapping definition id from.
func CallbackURL(cfg CallbackConfig, host string, port int, id string) string {
	u := url.URL{
		Scheme:   cfg.Scheme,
		Host:     net.JoinHostPort(NormalizeHost(host), strconv.Itoa(port)),
		Path:     cfg.Path,
		RawQuery: "id=" + url.QueryEscape(id) + "&output=text/xml&method=export",
	}
	if cfg.Host != "" {
		u.Host = cfg.Host
	}
	return u.String()
}

// localAddr returns the address the request was received on, falling back to the Host header.
func localAddr(c *gin.Context) (string, int) {
	if addr, ok := c.Request.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		if tcp, ok := addr.(*net.TCPAddr); ok {
			return tcp.IP.String(), tcp.Port
		}
		if host, port, err := net.SplitHostPort(addr.String()); err == nil {
			n, _ := strconv.Atoi(port)
			return host, n
		}
	}
	host, port, err := net.SplitHostPort(c.Request.Host)
	if err != nil {
		return c.Request.Host, 80
	}
	n, _ := strconv.Atoi(port)
	return host, n
}

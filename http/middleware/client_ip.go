package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/router"
)

// IANA defined IPv4 non-public ranges not covered by net.IP.IsPrivate.
var extraNonPublic = mustCIDRs("100.64.0.0/10", "192.0.0.0/24", "198.18.0.0/15")

func mustCIDRs(blocks ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, n, err := net.ParseCIDR(b)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}

	return nets
}

// InjectIPAddress grabs the IP address from the request headers
// and promotes it to the context under waypoint.IpAddrKey.
func InjectIPAddress() router.Middleware {
	return func(ctx router.Ctx, next router.Next) {
		if hc, ok := ctx.(HTTPCtx); ok && hc.Request() != nil {
			hc.SetValue(waypoint.IpAddrKey, ClientIP(hc.Request().Header))
		}

		next()
	}
}

// ClientIP parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP
// address originating the request.
//
// ClientIP skips addresses from non-public ranges.
func ClientIP(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(hm.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			realIP := net.ParseIP(ip)
			if !realIP.IsGlobalUnicast() || isNonPublic(realIP) {
				continue
			}
			return ip
		}
	}
	return "0.0.0.0"
}

func isNonPublic(ip net.IP) bool {
	if ip.IsPrivate() {
		return true
	}

	if ip.To4() == nil {
		return false
	}

	for _, n := range extraNonPublic {
		if n.Contains(ip) {
			return true
		}
	}

	return false
}

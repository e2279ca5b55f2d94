// Package privacy reduces personal data before it reaches logs.
package privacy

import (
	"net/netip"
	"strings"
)

// AnonymizeIP truncates an address to its network: /24 for IPv4 and /48 for
// IPv6. It returns "unknown" for an empty input and "invalid" when ip does
// not parse.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap()
	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}

// MaskEmail keeps the first character of the local part and the domain:
// "jane.doe@contoso.com" becomes "j***@contoso.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" || domain == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

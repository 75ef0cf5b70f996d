package utils

import (
	"fmt"
	"net"
)

// ParseNetwork parses a CIDR, or a single address which becomes a /32 or /128.
func ParseNetwork(s string) (*net.IPNet, error) {
	_, ipnet, err := net.ParseCIDR(s)
	if err == nil {
		return ipnet, nil
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("%q is not an IP address or CIDR", s)
	}
	return HostNetwork(ip), nil
}

// HostNetwork wraps a single address in a full-length mask.
func HostNetwork(ip net.IP) *net.IPNet {
	if ip4 := ip.To4(); ip4 != nil {
		return &net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(128, 128)}
}

// CIDRSize returns the number of addresses in a CIDR network.
// Networks wider than 2^63 addresses saturate.
func CIDRSize(cidr *net.IPNet) uint64 {
	ones, bits := cidr.Mask.Size()
	if bits-ones >= 64 {
		return 1 << 63
	}
	return 1 << (bits - ones)
}

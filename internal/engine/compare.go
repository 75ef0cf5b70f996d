package engine

import (
	"fmt"

	"firewall-rule-generator/internal/model"
	"firewall-rule-generator/pkg/wellknown"
)

const insecureWhy = `This is INSECURE because:
• Flushes all rules without backup
• Sets default policy to ACCEPT (opposite of least-privilege)
• No logging or monitoring
• No protection against port scans or attacks
• Allows all traffic by default - you must explicitly block threats
• If you forget to add a block rule, the service is exposed`

const secureWhy = `This is SECURE because:
• Default-deny policy (least-privilege principle)
• Explicitly allows only necessary traffic
• Uses stateful filtering (connection tracking)
• Allows loopback for internal processes
• Logs dropped packets for monitoring
• If you forget to add an allow rule, the service is protected by default`

// compare builds the side-by-side teaching example. Only the first
// protocol matters; the source restriction is deliberately ignored.
func compare(protocols []string) model.Comparison {
	primary := "HTTP"
	if len(protocols) > 0 {
		primary = protocols[0]
	}
	port := wellknown.PortOrDefault(primary)

	return model.Comparison{
		Insecure: model.Example{
			Rules: []string{
				"iptables -F",
				"iptables -P INPUT ACCEPT",
				"iptables -P FORWARD ACCEPT",
				"iptables -P OUTPUT ACCEPT",
			},
			Why: insecureWhy,
		},
		Secure: model.Example{
			Rules: []string{
				"iptables -P INPUT DROP",
				"iptables -A INPUT -i lo -j ACCEPT",
				"iptables -A INPUT -m state --state ESTABLISHED,RELATED -j ACCEPT",
				fmt.Sprintf("iptables -A INPUT -p tcp --dport %d -m state --state NEW -j ACCEPT", port),
				fmt.Sprintf("iptables -A INPUT -j LOG --log-prefix %q", LogPrefix),
			},
			Why: secureWhy,
		},
	}
}

package engine

import (
	"strings"

	"firewall-rule-generator/internal/model"
)

var (
	openingPoints = []string{
		`Principle of Least Privilege: Start with "deny all" and only allow what is necessary`,
		"Stateful Filtering: Connection tracking allows return traffic without opening holes",
		"Defense in Depth: Firewall is just one layer - also use app-level auth, rate limiting, and monitoring",
	}

	sshPoint  = "SSH Protection: Always restrict SSH to known IPs. Use key-based auth and consider fail2ban for brute-force protection"
	httpPoint = "HTTP vs HTTPS: Unencrypted HTTP traffic can be intercepted. Use HTTPS with proper TLS configuration"

	closingPoints = []string{
		"Attack Vectors Prevented: Port scanning, unauthorized access, lateral movement, and reconnaissance attacks",
		"Common Mistakes: Using default ACCEPT policies, allowing 0.0.0.0/0 for management ports, forgetting to enable logging",
		"Trust but Verify: Even AI-generated rules should be reviewed. Understand each rule before applying to production",
	}
)

func advise(in model.Intent, warnings []model.Warning) []string {
	points := make([]string, 0, len(openingPoints)+2+len(closingPoints))
	points = append(points, openingPoints...)

	for _, w := range warnings {
		if strings.Contains(w.Message, "SSH") {
			points = append(points, sshPoint)
			break
		}
	}
	if in.Has("HTTP") {
		points = append(points, httpPoint)
	}

	return append(points, closingPoints...)
}

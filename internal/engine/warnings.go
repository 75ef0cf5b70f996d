package engine

import "firewall-rule-generator/internal/model"

// detectWarnings applies each risk check independently. Output order is
// fixed so results stay byte-identical across runs.
func detectWarnings(in model.Intent) []model.Warning {
	warnings := []model.Warning{}

	if in.Has("SSH") && !in.Source.Restricted {
		warnings = append(warnings, model.Warning{
			Severity:       model.SeverityCritical,
			Message:        "SSH is open to the entire internet (0.0.0.0/0)",
			Recommendation: "Restrict SSH access to specific IP addresses or VPN ranges. SSH exposed to the internet is a prime target for brute-force attacks.",
		})
	}

	if len(in.Protocols) == 0 {
		warnings = append(warnings, model.Warning{
			Severity:       model.SeverityWarning,
			Message:        "No protocols specified",
			Recommendation: "You should specify which services need to be accessible. Without any ACCEPT rules, all traffic will be blocked.",
		})
	}

	if in.Has("HTTP") && !in.Has("HTTPS") {
		warnings = append(warnings, model.Warning{
			Severity:       model.SeverityWarning,
			Message:        "HTTP enabled without HTTPS",
			Recommendation: "Consider using HTTPS for encrypted communication. HTTP traffic is sent in plain text and can be intercepted.",
		})
	}

	return warnings
}

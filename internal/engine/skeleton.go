package engine

import (
	"fmt"

	"firewall-rule-generator/internal/model"
	"firewall-rule-generator/pkg/wellknown"
)

const (
	MaxScore = 100

	servicePointsMax        = 15
	servicePointsRestricted = 15
	servicePointsOpen       = 10
	servicePointsOpenSSH    = 5

	LogPrefix = "DROPPED: "
)

// section is one block of the rule skeleton. Fixed sections emit rules and
// award once; the expanding section emits one rule and one award per
// catalogued protocol. Sections run in slice order.
type section struct {
	name   string
	rules  []model.Rule
	award  *model.ScoreEntry
	expand func(protocol string, svc wellknown.ServiceEntry, src model.Source) (model.Rule, model.ScoreEntry)
}

// The first section must establish default deny and the second stateful
// return before any accept rule is emitted.
var skeleton = []section{
	{
		name: "default-policy",
		rules: []model.Rule{
			{
				Rule:        "iptables -P INPUT DROP",
				Explanation: "Set default policy to DROP all incoming traffic",
				Threat:      "Prevents unauthorized access by denying all traffic unless explicitly allowed",
			},
			{
				Rule:        "iptables -P FORWARD DROP",
				Explanation: "Set default policy to DROP all forwarded traffic",
				Threat:      "Prevents routing attacks and unauthorized traffic forwarding",
			},
			{
				Rule:        "iptables -P OUTPUT ACCEPT",
				Explanation: "Allow all outgoing traffic (can be restricted further for maximum security)",
				Threat:      "Permits server to initiate connections and respond to requests",
			},
		},
		award: &model.ScoreEntry{
			Category:  "Default Deny Policy",
			Points:    25,
			MaxPoints: 25,
			Reason:    "Implements proper default-deny policy for INPUT and FORWARD chains",
		},
	},
	{
		name: "stateful",
		rules: []model.Rule{
			{
				Rule:        "iptables -A INPUT -i lo -j ACCEPT",
				Explanation: "Allow all loopback traffic",
				Threat:      "Permits internal server processes to communicate with each other",
			},
			{
				Rule:        "iptables -A INPUT -m state --state ESTABLISHED,RELATED -j ACCEPT",
				Explanation: "Allow established and related connections",
				Threat:      "Permits responses to outgoing connections while blocking unsolicited inbound traffic",
			},
		},
		award: &model.ScoreEntry{
			Category:  "Stateful Filtering",
			Points:    15,
			MaxPoints: 15,
			Reason:    "Uses connection tracking to allow legitimate return traffic",
		},
	},
	{
		name:   "services",
		expand: serviceRule,
	},
	{
		name: "diagnostics",
		rules: []model.Rule{
			{
				Rule:        "iptables -A INPUT -p icmp --icmp-type echo-request -j ACCEPT",
				Explanation: "Allow ping requests (optional - can be disabled for stealth)",
				Threat:      "Enables network diagnostics but reveals server presence",
			},
		},
	},
	{
		name: "logging",
		rules: []model.Rule{
			{
				Rule:        fmt.Sprintf("iptables -A INPUT -j LOG --log-prefix %q", LogPrefix),
				Explanation: "Log all dropped packets for security monitoring",
				Threat:      "Helps detect attack attempts and troubleshoot connectivity issues",
			},
		},
		award: &model.ScoreEntry{
			Category:  "Logging & Monitoring",
			Points:    10,
			MaxPoints: 10,
			Reason:    "Implements logging for dropped packets",
		},
	},
}

// synthesize walks the skeleton, returning rules and the breakdown that
// justifies them. The breakdown order follows rule order.
func synthesize(in model.Intent) ([]model.Rule, []model.ScoreEntry) {
	var rules []model.Rule
	var breakdown []model.ScoreEntry

	for _, s := range skeleton {
		if s.expand != nil {
			for _, protocol := range in.Protocols {
				svc, ok := wellknown.GetService(protocol)
				if !ok {
					continue
				}
				rule, entry := s.expand(protocol, svc, in.Source)
				rules = append(rules, rule)
				breakdown = append(breakdown, entry)
			}
			continue
		}
		rules = append(rules, s.rules...)
		if s.award != nil {
			breakdown = append(breakdown, *s.award)
		}
	}
	return rules, breakdown
}

func serviceRule(protocol string, svc wellknown.ServiceEntry, src model.Source) (model.Rule, model.ScoreEntry) {
	rule := model.Rule{
		Rule: fmt.Sprintf("iptables -A INPUT -p %s --dport %d%s -m state --state NEW -j ACCEPT", svc.Transport, svc.Port, src.Filter),
	}
	entry := model.ScoreEntry{
		Category:  protocol + " Access Control",
		MaxPoints: servicePointsMax,
	}

	if src.Restricted {
		rule.Explanation = fmt.Sprintf("Allow incoming %s traffic on port %d from %s", protocol, svc.Port, src.Display)
		rule.Threat = fmt.Sprintf("Enables %s service while restricting access to trusted sources", protocol)
	} else {
		rule.Explanation = fmt.Sprintf("Allow incoming %s traffic on port %d from anywhere", protocol, svc.Port)
		rule.Threat = fmt.Sprintf("Enables %s service while accepting connections from any source", protocol)
	}

	switch {
	case svc.Name == "SSH" && !src.Restricted:
		entry.Points = servicePointsOpenSSH
		entry.Reason = "SSH is open to the world - high security risk"
	case src.Restricted:
		entry.Points = servicePointsRestricted
		entry.Reason = fmt.Sprintf("%s access is properly restricted to trusted sources", protocol)
	default:
		entry.Points = servicePointsOpen
		entry.Reason = fmt.Sprintf("%s is open to all - acceptable for public services but consider rate limiting", protocol)
	}
	return rule, entry
}

// total sums awarded points and clamps to MaxScore. Category maxima are not
// enforced individually.
func total(breakdown []model.ScoreEntry) int {
	sum := 0
	for _, e := range breakdown {
		sum += e.Points
	}
	if sum > MaxScore {
		return MaxScore
	}
	if sum < 0 {
		return 0
	}
	return sum
}

package render

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"firewall-rule-generator/internal/model"
)

const Disclaimer = "Educational Purpose Only - Review each rule before applying to production systems"

var fingerprintNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("firewall-rule-generator"))

// RulesText is the "copy all" payload: rule commands only, one per line.
func RulesText(res model.Result) string {
	lines := make([]string, len(res.Rules))
	for i, r := range res.Rules {
		lines[i] = r.Rule
	}
	return strings.Join(lines, "\n")
}

// Fingerprint identifies a rule list. Equal rule text gives an equal UUID.
func Fingerprint(res model.Result) uuid.UUID {
	return uuid.NewSHA1(fingerprintNamespace, []byte(RulesText(res)))
}

// Script is RulesText behind a comment header.
func Script(res model.Result) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# ruleset " + Fingerprint(res).String() + "\n")
	b.WriteString("# " + Disclaimer + "\n")
	if text := RulesText(res); text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

// ComparisonDiff shows the insecure example turning into the secure one.
func ComparisonDiff(cmp model.Comparison) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(cmp.Insecure.Rules, "\n")),
		B:        difflib.SplitLines(strings.Join(cmp.Secure.Rules, "\n")),
		FromFile: "insecure",
		ToFile:   "secure",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text
}

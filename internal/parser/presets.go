package parser

import (
	"fmt"
	"sort"

	"firewall-rule-generator/internal/model"
)

var presets = map[string]model.Request{
	"web": {
		Description: "Public web server with HTTPS",
		Role:        model.RoleWeb,
		Protocols:   []string{"HTTP", "HTTPS"},
		SourceType:  model.SourceAny,
	},
	"secure-web": {
		Description: "Web server with restricted SSH access",
		Role:        model.RoleWeb,
		Protocols:   []string{"HTTPS", "SSH"},
		SourceType:  model.SourceRange,
		SourceValue: "10.0.0.0/8",
	},
	"bastion": {
		Description: "Bastion host for SSH access",
		Role:        model.RoleBastion,
		Protocols:   []string{"SSH"},
		SourceType:  model.SourceRange,
		SourceValue: "203.0.113.0/24",
	},
}

// Preset returns a copy of a named example request.
func Preset(name string) (model.Request, error) {
	req, ok := presets[name]
	if !ok {
		return model.Request{}, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	req.Protocols = append([]string(nil), req.Protocols...)
	return req, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

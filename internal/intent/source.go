package intent

import (
	"strings"

	"firewall-rule-generator/internal/model"
)

// AnywhereDisplay describes an unrestricted source.
const AnywhereDisplay = "anywhere (0.0.0.0/0)"

// DeriveSource reports a restriction only when the mode asks for one and a
// value was supplied. A restricted mode without a value degrades to anywhere.
func DeriveSource(req model.Request) model.Source {
	value := strings.TrimSpace(req.SourceValue)
	switch req.SourceType {
	case model.SourceSingle, model.SourceRange:
		if value != "" {
			return model.Source{
				Restricted: true,
				Display:    value,
				Filter:     " -s " + value,
			}
		}
	}
	return model.Source{
		Restricted: false,
		Display:    AnywhereDisplay,
		Filter:     "",
	}
}

// MissingSourceValue reports the degraded case DeriveSource folds into anywhere.
func MissingSourceValue(req model.Request) bool {
	switch req.SourceType {
	case model.SourceSingle, model.SourceRange:
		return strings.TrimSpace(req.SourceValue) == ""
	}
	return false
}

package parser

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"gopkg.in/yaml.v3"

	"firewall-rule-generator/internal/model"
	"firewall-rule-generator/internal/utils"
)

var (
	ErrUnknownRole       = errors.New("unknown server role")
	ErrUnknownSourceMode = errors.New("unknown source type")
	ErrInvalidSource     = errors.New("invalid source value")
)

// requestDocument is the on-disk shape of a request. Role and source type
// stay strings so aliases can be resolved after decoding.
type requestDocument struct {
	Description string   `yaml:"description"`
	Role        string   `yaml:"role"`
	Protocols   []string `yaml:"protocols"`
	SourceType  string   `yaml:"source_type"`
	SourceValue string   `yaml:"source_value"`
}

// ParseRequest decodes a YAML request document and validates it.
func ParseRequest(r io.Reader) (model.Request, error) {
	var doc requestDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return model.Request{}, fmt.Errorf("error decoding request: %w", err)
	}
	return BuildRequest(doc.Description, doc.Role, doc.Protocols, doc.SourceType, doc.SourceValue)
}

// BuildRequest resolves aliases and validates the source value the way the
// engine expects a caller to.
func BuildRequest(description, role string, protocols []string, sourceType, sourceValue string) (model.Request, error) {
	r, err := ParseRole(role)
	if err != nil {
		return model.Request{}, err
	}
	mode, err := ParseSourceMode(sourceType)
	if err != nil {
		return model.Request{}, err
	}
	value := strings.TrimSpace(sourceValue)
	if err := ValidateSource(mode, value); err != nil {
		return model.Request{}, err
	}

	var protos []string
	for _, p := range protocols {
		// Accept "HTTP,HTTPS" inside a single entry as well.
		for _, part := range strings.Split(p, ",") {
			if part = strings.TrimSpace(part); part != "" {
				protos = append(protos, part)
			}
		}
	}

	return model.Request{
		Description: description,
		Role:        r,
		Protocols:   protos,
		SourceType:  mode,
		SourceValue: value,
	}, nil
}

// ParseRole maps a role name or alias onto a model.Role. Empty means custom.
func ParseRole(s string) (model.Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web":
		return model.RoleWeb, nil
	case "db", "database":
		return model.RoleDatabase, nil
	case "bastion":
		return model.RoleBastion, nil
	case "custom", "":
		return model.RoleCustom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// ParseSourceMode maps a source type or alias onto a model.SourceMode. Empty means any.
func ParseSourceMode(s string) (model.SourceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "unrestricted", "":
		return model.SourceAny, nil
	case "single", "single-address", "ip":
		return model.SourceSingle, nil
	case "cidr", "address-range", "range":
		return model.SourceRange, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSourceMode, s)
	}
}

// ValidateSource checks value against mode. An empty value is accepted for
// every mode; the engine then treats the source as unrestricted.
func ValidateSource(mode model.SourceMode, value string) error {
	if value == "" {
		return nil
	}
	switch mode {
	case model.SourceSingle:
		if net.ParseIP(value) == nil {
			return fmt.Errorf("%w: %q is not an IP address", ErrInvalidSource, value)
		}
	case model.SourceRange:
		if _, err := utils.ParseNetwork(value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
	}
	return nil
}

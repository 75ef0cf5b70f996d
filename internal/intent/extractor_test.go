package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firewall-rule-generator/internal/model"
)

func TestExtractProtocols(t *testing.T) {
	e, err := NewExtractor()
	require.NoError(t, err)

	tests := []struct {
		name string
		req  model.Request
		want []string
	}{
		{
			name: "empty request",
			req:  model.Request{},
			want: []string{},
		},
		{
			name: "web role",
			req:  model.Request{Role: model.RoleWeb},
			want: []string{"HTTP", "HTTPS"},
		},
		{
			name: "web server in description",
			req:  model.Request{Role: model.RoleCustom, Description: "A Web Server for the Intranet"},
			want: []string{"HTTP", "HTTPS"},
		},
		{
			name: "database role with engines in description",
			req:  model.Request{Role: model.RoleDatabase, Description: "Postgres primary, Redis cache and MongoDB"},
			want: []string{"PostgreSQL", "MongoDB", "Redis"},
		},
		{
			name: "database keyword without role",
			req:  model.Request{Role: model.RoleCustom, Description: "database with mysql and redis"},
			want: []string{"MySQL", "Redis"},
		},
		{
			name: "engine names need a database context",
			req:  model.Request{Role: model.RoleCustom, Description: "redis sidecar"},
			want: []string{},
		},
		{
			name: "database role without engine names adds nothing",
			req:  model.Request{Role: model.RoleDatabase},
			want: []string{},
		},
		{
			name: "bastion role",
			req:  model.Request{Role: model.RoleBastion},
			want: []string{"SSH"},
		},
		{
			name: "bastion keyword",
			req:  model.Request{Role: model.RoleCustom, Description: "bastion for ops"},
			want: []string{"SSH"},
		},
		{
			name: "keywords are plain substrings",
			req:  model.Request{Role: model.RoleCustom, Description: "sftp drop and https api"},
			want: []string{"HTTP", "HTTPS", "FTP"},
		},
		{
			name: "explicit selections come first and are canonicalised",
			req:  model.Request{Role: model.RoleWeb, Protocols: []string{"ssh", "https", "Gopher"}},
			want: []string{"SSH", "HTTPS", "Gopher", "HTTP"},
		},
		{
			name: "duplicates collapse",
			req:  model.Request{Role: model.RoleBastion, Protocols: []string{"SSH", "SSH"}, Description: "ssh bastion"},
			want: []string{"SSH"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.req)
			assert.Equal(t, tt.want, got.Protocols)
		})
	}
}

func TestRoleAndKeywordInferenceOverlap(t *testing.T) {
	e, err := NewExtractor()
	require.NoError(t, err)

	byRole := e.Extract(model.Request{Role: model.RoleWeb})
	byBoth := e.Extract(model.Request{Role: model.RoleWeb, Description: "http and https web server"})
	assert.Equal(t, byRole.Protocols, byBoth.Protocols)

	assert.Equal(t,
		[]string{"web-role", "keyword-http", "keyword-https"},
		e.Matched(model.Request{Role: model.RoleWeb, Description: "http and https web server"}),
	)
}

func TestMatchedFollowsTableOrder(t *testing.T) {
	e, err := NewExtractor()
	require.NoError(t, err)

	got := e.Matched(model.Request{Role: model.RoleDatabase, Description: "mysql over ssh"})
	assert.Equal(t, []string{"database-mysql", "bastion-role", "keyword-ssh"}, got)
	assert.Empty(t, e.Matched(model.Request{Role: model.RoleCustom}))
}

func TestCompileRejectsBadExpressions(t *testing.T) {
	_, err := Compile([]Inference{{Name: "broken", Expression: `role ==`, Protocols: []string{"HTTP"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	_, err = Compile([]Inference{{Name: "undeclared", Expression: `hostname == "x"`}})
	require.Error(t, err)
}

func TestNonBoolPredicateNeverFires(t *testing.T) {
	e, err := Compile([]Inference{{Name: "string-result", Expression: `description`, Protocols: []string{"HTTP"}}})
	require.NoError(t, err)
	assert.Empty(t, e.Extract(model.Request{Description: "true"}).Protocols)
}

func TestDeriveSource(t *testing.T) {
	tests := []struct {
		name string
		req  model.Request
		want model.Source
	}{
		{
			name: "any ignores value",
			req:  model.Request{SourceType: model.SourceAny, SourceValue: "10.0.0.1"},
			want: model.Source{Display: AnywhereDisplay},
		},
		{
			name: "single address",
			req:  model.Request{SourceType: model.SourceSingle, SourceValue: "203.0.113.42"},
			want: model.Source{Restricted: true, Display: "203.0.113.42", Filter: " -s 203.0.113.42"},
		},
		{
			name: "range",
			req:  model.Request{SourceType: model.SourceRange, SourceValue: "10.0.0.0/8"},
			want: model.Source{Restricted: true, Display: "10.0.0.0/8", Filter: " -s 10.0.0.0/8"},
		},
		{
			name: "range without value degrades",
			req:  model.Request{SourceType: model.SourceRange},
			want: model.Source{Display: AnywhereDisplay},
		},
		{
			name: "unset mode",
			req:  model.Request{SourceValue: "10.0.0.0/8"},
			want: model.Source{Display: AnywhereDisplay},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSource(tt.req)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Restricted, got.Filter != "")
		})
	}
}

func TestMissingSourceValue(t *testing.T) {
	assert.True(t, MissingSourceValue(model.Request{SourceType: model.SourceSingle}))
	assert.True(t, MissingSourceValue(model.Request{SourceType: model.SourceRange, SourceValue: " "}))
	assert.False(t, MissingSourceValue(model.Request{SourceType: model.SourceRange, SourceValue: "10.0.0.0/8"}))
	assert.False(t, MissingSourceValue(model.Request{SourceType: model.SourceAny}))
}

package tokenize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seniority = []string{"senior", "junior", "lead", "principal"}

func TestPreprocessBlank(t *testing.T) {
	tk := New(seniority)
	for _, input := range []string{"", "   ", "\t\n\r "} {
		assert.Empty(t, tk.Preprocess(input), "Preprocess(%q)", input)
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Software Engineer", []string{"software", "engineer"}},
		{"Senior Developer", []string{"developer"}},
		{"Lead Accountant", []string{"accountant"}},
		{"Principal Software Engineer", []string{"software", "engineer"}},
		{"junior java developer", []string{"java", "developer"}},
		{"Senior, Software / Engineer", []string{"software", "engineer"}},
		{"  Senior, Software / Engineer  ", []string{"software", "engineer"}},
		{"Software,Engineer/Developer;Accountant:Analyst", []string{"software", "engineer", "developer", "accountant", "analyst"}},
		{"developer  ,  , java   ", []string{"developer", "java"}},
		{"java java developer developer", []string{"java", "developer"}},
		{"C++ Engineer", []string{"c++", "engineer"}},
		{"PYTHON", []string{"python"}},
	}
	tk := New(seniority)
	for _, tt := range tests {
		got := tk.Preprocess(tt.input)
		assert.Equal(t, tt.want, got, "Preprocess(%q)", tt.input)
	}
}

func TestPreprocessAccents(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"résumé", "resume"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"FRANÇOIS", "francois"},
		{"Ñoño", "nono"},
	}
	tk := New(nil)
	for _, tt := range tests {
		assert.Equal(t, []string{tt.want}, tk.Preprocess(tt.input), "Preprocess(%q)", tt.input)
	}
}

func TestPreprocessPunctuation(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"developer!", []string{"developer"}},
		{"c++", []string{"c++"}},
		{"c++!!", []string{"c++"}},
		{".net", []string{".net"}},
		{"c#", []string{"c#"}},
		{"full-stack_senior-engineer@place", []string{"full", "stack", "engineer", "place"}},
		{"(devops) [sre] {oncall}", []string{"devops", "sre", "oncall"}},
		{`"quoted" 'single'`, []string{"quoted", "single"}},
		{"what?now", []string{"what", "now"}},
	}
	tk := New(seniority)
	for _, tt := range tests {
		assert.Equal(t, tt.want, tk.Preprocess(tt.input), "Preprocess(%q)", tt.input)
	}
}

func TestPreprocessSymbolsOnly(t *testing.T) {
	tk := New(seniority)
	for _, input := range []string{"!@#$%^&*()", "$$$", "@@--__"} {
		for _, tok := range tk.Preprocess(input) {
			for _, r := range tok {
				assert.Contains(t, "abcdefghijklmnopqrstuvwxyz0123456789+#.", string(r))
			}
		}
	}
	assert.Empty(t, tk.Preprocess("$$$ %%% &&&"))
}

func TestPreprocessPrefixCaseInsensitive(t *testing.T) {
	tk := New([]string{"SENIOR", " Lead "})
	assert.Equal(t, []string{"engineer"}, tk.Preprocess("senior LEAD Engineer"))
}

func TestPreprocessPrefixOnly(t *testing.T) {
	tk := New(seniority)
	assert.Empty(t, tk.Preprocess("Senior Lead Principal"))
}

func TestPreprocessLongTokens(t *testing.T) {
	tk := New(nil)

	long := strings.Repeat("a", 1000)
	require.Equal(t, []string{long}, tk.Preprocess(long))

	repeated := strings.Repeat("developer", 100)
	require.Equal(t, []string{repeated}, tk.Preprocess(repeated))
}

func TestPreprocessDeterministic(t *testing.T) {
	tk := New(seniority)
	input := "Senior Ingénieur / Logiciel, C# .NET"
	first := tk.Preprocess(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, tk.Preprocess(input))
	}
	assert.Equal(t, []string{"ingenieur", "logiciel", "c#", ".net"}, first)
}

func TestPrefixes(t *testing.T) {
	tk := New([]string{"Senior", "lead", "", "senior"})
	assert.Equal(t, []string{"lead", "senior"}, tk.Prefixes())
}

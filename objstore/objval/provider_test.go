package objval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProviderString(t *testing.T) {
	type test struct {
		name     string
		provider Provider
		expected string
	}

	tests := []*test{
		{name: "None", provider: ProviderNone, expected: ""},
		{name: "AWS", provider: ProviderAWS, expected: "AWS"},
		{name: "GCP", provider: ProviderGCP, expected: "GCP"},
		{name: "Azure", provider: ProviderAzure, expected: "Azure"},
		{name: "Scality", provider: ProviderScality, expected: "Scality"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.provider.String())
		})
	}
}

func TestProviderStringUnknown(t *testing.T) {
	require.Equal(t, "unknown(42)", Provider(42).String())
}

func TestParseProvider(t *testing.T) {
	type test struct {
		input    string
		expected Provider
		valid    bool
	}

	tests := []*test{
		{input: "aws", expected: ProviderAWS, valid: true},
		{input: "S3", expected: ProviderAWS, valid: true},
		{input: "scality", expected: ProviderScality, valid: true},
		{input: "Azure", expected: ProviderAzure, valid: true},
		{input: "gcs", expected: ProviderGCP, valid: true},
		{input: "ftp"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			provider, err := ParseProvider(test.input)
			if !test.valid {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.expected, provider)
		})
	}
}

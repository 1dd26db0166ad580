package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("REPLVERIFY_TEST_INT", "10")
	t.Setenv("REPLVERIFY_TEST_FLOAT", "2.5")
	t.Setenv("REPLVERIFY_TEST_BOOL", "true")
	t.Setenv("REPLVERIFY_TEST_DURATION", "1m30s")
	t.Setenv("REPLVERIFY_TEST_STRING", "value")
	t.Setenv("REPLVERIFY_TEST_EMPTY", "")
	t.Setenv("REPLVERIFY_TEST_INVALID", "this is not valid")

	type test struct {
		name     string
		get      func(name string) (any, bool)
		envName  string
		expected any
		ok       bool
	}

	getInt := func(name string) (any, bool) { return GetInt(name) }
	getFloat := func(name string) (any, bool) { return GetFloat(name) }
	getBool := func(name string) (any, bool) { return GetBool(name) }
	getDuration := func(name string) (any, bool) { return GetDuration(name) }
	getString := func(name string) (any, bool) { return GetString(name) }

	tests := []*test{
		{name: "Int", get: getInt, envName: "REPLVERIFY_TEST_INT", expected: 10, ok: true},
		{name: "IntInvalid", get: getInt, envName: "REPLVERIFY_TEST_INVALID", expected: 0},
		{name: "IntNotSet", get: getInt, envName: "REPLVERIFY_TEST_UNSET", expected: 0},
		{name: "Float", get: getFloat, envName: "REPLVERIFY_TEST_FLOAT", expected: 2.5, ok: true},
		{name: "FloatInvalid", get: getFloat, envName: "REPLVERIFY_TEST_INVALID", expected: float64(0)},
		{name: "Bool", get: getBool, envName: "REPLVERIFY_TEST_BOOL", expected: true, ok: true},
		{name: "BoolInvalid", get: getBool, envName: "REPLVERIFY_TEST_INVALID", expected: false},
		{
			name:     "Duration",
			get:      getDuration,
			envName:  "REPLVERIFY_TEST_DURATION",
			expected: 90 * time.Second,
			ok:       true,
		},
		{name: "DurationInvalid", get: getDuration, envName: "REPLVERIFY_TEST_INVALID", expected: time.Duration(0)},
		{name: "String", get: getString, envName: "REPLVERIFY_TEST_STRING", expected: "value", ok: true},
		{name: "StringEmpty", get: getString, envName: "REPLVERIFY_TEST_EMPTY", expected: ""},
		{name: "StringNotSet", get: getString, envName: "REPLVERIFY_TEST_UNSET", expected: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			val, ok := test.get(test.envName)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, val)
		})
	}
}

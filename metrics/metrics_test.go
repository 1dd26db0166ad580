package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()

	Register(reg)
	Register(reg)

	VerificationsTotal.WithLabelValues("replicate", "pass").Inc()
	require.Equal(t, float64(1), testutil.ToFloat64(VerificationsTotal.WithLabelValues("replicate", "pass")))

	path := filepath.Join(t.TempDir(), "replverify.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `replverify_verifications_total{result="pass",scenario="replicate"} 1`)
}

func TestWriteTextfileInvalidPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "replverify.prom"), prometheus.NewRegistry())
	require.ErrorContains(t, err, "failed to write metrics")
}

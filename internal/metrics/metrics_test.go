package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.ObserveOperation("median_blur", 2*time.Millisecond, nil)
	rec.ObserveOperation("median_blur", 3*time.Millisecond, nil)
	rec.ObserveOperation("median_blur", time.Millisecond, errors.New("boom"))
	rec.ObserveOperation("erode", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.operationsTotal.WithLabelValues("median_blur", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.operationsTotal.WithLabelValues("median_blur", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.operationsTotal.WithLabelValues("erode", StatusSuccess)))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.operationDuration))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)
	rec.ObserveOperation("equalize_global", time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "image_enhancer.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `image_enhancer_operations_total{operation="equalize_global",status="success"} 1`)
}

func TestNopRecorder(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().ObserveOperation("anything", time.Second, errors.New("ignored"))
	})
}

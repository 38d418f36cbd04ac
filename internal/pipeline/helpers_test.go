package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"image-enhancer/internal/models"
	"image-enhancer/internal/opencv/safe"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func solidGray(t testing.TB, rows, cols int, value uint8) *safe.Mat {
	t.Helper()
	m, err := safe.NewMatFromScalar(gocv.NewScalar(float64(value), 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	return m
}

func solidBGR(t testing.TB, rows, cols int, b, g, r uint8) *safe.Mat {
	t.Helper()
	m, err := safe.NewMatFromScalar(gocv.NewScalar(float64(b), float64(g), float64(r), 0), rows, cols, gocv.MatTypeCV8UC3)
	require.NoError(t, err)
	return m
}

// ramp builds rows x 256 gray image where column c holds value c.
func ramp(t testing.TB, rows int) *safe.Mat {
	t.Helper()
	m, err := safe.NewMat(rows, 256, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	for r := 0; r < rows; r++ {
		for c := 0; c < 256; c++ {
			require.NoError(t, m.SetUCharAt(r, c, uint8(c)))
		}
	}
	return m
}

// randomBinary fills a gray image with 0/255 pixels, each white with probability density.
func randomBinary(t testing.TB, seed int64, rows, cols int, density float64) *safe.Mat {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := solidGray(t, rows, cols, 0)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				require.NoError(t, m.SetUCharAt(r, c, 255))
			}
		}
	}
	return m
}

func randomGray(t testing.TB, seed int64, rows, cols int) *safe.Mat {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := solidGray(t, rows, cols, 0)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			require.NoError(t, m.SetUCharAt(r, c, uint8(rng.Intn(256))))
		}
	}
	return m
}

func pixels(m *safe.Mat) []byte {
	mat := m.GetMat()
	return mat.ToBytes()
}

func allBytesEqual(m *safe.Mat, want ...uint8) bool {
	data := pixels(m)
	if len(data) == 0 {
		return false
	}
	for i, v := range data {
		if v != want[i%len(want)] {
			return false
		}
	}
	return true
}

func countNonZero(m *safe.Mat) int {
	return gocv.CountNonZero(m.GetMat())
}

func maxAbsDiff(a, b *safe.Mat) int {
	da, db := pixels(a), pixels(b)
	worst := 0
	for i := range da {
		d := int(da[i]) - int(db[i])
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}

func configWith(t testing.TB, edit func(p *models.ConfigurationParams)) models.PipelineConfiguration {
	t.Helper()
	params := models.DefaultConfigurationParams()
	if edit != nil {
		edit(&params)
	}
	cfg, err := models.NewPipelineConfiguration(params)
	require.NoError(t, err)
	return cfg
}

type observation struct {
	operation string
	failed    bool
}

type fakeRecorder struct {
	observations []observation
}

func (f *fakeRecorder) ObserveOperation(operation string, _ time.Duration, err error) {
	f.observations = append(f.observations, observation{operation: operation, failed: err != nil})
}

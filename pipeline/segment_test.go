package pipeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdMonotonic(t *testing.T) {
	// Raising the threshold must never add bright pixels.
	rng := rand.New(rand.NewSource(7))
	src := makeGray(64, 48, 0)
	for i := range src.Pix {
		src.Pix[i] = uint8(rng.Intn(256))
	}

	prev := 64 * 48
	for _, cutoff := range []int{0, 30, 90, 128, 200, 255} {
		mask := Threshold(src, cutoff, 0)
		n := countBright(mask)
		assert.LessOrEqual(t, n, prev, "threshold %d", cutoff)
		prev = n
	}
}

func TestThresholdExactCutoff(t *testing.T) {
	src := makeGray(3, 1, 0)
	src.Pix[0] = 99
	src.Pix[1] = 100
	src.Pix[2] = 101

	mask := Threshold(src, 100, 0)
	assert.EqualValues(t, 0, mask.Pix[0])
	assert.EqualValues(t, 255, mask.Pix[1], "value equal to threshold is bright")
	assert.EqualValues(t, 255, mask.Pix[2])
}

func TestThresholdPaddingRowsAlwaysDark(t *testing.T) {
	src := makeGray(32, 24, 255) // all bright before padding
	for _, padding := range []int{0, 1, 5, 11} {
		mask := Threshold(src, 0, padding)
		for y := 0; y < 24; y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+32]
			wantDark := y < padding || y >= 24-padding
			for x, v := range row {
				if wantDark {
					require.EqualValues(t, 0, v, "padding %d row %d col %d", padding, y, x)
				} else {
					require.EqualValues(t, 255, v, "padding %d row %d col %d", padding, y, x)
				}
			}
		}
	}
}

func TestThresholdPaddingOverflowMasksEverything(t *testing.T) {
	src := makeGray(16, 10, 255)
	for _, padding := range []int{5, 6, 100} {
		mask := Threshold(src, 0, padding)
		assert.Zero(t, countBright(mask), "padding %d", padding)
	}
}

func TestThresholdClampsNegativeInputs(t *testing.T) {
	src := makeGray(8, 8, 200)
	mask := Threshold(src, -50, -3)
	assert.Equal(t, 64, countBright(mask))
}

func TestConfigClamp(t *testing.T) {
	tests := []struct {
		name   string
		in     Config
		height int
		want   Config
	}{
		{"in range", Config{Threshold: 100, Padding: 10, Mode: ModeNormal}, 480, Config{Threshold: 100, Padding: 10, Mode: ModeNormal}},
		{"threshold high", Config{Threshold: 999}, 480, Config{Threshold: 255}},
		{"threshold low", Config{Threshold: -1}, 480, Config{Threshold: 0}},
		{"padding negative", Config{Padding: -4}, 480, Config{Padding: 0}},
		{"padding past midline", Config{Padding: 300}, 480, Config{Padding: 240}},
		{"mode out of range", Config{Mode: DebugMode(9)}, 480, Config{Mode: ModeNormal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp(tt.height))
		})
	}
}

func TestStoreSnapshotIsolated(t *testing.T) {
	store := NewStore(DefaultConfig())
	snap := store.Snapshot()

	store.SetThreshold(33)
	store.SetPadding(7)
	store.SetMode(ModePaddingOverlay)

	// The earlier snapshot is unaffected by later updates.
	assert.Equal(t, DefaultConfig(), snap)

	next := store.Snapshot()
	assert.Equal(t, 33, next.Threshold)
	assert.Equal(t, 7, next.Padding)
	assert.Equal(t, ModePaddingOverlay, next.Mode)
}

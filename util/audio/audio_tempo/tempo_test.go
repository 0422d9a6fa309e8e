package audio_tempo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferSourceBPMBuckets(t *testing.T) {
	cases := []struct {
		target   int
		expected float64
	}{
		{90, 90 * 1.10},
		{99, 99 * 1.10},
		{100, 100 * 0.909},
		{129, 129 * 0.909},
		{130, 130 * 0.833},
		{144, 144 * 0.833}, // ≈120
		{159, 159 * 0.833},
		{160, 160 * 0.75},
		{180, 180 * 0.75},
	}

	for _, c := range cases {
		assert.InDelta(t, c.expected, InferSourceBPM(c.target), 1e-9)
	}

	// 144 的推断源约为 120
	assert.InDelta(t, 120, InferSourceBPM(144), 0.1)
}

func TestDecomposeRatioWithinRange(t *testing.T) {
	stages, err := DecomposeRatio(1.2)
	require.NoError(t, err)

	assert.Equal(t, []float64{1.2}, stages)
}

func TestDecomposeRatioAboveRange(t *testing.T) {
	// 3.0 必须拆成至少两级，每级都落在 [0.5, 2.0]
	stages, err := DecomposeRatio(3.0)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(stages), 2)
	product := 1.0
	for _, stage := range stages {
		assert.GreaterOrEqual(t, stage, atempoMin)
		assert.LessOrEqual(t, stage, atempoMax)
		product *= stage
	}
	assert.InDelta(t, 3.0, product, 1e-9)
}

func TestDecomposeRatioBelowRange(t *testing.T) {
	stages, err := DecomposeRatio(0.2)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(stages), 2)
	product := 1.0
	for _, stage := range stages {
		assert.GreaterOrEqual(t, stage, atempoMin)
		assert.LessOrEqual(t, stage, atempoMax)
		product *= stage
	}
	assert.InDelta(t, 0.2, product, 1e-9)
}

func TestDecomposeRatioRejectsInvalid(t *testing.T) {
	_, err := DecomposeRatio(0)
	assert.Error(t, err)

	_, err = DecomposeRatio(-1.5)
	assert.Error(t, err)
}

func TestAdjustTempoRejectsBadInput(t *testing.T) {
	_, err := AdjustTempo(&TempoRequest{Audio: nil, TargetBPM: 120})
	assert.ErrorIs(t, err, ErrEmptyAudio)

	_, err = AdjustTempo(&TempoRequest{Audio: []byte{0x00, 0x01}, TargetBPM: 0})
	assert.ErrorIs(t, err, ErrInvalidTargetBPM)

	// 无法嗅探的字节流
	_, err = AdjustTempo(&TempoRequest{Audio: []byte{0x00, 0x01, 0x02, 0x03}, TargetBPM: 120})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

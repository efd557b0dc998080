package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePoints(t *testing.T) {
	// 1,500,000分、+250%加成、3倍消耗：
	// (100 + 75) * 350/100 = 612，再乘3 = 1836
	result, err := CalculatePoints(CalculatorInput{
		Score:        1_500_000,
		BonusPercent: 250,
		Boost:        3,
		Plays:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1836), result.PointsPerPlay)
	assert.Equal(t, int64(18360), result.TotalPoints)
	assert.Equal(t, int64(0), result.PlaysToTarget)
}

func TestCalculatePointsTruncatesBeforeBoost(t *testing.T) {
	// 分数不足20000的部分直接舍弃：19999/20000 = 0
	result, err := CalculatePoints(CalculatorInput{
		Score: 19_999,
		Boost: 1,
		Plays: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(basePointPerLive), result.PointsPerPlay)

	// 加成计算也向下取整：101 * 103/100 = 104
	result, err = CalculatePoints(CalculatorInput{
		Score:        20_000,
		BonusPercent: 3,
		Boost:        1,
		Plays:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(104), result.PointsPerPlay)
}

func TestCalculatePointsPlaysToTarget(t *testing.T) {
	// 单场612点，目标10000点 → 向上取整17场
	result, err := CalculatePoints(CalculatorInput{
		Score:        1_500_000,
		BonusPercent: 250,
		Boost:        1,
		TargetPoint:  10_000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(612), result.PointsPerPlay)
	assert.Equal(t, int64(17), result.PlaysToTarget)

	// 恰好整除时不多算一场
	result, err = CalculatePoints(CalculatorInput{
		Boost:       1,
		TargetPoint: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.PointsPerPlay)
	assert.Equal(t, int64(10), result.PlaysToTarget)
}

func TestCalculatorInputValidation(t *testing.T) {
	valid := CalculatorInput{Score: 1_000_000, BonusPercent: 100, Boost: 5, Plays: 1}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name    string
		mutate  func(*CalculatorInput)
		wantErr error
	}{
		{"负分数", func(in *CalculatorInput) { in.Score = -1 }, ErrInvalidScore},
		{"分数超上限", func(in *CalculatorInput) { in.Score = maxScorePerLive + 1 }, ErrInvalidScore},
		{"负加成", func(in *CalculatorInput) { in.BonusPercent = -1 }, ErrInvalidBonus},
		{"加成超上限", func(in *CalculatorInput) { in.BonusPercent = maxBonusPercent + 1 }, ErrInvalidBonus},
		{"零倍率", func(in *CalculatorInput) { in.Boost = 0 }, ErrInvalidBoost},
		{"倍率超上限", func(in *CalculatorInput) { in.Boost = maxBoostMultiple + 1 }, ErrInvalidBoost},
		{"负目标", func(in *CalculatorInput) { in.TargetPoint = -1 }, ErrInvalidTarget},
		{"目标超上限", func(in *CalculatorInput) { in.TargetPoint = maxTargetPoint + 1 }, ErrInvalidTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := CalculatePoints(in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

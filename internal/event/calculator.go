package event

import "errors"

// 活动点数计算的常量。
// 单场点数 = (基础点数 + 分数/20000) * (100 + 加成百分比)/100，逐步向下取整，
// 再乘以消耗倍率。
const (
	basePointPerLive  = 100
	scorePointDivisor = 20000

	maxBonusPercent  = 435 // 五张满突破同色同活动卡的理论加成上限
	maxBoostMultiple = 35
	maxScorePerLive  = 3_000_000
	maxTargetPoint   = 100_000_000
)

// 计算输入的校验错误，控制器将其映射为400。
var (
	ErrInvalidScore  = errors.New("分数超出有效范围")
	ErrInvalidBonus  = errors.New("活动加成超出有效范围")
	ErrInvalidBoost  = errors.New("消耗倍率超出有效范围")
	ErrInvalidTarget = errors.New("目标点数超出有效范围")
)

// CalculatorInput 是一次活动点数试算的全部输入。
type CalculatorInput struct {
	// Score 是单场演出分数
	Score int64

	// BonusPercent 是卡组的活动加成百分比（整数，例如250表示+250%）
	BonusPercent int

	// Boost 是消耗倍率（1~35）
	Boost int

	// Plays 是计划游玩场数
	Plays int

	// TargetPoint 是目标总点数，0表示不计算达成场数
	TargetPoint int64
}

// CalculatorResult 是试算结果。
type CalculatorResult struct {
	PointsPerPlay int64 `json:"pointsPerPlay"`
	TotalPoints   int64 `json:"totalPoints"`

	// PlaysToTarget 是达到目标点数所需的场数，未指定目标时为0
	PlaysToTarget int64 `json:"playsToTarget,omitempty"`
}

// Validate 校验试算输入。
func (in CalculatorInput) Validate() error {
	if in.Score < 0 || in.Score > maxScorePerLive {
		return ErrInvalidScore
	}
	if in.BonusPercent < 0 || in.BonusPercent > maxBonusPercent {
		return ErrInvalidBonus
	}
	if in.Boost < 1 || in.Boost > maxBoostMultiple {
		return ErrInvalidBoost
	}
	if in.TargetPoint < 0 || in.TargetPoint > maxTargetPoint {
		return ErrInvalidTarget
	}
	return nil
}

// CalculatePoints 执行一次活动点数试算。纯算术，不访问任何存储。
func CalculatePoints(in CalculatorInput) (CalculatorResult, error) {
	if err := in.Validate(); err != nil {
		return CalculatorResult{}, err
	}

	base := int64(basePointPerLive) + in.Score/scorePointDivisor
	withBonus := base * int64(100+in.BonusPercent) / 100
	perPlay := withBonus * int64(in.Boost)

	result := CalculatorResult{
		PointsPerPlay: perPlay,
		TotalPoints:   perPlay * int64(in.Plays),
	}
	if in.TargetPoint > 0 && perPlay > 0 {
		// 向上取整：不足一场按一场计
		result.PlaysToTarget = (in.TargetPoint + perPlay - 1) / perPlay
	}
	return result, nil
}

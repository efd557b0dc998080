package furniture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCombinationOrderIndependent(t *testing.T) {
	permutations := [][]string{
		{"ichika", "saki", "honami"},
		{"saki", "honami", "ichika"},
		{"honami", "ichika", "saki"},
		{"saki", "ichika", "honami"},
	}

	expected := NormalizeCombination(permutations[0])
	for _, p := range permutations {
		assert.Equal(t, expected, NormalizeCombination(p), "组合 %v 的规范化结果应与顺序无关", p)
	}
	assert.Equal(t, "honami,ichika,saki", expected)
}

func TestNormalizeCombinationSingle(t *testing.T) {
	assert.Equal(t, "ichika", NormalizeCombination([]string{"ichika"}))
}

func TestNormalizeCombinationDeduplicates(t *testing.T) {
	assert.Equal(t, "ichika,saki", NormalizeCombination([]string{"saki", "ichika", "saki"}))
}

func TestNormalizeCombinationEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeCombination(nil))
}

func TestGroupCombinationKey(t *testing.T) {
	key := GroupCombinationKey("regional_sofa", []string{"saki", "ichika"})
	assert.Equal(t, "regional_sofa:ichika,saki", key)

	// 不同家具组的同一组合必须产生不同的键
	assert.NotEqual(t, key, GroupCombinationKey("wooden_table", []string{"saki", "ichika"}))
}

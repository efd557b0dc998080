package furniture

import (
	"sort"
	"strings"
)

// NormalizeCombination 将一个无序的角色ID集合规范化为唯一的可比较字符串。
// 规则：排序后用","连接。与输入顺序无关，重复的ID会被合并。
// 组合身份的判定标准是集合相等，而不是成员包含。
func NormalizeCombination(characterIDs []string) string {
	if len(characterIDs) == 0 {
		return ""
	}

	sorted := make([]string, len(characterIDs))
	copy(sorted, characterIDs)
	sort.Strings(sorted)

	// 去重：调用方正常情况下不会传入重复ID，这里保证幂等
	deduped := sorted[:1]
	for _, id := range sorted[1:] {
		if id != deduped[len(deduped)-1] {
			deduped = append(deduped, id)
		}
	}

	return strings.Join(deduped, ",")
}

// GroupCombinationKey 生成组内组合的查找键。
// 排除索引和传播索引都使用这个键格式，避免键格式散落在多处。
func GroupCombinationKey(groupID string, characterIDs []string) string {
	return groupID + ":" + NormalizeCombination(characterIDs)
}

package furniture

import (
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

// 本文件实现反应勾选状态的核心算法：
// 排除索引、传播索引和单条反应的状态判定。
// 三者都是从已加载行数据到查找结构的纯函数，不持有跨请求状态。

// ExclusionRow 是构建排除索引所需的最小行数据，
// 与GORM模型解耦以便独立测试。
type ExclusionRow struct {
	CombinationID string
	GroupID       string
	CharacterID   string
}

// ExclusionIndex 回答"这个组合在这个家具组内是否被排除共享"。
type ExclusionIndex struct {
	keys map[string]struct{}
}

// BuildExclusionIndex 将排除成员行按CombinationID聚合成组合，
// 并为每个组合登记 groupID+":"+规范化组合 的键。
// knownGroupIDs 用于防御性校验：引用了未知家具组的组合属于数据完整性问题，
// 记录日志后跳过，不影响整个请求。
func BuildExclusionIndex(rows []ExclusionRow, knownGroupIDs map[string]struct{}) *ExclusionIndex {
	type pendingCombination struct {
		groupID      string
		characterIDs []string
	}

	combinations := make(map[string]*pendingCombination)
	order := make([]string, 0)
	for _, row := range rows {
		pending, ok := combinations[row.CombinationID]
		if !ok {
			pending = &pendingCombination{groupID: row.GroupID}
			combinations[row.CombinationID] = pending
			order = append(order, row.CombinationID)
		}
		pending.characterIDs = append(pending.characterIDs, row.CharacterID)
	}

	index := &ExclusionIndex{keys: make(map[string]struct{}, len(combinations))}
	for _, combinationID := range order {
		pending := combinations[combinationID]
		if _, ok := knownGroupIDs[pending.groupID]; !ok {
			logger.L.Warn("排除组合引用了未知的家具组，已跳过",
				zap.String("combinationId", combinationID),
				zap.String("groupId", pending.groupID))
			continue
		}
		index.keys[GroupCombinationKey(pending.groupID, pending.characterIDs)] = struct{}{}
	}
	return index
}

// IsExcluded 判断某个组合在某个家具组内是否被排除共享。
func (idx *ExclusionIndex) IsExcluded(groupID string, characterIDs []string) bool {
	_, ok := idx.keys[GroupCombinationKey(groupID, characterIDs)]
	return ok
}

// CheckedReaction 是构建传播索引所需的一条直接勾选记录：
// 勾选的反应连同其所需组合和所属家具的家具组（可能为空）。
type CheckedReaction struct {
	ReactionID   string
	GroupID      string
	CharacterIDs []string
}

// PropagationIndex 回答"这个组合在这个家具组内是否因组内其他勾选而视为已勾选"。
type PropagationIndex struct {
	keys map[string]struct{}
}

// BuildPropagationIndex 从用户的直接勾选构建传播索引。
// 不属于任何家具组的家具上的勾选、以及被排除的组合，永远不会进入索引——
// 它们只能被直接勾选。
func BuildPropagationIndex(checked []CheckedReaction, exclusions *ExclusionIndex) *PropagationIndex {
	index := &PropagationIndex{keys: make(map[string]struct{}, len(checked))}
	for _, reaction := range checked {
		if reaction.GroupID == "" {
			continue
		}
		if exclusions.IsExcluded(reaction.GroupID, reaction.CharacterIDs) {
			continue
		}
		index.keys[GroupCombinationKey(reaction.GroupID, reaction.CharacterIDs)] = struct{}{}
	}
	return index
}

// IsPropagated 判断某个组合在某个家具组内是否被共享为已勾选。
func (idx *PropagationIndex) IsPropagated(groupID string, characterIDs []string) bool {
	_, ok := idx.keys[GroupCombinationKey(groupID, characterIDs)]
	return ok
}

// StatusResolver 对单条反应求解最终的勾选状态。
type StatusResolver struct {
	directChecked map[string]struct{}
	propagation   *PropagationIndex
}

// NewStatusResolver 从用户的直接勾选ID集合和传播索引构建求解器。
// 匿名用户传入空集合即可，所有反应都会解析为未勾选。
func NewStatusResolver(directCheckedIDs []string, propagation *PropagationIndex) *StatusResolver {
	direct := make(map[string]struct{}, len(directCheckedIDs))
	for _, id := range directCheckedIDs {
		direct[id] = struct{}{}
	}
	return &StatusResolver{directChecked: direct, propagation: propagation}
}

// Resolve 返回一条反应的(checked, checkedByGroup)。
// 直接勾选具有显示优先权：即使该组合同时满足组内传播条件，
// checkedByGroup也保持false。
func (r *StatusResolver) Resolve(reactionID string, groupID string, characterIDs []string) (checked bool, checkedByGroup bool) {
	if _, ok := r.directChecked[reactionID]; ok {
		return true, false
	}
	if groupID != "" && r.propagation.IsPropagated(groupID, characterIDs) {
		return true, true
	}
	return false, false
}

package furniture

import (
	"errors"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/character"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/collection"
)

// ErrUnitNotFound 表示请求的组合在目录中不存在。
// 控制器据此把它和内部错误区分为404。
var ErrUnitNotFound = errors.New("找不到指定的组合")

// ListQuery 是家具列表请求经HTTP层解析后的全部输入。
type ListQuery struct {
	UnitCode           string
	FilterCharacterIDs []string
	NameQuery          string
	HideCompleted      bool
	OwnedOnly          bool

	// UserID 是已解析的不透明用户标识，空字符串表示匿名访问：
	// 所有反应都解析为未勾选。
	UserID string
}

// CatalogTreeDTO 是家具列表接口的完整响应树。
type CatalogTreeDTO struct {
	UnitCode string   `json:"unitCode"`
	UnitName string   `json:"unitName"`
	Tags     []TagDTO `json:"tags"`
}

// BuildCatalogTree 是家具列表的核心业务逻辑：
// 加载目录和用户勾选，构建排除/传播索引，求解每条反应的勾选状态，
// 最后把目录投影成响应树。任何一次读取失败都会中止整个调用，
// 不会返回部分结果。
func BuildCatalogTree(query ListQuery) (*CatalogTreeDTO, error) {
	// 1. 解析组合并确定其角色ID集合，它限定了哪些反应会被列出
	unit, err := character.GetUnitByCode(query.UnitCode)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}
	unitCharacters, err := character.ListCharactersByUnitCode(query.UnitCode)
	if err != nil {
		return nil, err
	}
	unitCharacterSet := make(map[string]struct{}, len(unitCharacters))
	for _, ch := range unitCharacters {
		unitCharacterSet[ch.CharacterID] = struct{}{}
	}

	// 组合成员的显示信息（简称和形象色）对全目录生效
	allCharacters, err := character.ListAllCharacters()
	if err != nil {
		return nil, err
	}
	characterInfo := make(map[string]ReactionCharacterDTO, len(allCharacters))
	for _, ch := range allCharacters {
		characterInfo[ch.CharacterID] = ReactionCharacterDTO{
			ID:    ch.CharacterID,
			Short: ch.Short,
			Color: ch.Color,
		}
	}

	// 2. 加载目录各部分
	tags, err := LoadTags()
	if err != nil {
		return nil, err
	}
	groups, err := LoadGroups()
	if err != nil {
		return nil, err
	}
	// 名称搜索在查询边界处完成；传播索引需要完整的家具表
	allFurnitures, err := LoadFurnitures("")
	if err != nil {
		return nil, err
	}
	visibleFurnitures := allFurnitures
	if query.NameQuery != "" {
		visibleFurnitures, err = LoadFurnitures(query.NameQuery)
		if err != nil {
			return nil, err
		}
	}
	reactions, err := LoadReactions()
	if err != nil {
		return nil, err
	}
	reactionCharacters, err := LoadReactionCharacters()
	if err != nil {
		return nil, err
	}
	exclusionRows, err := LoadExclusionRows()
	if err != nil {
		return nil, err
	}

	// 3. 在内存中组装查找结构
	knownGroupIDs := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		knownGroupIDs[g.GroupID] = struct{}{}
	}

	combinationByReaction := make(map[string][]string, len(reactions))
	for _, rc := range reactionCharacters {
		combinationByReaction[rc.ReactionID] = append(combinationByReaction[rc.ReactionID], rc.CharacterID)
	}

	groupByFurniture := make(map[string]string, len(allFurnitures))
	for _, f := range allFurnitures {
		groupByFurniture[f.FurnitureID] = f.GroupID
	}

	reactionsByFurniture := make(map[string][]CatalogReaction, len(allFurnitures))
	for _, reaction := range reactions {
		reactionsByFurniture[reaction.FurnitureID] = append(reactionsByFurniture[reaction.FurnitureID], CatalogReaction{
			ID:           reaction.ReactionID,
			CharacterIDs: combinationByReaction[reaction.ReactionID],
		})
	}

	// 4. 加载用户状态并构建索引
	exclusionIndex := BuildExclusionIndex(exclusionRows, knownGroupIDs)

	var checkedIDs []string
	ownedSet := make(map[string]struct{})
	if query.UserID != "" {
		checkedIDs, err = collection.GetCheckedReactionIDs(query.UserID)
		if err != nil {
			return nil, err
		}
		if query.OwnedOnly {
			ownedIDs, err := collection.GetOwnedFurnitureIDs(query.UserID)
			if err != nil {
				return nil, err
			}
			for _, id := range ownedIDs {
				ownedSet[id] = struct{}{}
			}
		}
	}

	checkedReactions := make([]CheckedReaction, 0, len(checkedIDs))
	reactionFurniture := make(map[string]string, len(reactions))
	for _, reaction := range reactions {
		reactionFurniture[reaction.ReactionID] = reaction.FurnitureID
	}
	for _, reactionID := range checkedIDs {
		furnitureID, ok := reactionFurniture[reactionID]
		if !ok {
			// 勾选记录指向目录中不存在的反应，属于陈旧数据，忽略即可
			continue
		}
		checkedReactions = append(checkedReactions, CheckedReaction{
			ReactionID:   reactionID,
			GroupID:      groupByFurniture[furnitureID],
			CharacterIDs: combinationByReaction[reactionID],
		})
	}
	propagationIndex := BuildPropagationIndex(checkedReactions, exclusionIndex)
	resolver := NewStatusResolver(checkedIDs, propagationIndex)

	// 5. 组装目录树：只保留组合完全落在该组合角色集合内的反应
	furnituresByTag := make(map[string][]CatalogFurniture, len(tags))
	for _, f := range visibleFurnitures {
		var inScope []CatalogReaction
		for _, reaction := range reactionsByFurniture[f.FurnitureID] {
			if combinationInScope(reaction.CharacterIDs, unitCharacterSet) {
				inScope = append(inScope, reaction)
			}
		}
		if len(inScope) == 0 {
			continue
		}
		furnituresByTag[f.TagID] = append(furnituresByTag[f.TagID], CatalogFurniture{
			ID:        f.FurnitureID,
			Name:      f.Name,
			GroupID:   f.GroupID,
			Reactions: inScope,
		})
	}

	catalogTags := make([]CatalogTag, 0, len(tags))
	for _, tag := range tags {
		catalogTags = append(catalogTags, CatalogTag{
			ID:         tag.TagID,
			Name:       tag.Name,
			Furnitures: furnituresByTag[tag.TagID],
		})
	}

	// 6. 投影为响应树
	projected := ProjectCatalog(catalogTags, ProjectOptions{
		FilterCharacterIDs: query.FilterCharacterIDs,
		HideCompleted:      query.HideCompleted,
		OwnedOnly:          query.OwnedOnly,
		OwnedFurnitureIDs:  ownedSet,
	}, resolver, characterInfo)

	return &CatalogTreeDTO{
		UnitCode: unit.Code,
		UnitName: unit.Name,
		Tags:     projected,
	}, nil
}

// combinationInScope 判断组合的所有成员是否都属于给定的角色集合。
func combinationInScope(characterIDs []string, characterSet map[string]struct{}) bool {
	if len(characterIDs) == 0 {
		// 零成员组合是数据完整性问题，由投影阶段记录并跳过
		return true
	}
	for _, id := range characterIDs {
		if _, ok := characterSet[id]; !ok {
			return false
		}
	}
	return true
}

package furniture

import (
	"github.com/pjsekai-tools/mysekai-furniture-backend/pkg/logger"
	"go.uber.org/zap"
)

// 合成分类：所有需要2名以上角色的反应统一归入这个分类，
// 追加在目录原有分类之后。
// 注意"组反应"(按人数)与"家具组"(勾选共享簇)是两个无关的概念。
const (
	GroupReactionsTagID   = "group-reactions"
	GroupReactionsTagName = "2人以上で反応する家具"
)

// --- 投影输入：按目录顺序组装好的内存目录树 ---

type CatalogReaction struct {
	ID           string
	CharacterIDs []string
}

type CatalogFurniture struct {
	ID        string
	Name      string
	GroupID   string // 空字符串表示不属于任何家具组
	Reactions []CatalogReaction
}

type CatalogTag struct {
	ID         string
	Name       string
	Furnitures []CatalogFurniture
}

// --- 投影输出DTO ---

type ReactionCharacterDTO struct {
	ID    string `json:"id"`
	Short string `json:"short"`
	Color string `json:"color"`
}

type ReactionDTO struct {
	ID             string                 `json:"id"`
	Characters     []ReactionCharacterDTO `json:"characters"`
	Checked        bool                   `json:"checked"`
	CheckedByGroup bool                   `json:"checkedByGroup"`
}

type FurnitureDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	GroupID   string        `json:"groupId"`
	Reactions []ReactionDTO `json:"reactions"`
}

type TagDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Furnitures []FurnitureDTO `json:"furnitures"`
}

// ProjectOptions 是调用方提供的全部过滤条件。
type ProjectOptions struct {
	// FilterCharacterIDs 非空时，只保留组合与之有交集的反应
	FilterCharacterIDs []string

	// HideCompleted 为true时，丢弃所有反应均已勾选的家具条目
	HideCompleted bool

	// OwnedOnly 为true时，只保留OwnedFurnitureIDs中的家具
	OwnedOnly         bool
	OwnedFurnitureIDs map[string]struct{}
}

// ProjectCatalog 将目录树投影为对外的响应树，依次应用：
// 角色过滤 → 按人数分桶 → 合成分类 → 持有过滤 → 完成过滤。
// 名称搜索在目录查询边界处完成，不在这里处理。
// 分类按目录顺序输出，非空的合成分类追加在最后。
func ProjectCatalog(tags []CatalogTag, opts ProjectOptions, resolver *StatusResolver, characters map[string]ReactionCharacterDTO) []TagDTO {
	filterSet := make(map[string]struct{}, len(opts.FilterCharacterIDs))
	for _, id := range opts.FilterCharacterIDs {
		filterSet[id] = struct{}{}
	}

	// buildReaction 是单条反应的共享投影函数，
	// 分类内条目和合成分类条目都经由它计算勾选状态。
	buildReaction := func(furnitureGroupID string, reaction CatalogReaction) ReactionDTO {
		checked, checkedByGroup := resolver.Resolve(reaction.ID, furnitureGroupID, reaction.CharacterIDs)
		dto := ReactionDTO{
			ID:             reaction.ID,
			Characters:     make([]ReactionCharacterDTO, 0, len(reaction.CharacterIDs)),
			Checked:        checked,
			CheckedByGroup: checkedByGroup,
		}
		for _, characterID := range reaction.CharacterIDs {
			if info, ok := characters[characterID]; ok {
				dto.Characters = append(dto.Characters, info)
			} else {
				dto.Characters = append(dto.Characters, ReactionCharacterDTO{ID: characterID})
			}
		}
		return dto
	}

	// buildEntry 把一件家具的某个反应子集变成一个家具条目，
	// 应用持有过滤和完成过滤；被过滤掉时返回false。
	buildEntry := func(f CatalogFurniture, reactions []CatalogReaction) (FurnitureDTO, bool) {
		if len(reactions) == 0 {
			return FurnitureDTO{}, false
		}
		if opts.OwnedOnly {
			if _, ok := opts.OwnedFurnitureIDs[f.ID]; !ok {
				return FurnitureDTO{}, false
			}
		}

		dto := FurnitureDTO{
			ID:        f.ID,
			Name:      f.Name,
			GroupID:   f.GroupID,
			Reactions: make([]ReactionDTO, 0, len(reactions)),
		}
		allChecked := true
		for _, reaction := range reactions {
			reactionDTO := buildReaction(f.GroupID, reaction)
			if !reactionDTO.Checked {
				allChecked = false
			}
			dto.Reactions = append(dto.Reactions, reactionDTO)
		}
		if opts.HideCompleted && allChecked {
			return FurnitureDTO{}, false
		}
		return dto, true
	}

	result := make([]TagDTO, 0, len(tags)+1)
	groupReactionsTag := TagDTO{ID: GroupReactionsTagID, Name: GroupReactionsTagName}

	for _, tag := range tags {
		tagDTO := TagDTO{ID: tag.ID, Name: tag.Name}
		for _, f := range tag.Furnitures {
			var solo, multi []CatalogReaction
			for _, reaction := range f.Reactions {
				if len(reaction.CharacterIDs) == 0 {
					logger.L.Warn("反应没有任何所需角色，已跳过",
						zap.String("reactionId", reaction.ID),
						zap.String("furnitureId", f.ID))
					continue
				}
				if len(filterSet) > 0 && !intersects(reaction.CharacterIDs, filterSet) {
					continue
				}
				if len(reaction.CharacterIDs) == 1 {
					solo = append(solo, reaction)
				} else {
					multi = append(multi, reaction)
				}
			}

			if entry, ok := buildEntry(f, solo); ok {
				tagDTO.Furnitures = append(tagDTO.Furnitures, entry)
			}
			if entry, ok := buildEntry(f, multi); ok {
				groupReactionsTag.Furnitures = append(groupReactionsTag.Furnitures, entry)
			}
		}
		if len(tagDTO.Furnitures) > 0 {
			result = append(result, tagDTO)
		}
	}

	if len(groupReactionsTag.Furnitures) > 0 {
		result = append(result, groupReactionsTag)
	}
	return result
}

// intersects 判断组合与过滤集合是否有交集。
func intersects(characterIDs []string, filterSet map[string]struct{}) bool {
	for _, id := range characterIDs {
		if _, ok := filterSet[id]; ok {
			return true
		}
	}
	return false
}

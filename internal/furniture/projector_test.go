package furniture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyResolver 构造一个没有任何勾选的求解器。
func emptyResolver() *StatusResolver {
	exclusions := BuildExclusionIndex(nil, map[string]struct{}{})
	return NewStatusResolver(nil, BuildPropagationIndex(nil, exclusions))
}

// directResolver 构造一个只有直接勾选、没有传播的求解器。
func directResolver(checkedIDs ...string) *StatusResolver {
	exclusions := BuildExclusionIndex(nil, map[string]struct{}{})
	return NewStatusResolver(checkedIDs, BuildPropagationIndex(nil, exclusions))
}

func testCatalog() []CatalogTag {
	return []CatalogTag{
		{
			ID:   "living",
			Name: "リビング",
			Furnitures: []CatalogFurniture{
				{
					ID:   "fa",
					Name: "ソファ",
					Reactions: []CatalogReaction{
						{ID: "r1", CharacterIDs: []string{"x"}},
						{ID: "r2", CharacterIDs: []string{"x", "y"}},
					},
				},
				{
					ID:   "fb",
					Name: "ラグ",
					Reactions: []CatalogReaction{
						{ID: "r3", CharacterIDs: []string{"y"}},
					},
				},
			},
		},
		{
			ID:   "kitchen",
			Name: "キッチン",
			Furnitures: []CatalogFurniture{
				{
					ID:   "fc",
					Name: "ダイニングテーブル",
					Reactions: []CatalogReaction{
						{ID: "r4", CharacterIDs: []string{"x", "y", "z"}},
					},
				},
			},
		},
	}
}

func noCharacters() map[string]ReactionCharacterDTO {
	return map[string]ReactionCharacterDTO{}
}

func collectReactionIDs(tags []TagDTO) map[string][]string {
	locations := make(map[string][]string)
	for _, tag := range tags {
		for _, f := range tag.Furnitures {
			for _, reaction := range f.Reactions {
				locations[reaction.ID] = append(locations[reaction.ID], tag.ID)
			}
		}
	}
	return locations
}

func TestProjectCatalogBucketingCompleteness(t *testing.T) {
	tags := ProjectCatalog(testCatalog(), ProjectOptions{}, emptyResolver(), noCharacters())

	// 每条反应恰好出现在一个分类中：单人反应留在原分类，多人反应进入合成分类
	locations := collectReactionIDs(tags)
	assert.Equal(t, []string{"living"}, locations["r1"])
	assert.Equal(t, []string{GroupReactionsTagID}, locations["r2"])
	assert.Equal(t, []string{"living"}, locations["r3"])
	assert.Equal(t, []string{GroupReactionsTagID}, locations["r4"])

	// kitchen分类在分桶后不再有家具，不应出现
	for _, tag := range tags {
		assert.NotEqual(t, "kitchen", tag.ID)
	}

	// 合成分类追加在最后，使用固定的ID和名称
	require.NotEmpty(t, tags)
	last := tags[len(tags)-1]
	assert.Equal(t, GroupReactionsTagID, last.ID)
	assert.Equal(t, GroupReactionsTagName, last.Name)

	// fa的反应横跨两种人数，它在原分类和合成分类中各出现一次，名称一致
	var inLiving, inSynthetic *FurnitureDTO
	for i := range tags {
		for j := range tags[i].Furnitures {
			f := &tags[i].Furnitures[j]
			if f.ID != "fa" {
				continue
			}
			if tags[i].ID == "living" {
				inLiving = f
			} else {
				inSynthetic = f
			}
		}
	}
	require.NotNil(t, inLiving)
	require.NotNil(t, inSynthetic)
	assert.Equal(t, inLiving.Name, inSynthetic.Name)
}

func TestProjectCatalogCharacterFilter(t *testing.T) {
	tags := ProjectCatalog(testCatalog(), ProjectOptions{
		FilterCharacterIDs: []string{"z"},
	}, emptyResolver(), noCharacters())

	// 只有r4的组合与{z}有交集
	locations := collectReactionIDs(tags)
	assert.Len(t, locations, 1)
	assert.Contains(t, locations, "r4")
}

func TestProjectCatalogEmptyFilterIsIdentity(t *testing.T) {
	unfiltered := ProjectCatalog(testCatalog(), ProjectOptions{}, emptyResolver(), noCharacters())
	filtered := ProjectCatalog(testCatalog(), ProjectOptions{FilterCharacterIDs: []string{}}, emptyResolver(), noCharacters())
	assert.Equal(t, unfiltered, filtered)
}

func TestProjectCatalogHideCompleted(t *testing.T) {
	// r1勾选后，fa在原分类的条目（只含r1）应被隐藏，fb保留
	resolver := directResolver("r1")
	withHide := ProjectCatalog(testCatalog(), ProjectOptions{HideCompleted: true}, resolver, noCharacters())
	withoutHide := ProjectCatalog(testCatalog(), ProjectOptions{}, resolver, noCharacters())

	locations := collectReactionIDs(withHide)
	assert.NotContains(t, locations, "r1")
	assert.Contains(t, locations, "r3")
	// fa的多人反应r2未勾选，它在合成分类的条目保留
	assert.Contains(t, locations, "r2")

	// 单调性：开启hideCompleted后任何分类的家具数都不会增加
	countByTag := func(tags []TagDTO) map[string]int {
		counts := make(map[string]int)
		for _, tag := range tags {
			counts[tag.ID] = len(tag.Furnitures)
		}
		return counts
	}
	before := countByTag(withoutHide)
	after := countByTag(withHide)
	for tagID, count := range after {
		assert.LessOrEqual(t, count, before[tagID])
	}
}

func TestProjectCatalogHideCompletedDropsEmptiedTag(t *testing.T) {
	// living分类的全部反应都已勾选时，该分类整体消失
	resolver := directResolver("r1", "r3")
	tags := ProjectCatalog(testCatalog(), ProjectOptions{HideCompleted: true}, resolver, noCharacters())
	for _, tag := range tags {
		assert.NotEqual(t, "living", tag.ID)
	}
}

func TestProjectCatalogOwnedOnly(t *testing.T) {
	tags := ProjectCatalog(testCatalog(), ProjectOptions{
		OwnedOnly:         true,
		OwnedFurnitureIDs: map[string]struct{}{"fa": {}},
	}, emptyResolver(), noCharacters())

	for _, tag := range tags {
		for _, f := range tag.Furnitures {
			assert.Equal(t, "fa", f.ID)
		}
	}
	// fa在两个分桶里都有反应，所以两个条目都保留
	locations := collectReactionIDs(tags)
	assert.Contains(t, locations, "r1")
	assert.Contains(t, locations, "r2")
	assert.NotContains(t, locations, "r3")
}

func TestProjectCatalogSkipsZeroCharacterReaction(t *testing.T) {
	catalog := []CatalogTag{
		{
			ID:   "living",
			Name: "リビング",
			Furnitures: []CatalogFurniture{
				{
					ID:   "fa",
					Name: "ソファ",
					Reactions: []CatalogReaction{
						{ID: "broken", CharacterIDs: nil},
						{ID: "ok", CharacterIDs: []string{"x"}},
					},
				},
			},
		},
	}
	tags := ProjectCatalog(catalog, ProjectOptions{}, emptyResolver(), noCharacters())

	locations := collectReactionIDs(tags)
	assert.NotContains(t, locations, "broken")
	assert.Contains(t, locations, "ok")
}

func TestProjectCatalogCharacterInfo(t *testing.T) {
	characters := map[string]ReactionCharacterDTO{
		"x": {ID: "x", Short: "一歌", Color: "#33AAEE"},
	}
	tags := ProjectCatalog(testCatalog(), ProjectOptions{FilterCharacterIDs: []string{"x"}}, emptyResolver(), characters)

	require.NotEmpty(t, tags)
	first := tags[0].Furnitures[0].Reactions[0]
	require.NotEmpty(t, first.Characters)
	assert.Equal(t, "一歌", first.Characters[0].Short)
	assert.Equal(t, "#33AAEE", first.Characters[0].Color)
}

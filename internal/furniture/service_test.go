package furniture

import (
	"testing"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/character"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/collection"
	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID = "018f4e2a-0000-7000-8000-000000000001"

// setupServiceTest 初始化内存数据库并写入一个最小但完整的目录：
// 组合leo_need下，家具组G内有F1、F2，各有一条需要{ichika,saki}的反应，
// F1另有一条单人反应；组外有家具F3。
func setupServiceTest(t *testing.T) {
	require.NoError(t, database.InitTestDB(), "无法初始化内存数据库")
	require.NoError(t, database.DB.AutoMigrate(
		&character.Unit{}, &character.Character{},
		&FurnitureTag{}, &FurnitureGroup{}, &Furniture{},
		&FurnitureReaction{}, &ReactionCharacter{}, &FurnitureGroupExcludedCharacter{},
		&collection.UserReactionCheck{}, &collection.UserFurniture{},
	))

	t.Cleanup(func() {
		session := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{
			&collection.UserReactionCheck{}, &collection.UserFurniture{},
			&FurnitureGroupExcludedCharacter{}, &ReactionCharacter{}, &FurnitureReaction{},
			&Furniture{}, &FurnitureGroup{}, &FurnitureTag{},
			&character.Character{}, &character.Unit{},
		} {
			require.NoError(t, session.Unscoped().Delete(model).Error)
		}
	})

	require.NoError(t, database.DB.Create(&character.Unit{Code: "leo_need", Name: "Leo/need", Color: "#4455DD"}).Error)
	require.NoError(t, database.DB.Create(&character.Character{CharacterID: "ichika", Name: "星乃一歌", Short: "一歌", Color: "#33AAEE", UnitCode: "leo_need"}).Error)
	require.NoError(t, database.DB.Create(&character.Character{CharacterID: "saki", Name: "天馬咲希", Short: "咲希", Color: "#FFDD44", UnitCode: "leo_need"}).Error)

	require.NoError(t, database.DB.Create(&FurnitureTag{TagID: "living", Name: "リビング"}).Error)
	require.NoError(t, database.DB.Create(&FurnitureGroup{GroupID: "G", Name: "ソファ"}).Error)

	require.NoError(t, database.DB.Create(&Furniture{FurnitureID: "f1", Name: "ソファ（赤）", TagID: "living", GroupID: "G"}).Error)
	require.NoError(t, database.DB.Create(&Furniture{FurnitureID: "f2", Name: "ソファ（青）", TagID: "living", GroupID: "G"}).Error)
	require.NoError(t, database.DB.Create(&Furniture{FurnitureID: "f3", Name: "ベッド", TagID: "living", GroupID: ""}).Error)

	require.NoError(t, database.DB.Create(&FurnitureReaction{ReactionID: "f1_pair", FurnitureID: "f1"}).Error)
	require.NoError(t, database.DB.Create(&ReactionCharacter{ReactionID: "f1_pair", CharacterID: "ichika"}).Error)
	require.NoError(t, database.DB.Create(&ReactionCharacter{ReactionID: "f1_pair", CharacterID: "saki"}).Error)

	require.NoError(t, database.DB.Create(&FurnitureReaction{ReactionID: "f1_solo", FurnitureID: "f1"}).Error)
	require.NoError(t, database.DB.Create(&ReactionCharacter{ReactionID: "f1_solo", CharacterID: "ichika"}).Error)

	require.NoError(t, database.DB.Create(&FurnitureReaction{ReactionID: "f2_pair", FurnitureID: "f2"}).Error)
	require.NoError(t, database.DB.Create(&ReactionCharacter{ReactionID: "f2_pair", CharacterID: "saki"}).Error)
	require.NoError(t, database.DB.Create(&ReactionCharacter{ReactionID: "f2_pair", CharacterID: "ichika"}).Error)

	require.NoError(t, database.DB.Create(&FurnitureReaction{ReactionID: "f3_solo", FurnitureID: "f3"}).Error)
	require.NoError(t, database.DB.Create(&ReactionCharacter{ReactionID: "f3_solo", CharacterID: "saki"}).Error)
}

// findReaction 在响应树中查找一条反应。
func findReaction(tree *CatalogTreeDTO, reactionID string) *ReactionDTO {
	for _, tag := range tree.Tags {
		for _, f := range tag.Furnitures {
			for i := range f.Reactions {
				if f.Reactions[i].ID == reactionID {
					return &f.Reactions[i]
				}
			}
		}
	}
	return nil
}

func TestBuildCatalogTreeUnitNotFound(t *testing.T) {
	setupServiceTest(t)

	_, err := BuildCatalogTree(ListQuery{UnitCode: "ghost"})
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestBuildCatalogTreeAnonymous(t *testing.T) {
	setupServiceTest(t)

	tree, err := BuildCatalogTree(ListQuery{UnitCode: "leo_need"})
	require.NoError(t, err)
	assert.Equal(t, "leo_need", tree.UnitCode)
	assert.Equal(t, "Leo/need", tree.UnitName)

	// 匿名访问下所有反应都未勾选
	for _, reactionID := range []string{"f1_pair", "f1_solo", "f2_pair", "f3_solo"} {
		reaction := findReaction(tree, reactionID)
		require.NotNil(t, reaction, "反应 %s 应该出现在响应树中", reactionID)
		assert.False(t, reaction.Checked)
		assert.False(t, reaction.CheckedByGroup)
	}
}

func TestBuildCatalogTreePropagatesWithinGroup(t *testing.T) {
	setupServiceTest(t)
	require.NoError(t, collection.CheckReaction(testUserID, "f1_pair"))

	tree, err := BuildCatalogTree(ListQuery{UnitCode: "leo_need", UserID: testUserID})
	require.NoError(t, err)

	// 直接勾选的反应：checked=true, checkedByGroup=false
	f1 := findReaction(tree, "f1_pair")
	require.NotNil(t, f1)
	assert.True(t, f1.Checked)
	assert.False(t, f1.CheckedByGroup)

	// 同组同组合的反应被共享为勾选
	f2 := findReaction(tree, "f2_pair")
	require.NotNil(t, f2)
	assert.True(t, f2.Checked)
	assert.True(t, f2.CheckedByGroup)

	// 组合不同的反应不受影响
	solo := findReaction(tree, "f1_solo")
	require.NotNil(t, solo)
	assert.False(t, solo.Checked)
}

func TestBuildCatalogTreeExclusionBlocksSharing(t *testing.T) {
	setupServiceTest(t)
	// {ichika,saki}在组G被登记为排除组合
	require.NoError(t, database.DB.Create(&FurnitureGroupExcludedCharacter{CombinationID: "ex1", GroupID: "G", CharacterID: "ichika"}).Error)
	require.NoError(t, database.DB.Create(&FurnitureGroupExcludedCharacter{CombinationID: "ex1", GroupID: "G", CharacterID: "saki"}).Error)
	require.NoError(t, collection.CheckReaction(testUserID, "f1_pair"))

	tree, err := BuildCatalogTree(ListQuery{UnitCode: "leo_need", UserID: testUserID})
	require.NoError(t, err)

	// 直接勾选仍然有效
	f1 := findReaction(tree, "f1_pair")
	require.NotNil(t, f1)
	assert.True(t, f1.Checked)

	// 共享被排除组合阻断
	f2 := findReaction(tree, "f2_pair")
	require.NotNil(t, f2)
	assert.False(t, f2.Checked)
	assert.False(t, f2.CheckedByGroup)
}

func TestBuildCatalogTreeMultiPersonReactionsInSyntheticTag(t *testing.T) {
	setupServiceTest(t)

	tree, err := BuildCatalogTree(ListQuery{UnitCode: "leo_need"})
	require.NoError(t, err)

	var syntheticTag *TagDTO
	for i := range tree.Tags {
		if tree.Tags[i].ID == GroupReactionsTagID {
			syntheticTag = &tree.Tags[i]
		}
	}
	require.NotNil(t, syntheticTag, "应该存在合成分类")
	assert.Equal(t, GroupReactionsTagName, syntheticTag.Name)
	// 合成分类追加在最后
	assert.Equal(t, GroupReactionsTagID, tree.Tags[len(tree.Tags)-1].ID)

	// 双人反应只出现在合成分类中
	for _, tag := range tree.Tags {
		for _, f := range tag.Furnitures {
			for _, reaction := range f.Reactions {
				if reaction.ID == "f1_pair" || reaction.ID == "f2_pair" {
					assert.Equal(t, GroupReactionsTagID, tag.ID)
				}
			}
		}
	}
}

func TestBuildCatalogTreeNameQuery(t *testing.T) {
	setupServiceTest(t)
	require.NoError(t, collection.CheckReaction(testUserID, "f1_pair"))

	// 名称过滤掉F1，但F1上的勾选仍应通过家具组传播到F2
	tree, err := BuildCatalogTree(ListQuery{UnitCode: "leo_need", UserID: testUserID, NameQuery: "青"})
	require.NoError(t, err)

	assert.Nil(t, findReaction(tree, "f1_pair"))
	f2 := findReaction(tree, "f2_pair")
	require.NotNil(t, f2)
	assert.True(t, f2.Checked)
	assert.True(t, f2.CheckedByGroup)
}

func TestBuildCatalogTreeOwnedOnly(t *testing.T) {
	setupServiceTest(t)
	require.NoError(t, collection.OwnFurniture(testUserID, "f3"))

	tree, err := BuildCatalogTree(ListQuery{UnitCode: "leo_need", UserID: testUserID, OwnedOnly: true})
	require.NoError(t, err)

	assert.NotNil(t, findReaction(tree, "f3_solo"))
	assert.Nil(t, findReaction(tree, "f1_solo"))
	assert.Nil(t, findReaction(tree, "f1_pair"))
}

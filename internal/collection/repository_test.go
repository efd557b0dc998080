package collection

import (
	"testing"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	userA = "018f4e2a-0000-7000-8000-00000000000a"
	userB = "018f4e2a-0000-7000-8000-00000000000b"
)

func setupCollectionTest(t *testing.T) {
	require.NoError(t, database.InitTestDB(), "无法初始化内存数据库")
	require.NoError(t, PrimeDB())

	t.Cleanup(func() {
		session := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true})
		require.NoError(t, session.Unscoped().Delete(&UserReactionCheck{}).Error)
		require.NoError(t, session.Unscoped().Delete(&UserFurniture{}).Error)
	})
}

func TestCheckReactionIdempotent(t *testing.T) {
	setupCollectionTest(t)

	require.NoError(t, CheckReaction(userA, "r1"))
	// 重复勾选不报错，集合不变
	require.NoError(t, CheckReaction(userA, "r1"))

	ids, err := GetCheckedReactionIDs(userA)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids)
}

func TestUncheckReactionIdempotent(t *testing.T) {
	setupCollectionTest(t)

	require.NoError(t, CheckReaction(userA, "r1"))
	require.NoError(t, UncheckReaction(userA, "r1"))
	// 取消一条本就未勾选的反应不报错
	require.NoError(t, UncheckReaction(userA, "r1"))
	require.NoError(t, UncheckReaction(userA, "r2"))

	ids, err := GetCheckedReactionIDs(userA)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUncheckThenRecheck(t *testing.T) {
	setupCollectionTest(t)

	require.NoError(t, CheckReaction(userA, "r1"))
	require.NoError(t, UncheckReaction(userA, "r1"))
	require.NoError(t, CheckReaction(userA, "r1"))

	ids, err := GetCheckedReactionIDs(userA)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids)
}

func TestCheckedReactionsIsolatedPerUser(t *testing.T) {
	setupCollectionTest(t)

	require.NoError(t, CheckReaction(userA, "r1"))
	require.NoError(t, CheckReaction(userB, "r2"))

	idsA, err := GetCheckedReactionIDs(userA)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, idsA)

	idsB, err := GetCheckedReactionIDs(userB)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, idsB)
}

func TestOwnFurnitureIdempotent(t *testing.T) {
	setupCollectionTest(t)

	require.NoError(t, OwnFurniture(userA, "f1"))
	require.NoError(t, OwnFurniture(userA, "f1"))

	ids, err := GetOwnedFurnitureIDs(userA)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, ids)

	require.NoError(t, UnownFurniture(userA, "f1"))
	require.NoError(t, UnownFurniture(userA, "f1"))

	ids, err = GetOwnedFurnitureIDs(userA)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

package collection

import (
	"fmt"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
)

// PrimeDB 负责迁移collection模块的数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&UserReactionCheck{}, &UserFurniture{}); err != nil {
		return fmt.Errorf("无法迁移collection表: %w", err)
	}
	return nil
}

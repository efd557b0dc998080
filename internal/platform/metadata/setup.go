package metadata

import (
	"fmt"

	"github.com/pjsekai-tools/mysekai-furniture-backend/internal/platform/database"
)

// PrimeDB 负责迁移metadata模块的数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}
	return nil
}

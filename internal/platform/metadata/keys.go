package metadata

// metadata表中使用的键。
const (
	// SeedDatasetVersionKey 记录当前已导入的种子数据集版本。
	// 启动时与assets/data中的版本比对，用于提示数据集落后。
	SeedDatasetVersionKey = "seed_dataset_version"

	// LastBackupAtKey 记录上次SQLite备份完成的时间(RFC3339)。
	LastBackupAtKey = "last_backup_at"
)

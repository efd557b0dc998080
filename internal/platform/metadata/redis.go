package metadata

const (
	// LastCacheRebuildKey 是一个Redis String键，
	// 存储上次缓存热重建完成的时间(RFC3339)。
	// 由startup模块在重建后写入，用于排查Redis重启后的恢复情况。
	LastCacheRebuildKey = "meta:last_cache_rebuild"
)

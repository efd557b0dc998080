package event

import "fmt"

// BorderKey 返回某个活动的当前榜线Sorted Set的Redis键。
// Member: 名次线标签 (例如 "T100")
// Score: 该名次线的活动点数
func BorderKey(eventID string) string {
	return fmt.Sprintf("event:border:%s", eventID)
}

package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给单个后台服务的生命周期控制器。
type Handle struct {
	ctx context.Context

	// Close 通知Manager其所属的服务已经完成关闭。
	// 服务Goroutine退出前应通过defer调用它。
	Close func()
}

// Ctx 返回句柄内部的Context，用于传递给需要取消语义的下游调用。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，管理器发出停机信号时该channel会关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()的channel关闭后返回取消原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 暂停指定时长，停机信号会让它提前返回错误。
// 后台循环应使用它代替time.Sleep，保证停机时能立刻唤醒退出。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}

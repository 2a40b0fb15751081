package event

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/logger"
	"github.com/shariqazeem/umanity-social/internal/model"
)

// Subscriber 事件订阅回调。在协程池内执行，必须自行处理错误。
type Subscriber func(event model.Event)

// Dispatcher 事件分发器：轮询已提交、未处理的事件，按提交顺序
// 标记处理并通过协程池推送给订阅者。投递在事务之外，至少一次。
type Dispatcher struct {
	db       *gorm.DB
	pool     *ants.Pool
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewDispatcher 创建事件分发器
func NewDispatcher(db *gorm.DB, workers int, interval time.Duration) (*Dispatcher, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		db:       db,
		pool:     pool,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Subscribe 注册订阅者
func (d *Dispatcher) Subscribe(fn Subscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, fn)
}

// Start 启动分发循环
func (d *Dispatcher) Start() {
	logger.Info("Event dispatcher started")
	go d.loop()
}

// Stop 停止分发并释放协程池
func (d *Dispatcher) Stop() {
	d.cancel()
	d.pool.Release()
	logger.Info("Event dispatcher stopped")
}

// loop 分发循环
func (d *Dispatcher) loop() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			if err := d.dispatchPending(); err != nil {
				logger.Error("Failed to dispatch pending events: %v", err)
			}
		}
	}
}

// dispatchPending 取出未处理事件，按落库顺序分发
func (d *Dispatcher) dispatchPending() error {
	var events []model.Event
	if err := d.db.Where("processed = ?", false).
		Order("id ASC").
		Limit(100).
		Find(&events).Error; err != nil {
		return err
	}

	for _, ev := range events {
		if err := d.db.Model(&model.Event{}).
			Where("id = ?", ev.ID).
			Update("processed", true).Error; err != nil {
			return err
		}

		d.mu.RLock()
		subscribers := make([]Subscriber, len(d.subscribers))
		copy(subscribers, d.subscribers)
		d.mu.RUnlock()

		for _, fn := range subscribers {
			fn := fn
			ev := ev
			if err := d.pool.Submit(func() { fn(ev) }); err != nil {
				logger.Error("Failed to submit event %s to worker pool: %v", ev.EventID, err)
			}
		}
	}
	return nil
}

package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"fridge-chef/internal/core/ai/provider"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// job 佇列中的一次請求
type job struct {
	ctx    context.Context
	req    *provider.Request
	result chan result
}

type result struct {
	resp *provider.Response
	err  error
}

// Status 佇列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Provider 以固定數量的 worker 呼叫上游提供者；佇列滿時立即返回 ErrQueueFull
type Provider struct {
	next      provider.Provider
	queue     chan *job
	done      chan struct{}
	workers   int
	maxSize   int
	processed int64
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ provider.Provider = (*Provider)(nil)

var errClosed = errors.New("AI request queue is closed")

// New 創建佇列並啟動 worker；workers <= 0 時使用 1，maxSize <= 0 時等於 workers
func New(next provider.Provider, workers, maxSize int) *Provider {
	if workers <= 0 {
		workers = 1
	}
	if maxSize <= 0 {
		maxSize = workers
	}
	p := &Provider{
		next:    next,
		queue:   make(chan *job, maxSize),
		done:    make(chan struct{}),
		workers: workers,
		maxSize: maxSize,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	return p
}

func (p *Provider) work() {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.queue:
			p.handle(j)
		case <-p.done:
			return
		}
	}
}

func (p *Provider) handle(j *job) {
	// 等待期間呼叫端已放棄
	if err := j.ctx.Err(); err != nil {
		j.result <- result{err: err}
		return
	}
	resp, err := p.next.Generate(j.ctx, j.req)
	atomic.AddInt64(&p.processed, 1)
	j.result <- result{resp: resp, err: err}
}

// Generate 將請求排入佇列並等待結果
func (p *Provider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	select {
	case <-p.done:
		return nil, common.ErrAIServiceError.WithErr(errClosed)
	default:
	}

	j := &job{ctx: ctx, req: req, result: make(chan result, 1)}
	select {
	case p.queue <- j:
	default:
		common.LogWarn("AI 請求佇列已滿", zap.Int("max_queue_size", p.maxSize))
		return nil, common.ErrQueueFull
	}

	select {
	case r := <-j.result:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return nil, common.ErrAIServiceError.WithErr(errClosed)
	}
}

// Status 獲取佇列狀態
func (p *Provider) Status() Status {
	return Status{
		QueueLength:    len(p.queue),
		ProcessedCount: atomic.LoadInt64(&p.processed),
		MaxQueueSize:   p.maxSize,
		Workers:        p.workers,
	}
}

// GetModel 獲取首選模型名稱
func (p *Provider) GetModel() string { return p.next.GetModel() }

// GetTimeout 獲取請求超時時間
func (p *Provider) GetTimeout() time.Duration { return p.next.GetTimeout() }

// Close 停止 worker 並關閉上游提供者；可重複呼叫
func (p *Provider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
		err = p.next.Close()
	})
	return err
}

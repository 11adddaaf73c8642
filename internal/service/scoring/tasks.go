package scoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Task 백그라운드 작업 핸들. Done() 이 닫히면 Err() 가 확정된다
type Task struct {
	Key       string
	StartedAt time.Time

	done       chan struct{}
	err        error
	finishedAt time.Time
}

// Done 완료 신호
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err 완료 후 결과. 완료 전에는 nil
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait 완료 또는 ctx 종료까지 대기. ctx 가 끝나도 작업 자체는 계속 실행된다
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FinishedAt 완료 시각
func (t *Task) FinishedAt() time.Time {
	<-t.done
	return t.finishedAt
}

// TaskRunner 요청 경로와 분리된 fire-and-forget 실행기.
// 작업은 분리된 컨텍스트에서 끝까지 실행되며 취소 경로가 없다.
type TaskRunner struct {
	mu      sync.Mutex
	running map[string]*Task
	wg      sync.WaitGroup
}

// NewTaskRunner 생성
func NewTaskRunner() *TaskRunner {
	return &TaskRunner{
		running: make(map[string]*Task),
	}
}

// Submit key 로 작업 시작. 같은 key 가 실행 중이면 기존 작업을 돌려준다
func (r *TaskRunner) Submit(key string, fn func(ctx context.Context) error) *Task {
	r.mu.Lock()
	if existing, ok := r.running[key]; ok {
		r.mu.Unlock()
		return existing
	}

	task := &Task{
		Key:       key,
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
	r.running[key] = task
	r.wg.Add(1)
	r.mu.Unlock()

	go r.run(task, fn)

	return task
}

func (r *TaskRunner) run(task *Task, fn func(ctx context.Context) error) {
	defer r.wg.Done()
	defer func() {
		if p := recover(); p != nil {
			task.err = fmt.Errorf("task %s panicked: %v", task.Key, p)
		}

		if task.err != nil {
			log.Error().Err(task.err).Str("task", task.Key).Msg("Background task failed")
		}

		task.finishedAt = time.Now()

		r.mu.Lock()
		delete(r.running, task.Key)
		r.mu.Unlock()

		close(task.done)
	}()

	task.err = fn(context.Background())
}

// Running key 작업이 실행 중인지
func (r *TaskRunner) Running(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.running[key]
	return ok
}

// Get 실행 중인 작업
func (r *TaskRunner) Get(key string) (*Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.running[key]
	return task, ok
}

// Wait 모든 작업 완료 대기 (종료 시)
func (r *TaskRunner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for background tasks: %w", ctx.Err())
	}
}

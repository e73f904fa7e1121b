package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/mq/queue"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/mq/worker"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type mockQueue struct {
	jobs chan queue.Job
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan queue.Job, 64)}
}

func (mq *mockQueue) Dequeue(context.Context) <-chan queue.Job { return mq.jobs }

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.jobs) })
	return nil
}

type recorder struct {
	mu      sync.Mutex
	leagues []string
	fail    map[string]error
	panics  map[string]bool
}

func newRecorder() *recorder {
	return &recorder{fail: map[string]error{}, panics: map[string]bool{}}
}

func (r *recorder) Process(_ context.Context, job worker.Job) error {
	if r.panics[job.LeagueID] {
		panic("boom")
	}
	if err := r.fail[job.LeagueID]; err != nil {
		return err
	}
	r.mu.Lock()
	r.leagues = append(r.leagues, job.LeagueID)
	r.mu.Unlock()
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.leagues...)
}

func job(league string) queue.Job {
	return queue.Job{JobID: "job-" + league, LeagueID: league, Reason: "manual", RequestedAt: time.Now()}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker over a mock queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := newMockQueue()
		rec := newRecorder()
		w := worker.NewInMemoryWorker(q, rec, worker.WithName("test-worker"))
		go w.Run(ctx)

		convey.Convey("It processes jobs in order", func() {
			q.jobs <- job("a")
			q.jobs <- job("b")
			convey.So(waitFor(func() bool { return w.Processed() == 2 }), convey.ShouldBeTrue)
			convey.So(rec.seen(), convey.ShouldResemble, []string{"a", "b"})
			convey.So(w.Failed(), convey.ShouldEqual, 0)
		})

		convey.Convey("A failing job is counted and the loop continues", func() {
			rec.fail["bad"] = errors.New("dataset missing")
			q.jobs <- job("bad")
			q.jobs <- job("good")
			convey.So(waitFor(func() bool { return w.Processed() == 1 && w.Failed() == 1 }), convey.ShouldBeTrue)
			convey.So(rec.seen(), convey.ShouldResemble, []string{"good"})
		})

		convey.Convey("A panicking processor does not kill the worker", func() {
			rec.panics["explode"] = true
			q.jobs <- job("explode")
			q.jobs <- job("after")
			convey.So(waitFor(func() bool { return w.Failed() == 1 && w.Processed() == 1 }), convey.ShouldBeTrue)
		})

		convey.Convey("Shutdown returns once the loop exits", func() {
			sctx, scancel := context.WithTimeout(context.Background(), time.Second)
			defer scancel()
			convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
		})
	})

	convey.Convey("A closed queue stops the worker", t, func() {
		q := newMockQueue()
		w := worker.NewInMemoryWorker(q, newRecorder())
		done := make(chan struct{})
		go func() {
			w.Run(context.Background())
			close(done)
		}()
		_ = q.Close()

		select {
		case <-done:
			convey.So(true, convey.ShouldBeTrue)
		case <-time.After(time.Second):
			convey.So("worker still running", convey.ShouldBeEmpty)
		}
	})
}

func TestProcessorFunc(t *testing.T) {
	convey.Convey("ProcessorFunc calls the wrapped function", t, func() {
		var got string
		p := worker.ProcessorFunc(func(_ context.Context, j worker.Job) error {
			got = j.LeagueID
			return nil
		})
		convey.So(p.Process(context.Background(), job("x")), convey.ShouldBeNil)
		convey.So(got, convey.ShouldEqual, "x")
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a pool of four workers on a real queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		rec := newRecorder()
		pool := worker.NewPool(4, q, rec)
		pool.Start(ctx)

		convey.So(pool.Size(), convey.ShouldEqual, 4)

		convey.Convey("Every job is processed exactly once", func() {
			for i := 0; i < 40; i++ {
				convey.So(q.Enqueue(ctx, job(fmt.Sprintf("league-%02d", i))), convey.ShouldBeNil)
			}
			convey.So(waitFor(func() bool { return pool.Processed() == 40 }), convey.ShouldBeTrue)

			seen := map[string]int{}
			for _, l := range rec.seen() {
				seen[l]++
			}
			convey.So(len(seen), convey.ShouldEqual, 40)
			for _, n := range seen {
				convey.So(n, convey.ShouldEqual, 1)
			}
		})

		convey.Convey("Shutdown closes the queue and is idempotent with Stop", func() {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			convey.So(pool.Shutdown(sctx), convey.ShouldBeNil)
			convey.So(q.IsClosed(), convey.ShouldBeTrue)
			pool.Stop()
			convey.So(pool.Failed(), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("A non-positive worker count uses the CPU count", t, func() {
		pool := worker.NewPool(0, newMockQueue(), newRecorder())
		convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
	})
}

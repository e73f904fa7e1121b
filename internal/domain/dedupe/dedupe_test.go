package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	dedupe "github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

// stepClock advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithClock(stepClock()))

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
			So(d.Keys(), ShouldBeEmpty)
		})

		Convey("When a league is requested for the first time", func() {
			seen := d.SeenAndRecord(ctx, "bbl-2025")

			Convey("Then it is marked pending", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
				_, ok := d.Since("bbl-2025")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the same league is requested again while pending", func() {
			d.SeenAndRecord(ctx, "bbl-2025")
			seen := d.SeenAndRecord(ctx, "bbl-2025")

			Convey("Then the request coalesces", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the pending mark is cleared", func() {
			d.SeenAndRecord(ctx, "bbl-2025")
			d.Unrecord(ctx, "bbl-2025")
			d.Unrecord(ctx, "unknown")

			Convey("Then the next request schedules again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "bbl-2025"), ShouldBeFalse)
			})
		})

		Convey("When several leagues are pending", func() {
			d.SeenAndRecord(ctx, "c")
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")

			Convey("Then keys come oldest first", func() {
				So(d.Keys(), ShouldResemble, []string{"c", "a", "b"})
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2), dedupe.WithClock(stepClock()))
		d.SeenAndRecord(ctx, "first")
		d.SeenAndRecord(ctx, "second")

		Convey("When a third key arrives", func() {
			d.SeenAndRecord(ctx, "third")

			Convey("Then the oldest mark is evicted", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.Keys(), ShouldResemble, []string{"second", "third"})
				So(d.SeenAndRecord(ctx, "first"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(-1))
		for i := 0; i < 1000; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("league-%d", i))
		}
		So(d.Size(), ShouldEqual, 1000)
	})
}

func TestDeduperConcurrency(t *testing.T) {
	Convey("Given many goroutines requesting the same leagues", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0

		for g := 0; g < 20; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 10; i++ {
					if !d.SeenAndRecord(context.Background(), fmt.Sprintf("league-%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each league is scheduled exactly once", func() {
			So(fresh, ShouldEqual, 10)
			So(d.Size(), ShouldEqual, 10)
		})
	})
}

package loop

import (
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoopSubmitAndDrain(t *testing.T) {
	Convey("test loop runs every submitted task", t, func() {
		l := New()
		var executed int32
		for i := 0; i < 100; i++ {
			l.Submit(func() {
				atomic.AddInt32(&executed, 1)
			})
		}
		l.Stop()
		l.Drain()
		So(atomic.LoadInt32(&executed), ShouldEqual, 100)
	})
}

func TestLoopSubmitAfterStop(t *testing.T) {
	Convey("test loop drops tasks after stop", t, func() {
		l := New()
		l.Stop()
		var executed int32
		l.Submit(func() {
			atomic.AddInt32(&executed, 1)
		})
		l.Drain()
		So(atomic.LoadInt32(&executed), ShouldEqual, 0)
	})
}

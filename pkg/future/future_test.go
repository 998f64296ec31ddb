package future

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vessel-io/agent/pkg/loop"
)

func TestFutureBodyRunsOnce(t *testing.T) {
	Convey("test future body runs exactly once with many waiters", t, func() {
		lp := loop.New()
		defer lp.Stop()
		var runs int32
		f := New(lp, func(f *Future) {
			atomic.AddInt32(&runs, 1)
			time.Sleep(50 * time.Millisecond)
			f.Deliver("payload")
		})
		waiters := 10
		results := make([]interface{}, waiters)
		errs := make([]error, waiters)
		var wg sync.WaitGroup
		for n := 0; n < waiters; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				results[n], errs[n] = f.Resolve()
			}(n)
		}
		wg.Wait()
		So(atomic.LoadInt32(&runs), ShouldEqual, 1)
		for n := 0; n < waiters; n++ {
			So(errs[n], ShouldBeNil)
			So(results[n], ShouldEqual, "payload")
		}
	})
}

func TestFutureFirstDecisionWins(t *testing.T) {
	testcases := []struct {
		caseName    string
		decide      func(f *Future)
		expectValue interface{}
		expectErr   error
	}{
		{
			caseName: "test deliver then fail keeps the value",
			decide: func(f *Future) {
				f.Deliver("first")
				f.Fail(errors.New("too late"))
			},
			expectValue: "first",
			expectErr:   nil,
		},
		{
			caseName: "test fail then deliver keeps the error",
			decide: func(f *Future) {
				f.Fail(errors.New("broken"))
				f.Deliver("too late")
			},
			expectValue: nil,
			expectErr:   errors.New("broken"),
		},
		{
			caseName: "test deliver twice keeps the first value",
			decide: func(f *Future) {
				f.Deliver("first")
				f.Deliver("second")
			},
			expectValue: "first",
			expectErr:   nil,
		},
	}
	for _, testcase := range testcases {
		t.Log(testcase.caseName)
		Convey(testcase.caseName, t, func() {
			lp := loop.New()
			defer lp.Stop()
			f := New(lp, nil)
			testcase.decide(f)
			value, err := f.Resolve()
			So(value, ShouldEqual, testcase.expectValue)
			if testcase.expectErr == nil {
				So(err, ShouldBeNil)
			} else {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, testcase.expectErr.Error())
			}
		})
	}
}

func TestFutureBodyPanicBecomesFailure(t *testing.T) {
	Convey("test future captures a body panic as a failure", t, func() {
		lp := loop.New()
		defer lp.Stop()
		f := New(lp, func(f *Future) {
			panic("boom")
		})
		value, err := f.Resolve()
		So(value, ShouldBeNil)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "boom")
	})
}

func TestFutureDecisionNeverResumesInline(t *testing.T) {
	Convey("test deliver returns before any waiter resumes", t, func() {
		lp := loop.New()
		defer lp.Stop()
		f := New(lp, nil)
		var resumed int32
		go func() {
			f.Resolve()
			atomic.AddInt32(&resumed, 1)
		}()
		time.Sleep(50 * time.Millisecond)
		// still parked, nothing decided yet
		So(atomic.LoadInt32(&resumed), ShouldEqual, 0)
		f.Deliver(nil)
		time.Sleep(100 * time.Millisecond)
		So(atomic.LoadInt32(&resumed), ShouldEqual, 1)
	})
}

func TestFutureResolveWithin(t *testing.T) {
	Convey("test resolve with a deadline", t, func() {
		lp := loop.New()
		defer lp.Stop()
		f := New(lp, nil)
		value, err := f.ResolveWithin(50 * time.Millisecond)
		So(value, ShouldBeNil)
		So(err, ShouldEqual, ErrResolveTimeout)
		// a late decision still serves the other waiters
		f.Deliver("late but fine")
		value, err = f.Resolve()
		So(err, ShouldBeNil)
		So(value, ShouldEqual, "late but fine")
	})
}

package instance

import (
	"github.com/vessel-io/agent/pkg/future"
	"github.com/vessel-io/agent/pkg/prom"
	"github.com/vessel-io/agent/pkg/sequencer"
)

// Start runs the startup workflow for this instance and reports the
// outcome through done, it never returns an error to its caller.
//
// The workflow is a small future graph drained by the instance's
// sequencer, so two Start calls against the same instance can never
// interleave: the second one waits until the first continuation has
// returned, then fails its state check.
//
// Nothing in here retries, a download failure surfaces through done as
// the exact error the registry called back with.
func (i *Instance) Start(done sequencer.Continuation) {
	// legality check only, the actual transition happens at the end of
	// the workflow when the download may have taken a while
	stateCheck := future.New(i.lp, func(f *future.Future) {
		if s := i.State(); s != StateBorn {
			f.Fail(&TransitionError{From: s, To: "start"})
			return
		}
		f.Deliver(nil)
	})

	// decided by the registry callback, started only when the
	// availability future resolves it
	download := future.New(i.lp, func(f *future.Future) {
		i.Droplet().Download(i.DropletURI(), func(err error) {
			if err != nil {
				f.Fail(err)
				return
			}
			f.Deliver(nil)
		})
	})

	availability := future.New(i.lp, func(f *future.Future) {
		if i.Droplet().Exists() {
			i.log.Debugw("droplet already present, download skipped", "droplet_sha1", i.DropletSHA1())
			f.Deliver(nil)
			return
		}
		if _, err := download.Resolve(); err != nil {
			f.Fail(err)
			return
		}
		f.Deliver(nil)
	})

	top := future.New(i.lp, func(f *future.Future) {
		if _, err := stateCheck.Resolve(); err != nil {
			f.Fail(err)
			return
		}
		if _, err := availability.Resolve(); err != nil {
			f.Fail(err)
			return
		}
		if err := i.advance(StateStarting, "start"); err != nil {
			f.Fail(err)
			return
		}
		f.Deliver(nil)
	})

	i.serial.Enqueue(top, func(err error) {
		if err != nil {
			i.log.Warnw("instance start error", "err", err)
			prom.InstanceStarts.WithLabelValues("error").Inc()
		} else {
			i.log.Infow("instance start done")
			prom.InstanceStarts.WithLabelValues("ok").Inc()
		}
		done(err)
	})
}

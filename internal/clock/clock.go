// Package clock implements the system clock skew check: before handing off to
// a command, the dispatcher occasionally compares the local clock against a
// network time source and warns when the two disagree by a minute or more.
//
// Toolbelt commands sign requests and compare timestamps against shared
// infrastructure, so a badly skewed workstation clock produces confusing
// failures far from their cause. The check is rate-limited through a marker
// file in shared temporary storage; a failed time query leaves the marker
// untouched so the check retries on the very next invocation, and a detected
// skew deletes the marker so the warning cannot be suppressed by the
// freshness window.
package clock

import (
	"time"

	"github.com/nd-dev/toolbelt/internal/config"
	"github.com/nd-dev/toolbelt/internal/logging"
	"github.com/nd-dev/toolbelt/internal/marker"
	"github.com/nd-dev/toolbelt/internal/timesource"
)

// Checker compares the local clock against a network time source.
type Checker struct {
	Store   marker.Store      // last-checked record
	Source  timesource.Source // network time authority
	MaxSkew time.Duration     // tolerated absolute offset
	Now     func() time.Time
	Host    string // named in the resync hint
}

// New returns a checker over the given store and source using the default
// skew tolerance.
func New(store marker.Store, source timesource.Source, host string) *Checker {
	return &Checker{
		Store:   store,
		Source:  source,
		MaxSkew: config.MaxClockSkew,
		Now:     time.Now,
		Host:    host,
	}
}

// MaybeCheck runs the clock check if the last one is older than freq. A freq
// of zero means check on every invocation. All failures are logged notices;
// the dispatcher proceeds regardless.
func (c *Checker) MaybeCheck(freq time.Duration) {
	recorded, ok, err := c.Store.Get()
	if err != nil {
		logging.Error("Cannot read clock check marker: %v", err)
		return
	}
	if ok && freq > 0 && c.Now().Sub(recorded) < freq {
		return
	}

	logging.Info("Checking that the current machine time is accurate...")

	local := c.Now()
	network, err := c.Source.Now()
	if err != nil {
		// Leave the marker alone so the check retries next invocation
		// instead of waiting out a full window.
		logging.Error("Error checking network time: %v", err)
		return
	}

	skew := network.Sub(local)
	if skew >= c.MaxSkew || -skew >= c.MaxSkew {
		logging.Warn("The system clock is off by %d seconds."+
			" Please run \"sudo ntpdate -u %s\".", int(skew.Seconds()), c.Host)
		// A skewed clock must be re-checked on the next run no matter how
		// recent this check was.
		if err := c.Store.Invalidate(); err != nil {
			logging.Error("Cannot reset clock check marker: %v", err)
		}
		return
	}

	if err := c.Store.Touch(); err != nil {
		logging.Error("Cannot record clock check: %v", err)
	}
}

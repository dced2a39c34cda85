package pipeline

import (
	"context"
	"errors"
	"time"

	"wp-starter/internal/logger"
)

// LogObserver prints one status line per step event. A failure that ends the run gets
// no line of its own: Run returns it as a *StepError and the caller reports it.
type LogObserver struct {
	Log *logger.Logger
}

func (o LogObserver) StepStarted(index int, name string) {
	o.Log.Run("%s", name)
}

func (o LogObserver) StepFinished(res Result) {
	switch {
	case res.Err == nil:
		o.Log.OK("%s (%s)", res.Name, res.Elapsed.Round(time.Millisecond))
	case res.Policy == Continue && !errors.Is(res.Err, context.Canceled):
		o.Log.Skip("%s failed, continuing: %v", res.Name, res.Err)
	}
}

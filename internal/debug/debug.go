package debug

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Timing logs the duration of an operation at debug level. Call the
// returned function when the operation completes.
func Timing(log *logrus.Logger, operation string) func() {
	start := time.Now()
	log.Debugf("starting %s", operation)

	return func() {
		log.WithField("took", time.Since(start)).Debugf("completed %s", operation)
	}
}

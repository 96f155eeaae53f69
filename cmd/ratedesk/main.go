// Command ratedesk prices a YAML inventory fixture offline.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

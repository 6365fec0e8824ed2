package uff

import "github.com/sirupsen/logrus"

var logger = logrus.WithField("pkg", "uff")

// SetLogger replaces the logger used for debug output. Reads log at debug
// level when a file is opened and when dataset payloads are read; writes log
// each created node.
func SetLogger(l *logrus.Entry) {
	if l == nil {
		l = logrus.WithField("pkg", "uff")
	}
	logger = l
}

package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qcserestipy/sumbench/pkg/serve"
)

func init() {
	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = time.RFC3339
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(formatter)
}

func main() {
	portPtr := flag.Int("port", 3000, "HTTP listen port")
	workersPtr := flag.Int("workers", 0, "Default worker goroutines per benchmark (0 = all CPU cores)")
	flag.Parse()

	server := serve.New(*workersPtr)
	logrus.WithFields(logrus.Fields{
		"port":    *portPtr,
		"workers": server.Workers,
	}).Info("Starting benchmark service")
	serve.Launch(server, *portPtr)
}

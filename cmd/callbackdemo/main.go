// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command callbackdemo wires producer objects to a consumer through
// callback handles.
//
// Each configured counter is bound with (*Counter).Add and attached to a
// relay; every configured event is then fired through the relay and the
// results are logged.
//
// Usage:
//
//	callbackdemo [-config callbackdemo.yaml]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/callback"
	"code.hybscloud.com/callback/internal/config"
	"code.hybscloud.com/callback/internal/relay"
)

// Counter is the producer: it knows nothing about the relay.
type Counter struct {
	Name  string
	total int
}

// Add increments the running total by n and returns it.
func (c *Counter) Add(n int) int {
	c.total += n
	return c.total
}

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stderr), os.Stderr))
}

// exitCode maps the result of run to a process exit status.
// A help request has already printed usage and is not a failure.
func exitCode(err error, out io.Writer) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintln(out, "callbackdemo:", err)
	return 1
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("callbackdemo", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("config", config.DefaultFile, "path to the YAML config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOptional(*path)
	if err != nil {
		return err
	}
	res, err := config.Resolve(cfg)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(res.Level)
	log := logrus.NewEntry(logger)

	counters := make([]*Counter, len(res.Counters))
	r := relay.New[int, int]("counters", log)
	for i, cc := range res.Counters {
		counters[i] = &Counter{Name: cc.Name, total: cc.Start}
		if err := r.Attach(callback.Bind(counters[i], (*Counter).Add)); err != nil {
			return fmt.Errorf("attach %s: %w", cc.Name, err)
		}
	}

	for _, ev := range res.Events {
		i := 0
		r.Fire(ev, func(total int) {
			log.WithFields(logrus.Fields{
				"counter": counters[i].Name,
				"event":   ev,
				"total":   total,
			}).Info("Callback invoked")
			i++
		})
	}
	return nil
}

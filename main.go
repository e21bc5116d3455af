// Package main is the entry point for mapreel.
package main

import (
	"github.com/mapreel/mapreel/cmd"
	"github.com/mapreel/mapreel/config"
	"github.com/mapreel/mapreel/internal/cache"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		if n := cache.New(where.Frames(), cache.TTL).CollectGarbage(); n > 0 {
			log.Debugf("removed %d expired frames", n)
		}
	}()

	cmd.Execute()
}

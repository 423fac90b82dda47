// Package autoload configures the global logger from the LOG_* environment
// on import.
package autoload

import (
	configx "github.com/haradakit/companion/pkg/config"
	logx "github.com/haradakit/companion/pkg/logger"
)

func init() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}

package main

import (
	"keyfall/internal/config"

	"go.uber.org/zap"
)

func main() {
	config.Parse()

	var log *zap.Logger
	var err error
	if *config.Debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if nil != err {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); nil != err {
		log.Fatal("session failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	p := &Program{Log: log}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	p.Renderer.RenderLoop(*config.Delay, p.Frame)
	return nil
}

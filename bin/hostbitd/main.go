package main

import (
	"github.com/hostbit/hostbit/config"
	"github.com/hostbit/hostbit/pkg/api"
	"github.com/spf13/cobra"
)

func init() {
	cobra.OnInitialize(config.LoadConfig)
}

func main() {
	s := &api.Server{}
	s.Init()
	s.Run()
}

package main

import (
	"flag"
	"fmt"
	"os"
	"techpulse/internal/di"
	"techpulse/internal/structures"
)

func main() {
	flags := structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "also log to the console")
	flag.Parse()

	if _, err := di.InitApp(&flags); err != nil {
		fmt.Fprintf(os.Stderr, "techpulse: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"mindbloom/internal/di"
	"mindbloom/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

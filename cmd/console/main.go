package main

import (
	"flag"
	"log"

	"github.com/simp-lee/storeadmin/internal/config"
	"github.com/simp-lee/storeadmin/internal/console"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	con, err := console.New(cfg)
	if err != nil {
		log.Fatal("failed to create console: ", err)
	}

	if err := con.Run(); err != nil {
		log.Fatal("console error: ", err)
	}
}

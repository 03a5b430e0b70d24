// Package main implements a limbo server: a minimal Minecraft Java Edition
// server that accepts connections, answers status/login, and parks clients
// in an inert Play-state world.
package main

import (
	"flag"
	"fmt"
	"log"
)

const serverVersion = "1.0.0"

func main() {
	configPath := flag.String("c", "limbo.conf", "path to the server configuration file")
	flag.StringVar(configPath, "config-path", "limbo.conf", "path to the server configuration file")
	showVersion := flag.Bool("version", false, "print the server version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("limbo server v%s\n", serverVersion)
		return
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("limbo: loading config %s: %v", *configPath, err)
	}

	srv := NewServer(cfg)
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"github.com/mdrtools/cacheprimer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("run err:%v", err)
	}
}

// Package main - influroi CLI
//
// 사용법:
//
//	go run ./cmd/influroi serve
//	go run ./cmd/influroi score <project-id>
//	go run ./cmd/influroi rank <project-id> --policy percentile
package main

import (
	"os"

	"github.com/wonny/influroi/cmd/influroi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

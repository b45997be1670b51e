// Command contactguard-check classifies contact submissions from JSON lines.
// Each input line is one submission; each output line is one decision with
// score and flags, for tuning rules offline
//
//	contactguard-check -rules rules.yaml -only spam < inbox.jsonl
package main

import (
	"context"
	"os"

	"contactguard/internal/platform/logger"
)

func main() {
	// stdout carries decisions, keep logs off it
	opt := logger.FromEnv()
	opt.Output = "stderr"
	logger.Init(opt)

	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Package main hosts the reelid CLI entrypoint and command graph.
//
// The Cobra-based command tree covers one-shot identification, the HTTP API
// server, history inspection, and configuration scaffolding. It centralizes
// configuration resolution, output-mode selection (tables on a terminal, JSON
// otherwise), and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

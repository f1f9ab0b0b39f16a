// Package testsupport provides shared helpers for package tests: canned
// configurations with per-test temp directories.
package testsupport

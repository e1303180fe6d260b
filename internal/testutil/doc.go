// Package testutil holds shared helpers for package tests: a thread-safe log
// buffer, an app harness, and a counting kernel module.
package testutil

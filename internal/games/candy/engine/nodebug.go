//go:build !candydebug

package engine

const debugChecks = false

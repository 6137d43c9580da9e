//go:build !olistdebug

package olist

const debugChecks = false

//go:build olistdebug

package olist

const debugChecks = true

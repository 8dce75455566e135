// Package clock is the time source for entity timestamps.
package clock

//go:build !linux && !darwin && !windows

package platform

var platformExclusions []string

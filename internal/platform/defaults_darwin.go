//go:build darwin

package platform

var platformExclusions = []string{"Library", "System"}

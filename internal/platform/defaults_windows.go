//go:build windows

package platform

import "os"

var platformExclusions []string

// defaultRoots returns every existing local drive from C: to Z:
func defaultRoots() []string {
	var roots []string
	for letter := 'C'; letter <= 'Z'; letter++ {
		drive := string(letter) + `:\`
		if _, err := os.Stat(drive); err == nil {
			roots = append(roots, drive)
		}
	}
	return roots
}

//go:build linux

package platform

var platformExclusions = []string{
	"bin", "boot", "dev", "etc", "lib", "lib64", "proc", "sys", "var",
}

func defaultRoots() []string {
	return []string{"/home"}
}

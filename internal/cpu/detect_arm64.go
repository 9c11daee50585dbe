//go:build arm64

package cpu

import "golang.org/x/sys/cpu"

func readHost(f *Features) {
	f.HasNEON = cpu.ARM64.HasASIMD
}

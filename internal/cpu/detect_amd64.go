//go:build amd64

package cpu

import "golang.org/x/sys/cpu"

func readHost(f *Features) {
	f.HasSSE2 = cpu.X86.HasSSE2
	f.HasAVX2 = cpu.X86.HasAVX2 && cpu.X86.HasFMA
}

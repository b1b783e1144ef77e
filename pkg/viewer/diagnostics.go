package viewer

import (
	"fmt"
	"math"
	"runtime"
	"runtime/debug"
)

// MemoryStats is a snapshot of the heap, in bytes.
type MemoryStats struct {
	Free  uint64 // heap memory held but unused
	Total uint64 // heap memory obtained from the OS
	Max   int64  // soft memory limit; math.MaxInt64 when unset
}

func readMemoryStats() MemoryStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemoryStats{
		Free:  ms.HeapIdle,
		Total: ms.HeapSys,
		Max:   debug.SetMemoryLimit(-1),
	}
}

// String formats the snapshot in whole megabytes.
func (m MemoryStats) String() string {
	const mb = 1 << 20
	limit := "unlimited"
	if m.Max != math.MaxInt64 {
		limit = fmt.Sprintf("%dMB", m.Max/mb)
	}
	return fmt.Sprintf("*** free: %dMB / total: %dMB / max: %s", m.Free/mb, m.Total/mb, limit)
}

func (g *Generator) diagnose(location string, out []byte) {
	if g.diagnostics.ShowDOT {
		g.logger.Info("DOT output for "+location, "dot", string(out))
	}
	if g.diagnostics.ShowMemory {
		fmt.Fprintln(g.stdout, g.memStats())
	}
}

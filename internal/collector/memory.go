package collector

import (
	"context"
	"fmt"

	"github.com/prabalesh/sysmon/internal/models"
	"github.com/shirou/gopsutil/v3/mem"
)

func (h *hostSource) VirtualMemory(ctx context.Context) (models.MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return models.MemoryStats{}, fmt.Errorf("virtual memory: %w", err)
	}

	return models.MemoryStats{
		Percent:   vm.UsedPercent,
		Used:      vm.Used,
		Available: vm.Available,
		Total:     vm.Total,
	}, nil
}

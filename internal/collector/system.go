package collector

import (
	"context"

	"github.com/prabalesh/sysmon/internal/models"
)

func (h *hostSource) Identity(ctx context.Context) (models.SystemIdentity, error) {
	id, err := uname()
	if err != nil {
		return models.SystemIdentity{}, err
	}

	id.Processor = h.cpuModel(ctx)
	if id.Processor == "" {
		id.Processor = id.Machine
	}
	return id, nil
}

package probes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// Scan method labels recorded on AdvancedScanResult.
const (
	MethodARP      = "arp (raw)"
	MethodFallback = "ping/arp-cache"
)

// Selector chooses between the privileged ARP sweep and the
// unprivileged ping/ARP-cache discovery path. It never fails outright:
// absent privilege is a normal branch.
type Selector struct {
	link   LinkLayerScanner
	engine *Engine
	logger *zap.Logger
}

// NewSelector creates a scan strategy selector.
func NewSelector(link LinkLayerScanner, engine *Engine, logger *zap.Logger) *Selector {
	return &Selector{
		link:   link,
		engine: engine,
		logger: logger,
	}
}

// SmartScan attempts the link-layer sweep first and falls back to the
// discovery engine, recording which method produced the device list.
func (s *Selector) SmartScan(ctx context.Context, subnet string) model.AdvancedScanResult {
	start := time.Now()
	scanID := uuid.NewString()

	if devices, available := s.link.Sweep(subnet); available {
		s.logger.Info("smart scan used privileged ARP sweep",
			zap.String("scan_id", scanID),
			zap.Int("devices", len(devices)),
		)
		return model.AdvancedScanResult{
			ScanID:        scanID,
			Devices:       devices,
			ScanMethod:    MethodARP,
			ScanTimeMs:    time.Since(start).Milliseconds(),
			HasPermission: true,
		}
	}

	devices := s.engine.Discover(ctx, subnet)
	s.logger.Info("smart scan fell back to ping/arp-cache discovery",
		zap.String("scan_id", scanID),
		zap.Int("devices", len(devices)),
	)
	return model.AdvancedScanResult{
		ScanID:        scanID,
		Devices:       devices,
		ScanMethod:    MethodFallback,
		ScanTimeMs:    time.Since(start).Milliseconds(),
		HasPermission: false,
	}
}

package service

import (
	"context"

	"geiger_console/internal/logger"
	"geiger_console/internal/transport"
)

// DeviceService answers static questions about the device.
type DeviceService struct {
	fetcher transport.StatusFetcher
	log     *logger.Logger
}

func NewDeviceService(fetcher transport.StatusFetcher, log *logger.Logger) *DeviceService {
	if log == nil {
		log = logger.Nop()
	}
	return &DeviceService{fetcher: fetcher, log: log}
}

// Version returns the firmware version, or "Unknown" when the device does
// not report one or cannot be reached.
func (s *DeviceService) Version(ctx context.Context) string {
	report, err := s.fetcher.FetchStatus(ctx)
	if err != nil {
		s.log.Debugw("device_version_failed", "err", err, "kind", transport.Classify(err))
		return unknownVersion
	}
	if report.Version == "" {
		return unknownVersion
	}
	return report.Version
}

package smntc

import "time"

// frameStats holds per-tick timing. Only populated in debug mode.
type frameStats struct {
	stepTime   time.Duration
	writeTime  time.Duration
	signalTime time.Duration
	scaleTime  time.Duration
	frame      float64
	moving     bool
}

// SetDebugMode enables or disables per-tick timing logs at debug level.
func (k *Kernel) SetDebugMode(enabled bool) {
	k.debug = enabled
}

// debugLog reports the last tick's timing through the package logger.
func (k *Kernel) debugLog() {
	s := k.stats
	total := s.stepTime + s.writeTime + s.signalTime + s.scaleTime
	Logger().Debug("tick",
		"step", s.stepTime,
		"write", s.writeTime,
		"signal", s.signalTime,
		"scale", s.scaleTime,
		"total", total,
		"dt", s.frame,
		"moving", s.moving,
		"springs", k.bank.Len(),
		"fidelity", k.scaler.Tier(),
		"avgFrame", k.scaler.Average(),
	)
}

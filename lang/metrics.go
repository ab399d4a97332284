package lang

import "github.com/ethereum/go-ethereum/metrics"

var (
	callCounter     = metrics.NewRegisteredCounter("liquid/dispatch/calls", nil)
	deployCounter   = metrics.NewRegisteredCounter("liquid/dispatch/deploys", nil)
	unknownCounter  = metrics.NewRegisteredCounter("liquid/dispatch/unknown", nil)
	invalidCounter  = metrics.NewRegisteredCounter("liquid/dispatch/invalid", nil)
	inputErrCounter = metrics.NewRegisteredCounter("liquid/dispatch/inputerr", nil)
	revertCounter   = metrics.NewRegisteredCounter("liquid/dispatch/reverts", nil)
)

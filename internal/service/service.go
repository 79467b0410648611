package service

import (
	"github.com/smartcity/prizedash/internal/domain"
)

// ScenarioSource is re-exported from domain for convenience
type ScenarioSource = domain.ScenarioSource

// ErrScenarioNotFound is returned for names the registry does not hold
var ErrScenarioNotFound = domain.ErrScenarioNotFound

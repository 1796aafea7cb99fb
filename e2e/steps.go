package e2e

import (
	"github.com/cucumber/godog"

	"stargate/e2e/steps/common"
	"stargate/e2e/steps/duty"
	"stargate/e2e/steps/person"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, status and field assertions)
	common.RegisterSteps(ctx, tc)

	person.RegisterSteps(ctx, tc)
	duty.RegisterSteps(ctx, tc)
}

package duty

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetLastStatus() int
	GetResponseField(field string) (any, error)
	Alias(name string) string
	PathEscape(name string) string
}

// RegisterSteps registers astronaut duty steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &dutySteps{tc: tc}

	ctx.Step(`^I record duty "([^"]*)" with rank "([^"]*)" starting "([^"]*)" for "([^"]*)"$`, steps.recordDuty)
	ctx.Step(`^"([^"]*)" has recorded duty "([^"]*)" with rank "([^"]*)" starting "([^"]*)"$`, steps.hasRecordedDuty)
	ctx.Step(`^I list the duties of "([^"]*)"$`, steps.listDuties)
}

type dutySteps struct {
	tc TestContext
}

func (s *dutySteps) recordDuty(ctx context.Context, title, rank, start, name string) error {
	return s.tc.POST("/astronautduty", map[string]string{
		"name":            s.tc.Alias(name),
		"rank":            rank,
		"duty_title":      title,
		"duty_start_date": start,
	})
}

func (s *dutySteps) hasRecordedDuty(ctx context.Context, name, title, rank, start string) error {
	if err := s.recordDuty(ctx, title, rank, start, name); err != nil {
		return err
	}
	if got := s.tc.GetLastStatus(); got != 200 {
		return fmt.Errorf("recording %s for %q returned %d", title, name, got)
	}
	return nil
}

func (s *dutySteps) listDuties(ctx context.Context, name string) error {
	return s.tc.GET("/astronautduty/"+s.tc.PathEscape(s.tc.Alias(name)), nil)
}

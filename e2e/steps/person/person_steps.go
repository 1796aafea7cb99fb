package person

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	PUT(path string, body any) error
	GET(path string, headers map[string]string) error
	GetLastStatus() int
	GetResponseField(field string) (any, error)
	Alias(name string) string
	PathEscape(name string) string
}

// RegisterSteps registers person registration and lookup steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &personSteps{tc: tc}

	ctx.Step(`^a person named "([^"]*)" exists$`, steps.personExists)
	ctx.Step(`^I register a person named "([^"]*)"$`, steps.registerPerson)
	ctx.Step(`^I register a person with the raw name "([^"]*)"$`, steps.registerRawName)
	ctx.Step(`^I rename "([^"]*)" to "([^"]*)"$`, steps.renamePerson)
	ctx.Step(`^I look up the person "([^"]*)"$`, steps.lookupPerson)
	ctx.Step(`^the person "([^"]*)" should be a civilian$`, steps.shouldBeCivilian)
}

type personSteps struct {
	tc TestContext
}

func (s *personSteps) personExists(ctx context.Context, name string) error {
	if err := s.registerPerson(ctx, name); err != nil {
		return err
	}
	if got := s.tc.GetLastStatus(); got != 200 {
		return fmt.Errorf("registering %q returned %d", name, got)
	}
	return nil
}

func (s *personSteps) registerPerson(ctx context.Context, name string) error {
	return s.tc.POST("/person", s.tc.Alias(name))
}

func (s *personSteps) registerRawName(ctx context.Context, name string) error {
	return s.tc.POST("/person", map[string]string{"name": name})
}

func (s *personSteps) renamePerson(ctx context.Context, from, to string) error {
	return s.tc.PUT("/person/"+s.tc.PathEscape(s.tc.Alias(from)), map[string]string{"new_name": s.tc.Alias(to)})
}

func (s *personSteps) lookupPerson(ctx context.Context, name string) error {
	return s.tc.GET("/person/"+s.tc.PathEscape(s.tc.Alias(name)), nil)
}

func (s *personSteps) shouldBeCivilian(ctx context.Context, name string) error {
	if err := s.lookupPerson(ctx, name); err != nil {
		return err
	}
	v, err := s.tc.GetResponseField("person.is_astronaut")
	if err != nil {
		return err
	}
	if v != false {
		return fmt.Errorf("expected %q to be a civilian", name)
	}
	return nil
}

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("width", "is required")
	ve.AddFieldError("style", "is invalid")

	s.True(ve.HasErrors())
	s.Equal("validation failed: style: is invalid; width: is required", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("Producer").
		Fieldf("Difficulty", "must be between %d and %d", 1, 3).
		InvalidField("Style", "unknown style")

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Producer: is required")
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestHelpers() {
	testCases := []struct {
		name      string
		check     func(vb *errors.ValidationBuilder)
		shouldErr bool
	}{
		{"required ok", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("f", "x", vb) }, false},
		{"required blank", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("f", "  ", vb) }, true},
		{"range ok", func(vb *errors.ValidationBuilder) { errors.ValidateRange("f", 2, 1, 3, vb) }, false},
		{"range high", func(vb *errors.ValidationBuilder) { errors.ValidateRange("f", 4, 1, 3, vb) }, true},
		{"ratio ok", func(vb *errors.ValidationBuilder) { errors.ValidateRatio("f", 0.7, vb) }, false},
		{"ratio high", func(vb *errors.ValidationBuilder) { errors.ValidateRatio("f", 1.5, vb) }, true},
		{"positive ok", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", 1, vb) }, false},
		{"positive zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", 0, vb) }, true},
		{"enum ok", func(vb *errors.ValidationBuilder) { errors.ValidateEnum("f", "cave", []string{"dungeon", "cave"}, vb) }, false},
		{"enum bad", func(vb *errors.ValidationBuilder) { errors.ValidateEnum("f", "space", []string{"dungeon", "cave"}, vb) }, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.check(vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "unknown terrain id",
			expected: "NOT_FOUND: unknown terrain id",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "difficulty out of range",
			expected: "INVALID_ARGUMENT: difficulty out of range",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to store level")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to store level", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
	s.Contains(wrapped.Error(), "redis connection refused")
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("terrain id not registered").WithMeta(errors.MetaTerrainID, "lava")
	wrapped := errors.Wrapf(baseErr, "failed to resolve tile (%d,%d)", 3, 4)

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to resolve tile (3,4)", wrapped.Message)
	s.Equal("lava", wrapped.Meta[errors.MetaTerrainID])
	s.True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("level not found").WithMeta("level_id", "level_1")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "storage unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("level_1", wrapped.Meta["level_id"])
	s.True(wrapped.Code.Retryable())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestFromContext() {
	canceled := errors.FromContext(context.Canceled, "generation cancelled")
	s.Equal(errors.CodeCanceled, canceled.Code)
	s.True(errors.IsCanceled(canceled))

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	expired := errors.FromContext(ctx.Err(), "produce cancelled")
	s.Equal(errors.CodeDeadlineExceeded, expired.Code)
	s.True(errors.IsCanceled(expired))

	other := errors.FromContext(errors.Unavailable("redis down"), "failed")
	s.True(errors.IsUnavailable(other))
	s.Nil(errors.FromContext(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Equal(tc.code, err.Code)
			s.Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("level a")
	err2 := errors.NotFound("level b")
	err3 := errors.InvalidArgument("level a")

	s.True(errors.Is(err1, err2))
	s.False(errors.Is(err1, err3))
	s.True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.NotFound("user friendly message").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(stdErr))
	s.Equal(errors.CodeOK, errors.GetCode(nil))

	s.Equal("value", errors.GetMeta(wrapped)["key"])
	s.Nil(errors.GetMeta(stdErr))

	s.Equal("wrapped message", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("level not found").WithMeta("level_id", "level_42")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("level not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Equal("level_42", errors.GetMeta(back)["level_id"])
}

func (s *ErrorsTestSuite) TestGRPCPassthrough() {
	grpcErr := status.Error(codes.InvalidArgument, "invalid input")
	s.Equal(grpcErr, errors.ToGRPCError(grpcErr))

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(back))
	s.Equal("invalid input", errors.GetMessage(back))

	plain := errors.ToGRPCError(fmt.Errorf("boom"))
	st, _ := status.FromError(plain)
	s.Equal(codes.Internal, st.Code())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}

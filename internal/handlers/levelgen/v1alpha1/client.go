package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// LevelServiceClient is the client API of the level service
type LevelServiceClient interface {
	GenerateLevel(ctx context.Context, in *GenerateLevelRequest, opts ...grpc.CallOption) (*GenerateLevelResponse, error)
	GetLevel(ctx context.Context, in *GetLevelRequest, opts ...grpc.CallOption) (*GetLevelResponse, error)
	ListLevels(ctx context.Context, in *ListLevelsRequest, opts ...grpc.CallOption) (*ListLevelsResponse, error)
	ValidateLevel(ctx context.Context, in *ValidateLevelRequest, opts ...grpc.CallOption) (*ValidateLevelResponse, error)
}

type levelServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLevelServiceClient wraps a connection. Every call is sent with the
// json content subtype.
func NewLevelServiceClient(cc grpc.ClientConnInterface) LevelServiceClient {
	return &levelServiceClient{cc: cc}
}

func (c *levelServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *levelServiceClient) GenerateLevel(ctx context.Context, in *GenerateLevelRequest, opts ...grpc.CallOption) (*GenerateLevelResponse, error) {
	out := new(GenerateLevelResponse)
	if err := c.invoke(ctx, LevelServiceGenerateLevelFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *levelServiceClient) GetLevel(ctx context.Context, in *GetLevelRequest, opts ...grpc.CallOption) (*GetLevelResponse, error) {
	out := new(GetLevelResponse)
	if err := c.invoke(ctx, LevelServiceGetLevelFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *levelServiceClient) ListLevels(ctx context.Context, in *ListLevelsRequest, opts ...grpc.CallOption) (*ListLevelsResponse, error) {
	out := new(ListLevelsResponse)
	if err := c.invoke(ctx, LevelServiceListLevelsFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *levelServiceClient) ValidateLevel(ctx context.Context, in *ValidateLevelRequest, opts ...grpc.CallOption) (*ValidateLevelResponse, error) {
	out := new(ValidateLevelResponse)
	if err := c.invoke(ctx, LevelServiceValidateLevelFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Package errors provides the structured error type shared by every layer of
// the level generation service.
//
// # Where errors come from
//
// The generator distinguishes content defects from programmer mistakes:
//
//   - A flawed level (boundary hole, unreachable objective, zone mismatch) is
//     never an error. Those are issue strings inside validator.Result.
//   - An unknown terrain id or zone type is a configuration mistake and comes
//     back as CodeNotFound from the registries.
//   - A bad request or component config is CodeInvalidArgument, usually built
//     with a ValidationBuilder.
//   - Storage failures are wrapped with Wrap so the repository's code survives.
//
// # Usage
//
//	tag, err := registry.Resolve(id)
//	if err != nil {
//		return errors.Wrapf(err, "failed to resolve terrain at (%d,%d)", x, y)
//	}
//
//	func (c *Config) Validate() error {
//		vb := errors.NewValidationBuilder()
//		if c.Producer == nil {
//			vb.RequiredField("Producer")
//		}
//		return vb.Build()
//	}
//
// # Transport
//
// Handlers convert with ToGRPCError. The code and any meta travel in a
// structpb.Struct status detail, and FromGRPCError restores both on the client.
package errors

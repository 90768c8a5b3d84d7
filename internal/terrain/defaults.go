package terrain

// Default terrain ids
const (
	FloorNormal    = "floor_normal"
	FloorSticky    = "floor_sticky"
	FloorIcy       = "floor_icy"
	FloorFire      = "floor_fire"
	PlatformNormal = "platform_normal"
	PlatformSticky = "platform_sticky"
	PlatformIcy    = "platform_icy"
	PlatformFire   = "platform_fire"
	WallSolid      = "wall_solid"
	Water          = "water"
)

// RegisterDefaults loads the default bases, modifiers, walkability and ids.
// Safe to call more than once.
func (r *Registry) RegisterDefaults() {
	for _, b := range []Base{BasePlatform, BaseFloor, BaseWall, BaseWater} {
		r.RegisterBase(b)
	}

	r.RegisterModifier(ModSticky, false, BaseFloor, BasePlatform)
	r.RegisterModifier(ModIcy, false, BaseFloor, BasePlatform)
	r.RegisterModifier(ModFire, true, BaseFloor, BasePlatform)

	r.SetWalkableBases(MovementGround, BaseFloor, BasePlatform)
	r.SetWalkableBases(MovementFlying, BasePlatform, BaseFloor, BaseWall, BaseWater)
	r.SetWalkableBases(MovementAmphibious, BaseFloor, BasePlatform, BaseWater)

	r.mustDefine(FloorNormal, BaseFloor)
	r.mustDefine(FloorSticky, BaseFloor, ModSticky)
	r.mustDefine(FloorIcy, BaseFloor, ModIcy)
	r.mustDefine(FloorFire, BaseFloor, ModFire)
	r.mustDefine(PlatformNormal, BasePlatform)
	r.mustDefine(PlatformSticky, BasePlatform, ModSticky)
	r.mustDefine(PlatformIcy, BasePlatform, ModIcy)
	r.mustDefine(PlatformFire, BasePlatform, ModFire)
	r.mustDefine(WallSolid, BaseWall)
	r.mustDefine(Water, BaseWater)
}

package config

import (
	"github.com/stride-sim/stride/serror"
)

// Config is the flat, read-only record of movement tunables supplied once per
// session. The traversal core never mutates it.
type Config struct {
	// Base movement.
	WalkSpeed           float32 `yaml:"walk_speed"`
	SprintSpeed         float32 `yaml:"sprint_speed"`
	CrouchSpeed         float32 `yaml:"crouch_speed"`
	GroundSharpness     float32 `yaml:"ground_sharpness"`
	MaxAirSpeed         float32 `yaml:"max_air_speed"`
	AirAcceleration     float32 `yaml:"air_acceleration"`
	AirDecaySharpness   float32 `yaml:"air_decay_sharpness"`
	Gravity             float32 `yaml:"gravity"`
	AirDrag             float32 `yaml:"air_drag"`
	RotationSharpness   float32 `yaml:"rotation_sharpness"`
	MaxStableSlopeAngle float32 `yaml:"max_stable_slope_angle"`
	NoClipSpeed         float32 `yaml:"noclip_speed"`
	NoClipSharpness     float32 `yaml:"noclip_sharpness"`

	// Jump.
	JumpUpSpeed                 float32 `yaml:"jump_up_speed"`
	JumpScalableForwardSpeed    float32 `yaml:"jump_scalable_forward_speed"`
	AirJumpUpSpeed              float32 `yaml:"air_jump_up_speed"`
	AirJumpScalableForwardSpeed float32 `yaml:"air_jump_scalable_forward_speed"`
	MaxAirJumps                 int     `yaml:"max_air_jumps"`
	JumpPreGroundingGraceTime   float32 `yaml:"jump_pre_grounding_grace_time"`
	JumpPostGroundingGraceTime  float32 `yaml:"jump_post_grounding_grace_time"`
	AllowWallJump               bool    `yaml:"allow_wall_jump"`
	JumpUngroundDuration        float32 `yaml:"jump_unground_duration"`

	// Slide.
	SlideMinEntrySpeed  float32 `yaml:"slide_min_entry_speed"`
	SlideBaseSpeed      float32 `yaml:"slide_base_speed"`
	SlideSlopeInfluence float32 `yaml:"slide_slope_influence"`
	SlideFrictionRate   float32 `yaml:"slide_friction_rate"`
	SlideSteerStrength  float32 `yaml:"slide_steer_strength"`
	MinSlideExitSpeed   float32 `yaml:"min_slide_exit_speed"`
	MaxSlideDuration    float32 `yaml:"max_slide_duration"`
	SlideCooldown       float32 `yaml:"slide_cooldown"`
	SlideToggleMode     bool    `yaml:"slide_toggle_mode"`

	// Dash.
	DashForce        float32 `yaml:"dash_force"`
	MaxDashCharges   int     `yaml:"max_dash_charges"`
	DashReloadTime   float32 `yaml:"dash_reload_time"`
	DashIntermission float32 `yaml:"dash_intermission"`

	// Mantle.
	MaxGrabDistance       float32 `yaml:"max_grab_distance"`
	MinLedgeHeight        float32 `yaml:"min_ledge_height"`
	MaxLedgeHeight        float32 `yaml:"max_ledge_height"`
	MaxWallAngleDeviation float32 `yaml:"max_wall_angle_deviation"`
	MaxLedgeSlopeAngle    float32 `yaml:"max_ledge_slope_angle"`
	MantleDuration        float32 `yaml:"mantle_duration"`
	HangPullback          float32 `yaml:"hang_pullback"`
	HangDropBelowLedge    float32 `yaml:"hang_drop_below_ledge"`
	MantleForwardOffset   float32 `yaml:"mantle_forward_offset"`
	ShimmySpeed           float32 `yaml:"shimmy_speed"`
	ShimmyInputThreshold  float32 `yaml:"shimmy_input_threshold"`
	MantleDropCooldown    float32 `yaml:"mantle_drop_cooldown"`

	// Capsule.
	CapsuleRadius       float32 `yaml:"capsule_radius"`
	CapsuleStandHeight  float32 `yaml:"capsule_stand_height"`
	CapsuleCrouchHeight float32 `yaml:"capsule_crouch_height"`

	// Collision layer masks for geometric queries.
	GroundMask uint32 `yaml:"ground_mask"`
	MantleMask uint32 `yaml:"mantle_mask"`
}

// Default returns the tuned default configuration.
func Default() Config {
	return Config{
		WalkSpeed:           4.5,
		SprintSpeed:         8,
		CrouchSpeed:         2.5,
		GroundSharpness:     15,
		MaxAirSpeed:         7,
		AirAcceleration:     25,
		AirDecaySharpness:   4,
		Gravity:             30,
		AirDrag:             0.1,
		RotationSharpness:   10,
		MaxStableSlopeAngle: 50,
		NoClipSpeed:         12,
		NoClipSharpness:     12,

		JumpUpSpeed:                 10,
		JumpScalableForwardSpeed:    1,
		AirJumpUpSpeed:              9,
		AirJumpScalableForwardSpeed: 2,
		MaxAirJumps:                 1,
		JumpPreGroundingGraceTime:   0.1,
		JumpPostGroundingGraceTime:  0.1,
		AllowWallJump:               true,
		JumpUngroundDuration:        0.1,

		SlideMinEntrySpeed:  6,
		SlideBaseSpeed:      9,
		SlideSlopeInfluence: 8,
		SlideFrictionRate:   4,
		SlideSteerStrength:  3,
		MinSlideExitSpeed:   3,
		MaxSlideDuration:    5,
		SlideCooldown:       0.5,
		SlideToggleMode:     true,

		DashForce:        15,
		MaxDashCharges:   3,
		DashReloadTime:   2,
		DashIntermission: 0.3,

		MaxGrabDistance:       0.9,
		MinLedgeHeight:        0.8,
		MaxLedgeHeight:        2.2,
		MaxWallAngleDeviation: 30,
		MaxLedgeSlopeAngle:    45,
		MantleDuration:        0.8,
		HangPullback:          0.35,
		HangDropBelowLedge:    1.1,
		MantleForwardOffset:   0.4,
		ShimmySpeed:           1.5,
		ShimmyInputThreshold:  0.3,
		MantleDropCooldown:    0.5,

		CapsuleRadius:       0.35,
		CapsuleStandHeight:  1.8,
		CapsuleCrouchHeight: 1.1,

		GroundMask: 0xffffffff,
		MantleMask: 0xffffffff,
	}
}

// Validate returns an error when the configuration holds values the traversal
// core cannot operate on.
func (c Config) Validate() error {
	if c.WalkSpeed <= 0 || c.SprintSpeed <= 0 {
		return serror.New("config: walk/sprint speeds must be positive (walk=%v sprint=%v)", c.WalkSpeed, c.SprintSpeed)
	}
	if c.Gravity < 0 {
		return serror.New("config: gravity must be non-negative, got %v", c.Gravity)
	}
	if c.MaxAirJumps < 0 {
		return serror.New("config: max_air_jumps must be non-negative, got %d", c.MaxAirJumps)
	}
	if c.MaxDashCharges < 0 {
		return serror.New("config: max_dash_charges must be non-negative, got %d", c.MaxDashCharges)
	}
	if c.MinLedgeHeight >= c.MaxLedgeHeight {
		return serror.New("config: min_ledge_height (%v) must be below max_ledge_height (%v)", c.MinLedgeHeight, c.MaxLedgeHeight)
	}
	if c.CapsuleCrouchHeight > c.CapsuleStandHeight {
		return serror.New("config: crouch height (%v) exceeds stand height (%v)", c.CapsuleCrouchHeight, c.CapsuleStandHeight)
	}
	if c.MantleDuration <= 0 {
		return serror.New("config: mantle_duration must be positive, got %v", c.MantleDuration)
	}
	return nil
}

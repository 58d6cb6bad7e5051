package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	MinMoveSpeed = 1.0
	MaxMoveSpeed = 200.0
	ZoomStep     = 5.0
)

// Fly is the free editor camera: hold the look button to turn with the mouse
// and fly with WASD/QE, scroll to zoom along the view direction.
type Fly struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32 // Units per second
	LookSpeed float32
}

func New(pos rl.Vector3, yaw, pitch, moveSpeed float32) Fly {
	return Fly{
		Position:  pos,
		Yaw:       yaw,
		Pitch:     pitch,
		MoveSpeed: moveSpeed,
		LookSpeed: 0.1,
	}
}

// Controls is one tick of camera input.
type Controls struct {
	DeltaTime  float32
	Look       bool // right mouse button held
	MouseDelta rl.Vector2

	Forward, Back, Left, Right, Up, Down bool

	Wheel float32
	// SpeedMod turns the wheel into a fly speed change.
	SpeedMod bool
	// WheelBlocked is set when the wheel belongs to a window.
	WheelBlocked bool
}

func (c *Fly) Update(in Controls) {
	forward, right := c.Directions()

	if in.Look {
		c.Yaw += in.MouseDelta.X * c.LookSpeed
		c.Pitch -= in.MouseDelta.Y * c.LookSpeed

		// Clamp pitch
		if c.Pitch > 89 {
			c.Pitch = 89
		}
		if c.Pitch < -89 {
			c.Pitch = -89
		}

		forward, right = c.Directions()
		speed := c.MoveSpeed * in.DeltaTime

		if in.Forward {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, speed))
		}
		if in.Back {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, -speed))
		}
		if in.Left {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(right, speed))
		}
		if in.Right {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(right, -speed))
		}
		if in.Up {
			c.Position.Y += speed
		}
		if in.Down {
			c.Position.Y -= speed
		}
	}

	if in.Wheel == 0 || in.WheelBlocked {
		return
	}
	if in.SpeedMod {
		c.MoveSpeed += in.Wheel * 2.0
		if c.MoveSpeed < MinMoveSpeed {
			c.MoveSpeed = MinMoveSpeed
		}
		if c.MoveSpeed > MaxMoveSpeed {
			c.MoveSpeed = MaxMoveSpeed
		}
		return
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, in.Wheel*ZoomStep))
}

// Directions returns the view direction and the horizontal left vector.
func (c *Fly) Directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	forward = rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

func (c *Fly) GetRaylibCamera() rl.Camera3D {
	forward, _ := c.Directions()
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, forward),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

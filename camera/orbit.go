// Package camera implements a Z-up orbit camera and its mouse controls.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxElevation = math.Pi/2 - 0.01
	nearPlane    = 0.1
	farPlane     = 1000.0
)

// Orbit places the eye on a sphere of Radius around Target. Azimuth is
// measured in the XY plane from +X, Elevation from the XY plane towards +Z.
type Orbit struct {
	Target               mgl32.Vec3
	Radius               float32
	Azimuth, Elevation   float32
	MinRadius, MaxRadius float32
}

func NewOrbit(radius float32) *Orbit {
	return &Orbit{
		Radius:    radius,
		Azimuth:   math.Pi / 4,
		Elevation: math.Pi / 8,
		MinRadius: 1.5,
		MaxRadius: 50,
	}
}

func (o *Orbit) Eye() mgl32.Vec3 {
	cosEl := float32(math.Cos(float64(o.Elevation)))
	return o.Target.Add(mgl32.Vec3{
		o.Radius * cosEl * float32(math.Cos(float64(o.Azimuth))),
		o.Radius * cosEl * float32(math.Sin(float64(o.Azimuth))),
		o.Radius * float32(math.Sin(float64(o.Elevation))),
	})
}

func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, mgl32.Vec3{0, 0, 1})
}

func (o *Orbit) Projection(fovDegrees, aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, nearPlane, farPlane)
}

// Rotate moves the eye around the target. Elevation stops just short of
// the poles so the up vector never lines up with the view direction.
func (o *Orbit) Rotate(dAzimuth, dElevation float32) {
	o.Azimuth = float32(math.Mod(float64(o.Azimuth+dAzimuth), 2*math.Pi))
	o.Elevation = mgl32.Clamp(o.Elevation+dElevation, -maxElevation, maxElevation)
}

// Zoom scales the radius by 0.95 per positive step and 1/0.95 per negative one.
func (o *Orbit) Zoom(steps float32) {
	scale := float32(math.Pow(0.95, float64(steps)))
	o.Radius = mgl32.Clamp(o.Radius*scale, o.MinRadius, o.MaxRadius)
}

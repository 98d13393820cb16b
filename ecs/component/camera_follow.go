package component

const DefaultCameraFollowHeight = 50.0

// CameraFollow keeps the camera directly above the player at a fixed height.
type CameraFollow struct {
	Height float64
}

var CameraFollowComponent = NewComponent[CameraFollow]()

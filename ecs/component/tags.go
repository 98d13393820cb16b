package component

// PlayerTag marks the one entity the movement loop drives.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// PlayerCameraTag marks the one camera that follows the player.
type PlayerCameraTag struct{}

var PlayerCameraTagComponent = NewComponent[PlayerCameraTag]()

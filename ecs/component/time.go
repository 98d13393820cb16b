package component

// Time is the simulation clock. Delta is the duration of the current tick in
// seconds.
type Time struct {
	Delta   float64
	Elapsed float64
	Tick    uint64
}

var TimeComponent = NewComponent[Time]()

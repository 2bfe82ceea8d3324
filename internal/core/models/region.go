package models

// Region is a coarse geographic classification of a city, supplied by the
// caller and used only by the competitive_balance soft constraint. The
// source this specification was distilled from hard-coded a Vietnamese
// city->region table; here it is always an input, never guessed.
type Region string

const (
	RegionNorth   Region = "North"
	RegionCentral Region = "Central"
	RegionSouth   Region = "South"
	RegionUnknown Region = "Unknown"
)

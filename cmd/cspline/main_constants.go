package main

// Default command-line flag values
const (
	defaultSamples = 21 // Grid points including both ends
)

// Table formatting
const (
	tableBarWidth = 40 // Width of the ASCII plot column
)

// Demo curves
const (
	demoSamples = 11
)

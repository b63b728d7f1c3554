package mathutil

// Sign classes returned by Sign.
const (
	SignNegative = -1
	SignZero     = 0
	SignPositive = 1
)

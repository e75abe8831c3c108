package domain

// ModalSplit holds the percentage share of each mode, once by number of
// trips and once by kilometres travelled. Values are exact ratios × 100.
type ModalSplit struct {
	ByCount    map[Mode]float64
	ByDistance map[Mode]float64
}

// ChartFiles are the paths of the two rendered modal-split charts.
type ChartFiles struct {
	Ways       string
	Kilometres string
}

// Analysis is the result of one analysis run.
type Analysis struct {
	Split  ModalSplit
	Charts ChartFiles
}

package stats_test

import (
	"fmt"

	"github.com/cwbudde/algo-eda/stats"
)

func ExampleMean() {
	fmt.Println(stats.Mean([]float64{1, 2, 3, 4}))

	// Output:
	// 2.5
}

func ExampleMaxAbs() {
	fmt.Println(stats.MaxAbs([]float64{0.5, -3, 2}))

	// Output:
	// 3
}

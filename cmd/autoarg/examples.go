package main

import "fmt"

type binaryArgs struct {
	A           float64 `arg:"a,required" help:"the first operand"`
	B           float64 `arg:"b,required" help:"the second operand"`
	PrintOutput bool    `help:"print the result as an equation"`
}

func add(in *binaryArgs) float64 {
	sum := in.A + in.B
	if in.PrintOutput {
		fmt.Printf("%g+%g=%g\n", in.A, in.B, sum)
	}
	return sum
}

func mul(in *binaryArgs) float64 {
	product := in.A * in.B
	if in.PrintOutput {
		fmt.Printf("%g*%g=%g\n", in.A, in.B, product)
	}
	return product
}

type emaArgs struct {
	Items               []float64 `arg:"items,required" help:"the series to average"`
	Decay               float64   `default:"0.25" help:"weight of each new item"`
	StartAverageAtFirst bool      `short:"s" help:"seed the average with the first item instead of zero"`
}

// exponentialMovingAverage computes a running exponentially weighted average
// of the input series.
func exponentialMovingAverage(in *emaArgs) []float64 {
	averages := make([]float64, 0, len(in.Items))
	for _, item := range in.Items {
		var avg float64
		if len(averages) == 0 {
			if in.StartAverageAtFirst {
				avg = item
			}
		} else {
			avg = averages[len(averages)-1]*(1-in.Decay) + item*in.Decay
		}
		averages = append(averages, avg)
	}
	return averages
}

// poolbench drives a taskpool with synthetic prioritized load and reports
// how long the drain took.
package main

func main() {
	Execute()
}

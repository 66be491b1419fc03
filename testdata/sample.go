package sample

import "fmt"

// greet prints a friendly greeting for name.
func greet(name string) {
	message := "hello, " + name
	fmt.Println(message)
}

func main() {
	greet("world")
}

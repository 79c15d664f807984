package main

import "github.com/powsim/powsim/cmd/powsim"

func main() {
	powsim.Execute()
}

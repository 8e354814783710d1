package main

import "resume-optimizer/internal/tailor"

func main() {
	tailor.Execute()
}

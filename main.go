package main

import (
	"github.com/anle/todo-api/app"
	_ "github.com/anle/todo-api/docs"
)

func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}

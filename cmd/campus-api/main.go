// campus-api is the school website backend server.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/edukit/campus/internal/site"
)

func main() {
	site.NewApp().Run()
}

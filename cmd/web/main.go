package main

import "github.com/Heshmert/P2-31499269/internal/app"

func main() {
	app.Run()
}

package main

import "bloocareer_backend/internal/app"

func main() {
	app.Run()
}
